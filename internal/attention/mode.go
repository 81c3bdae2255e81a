package attention

import (
	"fmt"
	"strings"
)

// Mode selects how scores are turned into display intensities.
type Mode uint8

const (
	ModeRaw Mode = iota
	ModeNormalized
	ModeAmplified
)

// Modes lists every mode in cycle order.
var Modes = [...]Mode{ModeRaw, ModeNormalized, ModeAmplified}

// Next advances raw -> normalized -> amplified -> raw. Unknown values
// restart the cycle at raw.
func Next(m Mode) Mode {
	switch m {
	case ModeRaw:
		return ModeNormalized
	case ModeNormalized:
		return ModeAmplified
	default:
		return ModeRaw
	}
}

func (m Mode) Next() Mode { return Next(m) }

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeNormalized:
		return "normalized"
	case ModeAmplified:
		return "amplified"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

func (m Mode) Valid() bool {
	return m <= ModeAmplified
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "":
		return ModeRaw, nil
	case "normalized", "normalised", "norm":
		return ModeNormalized, nil
	case "amplified", "amp":
		return ModeAmplified, nil
	default:
		return ModeRaw, fmt.Errorf("unknown mode %q (want raw, normalized or amplified)", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Set and Type let a Mode be used directly as a command-line flag.
func (m *Mode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

func (m *Mode) Type() string { return "mode" }
