// Package attnviz loads an attention payload and serves per-hover display
// intensities for it.
package attnviz

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"attnviz-go/internal/attention"
	"attnviz-go/internal/attnbin"
)

type Mode = attention.Mode

const (
	ModeRaw        = attention.ModeRaw
	ModeNormalized = attention.ModeNormalized
	ModeAmplified  = attention.ModeAmplified
)

var (
	ErrMalformedInput = attnbin.ErrMalformedInput
	ErrShapeMismatch  = attnbin.ErrShapeMismatch
)

func NextMode(m Mode) Mode { return attention.Next(m) }

func ParseMode(s string) (Mode, error) { return attention.ParseMode(s) }

type Options struct {
	// Strict rejects payloads whose score block disagrees with the header.
	Strict bool
	// CacheRowStats precomputes normalized-mode row statistics on load.
	CacheRowStats bool
	Logger        *slog.Logger
}

type Info struct {
	ID            string
	Path          string
	Tokens        int
	Rows          uint32
	Cols          uint32
	Scores        int
	ShapeMismatch bool
	Trailing      int
}

// Session holds one decoded payload. It is read-only after Load.
type Session struct {
	id     string
	path   string
	matrix attnbin.Matrix
	tr     *attention.Transformer
}

func Load(ctx context.Context, path string, opts Options) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := attnbin.ReadMatrixWithOptions(path, attnbin.DecodeOptions{Strict: opts.Strict})
	if err != nil {
		return nil, err
	}
	s := newSession(path, m, opts)
	s.log(opts.Logger)
	return s, nil
}

func Decode(buf []byte, opts Options) (*Session, error) {
	m, err := attnbin.DecodeWithOptions(buf, attnbin.DecodeOptions{Strict: opts.Strict})
	if err != nil {
		return nil, err
	}
	s := newSession("", m, opts)
	s.log(opts.Logger)
	return s, nil
}

func newSession(path string, m attnbin.Matrix, opts Options) *Session {
	s := &Session{
		id:     uuid.New().String(),
		path:   path,
		matrix: m,
	}
	if opts.CacheRowStats {
		s.tr = attention.NewTransformer(m)
	}
	return s
}

func (s *Session) log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	info := s.Info()
	logger.Info("loaded attention data",
		"session", info.ID,
		"path", info.Path,
		"tokens", info.Tokens,
		"rows", info.Rows,
		"cols", info.Cols,
		"row_stats_cached", s.tr != nil,
	)
	if info.ShapeMismatch {
		logger.Warn("score block does not match declared shape",
			"session", info.ID,
			"expected", s.matrix.Expected(),
			"scores", info.Scores,
			"trailing_bytes", info.Trailing,
		)
	}
}

func (s *Session) Info() Info {
	return Info{
		ID:            s.id,
		Path:          s.path,
		Tokens:        len(s.matrix.Tokens),
		Rows:          s.matrix.Rows,
		Cols:          s.matrix.Cols,
		Scores:        len(s.matrix.Scores),
		ShapeMismatch: s.matrix.ShapeMismatch(),
		Trailing:      s.matrix.Trailing,
	}
}

func (s *Session) Tokens() []string {
	return append([]string(nil), s.matrix.Tokens...)
}

// Row returns a copy of the raw scores of query q.
func (s *Session) Row(q int) []float32 {
	return s.matrix.Row(q)
}

// Intensities returns one display intensity per key for query q. A
// negative q means nothing is hovered and yields zeros.
func (s *Session) Intensities(q int, mode Mode) []float64 {
	if s.tr != nil {
		return s.tr.Intensities(q, mode)
	}
	return attention.Intensities(s.matrix, q, mode)
}

// All returns the intensities of every query row.
func (s *Session) All(mode Mode) [][]float64 {
	out := make([][]float64, s.matrix.Rows)
	for q := range out {
		out[q] = s.Intensities(q, mode)
	}
	return out
}
