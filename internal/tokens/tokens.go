// Package tokens formats token text for display.
package tokens

import "strings"

const (
	// WordBoundary is the SentencePiece marker for a preceding space.
	WordBoundary = "▁"
	NoBreakSpace = "\u00a0"
	DefaultBOS   = "<s>"
)

// Displayer renders token text. A leading word boundary becomes a
// non-breaking space so the gap survives layout, and the start of
// sequence token renders as blank.
type Displayer struct {
	BOS string
}

func (d Displayer) Display(tok string) string {
	if d.BOS != "" && tok == d.BOS {
		return ""
	}
	if strings.HasPrefix(tok, WordBoundary) {
		return NoBreakSpace + tok[len(WordBoundary):]
	}
	return tok
}

func (d Displayer) DisplayAll(toks []string) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = d.Display(tok)
	}
	return out
}

// Text reassembles the source text: the BOS token is dropped, every word
// boundary becomes a space and the single leading space SentencePiece
// adds is removed.
func (d Displayer) Text(toks []string) string {
	var b strings.Builder
	for _, tok := range toks {
		if d.BOS != "" && tok == d.BOS {
			continue
		}
		b.WriteString(strings.ReplaceAll(tok, WordBoundary, " "))
	}
	return strings.TrimPrefix(b.String(), " ")
}

func Display(tok string) string {
	return Displayer{BOS: DefaultBOS}.Display(tok)
}

func DisplayAll(toks []string) []string {
	return Displayer{BOS: DefaultBOS}.DisplayAll(toks)
}
