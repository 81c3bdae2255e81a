// Package render draws attention intensities on a terminal.
//
// It is presentation only: every intensity it shows is computed by the
// attention package and passed in.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"attnviz-go/internal/tokens"
)

const DefaultWidth = 80

type Renderer struct {
	Out      io.Writer
	Color    RGB
	UseColor bool
	// Width is the maximum line width in columns; 0 means DefaultWidth.
	Width   int
	Display tokens.Displayer
}

func New(out io.Writer) *Renderer {
	return &Renderer{
		Out:      out,
		Color:    Highlight,
		UseColor: true,
		Display:  tokens.Displayer{BOS: tokens.DefaultBOS},
	}
}

func (r *Renderer) width() int {
	if r.Width <= 0 {
		return DefaultWidth
	}
	return r.Width
}

// cell is the visible text of a token: padded by one column each side,
// with a marker for BOS tokens that would otherwise be invisible.
func (r *Renderer) cell(tok string) string {
	text := r.Display.Display(tok)
	if text == "" {
		text = "∅"
	}
	return " " + text + " "
}

// Line writes the tokens on wrapped lines, each shaded by its intensity.
// hovered marks the query token; pass -1 for none.
func (r *Renderer) Line(toks []string, intensities []float64, hovered int) error {
	var b strings.Builder
	col := 0
	limit := r.width()
	for i, tok := range toks {
		text := r.cell(tok)
		if i == hovered && !r.UseColor {
			text = "[" + strings.TrimSpace(text) + "]"
		}
		w := runewidth.StringWidth(text)
		if !r.UseColor {
			w++
		}
		if col > 0 && col+w > limit {
			b.WriteByte('\n')
			col = 0
		}
		alpha := 0.0
		if i < len(intensities) {
			alpha = intensities[i]
		}
		if r.UseColor {
			b.WriteString(ansiBG(Blend(r.Color, alpha)))
			b.WriteString(ansiBlackFG)
			if i == hovered {
				b.WriteString(ansiUnderline)
			}
			b.WriteString(text)
			b.WriteString(ansiReset)
		} else {
			b.WriteString(text)
			b.WriteRune(shade(alpha))
		}
		col += w
	}
	b.WriteByte('\n')
	_, err := io.WriteString(r.Out, b.String())
	return err
}

// Grid writes one row per query: the query token label followed by a two
// column swatch per key.
func (r *Renderer) Grid(toks []string, rows [][]float64) error {
	labels := make([]string, len(rows))
	labelWidth := 0
	for q := range rows {
		label := strconv.Itoa(q)
		if q < len(toks) {
			label += " " + strings.TrimSpace(r.cell(toks[q]))
		}
		label = runewidth.Truncate(label, 16, "…")
		labels[q] = label
		if w := runewidth.StringWidth(label); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for q, row := range rows {
		b.WriteString(runewidth.FillRight(labels[q], labelWidth))
		b.WriteString(" │")
		for _, v := range row {
			if r.UseColor {
				b.WriteString(ansiBG(Blend(r.Color, v)))
				b.WriteString("  ")
				b.WriteString(ansiReset)
			} else {
				s := string(shade(v))
				b.WriteString(s + s)
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.Out, b.String())
	return err
}

// Table lists every key of one query with its raw score and intensity.
func (r *Renderer) Table(toks []string, raw []float32, intensities []float64, query int) {
	table := tablewriter.NewWriter(r.Out)
	table.SetHeader([]string{"K", "TOKEN", "RAW", "INTENSITY", "CSS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("  ")
	table.SetAutoWrapText(false)

	for k, v := range intensities {
		tok := ""
		if k < len(toks) {
			tok = strings.TrimSpace(r.cell(toks[k]))
		}
		if k > query {
			tok += " (masked)"
		}
		rawText := ""
		if k < len(raw) {
			rawText = strconv.FormatFloat(float64(raw[k]), 'g', 6, 32)
		}
		table.Append([]string{
			strconv.Itoa(k),
			tok,
			rawText,
			fmt.Sprintf("%.4f", v),
			CSS(r.Color, v),
		})
	}
	table.Render()
}
