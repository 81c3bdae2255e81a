package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSS(t *testing.T) {
	assert.Equal(t, "rgba(100, 214, 92, 0.25)", CSS(Highlight, 0.25))
	assert.Equal(t, "rgba(100, 214, 92, 0)", CSS(Highlight, -3))
	assert.Equal(t, "rgba(100, 214, 92, 1)", CSS(Highlight, 7))
}

func TestBlend(t *testing.T) {
	assert.Equal(t, RGB{255, 255, 255}, Blend(Highlight, 0))
	assert.Equal(t, Highlight, Blend(Highlight, 1))
	assert.Equal(t, RGB{178, 235, 174}, Blend(Highlight, 0.5))
}

func TestShade(t *testing.T) {
	assert.Equal(t, ' ', shade(0))
	assert.Equal(t, '█', shade(1))
	assert.Equal(t, '▒', shade(0.5))
}

func TestLinePlain(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.UseColor = false

	err := r.Line([]string{"<s>", "▁The", "▁cat"}, []float64{1, 0, 0.5}, 2)
	require.NoError(t, err)
	assert.Equal(t, " ∅ █ \u00a0The  [cat]▒\n", buf.String())
}

func TestLineColor(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	require.NoError(t, r.Line([]string{"A", "B"}, []float64{0, 1}, 0))
	out := buf.String()
	assert.Contains(t, out, "\x1b[48;2;255;255;255m")
	assert.Contains(t, out, "\x1b[48;2;100;214;92m")
	assert.Contains(t, out, ansiUnderline)
	assert.True(t, strings.HasSuffix(out, ansiReset+"\n"))
}

func TestLineWraps(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.UseColor = false
	r.Width = 10

	toks := []string{"aaaa", "bbbb", "cccc"}
	require.NoError(t, r.Line(toks, nil, -1))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestLineWideRunes(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.UseColor = false
	r.Width = 12

	// Each cell is " 猫猫 " plus a shade glyph: 7 columns, so two never fit.
	require.NoError(t, r.Line([]string{"猫猫", "猫猫"}, []float64{0, 0}, -1))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestGrid(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.UseColor = false

	rows := [][]float64{
		{1, 0},
		{0.5, 1},
	}
	require.NoError(t, r.Grid([]string{"<s>", "▁猫"}, rows))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0 ∅  │██  ", lines[0])
	assert.Equal(t, "1 猫 │▒▒██", lines[1])
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Table([]string{"A", "B"}, []float32{0.2, 0.8}, []float64{0, 1}, 0)
	out := buf.String()
	assert.Contains(t, out, "TOKEN")
	assert.Contains(t, out, "B (masked)")
	assert.Contains(t, out, "0.8")
	assert.Contains(t, out, "1.0000")
	assert.Contains(t, out, "rgba(100, 214, 92, 1)")
}
