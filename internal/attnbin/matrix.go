package attnbin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Matrix is a decoded attention payload. Scores is row-major with
// Scores[q*Cols+k] holding the attention query q paid to key k.
// A Matrix is never mutated after decoding.
type Matrix struct {
	Header
	Tokens []string
	Scores []float32
	// Trailing counts bytes after the last whole float that were ignored.
	Trailing int
}

type DecodeOptions struct {
	// Strict rejects score blocks whose size is not exactly Rows*Cols*4 bytes.
	Strict bool
}

func ReadMatrix(path string) (Matrix, error) {
	return ReadMatrixWithOptions(path, DecodeOptions{})
}

func ReadMatrixWithOptions(path string, opts DecodeOptions) (Matrix, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Matrix{}, err
	}
	return DecodeWithOptions(buf, opts)
}

// DecodeMatrix drains r and decodes the result. Decoding never streams.
func DecodeMatrix(r io.Reader) (Matrix, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Matrix{}, fmt.Errorf("read attention data: %w", err)
	}
	return Decode(buf)
}

// Decode is lenient about the score block: every whole float after the
// token table is kept even when the count disagrees with Rows*Cols, and a
// trailing partial float is dropped. Use DecodeStrict to reject that.
func Decode(buf []byte) (Matrix, error) {
	return DecodeWithOptions(buf, DecodeOptions{})
}

func DecodeStrict(buf []byte) (Matrix, error) {
	return DecodeWithOptions(buf, DecodeOptions{Strict: true})
}

func DecodeWithOptions(buf []byte, opts DecodeOptions) (Matrix, error) {
	h, err := DecodeHeader(bytes.NewReader(buf))
	if err != nil {
		return Matrix{}, err
	}
	off := HeaderSize

	// Each record needs at least its 4-byte prefix, which bounds the allocation.
	capHint := uint64(h.NumTokens)
	if maxRecords := uint64(len(buf)-off) / 4; capHint > maxRecords {
		capHint = maxRecords
	}
	m := Matrix{
		Header: h,
		Tokens: make([]string, 0, capHint),
	}

	for i := uint32(0); i < h.NumTokens; i++ {
		tok, n, err := readToken(buf[off:])
		if err != nil {
			return Matrix{}, fmt.Errorf("read token[%d]: %w", i, err)
		}
		m.Tokens = append(m.Tokens, tok)
		off += n
	}

	block := buf[off:]
	count := len(block) / 4
	m.Trailing = len(block) % 4
	if opts.Strict && (uint64(count) != h.Expected() || m.Trailing != 0) {
		return Matrix{}, fmt.Errorf("%w: rows=%d cols=%d want %d floats, have %d bytes",
			ErrShapeMismatch, h.Rows, h.Cols, h.Expected(), len(block))
	}

	m.Scores = make([]float32, count)
	if count == 0 {
		return m, nil
	}
	if err := binary.Read(bytes.NewReader(block[:count*4]), binary.LittleEndian, m.Scores); err != nil {
		return Matrix{}, fmt.Errorf("read scores: %w", err)
	}
	return m, nil
}

// readToken returns the token text and the number of bytes it occupied.
func readToken(b []byte) (string, int, error) {
	if len(b) < 4 {
		return "", 0, malformed("read token length", io.ErrUnexpectedEOF)
	}
	n := binary.LittleEndian.Uint32(b)
	if uint64(n) > uint64(len(b)-4) {
		return "", 0, fmt.Errorf("%w: token length %d exceeds %d remaining bytes", ErrMalformedInput, n, len(b)-4)
	}
	end := 4 + int(n)
	return decodeText(b[4:end]), end, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText mirrors a browser TextDecoder: leading BOM dropped, invalid
// sequences replaced with U+FFFD.
func decodeText(b []byte) string {
	if utf8.Valid(b) && !bytes.HasPrefix(b, utf8BOM) {
		return string(b)
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("\uFFFD")))
	}
	return string(out)
}

// ShapeMismatch reports whether the score block disagreed with the header.
func (m Matrix) ShapeMismatch() bool {
	return uint64(len(m.Scores)) != m.Expected() || m.Trailing != 0
}

// Len is the number of scores actually present, which may differ from
// Rows*Cols.
func (m Matrix) Len() int {
	return len(m.Scores)
}

// Shape returns the declared dimensions.
func (m Matrix) Shape() (rows, cols int) {
	return int(m.Rows), int(m.Cols)
}

// At returns the score at (q, k). Positions past the end of a short score
// block, or outside the declared shape, read as 0.
func (m Matrix) At(q, k int) float32 {
	if q < 0 || k < 0 || uint64(q) >= uint64(m.Rows) || uint64(k) >= uint64(m.Cols) {
		return 0
	}
	idx := uint64(q)*uint64(m.Cols) + uint64(k)
	if idx >= uint64(len(m.Scores)) {
		return 0
	}
	return m.Scores[idx]
}

// Row copies the scores of query q, padded with zeros to Cols.
func (m Matrix) Row(q int) []float32 {
	out := make([]float32, m.Cols)
	for k := range out {
		out[k] = m.At(q, k)
	}
	return out
}

// Bits returns the raw IEEE-754 bits of every score, for exact comparisons.
func (m Matrix) Bits() []uint32 {
	out := make([]uint32, len(m.Scores))
	for i, v := range m.Scores {
		out[i] = math.Float32bits(v)
	}
	return out
}
