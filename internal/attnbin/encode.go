package attnbin

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// New builds a Matrix with a header derived from its arguments.
func New(tokens []string, rows, cols uint32, scores []float32) Matrix {
	return Matrix{
		Header: Header{
			NumTokens: uint32(len(tokens)),
			Rows:      rows,
			Cols:      cols,
		},
		Tokens: tokens,
		Scores: scores,
	}
}

// Encode writes m in the on-disk layout. The token count is taken from
// len(m.Tokens); scores are written verbatim, so a short or long block is
// reproduced as-is.
func Encode(w io.Writer, m Matrix) error {
	if uint64(len(m.Tokens)) > math.MaxUint32 {
		return fmt.Errorf("too many tokens: %d", len(m.Tokens))
	}
	hdr := [3]uint32{uint32(len(m.Tokens)), m.Rows, m.Cols}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, tok := range m.Tokens {
		if uint64(len(tok)) > math.MaxUint32 {
			return fmt.Errorf("token[%d] too large: %d bytes", i, len(tok))
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(tok))); err != nil {
			return fmt.Errorf("write token[%d] length: %w", i, err)
		}
		if _, err := io.WriteString(w, tok); err != nil {
			return fmt.Errorf("write token[%d]: %w", i, err)
		}
	}
	if len(m.Scores) == 0 {
		return nil
	}
	if err := binary.Write(w, binary.LittleEndian, m.Scores); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return nil
}

func EncodeBytes(m Matrix) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteMatrix(path string, m Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, m); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
