package attnbin

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the fixed prefix every attention file starts with.
const HeaderSize = 12

var (
	ErrMalformedInput = errors.New("malformed attention input")
	ErrShapeMismatch  = errors.New("score block does not match declared shape")
)

type Header struct {
	NumTokens uint32
	Rows      uint32
	Cols      uint32
}

// Expected is the number of float32 values the header promises.
func (h Header) Expected() uint64 {
	return uint64(h.Rows) * uint64(h.Cols)
}

func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	return DecodeHeader(f)
}

func DecodeHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h.NumTokens); err != nil {
		return Header{}, malformed("read token count", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Rows); err != nil {
		return Header{}, malformed("read rows", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Cols); err != nil {
		return Header{}, malformed("read cols", err)
	}
	return h, nil
}

func malformed(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedInput, what, err)
}
