package attnbin

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeHeader(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	buf.Write([]byte{0x03, 0x00, 0x00, 0x00})
	buf.Write([]byte{0x02, 0x00, 0x00, 0x00})
	buf.Write([]byte{0x05, 0x00, 0x00, 0x00})

	h, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if h.NumTokens != 3 {
		t.Fatalf("NumTokens = %d, want 3", h.NumTokens)
	}
	if h.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", h.Rows)
	}
	if h.Cols != 5 {
		t.Fatalf("Cols = %d, want 5", h.Cols)
	}
	if h.Expected() != 10 {
		t.Fatalf("Expected() = %d, want 10", h.Expected())
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	for _, n := range []int{0, 3, 4, 8, 11} {
		_, err := DecodeHeader(bytes.NewReader(make([]byte, n)))
		if err == nil {
			t.Fatalf("len=%d: expected error", n)
		}
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("len=%d: err = %v, want %v", n, err, ErrMalformedInput)
		}
	}
}
