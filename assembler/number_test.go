package assembler_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mpux/64x0/assembler"
)

// writeAndDecode parses text as a numeric literal and returns the encoded
// value from the byte stream.
func writeAndDecode(t *testing.T, name, text string) uint64 {
	t.Helper()
	s := newSession(t)
	ok, err := s.WriteNumber(0, text)
	if err != nil {
		t.Fatalf("[%s] unexpected error: %v", name, err)
	}
	if !ok {
		t.Fatalf("[%s] expected %q to parse as a number", name, text)
	}
	b := s.Bytes()
	if len(b) != 8 {
		t.Fatalf("[%s] expected 8 bytes, got %d", name, len(b))
	}
	return binary.LittleEndian.Uint64(b)
}

func TestWriteNumberBases(t *testing.T) {
	tests := []struct {
		name, text string
		want       uint64
	}{
		{"Hex", "0x2A", 42},
		{"Binary", "0b101", 5},
		{"Decimal", "42", 42},
		{"DecimalZeroPrefixless", "7", 7},
		// The 64x0 "octal" base is 7, not 8.
		{"BaseSeven", "0o10", 7},
		{"BaseSevenDigits", "0o66", 48},
	}
	for _, tc := range tests {
		if got := writeAndDecode(t, tc.name, tc.text); got != tc.want {
			t.Errorf("[%s] %q: expected %d, got %d", tc.name, tc.text, tc.want, got)
		}
	}
}

func TestWriteNumberNotANumber(t *testing.T) {
	s := newSession(t)
	ok, err := s.WriteNumber(0, "label")
	if err != nil || ok {
		t.Fatalf("expected (false, nil) for a non-digit start, got (%v, %v)", ok, err)
	}
	if len(s.Bytes()) != 0 {
		t.Fatalf("no bytes should be emitted for a non-number")
	}
}

func TestWriteNumberMalformed(t *testing.T) {
	for _, text := range []string{"0xZZ", "0b12", "0o9", "1q2"} {
		s := newSession(t)
		_, err := s.WriteNumber(0, text)
		if err == nil {
			t.Errorf("expected malformed-number error for %q", text)
			continue
		}
		var asmErr *assembler.Error
		if !errors.As(err, &asmErr) || asmErr.Kind != assembler.KindNumber {
			t.Errorf("expected KindNumber for %q, got %v", text, err)
		}
		if !assembler.IsFatal(err) {
			t.Errorf("malformed numbers must be fatal, got %v", err)
		}
	}
}
