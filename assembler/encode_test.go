package assembler_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/mpux/64x0/arch"
	"github.com/mpux/64x0/assembler"
)

// assemble runs a full session over src and returns it with any error.
func assemble(t *testing.T, src string) (*assembler.Session, error) {
	t.Helper()
	s := assembler.New(assembler.Options{File: "test.64x"})
	err := s.Assemble(strings.NewReader(src))
	return s, err
}

// opcodeBytes returns the three fixed bytes of a mnemonic.
func opcodeBytes(t *testing.T, name string) []byte {
	t.Helper()
	op, ok := arch.Find(name)
	if !ok {
		t.Fatalf("unknown mnemonic %q", name)
	}
	return []byte{op.Opcode, op.Funct3, op.Funct7}
}

func wordBytes(v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return buf[:]
}

// expectKind asserts a fatal error of the given kind.
func expectKind(t *testing.T, name string, err error, kind assembler.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("[%s] expected an error", name)
	}
	var asmErr *assembler.Error
	if !errors.As(err, &asmErr) {
		t.Fatalf("[%s] expected *assembler.Error, got %T", name, err)
	}
	if asmErr.Kind != kind {
		t.Errorf("[%s] expected kind %v, got %v (%s)", name, kind, asmErr.Kind, asmErr.Msg)
	}
	if !asmErr.Fatal() {
		t.Errorf("[%s] encoding errors must be fatal", name)
	}
}

func TestEncodeRegisterOperands(t *testing.T) {
	tests := []struct {
		name, src string
		regs      []byte
	}{
		{"AddTwoRegs", "add r1, r2", []byte{1, 2}},
		{"MoveRegs", "mv r0, r20", []byte{0, 20}},
		{"ThreeRegs", "xor r3, r4, r5", []byte{3, 4, 5}},
		{"PushOne", "psh r7", []byte{7}},
	}
	for _, tc := range tests {
		s, err := assemble(t, tc.src)
		if err != nil {
			t.Fatalf("[%s] failed: %v", tc.name, err)
		}
		mnemonic := strings.Fields(tc.src)[0]
		expected := append(opcodeBytes(t, mnemonic), tc.regs...)
		if !bytes.Equal(s.Bytes(), expected) {
			t.Errorf("[%s] expected % X, got % X", tc.name, expected, s.Bytes())
		}
	}
}

func TestEncodeNoArgInstructions(t *testing.T) {
	for _, name := range []string{"nop", "hlt", "jlr", "jrl"} {
		s, err := assemble(t, name)
		if err != nil {
			t.Fatalf("bare %q failed: %v", name, err)
		}
		if !bytes.Equal(s.Bytes(), opcodeBytes(t, name)) {
			t.Errorf("%q: expected just the three opcode bytes, got % X", name, s.Bytes())
		}
	}
}

func TestEncodeRegisterErrors(t *testing.T) {
	tests := []struct {
		name, src string
		kind      assembler.Kind
	}{
		{"AboveLimit", "mv r0, r21", assembler.KindRegister},
		{"ThreeDigits", "mv r0, r100", assembler.KindRegister},
		{"SingleRegToReg", "add r1", assembler.KindRegister},
		{"SingleDec", "dec r1", assembler.KindRegister},
		{"PopWithRegister", "pop r1", assembler.KindOperands},
		{"NoRegisters", "cmp foo, bar", assembler.KindOperands},
		{"StoreNeedsRegister", "sta 0x1000", assembler.KindOperands},
	}
	for _, tc := range tests {
		_, err := assemble(t, tc.src)
		expectKind(t, tc.name, err, tc.kind)
	}
}

func TestEncodePopTakesNothing(t *testing.T) {
	s, err := assemble(t, "pop")
	if err != nil {
		t.Fatalf("bare pop failed: %v", err)
	}
	if !bytes.Equal(s.Bytes(), opcodeBytes(t, "pop")) {
		t.Errorf("expected just the opcode bytes, got % X", s.Bytes())
	}
}

func TestEncodeImmediateOperand(t *testing.T) {
	s, err := assemble(t, "ldw r0, 0x2A")
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	expected := append(opcodeBytes(t, "ldw"), 0)
	expected = append(expected, wordBytes(42)...)
	if !bytes.Equal(s.Bytes(), expected) {
		t.Errorf("expected % X, got % X", expected, s.Bytes())
	}
}

func TestEncodeStoreAddressThenRegister(t *testing.T) {
	s, err := assemble(t, "sta 0x1000, r0")
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	expected := append(opcodeBytes(t, "sta"), 0)
	expected = append(expected, wordBytes(0x1000)...)
	if !bytes.Equal(s.Bytes(), expected) {
		t.Errorf("expected % X, got % X", expected, s.Bytes())
	}
}

func TestEncodeOriginLabelSubstitution(t *testing.T) {
	src := "export .text __start\nlda r0, __start\n"
	s, err := assemble(t, src)
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	expected := append(opcodeBytes(t, "lda"), 0)
	expected = append(expected, wordBytes(arch.OriginBase)...)
	if !bytes.Equal(s.Bytes(), expected) {
		t.Errorf("expected % X, got % X", expected, s.Bytes())
	}
}

func TestEncodeRelocationTokens(t *testing.T) {
	t.Run("LocalUnknownLabel", func(t *testing.T) {
		s, err := assemble(t, "lda r0, somewhere")
		if err != nil {
			t.Fatalf("failed: %v", err)
		}
		expected := append(opcodeBytes(t, "lda"), 0)
		expected = append(expected, []byte("9:mld:somewhere\x00")...)
		if !bytes.Equal(s.Bytes(), expected) {
			t.Errorf("expected % X, got % X", expected, s.Bytes())
		}
	})

	t.Run("ImportedSymbol", func(t *testing.T) {
		src := "import .data memcpy\nldw r0, memcpy\n"
		s, err := assemble(t, src)
		if err != nil {
			t.Fatalf("failed: %v", err)
		}
		expected := append(opcodeBytes(t, "ldw"), 0)
		expected = append(expected, []byte("12:ld:.data$memcpy\x00")...)
		if !bytes.Equal(s.Bytes(), expected) {
			t.Errorf("expected % X, got % X", expected, s.Bytes())
		}
	})
}

func TestEncodeStoreToImportIsFatal(t *testing.T) {
	src := "import .data memcpy\nstw r1, memcpy\n"
	_, err := assemble(t, src)
	expectKind(t, "StoreToImport", err, assembler.KindImport)
}

func TestEncodeRejectsTwoAmbiguousOperands(t *testing.T) {
	_, err := assemble(t, "ldw foo, bar")
	expectKind(t, "TwoSymbols", err, assembler.KindOperands)
}

func TestEncodeMalformedLiteralIsFatal(t *testing.T) {
	_, err := assemble(t, "ldw r0, 0xZZ")
	expectKind(t, "BadHex", err, assembler.KindNumber)
}
