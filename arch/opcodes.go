package arch

import (
	"sort"
	"strings"
)

// Addressing classes, carried in the funct7 field of every encoded
// instruction. They drive how the encoder reads the rest of the line.
const (
	// ClassNoArgs instructions take no operands.
	ClassNoArgs byte = 0x00
	// ClassRegToReg instructions move or combine register operands.
	ClassRegToReg byte = 0x01
	// ClassImmediate instructions take an immediate, address or label.
	ClassImmediate byte = 0x02
)

// Opcode describes one 64x0 instruction: its mnemonic, the fixed opcode
// byte, the sub-function selector and the addressing class.
type Opcode struct {
	Name   string
	Opcode byte
	Funct3 byte
	Funct7 byte
}

// IsMemory reports whether the instruction addresses memory and therefore
// carries a literal, origin label or relocated symbol operand.
func (op Opcode) IsMemory() bool {
	switch op.Name {
	case "ldw", "stw", "lda", "sta":
		return true
	}
	return false
}

// IsStore reports whether the instruction writes to memory. Stores can never
// target an imported symbol; the address has to be resolved first.
func (op Opcode) IsStore() bool {
	return op.Name == "stw" || op.Name == "sta"
}

// Opcodes is the 64x0 instruction set. Mnemonics are unique and matched
// longest-first, so a shorter mnemonic can never shadow a longer one.
var Opcodes = []Opcode{
	{"nop", 0x0f, 0x0, ClassNoArgs},
	{"hlt", 0x0e, 0x0, ClassNoArgs},

	{"add", 0x10, 0x0, ClassRegToReg},
	{"sub", 0x10, 0x1, ClassRegToReg},
	{"mul", 0x10, 0x2, ClassRegToReg},
	{"div", 0x10, 0x3, ClassRegToReg},
	{"inc", 0x11, 0x0, ClassRegToReg},
	{"dec", 0x11, 0x1, ClassRegToReg},
	{"mv", 0x12, 0x0, ClassRegToReg},

	{"and", 0x13, 0x0, ClassRegToReg},
	{"or", 0x13, 0x1, ClassRegToReg},
	{"xor", 0x13, 0x2, ClassRegToReg},
	{"sll", 0x14, 0x0, ClassRegToReg},
	{"srl", 0x14, 0x1, ClassRegToReg},
	{"cmp", 0x15, 0x0, ClassRegToReg},

	{"psh", 0x20, 0x0, ClassImmediate},
	{"pop", 0x20, 0x1, ClassRegToReg},

	{"ldw", 0x30, 0x0, ClassImmediate},
	{"stw", 0x30, 0x1, ClassImmediate},
	{"lda", 0x31, 0x0, ClassImmediate},
	{"sta", 0x31, 0x1, ClassImmediate},

	{"jlr", 0x40, 0x0, ClassNoArgs},
	{"jrl", 0x40, 0x1, ClassNoArgs},
	{"int", 0x41, 0x0, ClassNoArgs},
}

func init() {
	// Longest mnemonic first; ties broken alphabetically so the match
	// order stays deterministic.
	sort.SliceStable(Opcodes, func(i, j int) bool {
		if len(Opcodes[i].Name) != len(Opcodes[j].Name) {
			return len(Opcodes[i].Name) > len(Opcodes[j].Name)
		}
		return Opcodes[i].Name < Opcodes[j].Name
	})
}

// Find looks up the instruction named at the start of line, ignoring leading
// whitespace. The longest matching mnemonic wins.
func Find(line string) (Opcode, bool) {
	line = strings.TrimLeft(line, " \t")
	for _, op := range Opcodes {
		if strings.HasPrefix(line, op.Name) {
			return op, true
		}
	}
	return Opcode{}, false
}
