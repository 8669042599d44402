package assembler

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mpux/64x0/arch"
)

// Memory mnemonics allowed to carry no register at all; their operand can be
// a bare address or label. sta is deliberately absent: it needs the register
// holding the value to store.
var zeroRegisterOK = map[string]bool{
	"ldw": true,
	"lda": true,
	"stw": true,
}

// EncodeLine encodes one validated, non-directive line into the byte stream:
// the instruction's three fixed bytes, then register indices, immediates,
// origin-label addresses or relocation tokens depending on the addressing
// class. Every error it returns is fatal for the current file.
func (s *Session) EncodeLine(line string) error {
	op, ok := arch.Find(line)
	if !ok {
		// The validator already reported this line.
		return nil
	}

	s.bytes = append(s.bytes, op.Opcode, op.Funct3, op.Funct7)

	rest := strings.TrimLeft(line, " \t")
	rest = rest[len(op.Name):]

	if op.Funct7 == arch.ClassRegToReg || op.Funct7 == arch.ClassImmediate {
		frags := splitOperands(rest)

		var found int
		var others []string
		for _, frag := range frags {
			if frag == "" {
				continue
			}
			idx, isReg, err := s.parseRegister(frag)
			if err != nil {
				return err
			}
			if !isReg {
				others = append(others, strings.ReplaceAll(frag, " ", ""))
				continue
			}
			s.bytes = append(s.bytes, idx)
			found++
			log.Debug("register found", "register", frag, "count", found)
		}

		if op.Name == "pop" && found > 0 {
			return s.errf(KindOperands, "invalid combination for opcode 'pop', it expects nothing, line: %s", line)
		}
		if op.Funct7 == arch.ClassRegToReg && found == 1 {
			return s.errf(KindRegister, "unrecognized register found, each register starts with 'r', line: %s", line)
		}
		if found < 1 && op.Name != "pop" && !zeroRegisterOK[op.Name] {
			return s.errf(KindOperands, "invalid combination of opcode and registers, line: %s", line)
		}
		if found == 1 && (op.Name == "add" || op.Name == "dec") {
			return s.errf(KindOperands, "invalid combination of opcode and registers, line: %s", line)
		}

		if op.IsMemory() {
			// One non-register fragment is the memory operand; a second
			// one means the line never made sense.
			if len(others) > 1 {
				return s.errf(KindOperands, "invalid combination of opcode and operands, here -> %s", others[1])
			}
			if len(others) == 1 {
				if err := s.encodeMemoryOperand(op, others[0]); err != nil {
					return err
				}
			}
		}
	}

	// The origin cursor advances once per instruction regardless of the
	// encoded byte length.
	s.origin++
	return nil
}

// encodeMemoryOperand resolves the address part of a load or store: a local
// origin label, a numeric literal, or an external label left for the linker
// as a relocation token.
func (s *Session) encodeMemoryOperand(op arch.Opcode, operand string) error {
	if operand == "" {
		return s.errf(KindLabel, "label is empty, can't jump on it")
	}

	if addr, ok := s.lookupOrigin(operand); ok {
		log.Debug("replaced label with origin", "label", operand, "address", addr)
		s.writeWord(addr)
		return nil
	}

	if isDigit(operand[0]) {
		ok, err := s.WriteNumber(0, operand)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	if mangled, ok := s.imported[operand]; ok {
		if op.IsStore() {
			return s.errf(KindImport, "import is not allowed on a '%s' operation, here -> %s", op.Name, operand)
		}
		s.writeReloc(strconv.Itoa(len(mangled)) + undefinedSymbolMark + mangled)
		return nil
	}

	s.writeReloc(strconv.Itoa(len(operand)) + relocSymbolMark + operand)
	return nil
}

// writeReloc embeds a NUL-terminated relocation token in the byte stream.
// Backslashes are escape markers and are dropped, never emitted.
func (s *Session) writeReloc(token string) {
	for i := 0; i < len(token); i++ {
		if token[i] == '\\' {
			continue
		}
		s.bytes = append(s.bytes, token[i])
	}
	s.bytes = append(s.bytes, 0)
	log.Debug("embedded relocation token", "token", token)
}

// parseRegister recognizes a register fragment: the register prefix followed
// by one or two digits. Three-digit indices don't exist on the primary 64x0
// and indices past the register limit are rejected outright.
func (s *Session) parseRegister(frag string) (byte, bool, error) {
	if len(frag) < 2 || frag[0] != arch.RegisterPrefix || !isDigit(frag[1]) {
		return 0, false, nil
	}
	digits := frag[1:]
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, false, nil
		}
	}

	if len(digits) > 2 && s.opts.Arch == arch.Arch64000 {
		return 0, false, s.errf(KindRegister,
			"invalid register index, r%s, the 64x0 accepts registers from r0 to r%d", digits, arch.RegisterLimit)
	}

	idx, err := strconv.Atoi(digits)
	if err != nil || idx > arch.RegisterLimit {
		return 0, false, s.errf(KindRegister, "invalid register index, r%s", digits)
	}
	return byte(idx), true, nil
}

// splitOperands splits the operand part of a line by commas, ignoring commas
// inside parentheses, and trims each fragment.
func splitOperands(s string) []string {
	var result []string
	parenLevel := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			parenLevel++
		case ')':
			parenLevel--
		case ',':
			if parenLevel == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
