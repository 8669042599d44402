package assembler

import (
	"strings"

	"github.com/mpux/64x0/arch"
)

// Control-flow mnemonics that may glue their operand to the mnemonic, so the
// missing-space check does not apply to them.
var noSpacing = map[string]bool{
	"jlr": true,
	"jrl": true,
	"int": true,
}

// allowedRune reports whether c may appear in a source line once comments
// are stripped.
func allowedRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case ' ', '\t', ',', '(', ')', '"', '\'', '[', ']', '+', '_', ':', '@', '.':
		return true
	}
	return false
}

func validChars(line string) bool {
	for _, c := range line {
		if !allowedRune(c) {
			return false
		}
	}
	return true
}

// stripComment removes a trailing '#' or ';' comment.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return line
}

func isDirective(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")
}

// CheckLine validates one raw source line before encoding. Each call advances
// the session's line counter. All failures are counted syntax errors; the
// caller decides when the accumulated count becomes fatal.
func (s *Session) CheckLine(line string) error {
	s.line++

	// Blank, comment-carrying and directive lines only get the character
	// set check once the comment suffix is gone.
	if line == "" || isDirective(line) || strings.ContainsAny(line, "#;") {
		stripped := stripComment(line)
		if !validChars(stripped) {
			return s.errf(KindSyntax, "line contains non alphanumeric characters, here -> %s", stripped)
		}
		return nil
	}

	if !validChars(line) {
		return s.errf(KindSyntax, "line contains non alphanumeric characters, here -> %s", line)
	}

	// A comma with nothing but whitespace after it means the instruction
	// lost its last operand.
	if i := strings.LastIndexByte(line, ','); i >= 0 {
		if strings.TrimSpace(line[i+1:]) == "" {
			return s.errf(KindSyntax, "instruction not complete, here -> %s", line)
		}
	}

	op, ok := arch.Find(line)
	if !ok {
		return s.errf(KindSyntax, "unrecognized instruction and operands: %s", line)
	}
	if op.Funct7 == arch.ClassNoArgs {
		return nil
	}

	// Memory ops can't stand alone; other mnemonics with missing operands
	// are caught by the encoder's operand-count policy.
	if op.IsMemory() && strings.TrimSpace(line) == op.Name {
		return s.errf(KindSyntax, "malformed %s instruction, here -> %s", op.Name, line)
	}

	if !noSpacing[op.Name] {
		rest := strings.TrimLeft(line, " \t")[len(op.Name):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			return s.errf(KindSyntax, "missing space between %s and operands, here -> %s", op.Name, line)
		}
	}
	return nil
}
