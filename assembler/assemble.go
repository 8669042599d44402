package assembler

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Assemble reads source lines from r, validating and fully encoding each one
// before the next. Syntax errors are reported and counted against the error
// limit; exceeding it returns ErrTooManyErrors. Any other error is fatal for
// the file and returned as-is. On success the session is ready for
// WriteObject.
func (s *Session) Assemble(r io.Reader) error {
	sc := bufio.NewScanner(r)
	var counted int
	for sc.Scan() {
		line := sc.Text()
		if err := s.CheckLine(line); err != nil {
			log.Error("syntax error", "file", s.opts.File, "line", s.line, "error", err)
			counted++
			if counted > s.opts.ErrorLimit {
				return ErrTooManyErrors
			}
			continue
		}
		if err := s.ProcessLine(line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ProcessLine routes one validated line: directives go to the directive
// processor, everything else that still carries text goes to the encoder.
func (s *Session) ProcessLine(line string) error {
	if isDirective(line) {
		return s.readDirective(line)
	}
	line = strings.TrimSpace(stripComment(line))
	if line == "" {
		return nil
	}
	return s.EncodeLine(line)
}
