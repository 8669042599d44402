// Package assembler turns 64x0 assembly source into a relocatable AE object:
// per-line syntax validation, import/export directive processing,
// instruction-to-bytecode encoding and object serialization.
package assembler

import (
	"io"

	"github.com/mpux/64x0/ae"
	"github.com/mpux/64x0/arch"
)

// DefaultErrorLimit is the number of counted syntax errors tolerated before
// Assemble gives up on the whole run.
const DefaultErrorLimit = 10

// Relocation token markers embedded in the byte stream for the linker.
const (
	undefinedSymbolMark = ":ld:"
	relocSymbolMark     = ":mld:"
)

// Options configure a Session. The zero value selects the primary 64x0
// architecture, object output and the default error limit.
type Options struct {
	// Arch and SubArch are stored in the object header.
	Arch    byte
	SubArch byte
	// Binary selects flat-binary output: no header, no tables, and no
	// import/export directives allowed.
	Binary bool
	// ErrorLimit caps the counted syntax errors before Assemble aborts.
	ErrorLimit int
	// File names the source in diagnostics.
	File string
}

type originLabel struct {
	name string
	addr uint64
}

// Session holds all mutable state for assembling one source file: the
// growing byte stream, the record table, the origin label table and the
// undefined-symbol queue. A Session is not safe for concurrent use; run one
// per input file.
type Session struct {
	opts Options

	bytes     []byte
	records   []ae.Record
	undefined []string
	origins   []originLabel
	imported  map[string]string

	currentKind uint64
	origin      uint64
	line        int
}

// New creates a Session ready to assemble one file.
func New(opts Options) *Session {
	if opts.Arch == 0 {
		opts.Arch = arch.Arch64000
	}
	if opts.ErrorLimit <= 0 {
		opts.ErrorLimit = DefaultErrorLimit
	}
	return &Session{
		opts:        opts,
		imported:    make(map[string]string),
		currentKind: ae.KindCode,
		origin:      arch.OriginBase,
	}
}

// Bytes returns the code stream encoded so far.
func (s *Session) Bytes() []byte { return s.bytes }

// Records returns the section records opened so far, in directive order.
func (s *Session) Records() []ae.Record { return s.records }

// UndefinedSymbols returns the mangled names queued for the linker.
func (s *Session) UndefinedSymbols() []string { return s.undefined }

// WriteObject serializes the assembled state to out. In flat-binary mode
// only the raw byte stream is written.
func (s *Session) WriteObject(out io.WriteSeeker) error {
	w := ae.Writer{
		Arch:    s.opts.Arch,
		SubArch: s.opts.SubArch,
		Flat:    s.opts.Binary,
	}
	return w.Write(out, s.records, s.undefined, s.bytes)
}
