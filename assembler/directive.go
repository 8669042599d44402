package assembler

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mpux/64x0/ae"
)

var sectionSuffixes = []struct {
	text string
	kind uint64
}{
	{".text", ae.KindCode},
	{".data", ae.KindData},
	{".page_zero", ae.KindZero},
}

// classify updates the running section kind from the directive symbol. The
// kind is sticky: a name without a section suffix keeps the previous kind.
// __start is always code so the linker can find the entry stub.
func (s *Session) classify(name string) {
	for _, sec := range sectionSuffixes {
		if strings.Contains(name, sec.text) {
			s.currentKind = sec.kind
			break
		}
	}
	if name == "__start" {
		s.currentKind = ae.KindCode
	}
}

// cleanLabel strips the section suffix and all spaces, leaving the bare
// label registered in the origin table.
func cleanLabel(name string) string {
	for _, sec := range sectionSuffixes {
		name = strings.Replace(name, sec.text, "", 1)
	}
	return strings.ReplaceAll(name, " ", "")
}

// closeRecord back-fills the size of the record currently open. The size is
// the byte-stream length at close time, matching the writer's final patch.
func (s *Session) closeRecord() {
	if len(s.records) > 0 {
		s.records[len(s.records)-1].Size = uint64(len(s.bytes))
	}
}

func (s *Session) openRecord(name string) {
	var rec ae.Record
	rec.SetName(name)
	rec.Kind = s.currentKind
	for i := range rec.Pad {
		rec.Pad[i] = ae.InvalidOpcode
	}
	s.closeRecord()
	s.records = append(s.records, rec)
}

// readDirective processes an import or export line. The caller has already
// confirmed the directive prefix.
func (s *Session) readDirective(line string) error {
	if name, ok := strings.CutPrefix(line, "import "); ok {
		return s.readImport(directiveName(name))
	}
	if name, ok := strings.CutPrefix(line, "export "); ok {
		return s.readExport(directiveName(name))
	}
	return nil
}

func directiveName(name string) string {
	return strings.TrimRight(stripComment(name), " \t")
}

// readImport queues an external symbol for the linker: the record name gets
// the length-prefixed ":ld:" token, the mangled name joins the
// undefined-symbol list, and loads of the cleaned label later emit
// relocation tokens instead of addresses.
func (s *Session) readImport(name string) error {
	if s.opts.Binary {
		return s.errf(KindDirective, "invalid import directive in flat binary mode")
	}

	mangled := strings.Map(func(c rune) rune {
		if c == ' ' || c == ',' {
			return '$'
		}
		return c
	}, name)

	s.classify(name)
	s.openRecord(strconv.Itoa(len(mangled)) + undefinedSymbolMark + mangled)
	s.undefined = append(s.undefined, mangled)
	s.imported[cleanLabel(name)] = mangled
	log.Debug("queued undefined symbol", "name", mangled)
	return nil
}

// readExport opens a section record and registers the cleaned label at the
// next sequential origin, used later for local label substitution.
func (s *Session) readExport(name string) error {
	if s.opts.Binary {
		return s.errf(KindDirective, "invalid export directive in flat binary mode")
	}

	clean := cleanLabel(name)
	mangled := strings.ReplaceAll(name, " ", "$")

	s.classify(name)
	s.origins = append(s.origins, originLabel{name: clean, addr: s.origin})
	s.origin++
	s.openRecord(mangled)
	log.Debug("registered origin label", "label", clean, "origin", s.origin-1)
	return nil
}

// lookupOrigin finds an exported label's origin address. First match wins;
// lookups are case-sensitive.
func (s *Session) lookupOrigin(label string) (uint64, bool) {
	for _, ol := range s.origins {
		if ol.name == label {
			return ol.addr, true
		}
	}
	return 0, false
}
