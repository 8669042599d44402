package ae

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNoRecords is returned when an object write is requested without a
// single exported or imported section.
var ErrNoRecords = errors.New("ae: at least one record is needed to write an object file")

// Writer serializes one assembled unit to the AE format.
type Writer struct {
	Arch    byte
	SubArch byte
	// Flat skips the header and tables and emits only the raw code bytes.
	Flat bool
}

// Write emits the object file: stub header, record table, undefined-symbol
// records, then the code blob. Once the table end is known it seeks back and
// rewrites the header with the real start-of-code offset and code size.
func (w *Writer) Write(out io.WriteSeeker, records []Record, undefined []string, code []byte) error {
	if w.Flat {
		_, err := out.Write(code)
		return err
	}
	if len(records) == 0 {
		return ErrNoRecords
	}

	start, err := out.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	hdr := Header{
		Magic:   [MagLen]byte{Mag0, Mag1},
		Arch:    w.Arch,
		SubArch: w.SubArch,
		Count:   uint64(len(records) + len(undefined)),
		Size:    HeaderSize,
	}
	fillPad(hdr.Pad[:])
	if err := binary.Write(out, binary.LittleEndian, &hdr); err != nil {
		return err
	}

	// The table owns the records from here; the final record always covers
	// the whole byte stream.
	recs := append([]Record(nil), records...)
	recs[len(recs)-1].Size = uint64(len(code))

	var offset uint64
	for i := range recs {
		recs[i].Flags |= RelocationAtRuntime
		recs[i].Offset = offset
		offset++
		log.Debug("wrote record", "name", recs[i].NameString(), "kind", recs[i].Kind, "size", recs[i].Size)
		if err := binary.Write(out, binary.LittleEndian, &recs[i]); err != nil {
			return err
		}
	}

	// Undefined symbols get their own offset range after the sections.
	offset++
	for _, sym := range undefined {
		var rec Record
		rec.SetName(sym)
		rec.Kind = InvalidOpcode
		rec.Size = uint64(len(sym))
		rec.Offset = offset
		offset++
		fillPad(rec.Pad[:])
		log.Debug("wrote undefined symbol", "name", sym)
		if err := binary.Write(out, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}

	end, err := out.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := out.Seek(start, io.SeekStart); err != nil {
		return err
	}
	hdr.StartCode = uint64(end)
	hdr.CodeSize = uint64(len(code))
	if err := binary.Write(out, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	if _, err := out.Seek(end, io.SeekStart); err != nil {
		return err
	}

	if _, err := out.Write(code); err != nil {
		return fmt.Errorf("ae: writing code bytes: %w", err)
	}
	return nil
}

func fillPad(pad []byte) {
	for i := range pad {
		pad[i] = InvalidOpcode
	}
}
