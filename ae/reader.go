package ae

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrBadMagic is returned when the input does not start with the AE magic.
var ErrBadMagic = errors.New("ae: bad magic")

// Object is a fully decoded AE image. Records holds sections and undefined
// symbols alike; undefined symbols have Kind == InvalidOpcode.
type Object struct {
	Header  Header
	Records []Record
	Code    []byte
}

// UndefinedSymbols returns the names of the undefined-symbol records, in
// table order.
func (o *Object) UndefinedSymbols() []string {
	var syms []string
	for i := range o.Records {
		if o.Records[i].Kind == InvalidOpcode {
			syms = append(syms, o.Records[i].NameString())
		}
	}
	return syms
}

// Read decodes a complete AE object from r.
func Read(r io.Reader) (*Object, error) {
	var obj Object
	if err := binary.Read(r, binary.LittleEndian, &obj.Header); err != nil {
		return nil, fmt.Errorf("ae: reading header: %w", err)
	}
	if obj.Header.Magic[0] != Mag0 || obj.Header.Magic[1] != Mag1 {
		return nil, ErrBadMagic
	}

	obj.Records = make([]Record, obj.Header.Count)
	for i := range obj.Records {
		if err := binary.Read(r, binary.LittleEndian, &obj.Records[i]); err != nil {
			return nil, fmt.Errorf("ae: reading record %d: %w", i, err)
		}
	}

	obj.Code = make([]byte, obj.Header.CodeSize)
	if _, err := io.ReadFull(r, obj.Code); err != nil {
		return nil, fmt.Errorf("ae: reading code: %w", err)
	}
	return &obj, nil
}
