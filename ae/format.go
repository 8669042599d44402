// Package ae implements the AE relocatable object format: a packed header,
// a record table describing exported and imported sections, trailing
// undefined-symbol records for the linker, and the raw code bytes.
//
// All multi-byte fields are little-endian 64-bit values and every structure
// is written without padding between fields, so the on-disk layout
// round-trips exactly.
package ae

import "bytes"

// Header magic bytes.
const (
	Mag0 = 'A'
	Mag1 = 'E'
)

const (
	// MagLen is the length of the header magic.
	MagLen = 2
	// SymbolLen is the fixed, NUL-padded length of a record name.
	SymbolLen = 64
	// PadLen is the size of the trailing pad block in headers and records.
	PadLen = 8
	// InvalidOpcode fills pad blocks and marks undefined-symbol records.
	InvalidOpcode = 0x00
)

// Section kinds carried in a record's Kind field. Zero is reserved for the
// invalid-opcode sentinel.
const (
	KindCode uint64 = 1
	KindData uint64 = 2
	KindZero uint64 = 3
)

// Relocation strategies carried in a record's Flags field. Relocation by
// offset is the default; relocation at runtime is up to the loader.
const (
	RelocationByOffset  uint64 = 0x23f
	RelocationAtRuntime uint64 = 0x34f
)

// HeaderSize and RecordSize are the exact on-disk sizes of the packed
// structures below.
const (
	HeaderSize = MagLen + 1 + 1 + 8 + 1 + 8 + 8 + PadLen
	RecordSize = SymbolLen + 8 + 8 + 8 + 8 + PadLen
)

// Header opens every AE object file. It is written twice: once as a stub,
// then again with StartCode and CodeSize patched after the record table.
type Header struct {
	Magic     [MagLen]byte
	Arch      byte
	SubArch   byte
	Count     uint64
	Size      byte
	StartCode uint64
	CodeSize  uint64
	Pad       [PadLen]byte
}

// Record describes one section (code, data or bss) or one undefined symbol.
type Record struct {
	Name   [SymbolLen]byte
	Kind   uint64
	Size   uint64
	Flags  uint64
	Offset uint64
	Pad    [PadLen]byte
}

// SetName stores s NUL-padded, truncating to SymbolLen if needed.
func (r *Record) SetName(s string) {
	for i := range r.Name {
		r.Name[i] = 0
	}
	copy(r.Name[:], s)
}

// NameString returns the record name without NUL padding.
func (r *Record) NameString() string {
	if i := bytes.IndexByte(r.Name[:], 0); i >= 0 {
		return string(r.Name[:i])
	}
	return string(r.Name[:])
}
