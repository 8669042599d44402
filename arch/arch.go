// Package arch holds the static 64x0 architecture data consumed by the
// assembler: machine ids, register rules and the opcode descriptor table.
package arch

const (
	// Arch64000 is the primary 64x0 machine id stored in object headers.
	Arch64000 byte = 0x64
	// Arch64xxx identifies the reduced X64000 subset.
	Arch64xxx byte = 0x65
)

const (
	// RegisterPrefix starts every register operand.
	RegisterPrefix = 'r'
	// RegisterLimit is the highest addressable register index (r0..r20).
	RegisterLimit = 20
)

// WordSize is the byte width of encoded immediates and origin addresses.
const WordSize = 8

// OriginBase is the first origin value handed out to exported labels.
const OriginBase uint64 = 0x40000000
