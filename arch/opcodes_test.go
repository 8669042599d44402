package arch_test

import (
	"testing"

	"github.com/mpux/64x0/arch"
)

func TestMnemonicsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, op := range arch.Opcodes {
		if seen[op.Name] {
			t.Errorf("duplicate mnemonic %q", op.Name)
		}
		seen[op.Name] = true
	}
}

func TestFindMatchesLeadingMnemonic(t *testing.T) {
	tests := []struct {
		line, want string
	}{
		{"add r1, r2", "add"},
		{"  \tnop", "nop"},
		{"sta 0x1000, r0", "sta"},
		{"int 0x50", "int"},
		// Glued operands still resolve to the mnemonic.
		{"addr1, r2", "add"},
	}
	for _, tc := range tests {
		op, ok := arch.Find(tc.line)
		if !ok {
			t.Errorf("Find(%q) found nothing", tc.line)
			continue
		}
		if op.Name != tc.want {
			t.Errorf("Find(%q) = %q, expected %q", tc.line, op.Name, tc.want)
		}
	}
	if _, ok := arch.Find("frobnicate"); ok {
		t.Error("Find matched an unknown mnemonic")
	}
}

func TestFindPrefersLongestMnemonic(t *testing.T) {
	// Table order must never let a short mnemonic shadow a longer one.
	for i, op := range arch.Opcodes {
		for _, other := range arch.Opcodes[i+1:] {
			if len(other.Name) > len(op.Name) {
				t.Fatalf("%q ordered before longer %q", op.Name, other.Name)
			}
		}
	}
}
