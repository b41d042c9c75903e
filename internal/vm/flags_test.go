package vm

import "testing"

// TestSetFromResult covers the Zero/Negative rule shared by Pop, Drop, and
// Dup: Zero iff the value is 0, Negative iff its signed interpretation is
// negative.
func TestSetFromResult(tt *testing.T) {
	tt.Parallel()

	cases := []struct {
		name           string
		v              Word
		zero, negative bool
	}{
		{"zero", 0, true, false},
		{"positive", 42, false, false},
		{"negative", 0xFFFFFFFF, false, true},
		{"max positive", 0x7FFFFFFF, false, false},
		{"min negative", 0x80000000, false, true},
	}

	for _, c := range cases {
		tt.Run(c.name, func(tt *testing.T) {
			var f Flags
			f.setFromResult(c.v)

			if f.Zero != c.zero || f.Negative != c.negative {
				tt.Errorf("setFromResult(%s) = %s, want Z:%t N:%t", c.v, f.String(), c.zero, c.negative)
			}
		})
	}
}

func TestFlagsSnapshot(tt *testing.T) {
	tt.Parallel()

	f := Flags{Zero: true, Carry: true}
	snap := f.Snapshot()

	f.Negative = true

	if snap.Negative {
		tt.Errorf("Snapshot aliased the original: got Negative=true")
	}

	if !snap.Zero || !snap.Carry {
		tt.Errorf("Snapshot = %s, want Z:true C:true preserved", snap)
	}
}
