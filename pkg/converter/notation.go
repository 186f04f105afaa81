package converter

import (
	"math"
	"strings"
)

// accidentalForOffset maps a signed half-tone adjustment to its symbol.
var accidentalForOffset = map[int]string{
	-2: "bb",
	-1: "b",
	0:  "n",
	1:  "#",
	2:  "##",
}

// floorDiv and floorMod implement floored division, which the head-position
// arithmetic needs for negative positions (Go's native operators truncate).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// Octave returns the octave containing the current note value; A4 lies in
// octave 4.
func (c *Converter) Octave() int {
	return int(math.Ceil((math.Round(c.noteValue)-2)/12)) + 4
}

// Notation converts the current note value into staff notation under the
// active key and clef. A pitch that falls on a diatonic step of the key
// yields exactly one notation with accidental "_". A pitch between two steps
// yields two alternatives: the lower neighbor raised and the upper neighbor
// lowered.
func (c *Converter) Notation() []Notation {
	offs := keyOffsets(c.key)
	vals := keyValues(c.key)

	headOffset := (c.Octave()-4)*7 + clefTable[c.clef]

	// chromatic offset from C within the current octave, range [-9, 2]
	idx := floorMod(int(math.Round(c.noteValue))+9, 12) - 9

	// A raised seventh step can reach into the octave below (e.g. B# naming
	// the next C); shift the lookup into the next octave in that case.
	if idx == vals[6]-12 {
		idx += 12
		headOffset -= 7
	}

	for i := 0; i < 8; i++ {
		if vals[i] == idx {
			return []Notation{{Position: headOffset + i, Accidental: "_"}}
		}
	}

	insert := 8
	for i := 0; i < 8; i++ {
		if vals[i] > idx {
			insert = i
			break
		}
	}
	// The lower neighbor of insertion point 0 is the seventh letter of the
	// octave below, so its signature offset comes from the wrapped index.
	lower := floorMod(insert-1, 7)
	return []Notation{
		{Position: headOffset + insert - 1, Accidental: accidentalForOffset[offs[lower]+1]},
		{Position: headOffset + insert, Accidental: accidentalForOffset[offs[insert]-1]},
	}
}

// SetNotation converts staff notation into a note value under the active key
// and clef and stores it. The requested accidental must be compatible with
// the accidental the key signature implies at that staff position.
func (c *Converter) SetNotation(n Notation) error {
	valid := false
	for _, sym := range accidentalSymbols {
		if n.Accidental == sym {
			valid = true
			break
		}
	}
	if !valid {
		return validationErrorf(KindNotation, "unknown accidental %q", n.Accidental)
	}

	basePos := n.Position - clefTable[c.clef]
	octave := floorDiv(basePos, 7) + 4
	letter := floorMod(basePos, 7)

	vals := keyValues(c.key)
	headValue := vals[letter] + (octave-4)*12

	implied := keyAccidentals(c.key)[letter]
	offset, err := accidentalOffset(n.Accidental, implied, c.key)
	if err != nil {
		return err
	}
	return c.SetNoteValue(float64(headValue + offset))
}

// accidentalOffset reconciles the requested accidental against the one the
// key signature implies at the same staff line. Only a handful of
// combinations are meaningful; everything else is rejected.
func accidentalOffset(requested string, implied byte, key string) (int, error) {
	switch requested {
	case "_":
		return 0, nil
	case "n":
		if implied == 'b' {
			return 1, nil
		}
		if implied == '#' {
			return -1, nil
		}
	case "#":
		if implied == '_' {
			return 1, nil
		}
	case "b":
		if implied == '_' {
			return -1, nil
		}
	case "##":
		if implied == '#' {
			return 1, nil
		}
	case "bb":
		if implied == 'b' {
			return -1, nil
		}
	}
	return 0, validationErrorf(KindNotation,
		"accidental %q not applicable with %q in key %s", requested, string(implied), key)
}

// SetNotationText parses a "sc" line and applies it.
func (c *Converter) SetNotationText(input string) error {
	v, err := parseNotation(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	return c.SetNotation(v.Notation)
}
