package converter

import "strings"

// keyEntry describes one of the fifteen supported key signatures.
// Ordinal is the circle-of-fifths distance from C/a. Pattern is a 12-rune
// string indexed by chromatic offset 0-11 from C: '#' and 'b' mark the scale
// letters raised or lowered by the signature, 'n' a natural that the signature
// makes explicit, '_' a natural outside any accidental, and ' ' a chromatic
// step the key's seven letters never touch.
type keyEntry struct {
	ordinal int
	pattern string
}

// keyTable holds the fifteen enharmonic key signatures. The Gb/eb pattern
// follows the refined table of the two historical variants.
var keyTable = map[string]keyEntry{
	"C/a":   {0, "_ _ __ _ _ _"},
	"F/d":   {1, "_ _ __ _ _b "},
	"Bb/g":  {2, "_ _b _ _ _b "},
	"Eb/c":  {3, "_ _b _ _b b "},
	"Ab/f":  {4, "_b b _ _b b "},
	"Db/bb": {5, "_b b _b b b "},
	"C#/a#": {5, "## # ## # # "},
	"F#/d#": {6, " # # ## # #_"},
	"Gb/eb": {6, " b b _b b bb"},
	"B/g#":  {7, " # #_ # # #_"},
	"Cb/ab": {7, " b bb b b bb"},
	"E/c#":  {8, " # #_ # #_ _"},
	"A/f#":  {9, " #_ _ # #_ _"},
	"D/b":   {10, " #_ _ #_ _ _"},
	"G/e":   {11, "_ _ _ #_ _ _"},
}

// keyOrder lists the key names in circle-of-fifths order for display and
// error messages.
var keyOrder = []string{
	"C/a", "F/d", "Bb/g", "Eb/c", "Ab/f", "Db/bb", "C#/a#",
	"F#/d#", "Gb/eb", "B/g#", "Cb/ab", "E/c#", "A/f#", "D/b", "G/e",
}

// clefTable maps each clef to the head-position offset that aligns the
// middle-C octave onto its staff.
var clefTable = map[string]int{
	"violin": -6,
	"alto":   0,
	"bass":   6,
}

var clefOrder = []string{"violin", "alto", "bass"}

// KeyNames returns the supported key names in circle-of-fifths order.
func KeyNames() []string {
	names := make([]string, len(keyOrder))
	copy(names, keyOrder)
	return names
}

// ClefNames returns the supported clef names.
func ClefNames() []string {
	names := make([]string, len(clefOrder))
	copy(names, clefOrder)
	return names
}

// diatonicBase holds the chromatic offsets from A of the seven natural
// letters C D E F G A B within one octave.
var diatonicBase = [7]int{-9, -7, -5, -4, -2, 0, 2}

// keyAccidentals returns the key's seven per-letter signature runes
// (pattern with the unused chromatic steps stripped), indexed C..B.
func keyAccidentals(key string) string {
	return strings.ReplaceAll(keyTable[key].pattern, " ", "")
}

// keyOffsets returns the signed accidental offset the key applies to each of
// the seven letters, plus the first letter repeated for octave wrap-around.
func keyOffsets(key string) [8]int {
	acc := keyAccidentals(key)
	var offs [8]int
	for i := 0; i < 7; i++ {
		switch acc[i] {
		case '#':
			offs[i] = 1
		case 'b':
			offs[i] = -1
		}
	}
	offs[7] = offs[0]
	return offs
}

// keyValues returns the chromatic values of the key's seven diatonic steps,
// plus the next octave's first step for wrap-around lookups.
func keyValues(key string) [8]int {
	offs := keyOffsets(key)
	var vals [8]int
	for i := 0; i < 7; i++ {
		vals[i] = diatonicBase[i] + offs[i]
	}
	vals[7] = vals[0] + 12
	return vals
}
