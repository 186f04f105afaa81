package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Set feeds one line of the textual mini-language through the unified grammar
// and routes the result to the matching field setter. A rejected input leaves
// all state untouched.
func (c *Converter) Set(input string) error {
	v, err := Parse(input)
	if err != nil {
		return err
	}
	switch v.Kind {
	case KindNoteValue:
		return c.SetNoteValue(v.Num)
	case KindFrequency:
		return c.SetFrequency(v.Num)
	case KindBaseFreq:
		return c.SetBaseFreq(v.Num)
	case KindAmplitude:
		return c.SetAmplitude(v.Num)
	case KindKey:
		return c.SetKey(v.Name)
	case KindClef:
		return c.SetClef(v.Name)
	case KindNotation:
		return c.SetNotation(v.Notation)
	}
	return validationErrorf(v.Kind, "no setter for parsed value")
}

// NoteValue returns the canonical pitch: half-tone steps relative to A4,
// fractional part in cents/100.
func (c *Converter) NoteValue() float64 {
	return c.noteValue
}

// SetNoteValue stores a new note value after checking the audible range.
func (c *Converter) SetNoteValue(v float64) error {
	if v < MinNoteValue || v > MaxNoteValue {
		return validationErrorf(KindNoteValue,
			"%g out of audible range [%g, %g]", v, MinNoteValue, MaxNoteValue)
	}
	c.noteValue = v
	return nil
}

// SetNoteValueText parses a note name ("A#4", "D#4/Eb4", "A4 +30") and
// stores the resulting note value.
func (c *Converter) SetNoteValueText(input string) error {
	v, err := parseNoteValue(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	return c.SetNoteValue(v.Num)
}

// Frequency returns the pitch in Hz under the current base frequency.
func (c *Converter) Frequency() float64 {
	return c.baseFreq * math.Pow(semitoneRatio, c.noteValue)
}

// SetFrequency stores the note value corresponding to a frequency under the
// current base. Both the frequency and the resulting note value are
// range-checked before anything is committed.
func (c *Converter) SetFrequency(hz float64) error {
	if hz < MinFrequency || hz > MaxFrequency {
		return validationErrorf(KindFrequency,
			"%gHz out of audible range [%g, %g]", hz, MinFrequency, MaxFrequency)
	}
	return c.SetNoteValue(math.Log10(hz/c.baseFreq) / math.Log10(semitoneRatio))
}

// SetFrequencyText parses "<real>Hz" and applies it.
func (c *Converter) SetFrequencyText(input string) error {
	v, err := parseFrequency(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	return c.SetFrequency(v.Num)
}

// BaseFreq returns the frequency assigned to note value 0.
func (c *Converter) BaseFreq() float64 {
	return c.baseFreq
}

// SetBaseFreq rescales the note-value/frequency mapping. The stored note
// value is deliberately left untouched: the described pitch keeps its step
// distance from the reference and floats in absolute frequency.
func (c *Converter) SetBaseFreq(hz float64) error {
	if hz < MinFrequency || hz > MaxFrequency {
		return validationErrorf(KindBaseFreq,
			"%gHz out of audible range [%g, %g]", hz, MinFrequency, MaxFrequency)
	}
	c.baseFreq = hz
	return nil
}

// SetBaseFreqText accepts either an assignment ("A4=440Hz") or a bare
// frequency ("432Hz") naming the base directly.
func (c *Converter) SetBaseFreqText(input string) error {
	trimmed := strings.TrimSpace(input)
	v, err := parseBaseFreq(trimmed)
	if err != nil {
		var fallbackErr error
		v, fallbackErr = parseFrequency(trimmed)
		if fallbackErr != nil {
			return err
		}
	}
	return c.SetBaseFreq(v.Num)
}

// Amplitude returns the linear loudness factor in [0, 1].
func (c *Converter) Amplitude() float64 {
	return c.amplitude
}

// SetAmplitude stores a new amplitude after checking the range. The parsed
// gain path funnels through here as well, so a gain above 0dB is rejected.
func (c *Converter) SetAmplitude(a float64) error {
	if a < 0 || a > 1 {
		return validationErrorf(KindAmplitude, "%g out of range [0, 1]", a)
	}
	c.amplitude = a
	return nil
}

// SetAmplitudeText parses "<real>%" and applies it.
func (c *Converter) SetAmplitudeText(input string) error {
	v, err := parseAmplitude(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	return c.SetAmplitude(v.Num)
}

// Gain returns the amplitude as dB, clamped at MinGain for silence.
func (c *Converter) Gain() float64 {
	g := 20 * math.Log10(c.amplitude)
	if g < MinGain || math.IsNaN(g) {
		return MinGain
	}
	return g
}

// SetGain stores the amplitude equivalent of a gain; positive gains exceed
// amplitude 1 and are rejected.
func (c *Converter) SetGain(db float64) error {
	if db > 0 {
		return validationErrorf(KindAmplitude, "maximum gain is 0.0dB, got %gdB", db)
	}
	return c.SetAmplitude(math.Pow(10, db/20))
}

// SetGainText parses "[+|-]<real>dB" and applies it.
func (c *Converter) SetGainText(input string) error {
	v, err := parseGain(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	return c.SetAmplitude(v.Num)
}

// noteNames spells the twelve chromatic steps from C; black keys carry both
// enharmonic spellings.
var noteNames = [12]string{
	"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B",
}

// NoteName renders the current note value as a name with octave and, when
// the value falls between keys, a signed cent suffix: "A4", "D#4/Eb4",
// "A4 +30".
func (c *Converter) NoteName() string {
	steps := int(math.Round(c.noteValue))
	octave := c.Octave()

	idx := steps - (octave-4)*12 + 9 // chromatic index from C, 0..11
	parts := strings.Split(noteNames[idx], "/")
	for i, p := range parts {
		parts[i] = p + strconv.Itoa(octave)
	}
	name := strings.Join(parts, "/")

	cents := int(math.Round((c.noteValue - float64(steps)) * 100))
	if cents == 0 {
		return name
	}
	return fmt.Sprintf("%s %+d", name, cents)
}

// SetNoteName is the text-path alias for note input.
func (c *Converter) SetNoteName(input string) error {
	return c.SetNoteValueText(input)
}

// Key returns the active key signature name.
func (c *Converter) Key() string {
	return c.key
}

// SetKey selects one of the fifteen supported key signatures.
func (c *Converter) SetKey(name string) error {
	if _, ok := keyTable[name]; !ok {
		return validationErrorf(KindKey,
			"unknown key %q, must be one of %q", name, KeyNames())
	}
	c.key = name
	return nil
}

// chromaticLetters marks which chromatic steps from C carry a natural letter.
const chromaticLetters = "C D EF G A B"

// KeyName spells the current note the way the active key would write it,
// e.g. note value -8 is "Db4" in F/d but "C#4" in A/f#.
func (c *Converter) KeyName() string {
	pattern := keyTable[c.key].pattern
	idx := floorMod(int(math.Round(c.noteValue))+9, 12)
	amendment := ""
	switch pattern[idx] {
	case 'b':
		idx++
		amendment = "b"
	case '#':
		idx--
		amendment = "#"
	default:
		if chromaticLetters[idx] == ' ' {
			// a black key the signature leaves untouched: spell it in the
			// key's own direction
			if strings.ContainsRune(pattern, 'b') {
				idx++
				amendment = "b"
			} else {
				idx--
				amendment = "#"
			}
		}
	}
	return fmt.Sprintf("%c%s%d", chromaticLetters[floorMod(idx, 12)], amendment, c.Octave())
}

// Clef returns the active clef name.
func (c *Converter) Clef() string {
	return c.clef
}

// SetClef selects one of the three supported clefs.
func (c *Converter) SetClef(name string) error {
	if _, ok := clefTable[name]; !ok {
		return validationErrorf(KindClef,
			"unknown clef %q, must be one of %q", name, ClefNames())
	}
	c.clef = name
	return nil
}
