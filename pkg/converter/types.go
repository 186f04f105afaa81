// Package converter provides conversion between representations of a single
// musical pitch: half-tone note value, note name, frequency, amplitude/gain,
// and staff notation relative to a key and clef.
package converter

import "fmt"

// semitoneRatio is the twelfth root of two. It is kept as a full-precision
// literal rather than recomputed via math.Pow so repeated conversions do not
// accumulate floating-point drift.
const semitoneRatio = 1.0594630943592952645618252949463

// Legal ranges. Note values -58..66 correspond roughly to the audible band
// 16Hz..20kHz when the base frequency is 440Hz.
const (
	MinNoteValue = -58.0
	MaxNoteValue = 66.0
	MinFrequency = 16.0
	MaxFrequency = 20000.0
	MinGain      = -200.0
)

// Defaults applied by New.
const (
	DefaultBaseFreq  = 440.0
	DefaultAmplitude = 0.5
	DefaultKey       = "C/a"
	DefaultClef      = "violin"
)

// Kind identifies which field a parsed input addresses.
type Kind int

const (
	KindNoteValue Kind = iota
	KindFrequency
	KindBaseFreq
	KindAmplitude
	KindKey
	KindClef
	KindNotation
)

// String returns the field name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindNoteValue:
		return "note_value"
	case KindFrequency:
		return "frequency"
	case KindBaseFreq:
		return "base_freq"
	case KindAmplitude:
		return "amplitude"
	case KindKey:
		return "key"
	case KindClef:
		return "clef"
	case KindNotation:
		return "notation"
	default:
		return "unknown"
	}
}

// Notation places a note on a staff: a head position counted from a
// clef-relative origin and the accidental printed next to the head.
// Accidental is one of "##", "#", "n", "_", "b", "bb", where "_" means no
// symbol is needed under the active key signature.
type Notation struct {
	Position   int    `json:"position"`
	Accidental string `json:"accidental"`
}

// String renders the notation in the grammar's "sc" form.
func (n Notation) String() string {
	return fmt.Sprintf("sc %d:%s", n.Position, n.Accidental)
}

// Value is the tagged result of the unified input grammar.
type Value struct {
	Kind     Kind
	Num      float64  // note value, frequency, base frequency, or amplitude
	Name     string   // key or clef name
	Notation Notation // staff notation
}

// ParseError reports input text that matched no grammar alternative.
// Col is the 1-based column where the best attempt stopped.
type ParseError struct {
	Input string
	Col   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q at column %d", e.Input, e.Col)
}

// ValidationError reports syntactically valid input whose value lies outside
// the legal domain: out-of-range numbers, unknown key or clef names, an
// enharmonic pair whose spellings disagree, or an accidental that is
// incompatible with the active key.
type ValidationError struct {
	Field Kind
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func validationErrorf(field Kind, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Converter holds one pitch state: the canonical note value plus the base
// frequency, amplitude, key, and clef used to derive the other views.
// A Converter is not safe for concurrent use; callers embedding it in a
// multi-threaded host must synchronize externally.
type Converter struct {
	noteValue float64
	baseFreq  float64
	amplitude float64
	key       string
	clef      string
}

// New creates a Converter with the defaults: A4 at 440Hz, amplitude 0.5,
// key C/a, violin clef.
func New() *Converter {
	return &Converter{
		noteValue: 0,
		baseFreq:  DefaultBaseFreq,
		amplitude: DefaultAmplitude,
		key:       DefaultKey,
		clef:      DefaultClef,
	}
}
