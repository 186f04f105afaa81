package converter

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestParseNoteValues(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"A4", 0},
		{"a4", 0},
		{"A#4", 1},
		{"Bb4", 1},
		{"bb4", 1},
		{"b4", 2},
		{"C4", -9},
		{"C0", -57},
		{"B9", 62},
		{"D#4/Eb4", -6},
		{"d#4/eb4", -6},
		{"G#2/Ab2", -25},
		{"A4 +30", 0.3},
		{"A4 -30", -0.3},
		{"A4+30", 0.3},
		{"A4 +12,5", 0.125},
		{"C4 -50", -9.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if v.Kind != KindNoteValue {
				t.Fatalf("Parse(%q) kind = %v, want note_value", tt.input, v.Kind)
			}
			if !almostEqual(v.Num, tt.want) {
				t.Errorf("Parse(%q) = %g, want %g", tt.input, v.Num, tt.want)
			}
		})
	}
}

func TestParseEnharmonicMismatch(t *testing.T) {
	_, err := Parse("D#4/E4")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse(D#4/E4) error = %v, want ValidationError", err)
	}

	// same spelling, different octave
	if _, err := Parse("D#4/Eb5"); err == nil {
		t.Error("Parse(D#4/Eb5) expected error for octave mismatch")
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"440Hz", 440},
		{"440,5Hz", 440.5},
		{"16Hz", 16},
		{"20000Hz", 20000},
		{"27.5Hz", 27.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if v.Kind != KindFrequency {
				t.Fatalf("Parse(%q) kind = %v, want frequency", tt.input, v.Kind)
			}
			if !almostEqual(v.Num, tt.want) {
				t.Errorf("Parse(%q) = %g, want %g", tt.input, v.Num, tt.want)
			}
		})
	}
}

func TestParseBaseFreq(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"A4=440Hz", 440},
		{"A4=432Hz", 432},
		{"A4 = 432Hz", 432},
		{"A5=880Hz", 440},
		{"A3=220Hz", 440},
		{"a4=440Hz", 440},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if v.Kind != KindBaseFreq {
				t.Fatalf("Parse(%q) kind = %v, want base_freq", tt.input, v.Kind)
			}
			if !almostEqual(v.Num, tt.want) {
				t.Errorf("Parse(%q) = %g, want %g", tt.input, v.Num, tt.want)
			}
		})
	}
}

func TestParseAmplitudeAndGain(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"35%", 0.35},
		{"100%", 1},
		{"0%", 0},
		{"12,5%", 0.125},
		{"-10dB", math.Pow(10, -0.5)},
		{"- 10dB", math.Pow(10, -0.5)},
		{"-10 dB", math.Pow(10, -0.5)},
		{"0dB", 1},
		{"+3.5dB", math.Pow(10, 3.5/20)},
		{"-6.0206dB", math.Pow(10, -6.0206/20)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if v.Kind != KindAmplitude {
				t.Fatalf("Parse(%q) kind = %v, want amplitude", tt.input, v.Kind)
			}
			if !almostEqual(v.Num, tt.want) {
				t.Errorf("Parse(%q) = %g, want %g", tt.input, v.Num, tt.want)
			}
		})
	}
}

func TestParseKeyAndClef(t *testing.T) {
	for _, name := range KeyNames() {
		v, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", name, err)
		}
		if v.Kind != KindKey || v.Name != name {
			t.Errorf("Parse(%q) = (%v, %q), want key %q", name, v.Kind, v.Name, name)
		}
	}
	for _, name := range ClefNames() {
		v, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", name, err)
		}
		if v.Kind != KindClef || v.Name != name {
			t.Errorf("Parse(%q) = (%v, %q), want clef %q", name, v.Kind, v.Name, name)
		}
	}
}

func TestParseNotation(t *testing.T) {
	tests := []struct {
		input string
		want  Notation
	}{
		{"sc 5:#", Notation{5, "#"}},
		{"sc -7:b", Notation{-7, "b"}},
		{"sc 5", Notation{5, "_"}},
		{"sc 0:n", Notation{0, "n"}},
		{"sc 3:##", Notation{3, "##"}},
		{"sc -2:bb", Notation{-2, "bb"}},
		{"sc 5 : bb", Notation{5, "bb"}},
		{"sc 5:_", Notation{5, "_"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if v.Kind != KindNotation {
				t.Fatalf("Parse(%q) kind = %v, want notation", tt.input, v.Kind)
			}
			if v.Notation != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, v.Notation, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		col   int
	}{
		{"empty", "", 1},
		{"unknown letter", "H4", 1},
		{"octave missing", "Cb", 3},
		{"cents without sign", "A4 30", 4},
		{"cents sign only", "A4 +", 5},
		{"space before unit", "440 Hz", 5},
		{"bare number", "12", 3},
		{"sc glued to number", "sc5", 3},
		{"bad accidental", "sc 5:x", 6},
		{"trailing junk", "A4zz", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want ParseError", tt.input, err)
			}
			if perr.Col != tt.col {
				t.Errorf("Parse(%q) column = %d, want %d", tt.input, perr.Col, tt.col)
			}
		})
	}
}

func TestParseTopLevelWhitespace(t *testing.T) {
	v, err := Parse("  A4  ")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if v.Kind != KindNoteValue || v.Num != 0 {
		t.Errorf("Parse(\"  A4  \") = (%v, %g), want note_value 0", v.Kind, v.Num)
	}
}
