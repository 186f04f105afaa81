package converter

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// noteLetterOffsets maps a note letter to its half-tone offset from A.
var noteLetterOffsets = map[byte]int{
	'C': -9,
	'D': -7,
	'E': -5,
	'F': -4,
	'G': -2,
	'A': 0,
	'B': 2,
}

// scanner walks a single input line. The grammar is whitespace-sensitive at
// sub-token boundaries (callers advance explicitly) and tolerant at top
// level, so whitespace is only skipped where a rule allows it.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

// err reports a parse failure at the current position, 1-based.
func (s *scanner) err() *ParseError {
	return &ParseError{Input: s.input, Col: s.pos + 1}
}

func (s *scanner) skipSpaces() {
	for !s.eof() && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) accept(c byte) bool {
	if !s.eof() && s.input[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) acceptString(lit string) bool {
	if strings.HasPrefix(s.input[s.pos:], lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// real parses an unsigned decimal number. Either '.' or ',' serves as the
// decimal separator; a separator without trailing digits is left unconsumed.
func (s *scanner) real() (float64, error) {
	start := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return 0, s.err()
	}
	if !s.eof() && (s.peek() == '.' || s.peek() == ',') {
		sep := s.pos
		s.pos++
		fracStart := s.pos
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
		}
		if s.pos == fracStart {
			s.pos = sep
		}
	}
	text := strings.ReplaceAll(s.input[start:s.pos], ",", ".")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, s.err()
	}
	return v, nil
}

// integer parses a signed whole number (optional leading '-').
func (s *scanner) integer() (int, error) {
	start := s.pos
	s.accept('-')
	digitStart := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
	}
	if s.pos == digitStart {
		s.pos = start
		return 0, s.err()
	}
	v, err := strconv.Atoi(s.input[start:s.pos])
	if err != nil {
		return 0, s.err()
	}
	return v, nil
}

// mustSign parses a mandatory '+' or '-' as ±1.
func (s *scanner) mustSign() (float64, error) {
	switch s.peek() {
	case '+':
		s.pos++
		return 1, nil
	case '-':
		s.pos++
		return -1, nil
	}
	return 0, s.err()
}

// maySign parses an optional '+' or '-', defaulting to +1.
func (s *scanner) maySign() float64 {
	switch s.peek() {
	case '+':
		s.pos++
		return 1
	case '-':
		s.pos++
		return -1
	}
	return 1
}

// fullNote parses "<letter>[#|b]<octave digit>" with no intervening
// whitespace into a half-tone offset from A4. Letters are case-insensitive.
func (s *scanner) fullNote() (int, error) {
	c := s.peek()
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	offset, ok := noteLetterOffsets[c]
	if !ok {
		return 0, s.err()
	}
	s.pos++
	switch s.peek() {
	case '#':
		offset++
		s.pos++
	case 'b':
		offset--
		s.pos++
	}
	d := s.peek()
	if !isDigit(d) {
		return 0, s.err()
	}
	s.pos++
	return offset + (int(d)-'4')*12, nil
}

// parseNoteValue parses a note name with optional enharmonic pair and cent
// suffix: "A4", "D#4/Eb4", "A4 +30". The cent sign is mandatory so that a
// trailing number cannot be mistaken for part of the note.
func parseNoteValue(input string) (Value, error) {
	s := &scanner{input: input}
	note, err := s.fullNote()
	if err != nil {
		return Value{}, err
	}
	if s.peek() == '/' {
		s.pos++
		second, err := s.fullNote()
		if err != nil {
			return Value{}, err
		}
		if note != second {
			return Value{}, validationErrorf(KindNoteValue,
				"enharmonic pair %q does not name a single note", input)
		}
	}
	val := float64(note)
	if s.eof() {
		return Value{Kind: KindNoteValue, Num: val}, nil
	}
	s.skipSpaces()
	sign, err := s.mustSign()
	if err != nil {
		return Value{}, err
	}
	cents, err := s.real()
	if err != nil {
		return Value{}, err
	}
	if !s.eof() {
		return Value{}, s.err()
	}
	return Value{Kind: KindNoteValue, Num: val + sign*cents/100}, nil
}

// hertz parses "<real>Hz" with the unit adjacent to the number.
func (s *scanner) hertz() (float64, error) {
	v, err := s.real()
	if err != nil {
		return 0, err
	}
	if !s.acceptString("Hz") {
		return 0, s.err()
	}
	return v, nil
}

func parseFrequency(input string) (Value, error) {
	s := &scanner{input: input}
	v, err := s.hertz()
	if err != nil {
		return Value{}, err
	}
	if !s.eof() {
		return Value{}, s.err()
	}
	return Value{Kind: KindFrequency, Num: v}, nil
}

// parseBaseFreq parses "<full note>=<real>Hz" and yields the base frequency
// implied for note value 0.
func parseBaseFreq(input string) (Value, error) {
	s := &scanner{input: input}
	note, err := s.fullNote()
	if err != nil {
		return Value{}, err
	}
	s.skipSpaces()
	if !s.accept('=') {
		return Value{}, s.err()
	}
	s.skipSpaces()
	hz, err := s.hertz()
	if err != nil {
		return Value{}, err
	}
	if !s.eof() {
		return Value{}, s.err()
	}
	base := hz * math.Pow(semitoneRatio, -float64(note))
	return Value{Kind: KindBaseFreq, Num: base}, nil
}

// parseAmplitude parses "<real>%" into a 0..1 factor.
func parseAmplitude(input string) (Value, error) {
	s := &scanner{input: input}
	v, err := s.real()
	if err != nil {
		return Value{}, err
	}
	if !s.accept('%') {
		return Value{}, s.err()
	}
	if !s.eof() {
		return Value{}, s.err()
	}
	return Value{Kind: KindAmplitude, Num: v / 100}, nil
}

// parseGain parses "[+|-]<real>dB" into an amplitude. Whitespace is allowed
// between the sign and the number.
func parseGain(input string) (Value, error) {
	s := &scanner{input: input}
	sign := s.maySign()
	s.skipSpaces()
	v, err := s.real()
	if err != nil {
		return Value{}, err
	}
	s.skipSpaces()
	if !s.acceptString("dB") {
		return Value{}, s.err()
	}
	if !s.eof() {
		return Value{}, s.err()
	}
	return Value{Kind: KindAmplitude, Num: math.Pow(10, sign*v/20)}, nil
}

func parseKey(input string) (Value, error) {
	if _, ok := keyTable[input]; ok {
		return Value{Kind: KindKey, Name: input}, nil
	}
	return Value{}, &ParseError{Input: input, Col: 1}
}

func parseClef(input string) (Value, error) {
	if _, ok := clefTable[input]; ok {
		return Value{Kind: KindClef, Name: input}, nil
	}
	return Value{}, &ParseError{Input: input, Col: 1}
}

// accidentalSymbols in longest-match-first order for the notation grammar.
var accidentalSymbols = []string{"##", "bb", "#", "b", "n", "_"}

// parseNotation parses "sc <position>[:<accidental>]", e.g. "sc 5:#" or
// "sc -7". A missing accidental means "_".
func parseNotation(input string) (Value, error) {
	s := &scanner{input: input}
	if !s.acceptString("sc") {
		return Value{}, s.err()
	}
	// keyword boundary: "scale" must not match
	if c := s.peek(); isDigit(c) || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return Value{}, s.err()
	}
	s.skipSpaces()
	pos, err := s.integer()
	if err != nil {
		return Value{}, err
	}
	s.skipSpaces()
	if s.eof() {
		return Value{Kind: KindNotation, Notation: Notation{Position: pos, Accidental: "_"}}, nil
	}
	if !s.accept(':') {
		return Value{}, s.err()
	}
	s.skipSpaces()
	for _, sym := range accidentalSymbols {
		if s.acceptString(sym) {
			if !s.eof() {
				return Value{}, s.err()
			}
			return Value{Kind: KindNotation, Notation: Notation{Position: pos, Accidental: sym}}, nil
		}
	}
	return Value{}, s.err()
}

// Parse runs the unified input grammar. Each alternative is tried in order
// and the first one that consumes the entire (trimmed) input wins. A
// ValidationError from a matching alternative is final; otherwise the parse
// error of the attempt that got furthest is reported.
func Parse(input string) (Value, error) {
	trimmed := strings.TrimSpace(input)
	alternatives := []func(string) (Value, error){
		parseNoteValue,
		parseFrequency,
		parseBaseFreq,
		parseAmplitude,
		parseGain,
		parseKey,
		parseClef,
		parseNotation,
	}
	best := &ParseError{Input: trimmed, Col: 1}
	for _, alt := range alternatives {
		v, err := alt(trimmed)
		if err == nil {
			return v, nil
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			if pe.Col > best.Col {
				best = pe
			}
			continue
		}
		return Value{}, err
	}
	return Value{}, best
}
