package converter

import (
	"bytes"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDI reference: A4 is note number 69 in the standard tuning table.
const midiA4 = 69

// defaultTicksPerQuarter matches common sequencer resolution.
const defaultTicksPerQuarter = 480

// MIDINote returns the MIDI note number nearest to the current note value.
// Cent offsets are rounded away; values outside the 0-127 MIDI range are
// rejected.
func (c *Converter) MIDINote() (uint8, error) {
	n := int(math.Round(c.noteValue)) + midiA4
	if n < 0 || n > 127 {
		return 0, validationErrorf(KindNoteValue,
			"note value %g maps to MIDI note %d, outside 0-127", c.noteValue, n)
	}
	return uint8(n), nil
}

// Velocity scales the current amplitude onto the MIDI velocity range 0-127.
func (c *Converter) Velocity() uint8 {
	return uint8(math.Round(c.amplitude * 127))
}

// NoteOnMessage builds the note-on message for the current pitch and
// amplitude on the given channel.
func (c *Converter) NoteOnMessage(channel uint8) (midi.Message, error) {
	n, err := c.MIDINote()
	if err != nil {
		return nil, err
	}
	return midi.NoteOn(channel, n, c.Velocity()), nil
}

// NoteOffMessage builds the matching note-off message.
func (c *Converter) NoteOffMessage(channel uint8) (midi.Message, error) {
	n, err := c.MIDINote()
	if err != nil {
		return nil, err
	}
	return midi.NoteOff(channel, n), nil
}

// RenderSMF renders the current pitch as a single-note standard MIDI file
// held for the given number of quarter-note beats at 120 BPM. The result is
// raw file bytes; no device or audio output is involved.
func (c *Converter) RenderSMF(beats int) ([]byte, error) {
	if beats <= 0 {
		return nil, fmt.Errorf("beats must be positive, got %d", beats)
	}
	note, err := c.MIDINote()
	if err != nil {
		return nil, err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(defaultTicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, midi.NoteOn(0, note, c.Velocity()))
	track.Add(uint32(beats)*defaultTicksPerQuarter, midi.NoteOff(0, note))
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}
