package model

// Pitch is a semitone number on the MIDI scale (C4 == 60).
type Pitch int

const (
	MinPitch Pitch = 0
	MaxPitch Pitch = 127
)

func (p Pitch) Valid() bool {
	return p >= MinPitch && p <= MaxPitch
}

type EventKind uint8

const (
	PitchEvent EventKind = iota
	RestEvent
)

// NoteEvent is either a sounding pitch or a rest. Rests carry no pitch.
type NoteEvent struct {
	Kind  EventKind
	Pitch Pitch
}

func Note(p Pitch) NoteEvent {
	return NoteEvent{Kind: PitchEvent, Pitch: p}
}

func Rest() NoteEvent {
	return NoteEvent{Kind: RestEvent}
}

func (e NoteEvent) IsRest() bool {
	return e.Kind == RestEvent
}

// Part is one monophonic voice of a score.
type Part struct {
	Name   string
	Events []NoteEvent
}
