package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/clarinetlint/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeSMF(t *testing.T, tracks ...smf.Track) []byte {
	t.Helper()
	s := smf.New()
	for _, tr := range tracks {
		require.NoError(t, s.Add(tr))
	}
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func melody() smf.Track {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 71, 100))
	tr.Add(480, midi.NoteOff(0, 71))
	tr.Add(0, midi.NoteOn(0, 73, 100))
	tr.Add(480, midi.NoteOff(0, 73))
	// a beat of silence, then a note released with velocity 0
	tr.Add(480, midi.NoteOn(0, 72, 100))
	tr.Add(480, midi.NoteOn(0, 72, 0))
	tr.Close(0)
	return tr
}

func TestPartsInsertsRests(t *testing.T) {
	s, err := ReadFrom(bytes.NewReader(writeSMF(t, melody())))
	require.NoError(t, err)

	parts := Parts(s)
	require.Len(t, parts, 1)
	assert.Equal(t, "track 0", parts[0].Name)
	assert.Equal(t, []model.NoteEvent{
		model.Note(71),
		model.Note(73),
		model.Rest(),
		model.Note(72),
	}, parts[0].Events)
}

func TestPartsKeepsTopNoteOfChord(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100), midi.NoteOn(0, 64, 100))
	tr.Add(480, midi.NoteOff(0, 60), midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOn(0, 71, 100))
	tr.Add(480, midi.NoteOff(0, 71))
	tr.Close(0)

	s, err := ReadFrom(bytes.NewReader(writeSMF(t, tr)))
	require.NoError(t, err)

	parts := Parts(s)
	require.Len(t, parts, 1)
	assert.Equal(t, []model.NoteEvent{model.Note(64), model.Note(71)}, parts[0].Events)
}

func TestPartsSkipsTracksWithoutNotes(t *testing.T) {
	var empty smf.Track
	empty.Close(0)

	s, err := ReadFrom(bytes.NewReader(writeSMF(t, empty, melody())))
	require.NoError(t, err)

	parts := Parts(s)
	require.Len(t, parts, 1)
	assert.Equal(t, "track 1", parts[0].Name)
}

func TestReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melody.mid")
	require.NoError(t, os.WriteFile(path, writeSMF(t, melody()), 0644))

	s, err := ReadMidiFile(path)
	require.NoError(t, err)
	assert.Len(t, Parts(s), 1)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestReadFromRejectsGarbage(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader([]byte("definitely not midi")))
	assert.Error(t, err)
}
