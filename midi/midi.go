package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/clarinetlint/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return ReadFrom(bytes.NewReader(dat))
}

func ReadFrom(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("Error parsing midi file... %v", r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

type noteSpan struct {
	start int64
	end   int64
	key   uint8
}

// Parts turns every track that plays notes into a monophonic part. When
// notes overlap, the highest note sounding at an onset wins. Silence between
// the end of one note and the start of the next becomes a rest.
func Parts(s *smf.SMF) []model.Part {
	var res []model.Part
	for i, track := range s.Tracks {
		spans := trackSpans(track)
		if len(spans) == 0 {
			continue
		}
		res = append(res, model.Part{
			Name:   trackName(track, i),
			Events: spansToEvents(spans),
		})
	}
	return res
}

func trackName(track smf.Track, i int) string {
	for _, evt := range track {
		var name string
		if evt.Message.GetMetaTrackName(&name) && name != "" {
			return name
		}
	}
	return fmt.Sprintf("track %d", i)
}

func trackSpans(track smf.Track) []noteSpan {
	var spans []noteSpan
	pressed := make(map[uint8]int64)

	var absTicks int64
	for _, evt := range track {
		absTicks += int64(evt.Delta)
		var channel, key, velocity uint8
		switch {
		case evt.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			if start, ok := pressed[key]; ok {
				spans = append(spans, noteSpan{start: start, end: absTicks, key: key})
			}
			pressed[key] = absTicks
		case evt.Message.GetNoteOn(&channel, &key, &velocity),
			evt.Message.GetNoteOff(&channel, &key, &velocity):
			if start, ok := pressed[key]; ok {
				spans = append(spans, noteSpan{start: start, end: absTicks, key: key})
				delete(pressed, key)
			}
		}
	}
	// notes never released end with the track
	for key, start := range pressed {
		spans = append(spans, noteSpan{start: start, end: absTicks, key: key})
	}

	// prioritize earlier onsets then higher notes
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].key > spans[j].key
	})
	return spans
}

func spansToEvents(spans []noteSpan) []model.NoteEvent {
	var res []model.NoteEvent
	var lastEnd int64
	var lastStart int64 = -1
	for _, sp := range spans {
		if sp.start == lastStart {
			continue
		}
		if len(res) > 0 && sp.start > lastEnd {
			res = append(res, model.Rest())
		}
		res = append(res, model.Note(model.Pitch(sp.key)))
		lastStart = sp.start
		lastEnd = sp.end
	}
	return res
}
