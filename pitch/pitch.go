// Package pitch converts between note names such as "C#5", "E-5" or "Bb4"
// and model pitches. Flats may be written "-" or "b", sharps "#".
package pitch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/clarinetlint/model"
)

var ErrBadName = errors.New("bad note name")

var letterClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var names = [12]string{"C", "C#", "D", "E-", "E", "F", "F#", "G", "G#", "A", "B-", "B"}

func Parse(name string) (model.Pitch, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	class, ok := letterClasses[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	i := 1
accidentals:
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			class++
		case '-', 'b':
			class--
		default:
			break accidentals
		}
	}

	oct, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if oct < -1 || oct > 9 {
		return 0, fmt.Errorf("%w: %q octave out of range", ErrBadName, name)
	}

	p := model.Pitch((oct+1)*12 + class)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %q out of range", ErrBadName, name)
	}
	return p, nil
}

// MustParse is for package level tables built from literals.
func MustParse(name string) model.Pitch {
	p, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return p
}

func Name(p model.Pitch) string {
	return fmt.Sprintf("%s%d", names[int(p)%12], int(p)/12-1)
}

// ParseEvents reads a list of note names where "R" (any case) is a rest.
func ParseEvents(tokens []string) ([]model.NoteEvent, error) {
	res := make([]model.NoteEvent, 0, len(tokens))
	for _, tok := range tokens {
		if strings.EqualFold(strings.TrimSpace(tok), "r") {
			res = append(res, model.Rest())
			continue
		}
		p, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, model.Note(p))
	}
	return res, nil
}

func EventName(e model.NoteEvent) string {
	if e.IsRest() {
		return "R"
	}
	return Name(e.Pitch)
}
