package story

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLine is returned when a story line lacks an id or a date.
var ErrMalformedLine = errors.New("malformed story line")

// Story is a single item with the ids it references.
type Story struct {
	ID   string
	Date string // raw YYYYMMDD literal
	Refs []string
}

// ParseLine parses "<id> <YYYYMMDD> [ref ...]". References are taken
// verbatim and are not checked against known ids.
func ParseLine(line string) (Story, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Story{}, fmt.Errorf("%w: want at least 2 fields, got %d", ErrMalformedLine, len(tokens))
	}
	s := Story{ID: tokens[0], Date: tokens[1]}
	if len(tokens) > 2 {
		s.Refs = append([]string(nil), tokens[2:]...)
	}
	return s, nil
}

// References reports whether id appears among the story's references.
func (s Story) References(id string) bool {
	for _, ref := range s.Refs {
		if ref == id {
			return true
		}
	}
	return false
}

// Store is an immutable id index over a set of stories.
type Store struct {
	stories []Story
	byID    map[string]int
}

// NewStore indexes stories by id. When ids repeat, the first occurrence wins.
func NewStore(stories []Story) *Store {
	st := &Store{
		stories: append([]Story(nil), stories...),
		byID:    make(map[string]int, len(stories)),
	}
	for i, s := range st.stories {
		if _, ok := st.byID[s.ID]; !ok {
			st.byID[s.ID] = i
		}
	}
	return st
}

// Lookup returns the story with the given id.
func (st *Store) Lookup(id string) (Story, bool) {
	i, ok := st.byID[id]
	if !ok {
		return Story{}, false
	}
	return st.stories[i], true
}

// Stories returns the indexed stories in input order.
func (st *Store) Stories() []Story {
	return st.stories
}

// Len returns the number of stories in the store.
func (st *Store) Len() int {
	return len(st.stories)
}
