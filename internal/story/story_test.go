package story

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLine(t *testing.T) {
	s, err := ParseLine("A 20140801 B C B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "A" || s.Date != "20140801" {
		t.Errorf("expected A/20140801, got %s/%s", s.ID, s.Date)
	}
	if strings.Join(s.Refs, ",") != "B,C,B" {
		t.Errorf("expected refs kept verbatim, got %v", s.Refs)
	}
}

func TestParseLineWithoutRefs(t *testing.T) {
	s, err := ParseLine("C   20140801")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Refs) != 0 {
		t.Errorf("expected no refs, got %v", s.Refs)
	}
}

func TestParseLineMalformed(t *testing.T) {
	for _, line := range []string{"", "   ", "onlyid"} {
		if _, err := ParseLine(line); !errors.Is(err, ErrMalformedLine) {
			t.Errorf("line %q: expected ErrMalformedLine, got %v", line, err)
		}
	}
}

func TestStoreLookup(t *testing.T) {
	st := NewStore([]Story{
		{ID: "A", Date: "20140801", Refs: []string{"B"}},
		{ID: "B", Date: "20140801"},
		{ID: "A", Date: "20140802"},
	})

	a, ok := st.Lookup("A")
	if !ok {
		t.Fatal("expected A to resolve")
	}
	if a.Date != "20140801" {
		t.Errorf("expected first occurrence of A, got date %s", a.Date)
	}
	if _, ok := st.Lookup("Z"); ok {
		t.Error("expected Z to be unknown")
	}
	if st.Len() != 3 {
		t.Errorf("expected 3 stories, got %d", st.Len())
	}
}

func TestReferences(t *testing.T) {
	s := Story{ID: "X", Refs: []string{"X", "Y"}}
	if !s.References("X") {
		t.Error("expected self reference to be found")
	}
	if s.References("Z") {
		t.Error("did not expect Z")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("20140801")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2014 || d.Month() != 8 || d.Day() != 1 {
		t.Errorf("unexpected date %v", d)
	}

	for _, bad := range []string{"2014081", "201408011", "2014-08-01", "20141301", "abcdefgh"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFilterBoundaries(t *testing.T) {
	w, err := NewWindow("20140801", "20140803")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stories := []Story{
		{ID: "before", Date: "20140731"},
		{ID: "start", Date: "20140801"},
		{ID: "inside", Date: "20140802"},
		{ID: "end", Date: "20140803"},
	}

	kept := Filter(stories, w, nil)
	var ids []string
	for _, s := range kept {
		ids = append(ids, s.ID)
	}
	if strings.Join(ids, ",") != "start,inside" {
		t.Errorf("expected start,inside; got %v", ids)
	}
}

func TestFilterSkipsBadDates(t *testing.T) {
	w, _ := NewWindow("20140801", "20140802")
	var buf bytes.Buffer
	logger := log.New(&buf)

	kept := Filter([]Story{
		{ID: "ok", Date: "20140801"},
		{ID: "bad", Date: "2014AUG1"},
	}, w, logger)

	if len(kept) != 1 || kept[0].ID != "ok" {
		t.Errorf("expected only 'ok', got %v", kept)
	}
	if !strings.Contains(buf.String(), "bad") {
		t.Errorf("expected a warning naming the skipped story, got %q", buf.String())
	}
}

func TestWindowString(t *testing.T) {
	w, _ := NewWindow("20140801", "20140802")
	if w.String() != "20140801..20140802" {
		t.Errorf("unexpected window string %q", w.String())
	}
}

func TestNewWindowRejectsBadBounds(t *testing.T) {
	if _, err := NewWindow("2014", "20140802"); err == nil {
		t.Error("expected error for bad start")
	}
	if _, err := NewWindow("20140801", "x"); err == nil {
		t.Error("expected error for bad end")
	}
}
