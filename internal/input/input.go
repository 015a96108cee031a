package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/TobiSchelling/storyrank/internal/rank"
	"github.com/TobiSchelling/storyrank/internal/story"
)

// Sentinel errors for structurally invalid input. All of them are fatal.
var (
	ErrTooFewLines    = errors.New("input needs a weights line, a count line and a command line")
	ErrBadWeights     = errors.New("invalid weights line")
	ErrBadCount       = errors.New("invalid story count line")
	ErrBadCommandLine = errors.New("invalid command line")
)

// Data is a fully parsed input document.
type Data struct {
	Weights       rank.Weights
	NumStories    int // as declared on the count line
	Stories       []story.Story
	NumTopStories int
	Window        story.Window
}

// Read consumes r until EOF or the first blank line and parses it.
func Read(r io.Reader) (*Data, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Parse parses the input lines. The first line holds the weights, the
// second the story count, the last the command line; everything between is
// one story per line.
func Parse(lines []string) (*Data, error) {
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: got %d lines", ErrTooFewLines, len(lines))
	}

	weights, err := parseWeights(lines[0])
	if err != nil {
		return nil, err
	}
	count, err := parseCount(lines[1])
	if err != nil {
		return nil, err
	}

	last := len(lines) - 1
	top, window, err := parseCommandLine(lines[last])
	if err != nil {
		return nil, err
	}

	stories := make([]story.Story, 0, last-2)
	for i := 2; i < last; i++ {
		s, err := story.ParseLine(lines[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		stories = append(stories, s)
	}

	return &Data{
		Weights:       weights,
		NumStories:    count,
		Stories:       stories,
		NumTopStories: top,
		Window:        window,
	}, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
		if err == io.EOF {
			break
		}
	}
	return lines, nil
}

func parseWeights(line string) (rank.Weights, error) {
	var w rank.Weights
	fields := strings.Fields(line)
	if len(fields) != len(w) {
		return w, fmt.Errorf("%w: want %d values, got %d", ErrBadWeights, len(w), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return w, fmt.Errorf("%w: %q is not a number", ErrBadWeights, f)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return w, fmt.Errorf("%w: %q is not a finite number", ErrBadWeights, f)
		}
		if v < 0 {
			return w, fmt.Errorf("%w: %q is negative", ErrBadWeights, f)
		}
		w[i] = v
	}
	return w, nil
}

func parseCount(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 1 {
		return 0, fmt.Errorf("%w: want 1 value, got %d", ErrBadCount, len(fields))
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadCount, fields[0])
	}
	return n, nil
}

func parseCommandLine(line string) (int, story.Window, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, story.Window{}, fmt.Errorf("%w: want 3 fields, got %d", ErrBadCommandLine, len(fields))
	}
	top, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, story.Window{}, fmt.Errorf("%w: %q is not an integer", ErrBadCommandLine, fields[0])
	}
	if top < 0 {
		return 0, story.Window{}, fmt.Errorf("%w: negative story count %d", ErrBadCommandLine, top)
	}
	window, err := story.NewWindow(fields[1], fields[2])
	if err != nil {
		return 0, story.Window{}, fmt.Errorf("%w: %w", ErrBadCommandLine, err)
	}
	return top, window, nil
}
