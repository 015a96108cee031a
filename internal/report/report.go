package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/TobiSchelling/storyrank/internal/rank"
)

// Supported output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Options controls how a ranking is rendered.
type Options struct {
	Format  string
	Explain bool // include level counts where the format allows
	Window  string
}

// ValidFormat reports whether f names a supported format.
func ValidFormat(f string) bool {
	switch f {
	case FormatText, FormatMarkdown, FormatHTML, FormatJSON:
		return true
	}
	return false
}

// FormatScore renders whole scores without a decimal point and everything
// else rounded half up to one decimal place.
func FormatScore(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}

// Write renders results to w in the requested format.
func Write(w io.Writer, results []rank.Result, opts Options) error {
	switch opts.Format {
	case "", FormatText:
		return writeText(w, results)
	case FormatMarkdown:
		_, err := io.WriteString(w, markdown(results, opts))
		return err
	case FormatHTML:
		return writeHTML(w, results, opts)
	case FormatJSON:
		return writeJSON(w, results, opts)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func writeText(w io.Writer, results []rank.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s %s\n", r.ID, FormatScore(r.Score)); err != nil {
			return err
		}
	}
	return nil
}

func markdown(results []rank.Result, opts Options) string {
	var b strings.Builder
	b.WriteString("# Top stories")
	if opts.Window != "" {
		fmt.Fprintf(&b, " (%s)", opts.Window)
	}
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString("No stories in range.\n")
		return b.String()
	}

	if opts.Explain {
		b.WriteString("| # | Story | Score | L1 | L2 | L3 |\n|---|---|---|---|---|---|\n")
	} else {
		b.WriteString("| # | Story | Score |\n|---|---|---|\n")
	}
	for i, r := range results {
		fmt.Fprintf(&b, "| %d | %s | %s |", i+1, escapeCell(r.ID), FormatScore(r.Score))
		if opts.Explain {
			fmt.Fprintf(&b, " %d | %d | %d |", r.Counts[0], r.Counts[1], r.Counts[2])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeHTML(w io.Writer, results []rank.Result, opts Options) error {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown(results, opts)), &buf); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type jsonStory struct {
	Rank   int     `json:"rank"`
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Levels []int   `json:"levels,omitempty"`
}

type jsonReport struct {
	Window  string      `json:"window,omitempty"`
	Stories []jsonStory `json:"stories"`
}

func writeJSON(w io.Writer, results []rank.Result, opts Options) error {
	out := jsonReport{Window: opts.Window, Stories: make([]jsonStory, 0, len(results))}
	for i, r := range results {
		js := jsonStory{Rank: i + 1, ID: r.ID, Score: r.Score}
		if opts.Explain {
			js.Levels = r.Counts[:]
		}
		out.Stories = append(out.Stories, js)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
