package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/TobiSchelling/storyrank/internal/config"
	"github.com/TobiSchelling/storyrank/internal/input"
	"github.com/TobiSchelling/storyrank/internal/rank"
	"github.com/TobiSchelling/storyrank/internal/report"
	"github.com/TobiSchelling/storyrank/internal/story"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Window  string
	Steps   []StepResult
	Ranking []rank.Result
}

// Err returns the first step error, if any.
func (r *Result) Err() error {
	for _, s := range r.Steps {
		if s.Err != nil {
			return fmt.Errorf("%s: %w", s.Name, s.Err)
		}
	}
	return nil
}

// Pipeline orchestrates the parse -> filter -> rank -> emit run.
type Pipeline struct {
	cfg    *config.Config
	logger *log.Logger
}

// New creates a new pipeline.
func New(cfg *config.Config, logger *log.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run reads the input document from in and writes the ranking to out.
// Nothing is written to out unless every step succeeds.
func (p *Pipeline) Run(ctx context.Context, in io.Reader, out io.Writer) *Result {
	r := &Result{}

	// Step 1: Parse
	data, step := p.runParse(in)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}
	r.Window = data.Window.String()

	// Step 2: Filter
	working, step := p.runFilter(data)
	r.Steps = append(r.Steps, step)

	// Step 3: Rank
	ranking, step := p.runRank(ctx, data, working)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}
	r.Ranking = ranking

	// Step 4: Emit
	r.Steps = append(r.Steps, p.runEmit(out, r))
	return r
}

func (p *Pipeline) runParse(in io.Reader) (*input.Data, StepResult) {
	data, err := input.Read(in)
	if err != nil {
		return nil, StepResult{Name: "Parse", Err: err}
	}
	if data.NumStories != len(data.Stories) {
		p.logger.Warn("story count line does not match story lines",
			"declared", data.NumStories, "found", len(data.Stories))
	}
	step := StepResult{
		Name:    "Parse",
		Summary: fmt.Sprintf("Parsed %d stories, top %d requested", len(data.Stories), data.NumTopStories),
	}
	p.logger.Debug(step.Summary)
	return data, step
}

func (p *Pipeline) runFilter(data *input.Data) (*story.Store, StepResult) {
	kept := story.Filter(data.Stories, data.Window, p.logger)
	step := StepResult{
		Name:    "Filter",
		Summary: fmt.Sprintf("%d of %d stories in %s", len(kept), len(data.Stories), data.Window),
	}
	p.logger.Debug(step.Summary)
	return story.NewStore(kept), step
}

func (p *Pipeline) runRank(ctx context.Context, data *input.Data, working *story.Store) ([]rank.Result, StepResult) {
	scorer := rank.NewScorer(data.Weights, p.cfg.Scoring.Workers)
	ranking, err := scorer.Rank(ctx, working, data.NumTopStories)
	if err != nil {
		return nil, StepResult{Name: "Rank", Err: err}
	}
	step := StepResult{
		Name:    "Rank",
		Summary: fmt.Sprintf("Scored %d stories, kept %d", working.Len(), len(ranking)),
	}
	p.logger.Debug(step.Summary, "workers", p.cfg.Scoring.Workers)
	return ranking, step
}

func (p *Pipeline) runEmit(out io.Writer, r *Result) StepResult {
	var buf bytes.Buffer
	opts := report.Options{
		Format:  p.cfg.Output.Format,
		Explain: p.cfg.Output.Explain,
		Window:  r.Window,
	}
	if err := report.Write(&buf, r.Ranking, opts); err != nil {
		return StepResult{Name: "Emit", Err: err}
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return StepResult{Name: "Emit", Err: fmt.Errorf("writing output: %w", err)}
	}
	return StepResult{
		Name:    "Emit",
		Summary: fmt.Sprintf("Wrote %d stories as %s", len(r.Ranking), opts.Format),
	}
}
