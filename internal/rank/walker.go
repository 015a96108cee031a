package rank

import "github.com/TobiSchelling/storyrank/internal/story"

// Levels is the number of reference hops that contribute to a score.
const Levels = 3

// Counts holds the incoming-reference path counts for one story, indexed by
// hop depth minus one.
type Counts [Levels]int

// Walker counts reference paths inside a working set. Ids that do not
// resolve in the working set are invisible at every hop.
type Walker struct {
	store *story.Store
}

// NewWalker creates a walker over the given working set.
func NewWalker(store *story.Store) *Walker {
	return &Walker{store: store}
}

// Counts returns the level 1..3 incoming-reference counts for target.
//
// Level 1 counts stories that reference target, once per story. Levels 2 and
// 3 count paths s -> n [-> m] -> target: one per reference occurrence along
// the way, starting from any story other than target and never passing
// through target at an intermediate hop.
func (w *Walker) Counts(target string) Counts {
	var c Counts
	for _, s := range w.store.Stories() {
		if s.References(target) {
			c[0]++
		}
		if s.ID == target {
			continue
		}
		for depth := 1; depth < Levels; depth++ {
			c[depth] += w.paths(s, target, depth)
		}
	}
	return c
}

// paths counts the ways to reach a story referencing target from s in
// exactly hops intermediate steps.
func (w *Walker) paths(s story.Story, target string, hops int) int {
	if hops == 0 {
		if s.References(target) {
			return 1
		}
		return 0
	}
	n := 0
	for _, ref := range s.Refs {
		if ref == target {
			continue
		}
		next, ok := w.store.Lookup(ref)
		if !ok || next.ID == target {
			continue
		}
		n += w.paths(next, target, hops-1)
	}
	return n
}
