package glyphraster

import (
	"errors"
	"fmt"
	"iter"

	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/glyphraster/internal/parallel"
)

// Dispatcher renders every codepoint of a set and yields the results in
// ascending codepoint order, one RenderedGlyph per codepoint.
//
// Implementations differ only in scheduling: for the same set and render
// function every Dispatcher yields the same sequence.
type Dispatcher interface {
	Dispatch(set CodepointSet, render RenderFunc) iter.Seq[RenderedGlyph]
}

// NewDispatcher returns a ParallelDispatcher when cfg.Parallel is set and
// a SequentialDispatcher otherwise.
func NewDispatcher(cfg RenderConfig) Dispatcher {
	if cfg.Parallel {
		return ParallelDispatcher{Workers: cfg.Workers}
	}
	return SequentialDispatcher{}
}

// SequentialDispatcher renders one codepoint at a time on the calling
// goroutine.
type SequentialDispatcher struct{}

// Dispatch implements Dispatcher.
func (SequentialDispatcher) Dispatch(set CodepointSet, render RenderFunc) iter.Seq[RenderedGlyph] {
	return func(yield func(RenderedGlyph) bool) {
		for _, cp := range set {
			g := render(cp)
			logSkip(g)
			if !yield(g) {
				return
			}
		}
	}
}

// defaultBatchPerWorker is the number of codepoints queued per worker
// in each parallel batch.
const defaultBatchPerWorker = 16

// ParallelDispatcher fans rendering out to a work-stealing worker pool.
//
// Codepoints are processed in batches; each batch is buffered by index
// and emitted in order before the next batch starts, which bounds memory
// to one batch of images.
type ParallelDispatcher struct {
	// Workers is the pool size; 0 means GOMAXPROCS.
	Workers int

	// BatchSize is the number of codepoints per batch; 0 picks
	// defaultBatchPerWorker per worker.
	BatchSize int
}

// Dispatch implements Dispatcher. The pool lives for the duration of the
// iteration and is closed when it ends, including on early break.
func (d ParallelDispatcher) Dispatch(set CodepointSet, render RenderFunc) iter.Seq[RenderedGlyph] {
	return func(yield func(RenderedGlyph) bool) {
		if len(set) == 0 {
			return
		}

		pool := parallel.NewWorkerPool(d.Workers)
		defer pool.Close()

		batch := d.BatchSize
		if batch <= 0 {
			batch = pool.Workers() * defaultBatchPerWorker
		}

		for start := 0; start < len(set); start += batch {
			chunk := set[start:min(start+batch, len(set))]
			results := parallel.Map(pool, len(chunk), func(i int) RenderedGlyph {
				return render(chunk[i])
			})
			for _, g := range results {
				logSkip(g)
				if !yield(g) {
					return
				}
			}
		}
	}
}

// logSkip reports an absent glyph. Logging happens on the emitting
// goroutine so diagnostics follow codepoint order in both strategies.
func logSkip(g RenderedGlyph) {
	if !g.Absent() {
		return
	}

	attrs := []any{
		"codepoint", fmt.Sprintf("U+%04X", g.Codepoint),
		"name", codepointName(g.Codepoint),
		"reason", g.Err,
	}
	if errors.Is(g.Err, ErrEmptyGlyph) {
		Logger().Debug("glyphraster: glyph skipped", attrs...)
		return
	}
	Logger().Warn("glyphraster: glyph skipped", attrs...)
}

// codepointName returns the Unicode character name of cp, or "" when it
// has none.
func codepointName(cp uint32) string {
	if cp > MaxCodepoint {
		return ""
	}
	return runenames.Name(rune(cp))
}
