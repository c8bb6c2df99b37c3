// Package progress provides a lightweight tracker that keeps aggregated
// traversal counters for a single transformation run. The tracker instance
// lives in the context; every component that receives the context can update
// the counters via the Delta helper without requiring a global registry.

package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/flowline/internal/clock"
)

// Delta represents an incremental counter change emitted by the traversal
// engine.
type Delta struct {
	Visited  int
	Emitted  int
	Absorbed int
	Fired    int
	CutOff   int
}

// Progress keeps aggregated counters of one run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	Process   string
	StartedAt time.Time

	// Visited counts processed worklist entries.
	Visited int
	// Emitted counts element timings produced.
	Emitted int
	// Absorbed counts arrivals retired at a join while waiting for siblings.
	Absorbed int
	// Fired counts join rounds that completed.
	Fired int
	// CutOff counts paths stopped by the loop-depth bound.
	CutOff int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta to the tracker. If an onChange callback
// has been registered it is invoked with a copy of the counters outside the
// critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Visited += d.Visited
	p.Emitted += d.Emitted
	p.Absorbed += d.Absorbed
	p.Fired += d.Fired
	p.CutOff += d.CutOff
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:     p.RunID,
		Process:   p.Process,
		StartedAt: p.StartedAt,
		Visited:   p.Visited,
		Emitted:   p.Emitted,
		Absorbed:  p.Absorbed,
		Fired:     p.Fired,
		CutOff:    p.CutOff,
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID, process string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Process:   process,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
