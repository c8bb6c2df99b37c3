package traversal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/progress"
	"github.com/viant/flowline/runtime/correlation"
	"github.com/viant/flowline/tracing"
)

// Engine walks a process graph forward from its start elements and computes
// the projected timing of every reachable element instance.
type Engine struct {
	options Options
	logger  logr.Logger
}

// New creates an engine with default options
func New(opts ...Option) *Engine {
	ret := &Engine{options: DefaultOptions(), logger: logging.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Options returns the effective options
func (e *Engine) Options() Options { return e.options }

// Traverse computes timings for the supplied top-level scope. It runs to
// completion and never fails: degradations are reported as result issues.
func (e *Engine) Traverse(ctx context.Context, elements []bpmn.Element) *Result {
	ctx, span := tracing.StartSpan(ctx, "flowline.traverse", "INTERNAL")
	r := &run{
		engine:    e,
		ctx:       ctx,
		result:    &Result{},
		durations: map[string]int64{},
		defaults:  map[string]bool{},
		counters:  map[string]int{},
	}
	root := r.newScope(elements, 0, nil, "")
	r.traverse(root, e.options.Anchor, "p")
	stats := r.result.Stats
	span.WithCount("elements", len(elements)).WithCount("timings", len(r.result.Timings))
	tracing.EndSpan(span, nil)
	e.logger.V(1).Info("traversal completed", "elements", len(elements), "timings", stats.Emitted,
		"absorbed", stats.Absorbed, "fired", stats.Fired, "cutOff", stats.CutOff, "flushed", stats.Flushed)
	return r.result
}

// run holds the state of one traversal pass.
type run struct {
	engine    *Engine
	ctx       context.Context
	result    *Result
	durations map[string]int64
	defaults  map[string]bool
	counters  map[string]int
	capped    bool
}

// scope is one process level: the top-level process or a sub-process instance.
type scope struct {
	index        *bpmn.Index
	requirements correlation.Requirements
	joins        *correlation.Store[*Entry]
	queue        []*Entry
	level        int
	parent       *bpmn.SubProcess
	parentInst   string
	// emitted lists timings produced directly in this scope
	emitted []*Timing
}

func (r *run) newScope(elements []bpmn.Element, level int, parent *bpmn.SubProcess, parentInstanceID string) *scope {
	index := bpmn.NewIndex(elements)
	return &scope{
		index:        index,
		requirements: correlation.Plan(index),
		joins:        correlation.NewStore[*Entry](),
		level:        level,
		parent:       parent,
		parentInst:   parentInstanceID,
	}
}

func (r *run) traverse(sc *scope, anchor int64, pathPrefix string) {
	for i, start := range sc.index.StartElements() {
		if len(sc.index.Incoming(start.Base().ID)) > 0 {
			r.issue(start, gantt.SeverityWarning, "no start element reaches this cycle; traversal seeded here")
		}
		sc.queue = append(sc.queue, seed(start.Base().ID, pathPrefix+strconv.Itoa(i), anchor))
	}
	for !r.capped {
		for len(sc.queue) > 0 && !r.capped {
			entry := sc.queue[0]
			sc.queue[0] = nil
			sc.queue = sc.queue[1:]
			r.step(sc, entry)
		}
		if r.capped || !r.engine.options.FlushPendingJoins {
			return
		}
		pending := sc.joins.Pending()
		if len(pending) == 0 {
			return
		}
		r.fire(sc, pending[0], true)
	}
}

func (r *run) step(sc *scope, entry *Entry) {
	element, ok := sc.index.Lookup(entry.ElementID)
	if !ok {
		r.engine.logger.V(1).Info("flow target not found", "elementId", entry.ElementID, "flowId", entry.FlowID)
		return
	}
	r.result.Stats.Visited++
	progress.UpdateCtx(r.ctx, progress.Delta{Visited: 1})
	if gateway, ok := element.(*bpmn.Gateway); ok {
		if requirement, ok := sc.requirements[gateway.ID]; ok && requirement.Expected() > 0 {
			round := sc.joins.Open(requirement, entry.SourceElementID)
			if !round.Record(entry.SourceElementID, entry.CurrentTime, entry) {
				r.result.Stats.Absorbed++
				progress.UpdateCtx(r.ctx, progress.Delta{Absorbed: 1})
				return
			}
			r.fire(sc, round, false)
			return
		}
	}
	r.visit(sc, entry, element)
}

// fire consumes a join round and continues with one merged token. Forced
// rounds are reported since some required source never arrived.
func (r *run) fire(sc *scope, round *correlation.Arrival[*Entry], forced bool) {
	sc.joins.Retire(round)
	r.result.Stats.Fired++
	progress.UpdateCtx(r.ctx, progress.Delta{Fired: 1})
	element, _ := sc.index.Lookup(round.GatewayID)
	if forced {
		r.result.Stats.Flushed++
		r.issue(element, gantt.SeverityWarning,
			fmt.Sprintf("join fired with %d of %d required sources", len(round.Arrived()), round.Expected))
	}
	merged := merge(round.GatewayID, round.SyncTime(), round.Payloads())
	r.visit(sc, merged, element)
}

// visit applies the loop bound and dispatches on the element variant.
func (r *run) visit(sc *scope, entry *Entry, element bpmn.Element) {
	visits := entry.Visits(entry.ElementID)
	if visits > r.engine.options.MaxLoopDepth {
		if timing := r.emit(sc, entry, element, entry.CurrentTime, r.duration(element)); timing != nil {
			timing.IsLoop = true
			timing.IsLoopInstance = true
			timing.IsPathCutoff = true
			timing.IsLoopCut = true
		}
		r.result.Stats.CutOff++
		progress.UpdateCtx(r.ctx, progress.Delta{CutOff: 1})
		return
	}
	timing := bpmn.Match[*Timing](element, &visitor{run: r, scope: sc, entry: entry})
	if timing == nil {
		return
	}
	if visits > 0 {
		timing.IsLoop = true
		timing.IsLoopInstance = true
	}
	r.fanOut(sc, entry, timing)
}

// fanOut continues the path along every outgoing flow of the entry's element.
func (r *run) fanOut(sc *scope, entry *Entry, timing *Timing) {
	flows := sc.index.Outgoing(entry.ElementID)
	for i, flow := range flows {
		pathKey := entry.PathKey
		if len(flows) > 1 {
			pathKey += "." + strconv.Itoa(i)
		}
		target := bpmn.ExtractTargetID(flow)
		if target == "" {
			continue
		}
		at := timing.EndTime + r.duration(flow)
		from := Provenance{FlowID: flow.ID, SourceElementID: entry.ElementID, SourceInstanceID: timing.InstanceID}
		sc.queue = append(sc.queue, entry.advance(target, pathKey, at, from))
	}
}

// emit records a timing unless the instance cap was reached.
func (r *run) emit(sc *scope, entry *Entry, element bpmn.Element, start, duration int64) *Timing {
	if len(r.result.Timings) >= r.engine.options.MaxInstances {
		if !r.capped {
			r.capped = true
			r.issue(element, gantt.SeverityWarning,
				fmt.Sprintf("traversal stopped after %d instances", r.engine.options.MaxInstances))
		}
		return nil
	}
	id := element.Base().ID
	r.counters[id]++
	number := r.counters[id]
	ret := &Timing{
		ElementID:        id,
		Element:          element,
		StartTime:        start,
		EndTime:          start + duration,
		Duration:         duration,
		PathID:           entry.PathKey,
		InstanceID:       InstanceID(id, number),
		InstanceNumber:   number,
		HierarchyLevel:   sc.level,
		ParentInstanceID: sc.parentInst,
		Incoming:         entry.Provenance(),
	}
	if sc.parent != nil {
		ret.ParentSubProcessID = sc.parent.ID
	}
	r.result.Timings = append(r.result.Timings, ret)
	sc.emitted = append(sc.emitted, ret)
	r.result.Stats.Emitted++
	progress.UpdateCtx(r.ctx, progress.Delta{Emitted: 1})
	return ret
}

// InstanceID formats the id of the n-th instance of an element.
func InstanceID(elementID string, n int) string {
	return elementID + "_instance_" + strconv.Itoa(n)
}

func (r *run) issue(element bpmn.Element, severity gantt.Severity, reason string) {
	ret := &gantt.Issue{Reason: reason, Severity: severity}
	if element != nil {
		base := element.Base()
		ret.ElementID = base.ID
		ret.ElementName = base.Name
		ret.ElementType = base.Type
	}
	r.result.Issues = append(r.result.Issues, ret)
}
