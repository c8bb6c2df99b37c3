package transform

import (
	"context"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/runtime/traversal"
	"github.com/viant/flowline/tracing"
)

// Transformer maps traversal timings and sequence flows onto timeline
// elements and dependency arrows.
type Transformer struct {
	options Options
	logger  logr.Logger
}

// New creates a transformer with default options
func New(opts ...Option) *Transformer {
	ret := &Transformer{options: DefaultOptions(), logger: logging.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Options returns the effective options
func (t *Transformer) Options() Options { return t.options }

// Transform builds the timeline of a traversed process. It never fails:
// unsupported elements are reported and omitted, dangling dependencies are
// dropped.
func (t *Transformer) Transform(ctx context.Context, elements []bpmn.Element, timings *traversal.Result) *gantt.Result {
	_, span := tracing.StartSpan(ctx, "flowline.transform", "INTERNAL")
	p := newPass(t, elements, timings)
	p.convert()
	p.reportUnknown(elements)
	p.connect()
	result := p.result
	result.Elements = GroupAndSort(result.Elements, p.components, t.options.ChronologicalSorting)
	result.Dependencies = p.drawable()
	span.WithAttributes(map[string]string{"mode": string(t.options.Mode)}).
		WithCount("elements", len(result.Elements)).
		WithCount("dependencies", len(result.Dependencies))
	tracing.EndSpan(span, nil)
	t.logger.V(1).Info("transform completed", "mode", t.options.Mode, "elements", len(result.Elements),
		"dependencies", len(result.Dependencies), "issues", len(result.Issues))
	return result
}

// pass holds the state of one transformation.
type pass struct {
	transformer *Transformer
	mode        Mode
	timings     []*traversal.Timing
	catalog     *flowCatalog
	components  map[string]int
	colors      map[string]string
	counts      map[string]int
	byInstance  map[string]*traversal.Timing
	primary     map[string]*traversal.Timing
	byID        map[string]gantt.Element
	ghosts      map[string][]gantt.Occurrence
	reported    map[string]bool
	dependency  map[string]bool
	dependencyN map[string]int
	result      *gantt.Result
}

func newPass(t *Transformer, elements []bpmn.Element, timings *traversal.Result) *pass {
	if timings == nil {
		timings = &traversal.Result{}
	}
	components := FindConnectedComponents(elements)
	ret := &pass{
		transformer: t,
		mode:        t.options.Mode,
		timings:     timings.Timings,
		catalog:     newFlowCatalog(elements),
		components:  components,
		colors:      AssignColors(components),
		counts:      timings.Counts(),
		byInstance:  make(map[string]*traversal.Timing, len(timings.Timings)),
		primary:     map[string]*traversal.Timing{},
		byID:        map[string]gantt.Element{},
		ghosts:      map[string][]gantt.Occurrence{},
		reported:    map[string]bool{},
		dependency:  map[string]bool{},
		dependencyN: map[string]int{},
		result: &gantt.Result{
			Elements:         []gantt.Element{},
			Dependencies:     []*gantt.Dependency{},
			Issues:           append([]*gantt.Issue{}, timings.Issues...),
			DefaultDurations: append([]*gantt.DefaultDuration{}, timings.DefaultDurations...),
		},
	}
	if ret.mode == "" {
		ret.mode = ModeEvery
	}
	for _, timing := range ret.timings {
		ret.byInstance[timing.InstanceID] = timing
		current, ok := ret.primary[timing.ElementID]
		switch ret.mode {
		case ModeEarliest:
			if !ok || timing.StartTime < current.StartTime {
				ret.primary[timing.ElementID] = timing
			}
		case ModeLatest:
			if !ok || timing.StartTime >= current.StartTime {
				ret.primary[timing.ElementID] = timing
			}
		}
	}
	return ret
}

// id returns the timeline id of an element instance: the element id, or the
// instance id when every instance has its own row and there are several.
func (p *pass) id(instanceID string) string {
	timing, ok := p.byInstance[instanceID]
	if !ok {
		return ""
	}
	if p.mode == ModeEvery && p.counts[timing.ElementID] > 1 {
		return timing.InstanceID
	}
	return timing.ElementID
}

func (p *pass) isPrimary(instanceID string) bool {
	if p.mode == ModeEvery {
		return true
	}
	timing, ok := p.byInstance[instanceID]
	if !ok {
		return false
	}
	return p.primary[timing.ElementID] == timing
}

func (p *pass) convert() {
	for _, timing := range p.timings {
		if timing.Element == nil {
			continue
		}
		if unknown, ok := timing.Element.(*bpmn.Unknown); ok {
			p.unsupported(unknown)
			continue
		}
		if !p.isPrimary(timing.InstanceID) {
			p.ghosts[timing.ElementID] = append(p.ghosts[timing.ElementID], gantt.Occurrence{
				Start:      timing.StartTime,
				End:        timing.EndTime,
				InstanceID: timing.InstanceID,
			})
			continue
		}
		c := newConverter(timing, p.id(timing.InstanceID))
		if timing.AttachedToInstanceID != "" {
			c.attachedTo = p.id(timing.AttachedToInstanceID)
		}
		element := bpmn.Match[gantt.Element](timing.Element, c)
		if element == nil {
			continue
		}
		base := element.Common()
		base.Color = p.colors[timing.ElementID]
		base.TotalInstances = p.counts[timing.ElementID]
		if p.mode == ModeEvery && base.TotalInstances > 1 {
			base.InstanceNumber = timing.InstanceNumber
		}
		p.result.Elements = append(p.result.Elements, element)
		p.byID[base.ID] = element
	}
	for elementID, occurrences := range p.ghosts {
		if element, ok := p.byID[elementID]; ok {
			element.Common().GhostOccurrences = occurrences
		}
	}
	for _, element := range p.result.Elements {
		group, ok := element.(*gantt.Group)
		if !ok {
			continue
		}
		timing := p.byInstance[group.InstanceID]
		seen := map[string]bool{}
		for _, childInstance := range timing.ChildInstanceIDs {
			childID := p.id(childInstance)
			if _, ok := p.byID[childID]; !ok || seen[childID] {
				continue
			}
			seen[childID] = true
			group.ChildIDs = append(group.ChildIDs, childID)
		}
	}
}

// reportUnknown flags unsupported elements the traversal never reached.
func (p *pass) reportUnknown(elements []bpmn.Element) {
	bpmn.Walk(elements, func(element bpmn.Element, _ *bpmn.SubProcess, _ int) bool {
		if unknown, ok := element.(*bpmn.Unknown); ok {
			p.unsupported(unknown)
		}
		return true
	})
}

func (p *pass) unsupported(element *bpmn.Unknown) {
	if p.reported[element.ID] {
		return
	}
	p.reported[element.ID] = true
	reason := "unsupported element type"
	if element.Type != "" {
		reason += " " + element.Type
	}
	p.result.Issues = append(p.result.Issues, &gantt.Issue{
		ElementID:   element.ID,
		ElementType: element.Type,
		ElementName: element.Name,
		Reason:      reason,
		Severity:    gantt.SeverityWarning,
	})
}

// connect derives dependencies from the provenance recorded on each timing.
func (p *pass) connect() {
	heuristic := p.transformer.options.HeuristicDefaultFlows
	for _, timing := range p.timings {
		target := p.id(timing.InstanceID)
		for _, from := range timing.Incoming {
			if from.FlowID == "" {
				continue
			}
			dependency := &gantt.Dependency{
				SourceID: p.id(from.SourceInstanceID),
				TargetID: target,
				Type:     gantt.FinishToStart,
				FlowType: gantt.FlowNormal,
			}
			if flow, ok := p.catalog.flows[from.FlowID]; ok {
				dependency.Name = flow.Name
				dependency.FlowType = FlowType(flow, p.catalog.defaults[flow.ID], heuristic)
			}
			p.add(from.FlowID, dependency, from.SourceInstanceID, timing.InstanceID)
		}
		if timing.AttachedToInstanceID == "" {
			continue
		}
		event, ok := timing.Element.(*bpmn.Event)
		if !ok {
			continue
		}
		p.add(BoundaryDependencyID(target), &gantt.Dependency{
			SourceID:        p.id(timing.AttachedToInstanceID),
			TargetID:        target,
			Type:            gantt.StartToStart,
			Name:            event.Name,
			FlowType:        boundaryFlowType(event.Interrupting()),
			IsBoundaryEvent: true,
		}, timing.AttachedToInstanceID, timing.InstanceID)
	}
}

func (p *pass) add(baseID string, dependency *gantt.Dependency, sourceInstance, targetInstance string) {
	if dependency.SourceID == "" || dependency.TargetID == "" || dependency.SourceID == dependency.TargetID {
		return
	}
	key := baseID + "|" + dependency.SourceID + "|" + dependency.TargetID
	if !p.isPrimary(sourceInstance) || !p.isPrimary(targetInstance) {
		dependency.IsGhost = true
		dependency.SourceInstanceID = sourceInstance
		dependency.TargetInstanceID = targetInstance
		key += "|" + sourceInstance + "|" + targetInstance
	}
	if p.dependency[key] {
		return
	}
	p.dependency[key] = true
	n := p.dependencyN[baseID]
	p.dependencyN[baseID]++
	dependency.ID = baseID
	if n > 0 {
		dependency.ID += "_" + strconv.Itoa(n+1)
	}
	p.result.Dependencies = append(p.result.Dependencies, dependency)
}

// drawable drops dependencies whose ends are not part of the element list.
func (p *pass) drawable() []*gantt.Dependency {
	ret := make([]*gantt.Dependency, 0, len(p.result.Dependencies))
	for _, dependency := range p.result.Dependencies {
		if _, ok := p.byID[dependency.SourceID]; !ok {
			continue
		}
		if _, ok := p.byID[dependency.TargetID]; !ok {
			continue
		}
		ret = append(ret, dependency)
	}
	return ret
}
