package transform

import (
	"strings"

	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
)

// flowCatalog indexes the sequence flows of a process, nested ones included.
type flowCatalog struct {
	flows map[string]*bpmn.SequenceFlow
	// defaults holds flow ids referenced as a gateway's default flow
	defaults map[string]bool
}

func newFlowCatalog(elements []bpmn.Element) *flowCatalog {
	ret := &flowCatalog{flows: map[string]*bpmn.SequenceFlow{}, defaults: map[string]bool{}}
	bpmn.Walk(elements, func(element bpmn.Element, _ *bpmn.SubProcess, _ int) bool {
		switch actual := element.(type) {
		case *bpmn.SequenceFlow:
			ret.flows[actual.ID] = actual
		case *bpmn.Gateway:
			if id := bpmn.ResolveRef(actual.DefaultRef); id != "" {
				ret.defaults[id] = true
			}
		}
		return true
	})
	return ret
}

// FlowType classifies a sequence flow. A structural gateway default wins,
// then a condition expression, then, when heuristic is set, a name
// containing "default" or "else".
func FlowType(flow *bpmn.SequenceFlow, structuralDefault, heuristic bool) gantt.FlowType {
	if structuralDefault {
		return gantt.FlowDefault
	}
	if strings.TrimSpace(flow.Condition) != "" {
		return gantt.FlowConditional
	}
	if heuristic && flow.Name != "" {
		name := strings.ToLower(flow.Name)
		if strings.Contains(name, "default") || strings.Contains(name, "else") {
			return gantt.FlowDefault
		}
	}
	return gantt.FlowNormal
}

// BoundaryDependencyID names the synthetic attachment arrow of a boundary event.
func BoundaryDependencyID(boundaryID string) string {
	return boundaryID + "_boundary_attachment"
}

// boundaryFlowType returns the flow type of a boundary attachment
func boundaryFlowType(interrupting bool) gantt.FlowType {
	if interrupting {
		return gantt.FlowBoundary
	}
	return gantt.FlowBoundaryNonInterrupting
}
