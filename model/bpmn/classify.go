package bpmn

import "strings"

// Type tags as produced by the BPMN parser.
const (
	TypeTask                   = "bpmn:Task"
	TypeUserTask               = "bpmn:UserTask"
	TypeServiceTask            = "bpmn:ServiceTask"
	TypeScriptTask             = "bpmn:ScriptTask"
	TypeBusinessRuleTask       = "bpmn:BusinessRuleTask"
	TypeSendTask               = "bpmn:SendTask"
	TypeReceiveTask            = "bpmn:ReceiveTask"
	TypeManualTask             = "bpmn:ManualTask"
	TypeCallActivity           = "bpmn:CallActivity"
	TypeStartEvent             = "bpmn:StartEvent"
	TypeEndEvent               = "bpmn:EndEvent"
	TypeIntermediateThrowEvent = "bpmn:IntermediateThrowEvent"
	TypeIntermediateCatchEvent = "bpmn:IntermediateCatchEvent"
	TypeBoundaryEvent          = "bpmn:BoundaryEvent"
	TypeExclusiveGateway       = "bpmn:ExclusiveGateway"
	TypeInclusiveGateway       = "bpmn:InclusiveGateway"
	TypeParallelGateway        = "bpmn:ParallelGateway"
	TypeComplexGateway         = "bpmn:ComplexGateway"
	TypeEventBasedGateway      = "bpmn:EventBasedGateway"
	TypeSequenceFlow           = "bpmn:SequenceFlow"
	TypeSubProcess             = "bpmn:SubProcess"
	TypeAdHocSubProcess        = "bpmn:AdHocSubProcess"
	TypeTransaction            = "bpmn:Transaction"
)

// Classify maps a type tag onto an element variant.
func Classify(typeTag string) Kind {
	switch typeTag {
	case TypeStartEvent, TypeEndEvent, TypeIntermediateThrowEvent, TypeIntermediateCatchEvent, TypeBoundaryEvent:
		return KindEvent
	case TypeExclusiveGateway, TypeInclusiveGateway, TypeParallelGateway, TypeComplexGateway, TypeEventBasedGateway:
		return KindGateway
	case TypeSequenceFlow:
		return KindSequenceFlow
	case TypeSubProcess, TypeAdHocSubProcess, TypeTransaction:
		return KindSubProcess
	case TypeCallActivity:
		return KindTask
	}
	if strings.HasPrefix(typeTag, "bpmn:") && strings.HasSuffix(typeTag, "Task") {
		return KindTask
	}
	return KindUnknown
}

// GatewayKind is the gateway sub-kind.
type GatewayKind int

const (
	GatewayUnknown GatewayKind = iota
	GatewayExclusive
	GatewayInclusive
	GatewayParallel
	GatewayComplex
	GatewayEventBased
)

// GatewayKindOf returns the sub-kind for a gateway type tag
func GatewayKindOf(typeTag string) GatewayKind {
	switch typeTag {
	case TypeExclusiveGateway:
		return GatewayExclusive
	case TypeInclusiveGateway:
		return GatewayInclusive
	case TypeParallelGateway:
		return GatewayParallel
	case TypeComplexGateway:
		return GatewayComplex
	case TypeEventBasedGateway:
		return GatewayEventBased
	}
	return GatewayUnknown
}

// Synchronizes reports whether a join of this kind waits for all inputs.
// Event-based and complex gateways never synchronize.
func (k GatewayKind) Synchronizes() bool {
	return k == GatewayParallel || k == GatewayInclusive
}

// GatewayKind returns the gateway sub-kind
func (g *Gateway) GatewayKind() GatewayKind {
	return GatewayKindOf(g.Type)
}

// EventPosition is the position of an event within the flow.
type EventPosition int

const (
	EventUnknown EventPosition = iota
	EventStart
	EventEnd
	EventIntermediateThrow
	EventIntermediateCatch
	EventBoundary
)

// Position returns the event position
func (e *Event) Position() EventPosition {
	switch e.Type {
	case TypeStartEvent:
		return EventStart
	case TypeEndEvent:
		return EventEnd
	case TypeIntermediateThrowEvent:
		return EventIntermediateThrow
	case TypeIntermediateCatchEvent:
		return EventIntermediateCatch
	case TypeBoundaryEvent:
		return EventBoundary
	}
	return EventUnknown
}

// IsBoundary reports whether the event is attached to an activity.
func (e *Event) IsBoundary() bool { return e.Position() == EventBoundary }

// IsStart reports whether the event is a start event.
func (e *Event) IsStart() bool { return e.Position() == EventStart }

// Definition returns the readable name of the first event definition, e.g. "Timer".
func (e *Event) Definition() string {
	if len(e.EventDefinitions) == 0 {
		return ""
	}
	name := strings.TrimPrefix(e.EventDefinitions[0], "bpmn:")
	if !strings.HasSuffix(name, "EventDefinition") {
		return ""
	}
	name = strings.TrimSuffix(name, "EventDefinition")
	if name == "Compensate" {
		return "Compensation"
	}
	return name
}

var taskLabels = map[string]string{
	"Task":             "Task",
	"UserTask":         "User Task",
	"ServiceTask":      "Service Task",
	"ScriptTask":       "Script Task",
	"BusinessRuleTask": "Business Rule Task",
	"SendTask":         "Send Task",
	"ReceiveTask":      "Receive Task",
	"ManualTask":       "Manual Task",
	"CallActivity":     "Call Activity",
	"SubProcess":       "Subprocess",
	"AdHocSubProcess":  "Ad-Hoc Subprocess",
	"Transaction":      "Transaction",
}

var gatewayLabels = map[GatewayKind]string{
	GatewayExclusive:  "Exclusive Gateway",
	GatewayInclusive:  "Inclusive Gateway",
	GatewayParallel:   "Parallel Gateway",
	GatewayComplex:    "Complex Gateway",
	GatewayEventBased: "Event-based Gateway",
}

// TypeLabel returns a human readable element type, e.g. "User Task" or "Timer (Start)".
func TypeLabel(element Element) string {
	base := element.Base()
	switch actual := element.(type) {
	case *Task, *SubProcess:
		name := strings.TrimPrefix(base.Type, "bpmn:")
		if label, ok := taskLabels[name]; ok {
			return label
		}
		if name == "" {
			return "Task"
		}
		return name
	case *Event:
		return eventLabel(actual)
	case *Gateway:
		if label, ok := gatewayLabels[actual.GatewayKind()]; ok {
			return label
		}
		return "Gateway"
	case *SequenceFlow:
		return "Sequence Flow"
	}
	return strings.TrimPrefix(base.Type, "bpmn:")
}

func eventLabel(event *Event) string {
	var position string
	switch event.Position() {
	case EventStart:
		position = "Start"
	case EventEnd:
		position = "End"
	case EventIntermediateThrow, EventIntermediateCatch:
		position = "Intermediate"
	case EventBoundary:
		position = "Boundary"
	}
	definition := event.Definition()
	switch {
	case definition != "" && position != "":
		return definition + " (" + position + ")"
	case definition != "":
		return definition
	}
	return position
}
