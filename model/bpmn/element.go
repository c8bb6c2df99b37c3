package bpmn

// Kind discriminates flow element variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindTask
	KindEvent
	KindGateway
	KindSequenceFlow
	KindSubProcess
)

func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindEvent:
		return "event"
	case KindGateway:
		return "gateway"
	case KindSequenceFlow:
		return "sequenceFlow"
	case KindSubProcess:
		return "subProcess"
	}
	return "unknown"
}

// Element is a BPMN flow element. The set of implementations is closed:
// Task, Event, Gateway, SequenceFlow, SubProcess and Unknown.
type Element interface {
	// Base returns the fields shared by all flow elements.
	Base() *BaseElement
	// Kind returns the element variant.
	Kind() Kind
	isElement()
}

// Ref is a reference to another flow element as handed over by the parser:
// a bare id string, a mapping carrying an "id" key, or an element value.
// Use ResolveRef to read it.
type Ref interface{}

// BaseElement holds the fields shared by all flow elements
type BaseElement struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string      `json:"$type" yaml:"$type"`
	Extensions *Extensions `json:"extensionElements,omitempty" yaml:"extensionElements,omitempty"`
	Incoming   []string    `json:"incoming,omitempty" yaml:"incoming,omitempty"`
	Outgoing   []string    `json:"outgoing,omitempty" yaml:"outgoing,omitempty"`
	Lane       *Lane       `json:"lane,omitempty" yaml:"lane,omitempty"`
}

func (b *BaseElement) Base() *BaseElement { return b }

// Lane carries the swim-lane an element belongs to.
type Lane struct {
	ID    string `json:"laneId" yaml:"laneId"`
	Name  string `json:"laneName,omitempty" yaml:"laneName,omitempty"`
	Level int    `json:"laneLevel,omitempty" yaml:"laneLevel,omitempty"`
}

// Extensions is the extension-element bag of a flow element.
type Extensions struct {
	Values []*Extension `json:"values,omitempty" yaml:"values,omitempty"`
}

// Extension is a single vendor extension value.
type Extension struct {
	Type                string            `json:"$type,omitempty" yaml:"$type,omitempty"`
	TimePlannedDuration *ExtensionValue   `json:"timePlannedDuration,omitempty" yaml:"timePlannedDuration,omitempty"`
	Children            []*ExtensionChild `json:"$children,omitempty" yaml:"$children,omitempty"`
}

// ExtensionValue is a value holder used by typed extension properties.
type ExtensionValue struct {
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ExtensionChild is a generic nested extension node.
type ExtensionChild struct {
	Type    string `json:"$type,omitempty" yaml:"$type,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Body    string `json:"body,omitempty" yaml:"body,omitempty"`
	RawBody string `json:"$body,omitempty" yaml:"$body,omitempty"`
}

// LoopType identifies activity loop characteristics.
type LoopType string

const (
	LoopStandard      LoopType = "bpmn:StandardLoopCharacteristics"
	LoopMultiInstance LoopType = "bpmn:MultiInstanceLoopCharacteristics"
)

// LoopCharacteristics describes a looping or multi-instance activity.
type LoopCharacteristics struct {
	Type         LoopType `json:"$type" yaml:"$type"`
	IsSequential bool     `json:"isSequential,omitempty" yaml:"isSequential,omitempty"`
	// Cardinality is the numeric loopCardinality of a multi-instance activity, 0 when unknown.
	Cardinality int `json:"loopCardinality,omitempty" yaml:"loopCardinality,omitempty"`
	// Maximum is the loopMaximum of a standard loop, 0 when unbounded.
	Maximum int `json:"loopMaximum,omitempty" yaml:"loopMaximum,omitempty"`
}

// Task represents any task type or a call activity
type Task struct {
	BaseElement `yaml:",inline"`
	Loop        *LoopCharacteristics `json:"loopCharacteristics,omitempty" yaml:"loopCharacteristics,omitempty"`
}

func (t *Task) Kind() Kind { return KindTask }
func (t *Task) isElement() {}

// Event represents start, end, intermediate and boundary events
type Event struct {
	BaseElement      `yaml:",inline"`
	EventDefinitions []string `json:"eventDefinitions,omitempty" yaml:"eventDefinitions,omitempty"`
	AttachedToRef    Ref      `json:"attachedToRef,omitempty" yaml:"attachedToRef,omitempty"`
	CancelActivity   *bool    `json:"cancelActivity,omitempty" yaml:"cancelActivity,omitempty"`
}

func (e *Event) Kind() Kind { return KindEvent }
func (e *Event) isElement() {}

// Interrupting returns cancelActivity, true when unspecified.
func (e *Event) Interrupting() bool {
	return e.CancelActivity == nil || *e.CancelActivity
}

// Gateway represents a control-flow gateway
type Gateway struct {
	BaseElement `yaml:",inline"`
	// DefaultRef references the gateway's structural default flow.
	DefaultRef Ref `json:"default,omitempty" yaml:"default,omitempty"`
}

func (g *Gateway) Kind() Kind { return KindGateway }
func (g *Gateway) isElement() {}

// SequenceFlow connects two flow nodes
type SequenceFlow struct {
	BaseElement `yaml:",inline"`
	SourceRef   Ref    `json:"sourceRef" yaml:"sourceRef"`
	TargetRef   Ref    `json:"targetRef" yaml:"targetRef"`
	Condition   string `json:"conditionExpression,omitempty" yaml:"conditionExpression,omitempty"`
}

func (f *SequenceFlow) Kind() Kind { return KindSequenceFlow }
func (f *SequenceFlow) isElement() {}

// SubProcess is an embedded process with its own flow elements
type SubProcess struct {
	BaseElement `yaml:",inline"`
	Elements    []Element            `json:"flowElements,omitempty" yaml:"-"`
	Expanded    *bool                `json:"isExpanded,omitempty" yaml:"isExpanded,omitempty"`
	Loop        *LoopCharacteristics `json:"loopCharacteristics,omitempty" yaml:"loopCharacteristics,omitempty"`
}

func (s *SubProcess) Kind() Kind { return KindSubProcess }
func (s *SubProcess) isElement() {}

// IsExpanded reports whether children are laid out on the timeline.
func (s *SubProcess) IsExpanded() bool {
	if s.Expanded != nil {
		return *s.Expanded
	}
	return true
}

// Unknown holds an element whose type tag is not recognised
type Unknown struct {
	BaseElement `yaml:",inline"`
}

func (u *Unknown) Kind() Kind { return KindUnknown }
func (u *Unknown) isElement() {}

// Visitor handles every element variant. Adding a variant adds a method,
// so every visitor must be updated before the code compiles again.
type Visitor[T any] interface {
	Task(task *Task) T
	Event(event *Event) T
	Gateway(gateway *Gateway) T
	SequenceFlow(flow *SequenceFlow) T
	SubProcess(subProcess *SubProcess) T
	Unknown(element *Unknown) T
}

// Match dispatches element to the visitor method of its variant.
func Match[T any](element Element, visitor Visitor[T]) T {
	switch actual := element.(type) {
	case *Task:
		return visitor.Task(actual)
	case *Event:
		return visitor.Event(actual)
	case *Gateway:
		return visitor.Gateway(actual)
	case *SequenceFlow:
		return visitor.SequenceFlow(actual)
	case *SubProcess:
		return visitor.SubProcess(actual)
	case *Unknown:
		return visitor.Unknown(actual)
	}
	panic("bpmn: unsupported element implementation")
}
