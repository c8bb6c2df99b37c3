package bpmn

// NewTask creates a task; typeTag defaults to bpmn:Task.
func NewTask(id string, typeTag ...string) *Task {
	ret := &Task{BaseElement: BaseElement{ID: id, Type: TypeTask}}
	if len(typeTag) > 0 {
		ret.Type = typeTag[0]
	}
	return ret
}

// NewEvent creates an event of the supplied type
func NewEvent(id, typeTag string, definitions ...string) *Event {
	return &Event{BaseElement: BaseElement{ID: id, Type: typeTag}, EventDefinitions: definitions}
}

// NewBoundaryEvent creates a boundary event attached to the activity
func NewBoundaryEvent(id, attachedTo string, interrupting bool, definitions ...string) *Event {
	ret := NewEvent(id, TypeBoundaryEvent, definitions...)
	ret.AttachedToRef = attachedTo
	ret.CancelActivity = &interrupting
	return ret
}

// NewGateway creates a gateway of the supplied type
func NewGateway(id, typeTag string) *Gateway {
	return &Gateway{BaseElement: BaseElement{ID: id, Type: typeTag}}
}

// NewFlow creates a sequence flow
func NewFlow(id, source, target string) *SequenceFlow {
	return &SequenceFlow{BaseElement: BaseElement{ID: id, Type: TypeSequenceFlow}, SourceRef: source, TargetRef: target}
}

// NewSubProcess creates an expanded sub-process holding the supplied children
func NewSubProcess(id string, children ...Element) *SubProcess {
	return &SubProcess{BaseElement: BaseElement{ID: id, Type: TypeSubProcess}, Elements: children}
}

func (b *BaseElement) setDuration(value string) {
	b.Extensions = &Extensions{Values: []*Extension{{
		Type:                "proceed:Meta",
		TimePlannedDuration: &ExtensionValue{Value: value},
	}}}
}

// WithName sets the task name
func (t *Task) WithName(name string) *Task { t.Name = name; return t }

// WithDuration sets the planned ISO-8601 duration
func (t *Task) WithDuration(value string) *Task { t.setDuration(value); return t }

// WithLoop sets loop characteristics
func (t *Task) WithLoop(loop *LoopCharacteristics) *Task { t.Loop = loop; return t }

// WithName sets the event name
func (e *Event) WithName(name string) *Event { e.Name = name; return e }

// WithDuration sets the planned ISO-8601 duration
func (e *Event) WithDuration(value string) *Event { e.setDuration(value); return e }

// WithName sets the gateway name
func (g *Gateway) WithName(name string) *Gateway { g.Name = name; return g }

// WithDuration sets the planned ISO-8601 duration
func (g *Gateway) WithDuration(value string) *Gateway { g.setDuration(value); return g }

// WithDefault sets the structural default flow
func (g *Gateway) WithDefault(flowID string) *Gateway { g.DefaultRef = flowID; return g }

// WithName sets the flow name
func (f *SequenceFlow) WithName(name string) *SequenceFlow { f.Name = name; return f }

// WithCondition sets the condition expression
func (f *SequenceFlow) WithCondition(expr string) *SequenceFlow { f.Condition = expr; return f }

// WithDuration sets the planned transit duration
func (f *SequenceFlow) WithDuration(value string) *SequenceFlow { f.setDuration(value); return f }

// WithName sets the sub-process name
func (s *SubProcess) WithName(name string) *SubProcess { s.Name = name; return s }

// WithDuration sets the planned duration used when the sub-process has no children
func (s *SubProcess) WithDuration(value string) *SubProcess { s.setDuration(value); return s }

// WithExpanded sets whether children are laid out on the timeline
func (s *SubProcess) WithExpanded(expanded bool) *SubProcess { s.Expanded = &expanded; return s }
