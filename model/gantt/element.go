package gantt

import "encoding/json"

// ElementType discriminates visual element variants.
type ElementType string

const (
	TypeTask      ElementType = "task"
	TypeMilestone ElementType = "milestone"
	TypeGroup     ElementType = "group"
)

// Element is a renderer-agnostic timeline primitive: Task, Milestone or Group.
type Element interface {
	// Common returns the fields shared by all variants.
	Common() *Base
	// Type returns the variant tag.
	Type() ElementType
	// Span returns the start and end timestamps in epoch milliseconds; end
	// equals start for point milestones.
	Span() (start, end int64)
	isElement()
}

// Occurrence is an alternate instance of an element rendered as a ghost.
type Occurrence struct {
	Start      int64  `json:"start"`
	End        int64  `json:"end"`
	InstanceID string `json:"instanceId"`
}

// Lane carries swim-lane metadata.
type Lane struct {
	ID    string `json:"laneId"`
	Name  string `json:"laneName,omitempty"`
	Level int    `json:"laneLevel,omitempty"`
}

// Base holds fields shared by all elements. Timestamps are epoch milliseconds.
type Base struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Start int64  `json:"start"`
	Color string `json:"color,omitempty"`
	// TypeLabel is the human readable BPMN type, e.g. "User Task".
	TypeLabel string `json:"elementType,omitempty"`

	// SourceID is the id of the BPMN element this primitive was built from.
	SourceID   string `json:"sourceElementId,omitempty"`
	InstanceID string `json:"instanceId,omitempty"`

	InstanceNumber int  `json:"instanceNumber,omitempty"`
	TotalInstances int  `json:"totalInstances,omitempty"`
	IsPathCutoff   bool `json:"isPathCutoff,omitempty"`
	IsLoop         bool `json:"isLoop,omitempty"`
	IsLoopCut      bool `json:"isLoopCut,omitempty"`

	HierarchyLevel     int    `json:"hierarchyLevel,omitempty"`
	ParentSubProcessID string `json:"parentSubProcessId,omitempty"`

	Lane *Lane `json:"lane,omitempty"`

	GhostOccurrences []Occurrence `json:"ghostOccurrences,omitempty"`
}

func (b *Base) Common() *Base { return b }

// Task is a bar spanning start to end
type Task struct {
	Base
	End int64 `json:"end"`
}

func (t *Task) Type() ElementType { return TypeTask }
func (t *Task) Span() (int64, int64) { return t.Start, t.End }
func (t *Task) isElement() {}
func (t *Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{TypeTask, (*alias)(t)})
}

// Milestone is a diamond; with End set it depicts a range.
type Milestone struct {
	Base
	End             *int64 `json:"end,omitempty"`
	IsBoundaryEvent bool   `json:"isBoundaryEvent,omitempty"`
	AttachedToID    string `json:"attachedToId,omitempty"`
	CancelActivity  *bool  `json:"cancelActivity,omitempty"`
}

func (m *Milestone) Type() ElementType { return TypeMilestone }
func (m *Milestone) isElement() {}

func (m *Milestone) Span() (int64, int64) {
	if m.End == nil {
		return m.Start, m.Start
	}
	return m.Start, *m.End
}

// HasRange reports whether the milestone spans a non-empty range.
func (m *Milestone) HasRange() bool {
	return m.End != nil && *m.End != m.Start
}

func (m *Milestone) MarshalJSON() ([]byte, error) {
	type alias Milestone
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{TypeMilestone, (*alias)(m)})
}

// Group is a bracket enclosing its children, e.g. an expanded sub-process.
type Group struct {
	Base
	End          int64    `json:"end"`
	ChildIDs     []string `json:"childIds"`
	IsExpanded   bool     `json:"isExpanded,omitempty"`
	IsSubProcess bool     `json:"isSubProcess,omitempty"`
	HasChildren  bool     `json:"hasChildren,omitempty"`
}

func (g *Group) Type() ElementType { return TypeGroup }
func (g *Group) Span() (int64, int64) { return g.Start, g.End }
func (g *Group) isElement() {}
func (g *Group) MarshalJSON() ([]byte, error) {
	type alias Group
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{TypeGroup, (*alias)(g)})
}

// Visitor handles every element variant.
type Visitor[T any] interface {
	Task(task *Task) T
	Milestone(milestone *Milestone) T
	Group(group *Group) T
}

// Match dispatches element to the visitor method of its variant.
func Match[T any](element Element, visitor Visitor[T]) T {
	switch actual := element.(type) {
	case *Task:
		return visitor.Task(actual)
	case *Milestone:
		return visitor.Milestone(actual)
	case *Group:
		return visitor.Group(actual)
	}
	panic("gantt: unsupported element implementation")
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
