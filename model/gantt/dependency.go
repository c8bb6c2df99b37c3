package gantt

// DependencyType is the scheduling relation drawn by an arrow.
type DependencyType string

const (
	FinishToStart DependencyType = "finish-to-start"
	StartToStart  DependencyType = "start-to-start"
)

// FlowType classifies the BPMN connection behind a dependency.
type FlowType string

const (
	FlowNormal                  FlowType = "normal"
	FlowConditional             FlowType = "conditional"
	FlowDefault                 FlowType = "default"
	FlowMessage                 FlowType = "message"
	FlowBoundary                FlowType = "boundary"
	FlowBoundaryNonInterrupting FlowType = "boundary-non-interrupting"
)

// Dependency is an arrow between two elements. SourceID and TargetID must
// name elements of the same result to be drawable.
type Dependency struct {
	ID               string         `json:"id"`
	SourceID         string         `json:"sourceId"`
	TargetID         string         `json:"targetId"`
	Type             DependencyType `json:"type"`
	Name             string         `json:"name,omitempty"`
	FlowType         FlowType       `json:"flowType,omitempty"`
	IsGhost          bool           `json:"isGhost,omitempty"`
	SourceInstanceID string         `json:"sourceInstanceId,omitempty"`
	TargetInstanceID string         `json:"targetInstanceId,omitempty"`
	IsBoundaryEvent  bool           `json:"isBoundaryEvent,omitempty"`
}

// Outgoing returns the dependencies leaving sourceID
func Outgoing(dependencies []*Dependency, sourceID string) []*Dependency {
	var ret []*Dependency
	for _, dependency := range dependencies {
		if dependency.SourceID == sourceID {
			ret = append(ret, dependency)
		}
	}
	return ret
}
