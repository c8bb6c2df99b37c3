package traversal

import (
	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
)

// Timing is the computed schedule of one element instance. Times are epoch
// milliseconds.
type Timing struct {
	ElementID      string       `json:"elementId"`
	Element        bpmn.Element `json:"-"`
	StartTime      int64        `json:"startTime"`
	EndTime        int64        `json:"endTime"`
	Duration       int64        `json:"duration"`
	PathID         string       `json:"pathId"`
	InstanceID     string       `json:"instanceId"`
	InstanceNumber int          `json:"instanceNumber"`
	IsLoopInstance bool         `json:"isLoopInstance,omitempty"`
	IsPathCutoff   bool         `json:"isPathCutoff,omitempty"`
	IsLoop         bool         `json:"isLoop,omitempty"`
	IsLoopCut      bool         `json:"isLoopCut,omitempty"`

	HierarchyLevel     int    `json:"hierarchyLevel,omitempty"`
	ParentSubProcessID string `json:"parentSubProcessId,omitempty"`
	// ParentInstanceID is the sub-process instance the timing was produced in.
	ParentInstanceID string `json:"parentInstanceId,omitempty"`

	// Incoming lists the flows that led to this instance.
	Incoming []Provenance `json:"incoming,omitempty"`
	// AttachedToInstanceID is the host activity instance of a boundary event.
	AttachedToInstanceID string `json:"attachedToInstanceId,omitempty"`
	// IsGroup marks an expanded sub-process envelope.
	IsGroup bool `json:"isGroup,omitempty"`
	// ChildInstanceIDs lists instances produced directly inside a group.
	ChildInstanceIDs []string `json:"childInstanceIds,omitempty"`
}

// Stats summarises a traversal pass.
type Stats struct {
	Visited  int `json:"visited"`
	Emitted  int `json:"emitted"`
	Absorbed int `json:"absorbed"`
	Fired    int `json:"fired"`
	CutOff   int `json:"cutOff"`
	Flushed  int `json:"flushed"`
}

// Result holds the timings of a pass in emission order.
type Result struct {
	Timings          []*Timing                `json:"timings"`
	Issues           []*gantt.Issue           `json:"issues,omitempty"`
	DefaultDurations []*gantt.DefaultDuration `json:"defaultDurations,omitempty"`
	Stats            Stats                    `json:"stats"`
}

// InstancesOf returns the timings of one element in emission order.
func (r *Result) InstancesOf(elementID string) []*Timing {
	var ret []*Timing
	for _, timing := range r.Timings {
		if timing.ElementID == elementID {
			ret = append(ret, timing)
		}
	}
	return ret
}

// Counts returns the number of instances per element id.
func (r *Result) Counts() map[string]int {
	ret := map[string]int{}
	for _, timing := range r.Timings {
		ret[timing.ElementID]++
	}
	return ret
}
