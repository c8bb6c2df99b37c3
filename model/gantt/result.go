package gantt

// Severity grades a transformation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue describes an element that could not be fully represented.
type Issue struct {
	ElementID   string   `json:"elementId"`
	ElementType string   `json:"elementType"`
	ElementName string   `json:"elementName,omitempty"`
	Reason      string   `json:"reason"`
	Severity    Severity `json:"severity"`
}

// DurationType names what kind of element received a default duration.
type DurationType string

const (
	DurationTask         DurationType = "task"
	DurationEvent        DurationType = "event"
	DurationSequenceFlow DurationType = "sequenceFlow"
)

// DefaultDuration records an element for which a default duration was substituted.
type DefaultDuration struct {
	ElementID   string       `json:"elementId"`
	ElementType string       `json:"elementType"`
	ElementName string       `json:"elementName,omitempty"`
	Applied     int64        `json:"appliedDuration"`
	Type        DurationType `json:"durationType"`
}

// Result is the output of a transformation pass.
type Result struct {
	Elements         []Element          `json:"elements"`
	Dependencies     []*Dependency      `json:"dependencies"`
	Issues           []*Issue           `json:"issues"`
	DefaultDurations []*DefaultDuration `json:"defaultDurations"`
}

// Errors returns issues of error severity
func (r *Result) Errors() []*Issue { return r.filter(SeverityError) }

// Warnings returns issues of warning severity
func (r *Result) Warnings() []*Issue { return r.filter(SeverityWarning) }

func (r *Result) filter(severity Severity) []*Issue {
	var ret []*Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			ret = append(ret, issue)
		}
	}
	return ret
}

// Lookup returns the element with the supplied id, or nil.
func (r *Result) Lookup(id string) Element {
	for _, element := range r.Elements {
		if element.Common().ID == id {
			return element
		}
	}
	return nil
}

// Bounds returns the earliest start and latest end among elements with
// positive timestamps; ok is false when there is none.
func (r *Result) Bounds() (start, end int64, ok bool) {
	return Bounds(r.Elements)
}

// Bounds returns the time envelope of elements with positive timestamps.
func Bounds(elements []Element) (start, end int64, ok bool) {
	for _, element := range elements {
		s, e := element.Span()
		if s <= 0 {
			continue
		}
		if e < s {
			e = s
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > end {
			end = e
		}
		ok = true
	}
	return start, end, ok
}
