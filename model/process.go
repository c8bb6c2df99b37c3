package model

import (
	"fmt"

	"github.com/viant/flowline/model/bpmn"
)

// Source describes where a process definition was loaded from
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Process represents a parsed BPMN process: its flow elements, with
// sub-process children nested under their parents.
type Process struct {
	Source   *Source        `json:"source,omitempty" yaml:"source,omitempty"`
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Elements []bpmn.Element `json:"flowElements" yaml:"-"`
}

// NewProcess creates an empty process
func NewProcess(id string) *Process {
	return &Process{ID: id}
}

// Add appends flow elements
func (p *Process) Add(elements ...bpmn.Element) *Process {
	p.Elements = append(p.Elements, elements...)
	return p
}

// Lookup finds an element by id at any nesting level
func (p *Process) Lookup(id string) bpmn.Element {
	var ret bpmn.Element
	bpmn.Walk(p.Elements, func(element bpmn.Element, _ *bpmn.SubProcess, _ int) bool {
		if element.Base().ID == id {
			ret = element
			return false
		}
		return true
	})
	return ret
}

// Flatten returns all elements including nested sub-process children.
func (p *Process) Flatten() []bpmn.Element {
	var ret []bpmn.Element
	bpmn.Walk(p.Elements, func(element bpmn.Element, _ *bpmn.SubProcess, _ int) bool {
		ret = append(ret, element)
		return true
	})
	return ret
}

// Validate performs a structural check of the process. Dangling flow
// references are not reported: a partial graph is still renderable.
func (p *Process) Validate() []error {
	var issues []error
	if len(p.Elements) == 0 {
		issues = append(issues, fmt.Errorf("process %s has no flow elements", p.ID))
		return issues
	}
	seen := map[string]bool{}
	bpmn.Walk(p.Elements, func(element bpmn.Element, parent *bpmn.SubProcess, _ int) bool {
		id := element.Base().ID
		switch {
		case id == "":
			if parent != nil {
				issues = append(issues, fmt.Errorf("element of type %s in %s has no id", element.Base().Type, parent.ID))
			} else {
				issues = append(issues, fmt.Errorf("element of type %s has no id", element.Base().Type))
			}
		case seen[id]:
			issues = append(issues, fmt.Errorf("duplicate element id %s", id))
		}
		seen[id] = true
		if flow, ok := element.(*bpmn.SequenceFlow); ok {
			if bpmn.ExtractSourceID(flow) == "" || bpmn.ExtractTargetID(flow) == "" {
				issues = append(issues, fmt.Errorf("sequence flow %s has an unresolvable source or target", id))
			}
		}
		return true
	})
	return issues
}
