package bpmn

// Index provides lookups over the flow elements of one scope (a process or
// a sub-process). Lists keep document order.
type Index struct {
	Elements []Element
	byID     map[string]Element
	outgoing map[string][]*SequenceFlow
	incoming map[string][]*SequenceFlow
	boundary map[string][]*Event
	order    map[string]int
}

// NewIndex indexes the elements of a single scope; nested sub-process
// children are not included.
func NewIndex(elements []Element) *Index {
	ret := &Index{
		Elements: elements,
		byID:     make(map[string]Element, len(elements)),
		outgoing: map[string][]*SequenceFlow{},
		incoming: map[string][]*SequenceFlow{},
		boundary: map[string][]*Event{},
		order:    make(map[string]int, len(elements)),
	}
	for i, element := range elements {
		if element == nil {
			continue
		}
		id := element.Base().ID
		if _, ok := ret.byID[id]; !ok {
			ret.byID[id] = element
			ret.order[id] = i
		}
		switch actual := element.(type) {
		case *SequenceFlow:
			if source := ExtractSourceID(actual); source != "" {
				ret.outgoing[source] = append(ret.outgoing[source], actual)
			}
			if target := ExtractTargetID(actual); target != "" {
				ret.incoming[target] = append(ret.incoming[target], actual)
			}
		case *Event:
			if actual.IsBoundary() {
				if host := ExtractAttachedToID(actual); host != "" {
					ret.boundary[host] = append(ret.boundary[host], actual)
				}
			}
		}
	}
	return ret
}

// Lookup returns the element with the supplied id
func (i *Index) Lookup(id string) (Element, bool) {
	element, ok := i.byID[id]
	return element, ok
}

// Outgoing returns flows leaving the element
func (i *Index) Outgoing(id string) []*SequenceFlow { return i.outgoing[id] }

// Incoming returns flows entering the element
func (i *Index) Incoming(id string) []*SequenceFlow { return i.incoming[id] }

// Boundary returns boundary events attached to the activity
func (i *Index) Boundary(id string) []*Event { return i.boundary[id] }

// Position returns the document position of the element, -1 when unknown.
func (i *Index) Position(id string) int {
	if pos, ok := i.order[id]; ok {
		return pos
	}
	return -1
}

// IsGateway reports whether id refers to a gateway in this scope.
func (i *Index) IsGateway(id string) bool {
	element, ok := i.byID[id]
	return ok && element.Kind() == KindGateway
}

// StartElements returns the traversal seeds of the scope: every start event,
// or when there is none, every flow node without incoming flows. A connected
// component without such a node (a pure cycle) is seeded at its first
// element in document order. Boundary events are never seeds.
func (i *Index) StartElements() []Element {
	var starts []Element
	for _, element := range i.Elements {
		if event, ok := element.(*Event); ok && event.IsStart() {
			starts = append(starts, element)
		}
	}
	if len(starts) > 0 {
		return starts
	}
	for _, element := range i.Elements {
		if element == nil || element.Kind() == KindSequenceFlow {
			continue
		}
		if event, ok := element.(*Event); ok && event.IsBoundary() {
			continue
		}
		if len(i.incoming[element.Base().ID]) == 0 {
			starts = append(starts, element)
		}
	}
	covered := map[string]bool{}
	for _, start := range starts {
		i.connect(start.Base().ID, covered)
	}
	for _, element := range i.Elements {
		if element == nil || element.Kind() == KindSequenceFlow {
			continue
		}
		if event, ok := element.(*Event); ok && event.IsBoundary() {
			continue
		}
		if id := element.Base().ID; !covered[id] {
			starts = append(starts, element)
			i.connect(id, covered)
		}
	}
	return starts
}

// connect marks every element reachable from id over flows in either direction.
func (i *Index) connect(id string, covered map[string]bool) {
	pending := []string{id}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if covered[current] {
			continue
		}
		covered[current] = true
		for _, flow := range i.outgoing[current] {
			pending = append(pending, ExtractTargetID(flow))
		}
		for _, flow := range i.incoming[current] {
			pending = append(pending, ExtractSourceID(flow))
		}
		for _, event := range i.boundary[current] {
			pending = append(pending, event.ID)
		}
	}
}

// Walk visits every element of the scope and of nested sub-processes depth-first.
func Walk(elements []Element, visit func(element Element, parent *SubProcess, depth int) bool) {
	walk(elements, nil, 0, visit)
}

func walk(elements []Element, parent *SubProcess, depth int, visit func(Element, *SubProcess, int) bool) bool {
	for _, element := range elements {
		if element == nil {
			continue
		}
		if !visit(element, parent, depth) {
			return false
		}
		if sub, ok := element.(*SubProcess); ok {
			if !walk(sub.Elements, sub, depth+1, visit) {
				return false
			}
		}
	}
	return true
}
