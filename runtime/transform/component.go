package transform

import (
	"sort"

	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
)

// Palette holds the component colors, assigned by component id modulo its size.
var Palette = []string{
	"#3b82f6",
	"#10b981",
	"#8b5cf6",
	"#f97316",
	"#ef4444",
	"#06b6d4",
	"#eab308",
	"#ec4899",
}

// FindConnectedComponents partitions the non-flow elements of the process,
// nested ones included, into components connected by sequence flows.
// Sub-processes are connected to their children. Component ids follow the
// order in which elements are first met.
func FindConnectedComponents(elements []bpmn.Element) map[string]int {
	var nodes []string
	adjacency := map[string][]string{}
	var flows []*bpmn.SequenceFlow
	bpmn.Walk(elements, func(element bpmn.Element, parent *bpmn.SubProcess, _ int) bool {
		if flow, ok := element.(*bpmn.SequenceFlow); ok {
			flows = append(flows, flow)
			return true
		}
		id := element.Base().ID
		if _, ok := adjacency[id]; !ok {
			adjacency[id] = nil
			nodes = append(nodes, id)
		}
		if parent != nil {
			adjacency[id] = append(adjacency[id], parent.ID)
			adjacency[parent.ID] = append(adjacency[parent.ID], id)
		}
		return true
	})
	for _, flow := range flows {
		source, target := bpmn.ExtractSourceID(flow), bpmn.ExtractTargetID(flow)
		_, hasSource := adjacency[source]
		_, hasTarget := adjacency[target]
		if source == "" || target == "" || !hasSource || !hasTarget {
			continue
		}
		adjacency[source] = append(adjacency[source], target)
		adjacency[target] = append(adjacency[target], source)
	}

	ret := make(map[string]int, len(nodes))
	component := 0
	for _, node := range nodes {
		if _, ok := ret[node]; ok {
			continue
		}
		stack := []string{node}
		ret[node] = component
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, neighbor := range adjacency[current] {
				if _, ok := ret[neighbor]; ok {
					continue
				}
				ret[neighbor] = component
				stack = append(stack, neighbor)
			}
		}
		component++
	}
	return ret
}

// AssignColors maps element ids onto palette colors by component.
func AssignColors(components map[string]int) map[string]string {
	ret := make(map[string]string, len(components))
	for id, component := range components {
		ret[id] = Palette[component%len(Palette)]
	}
	return ret
}

// GroupAndSort groups elements by component, orders each group by traversal
// position or by start time, and orders groups by their earliest start.
// Elements without a component share one trailing group key.
func GroupAndSort(elements []gantt.Element, components map[string]int, chronological bool) []gantt.Element {
	type group struct {
		earliest int64
		first    int
		members  []gantt.Element
	}
	groups := map[int]*group{}
	var keys []int
	for i, element := range elements {
		base := element.Common()
		key, ok := components[base.SourceID]
		if !ok {
			if key, ok = components[base.ID]; !ok {
				key = -1
			}
		}
		g, ok := groups[key]
		if !ok {
			g = &group{earliest: base.Start, first: i}
			groups[key] = g
			keys = append(keys, key)
		}
		if base.Start < g.earliest {
			g.earliest = base.Start
		}
		g.members = append(g.members, element)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := groups[keys[i]], groups[keys[j]]
		if a.earliest != b.earliest {
			return a.earliest < b.earliest
		}
		return a.first < b.first
	})
	ret := make([]gantt.Element, 0, len(elements))
	for _, key := range keys {
		members := groups[key].members
		if chronological {
			sort.SliceStable(members, func(i, j int) bool {
				return members[i].Common().Start < members[j].Common().Start
			})
		}
		ret = append(ret, members...)
	}
	return ret
}
