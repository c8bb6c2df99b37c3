package correlation

import (
	"sort"

	"github.com/viant/flowline/model/bpmn"
)

// Requirement lists the upstream sources a join gateway waits for.
type Requirement struct {
	GatewayID   string
	GatewayType string
	// RequiredSources holds ids of non-gateway elements feeding the join.
	RequiredSources map[string]bool
}

// Expected returns the number of sources that must arrive before the gateway fires.
func (r *Requirement) Expected() int { return len(r.RequiredSources) }

// Requires reports whether sourceID counts toward readiness.
func (r *Requirement) Requires(sourceID string) bool { return r.RequiredSources[sourceID] }

// Sources returns the required source ids in lexical order
func (r *Requirement) Sources() []string {
	ret := make([]string, 0, len(r.RequiredSources))
	for id := range r.RequiredSources {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

// Requirements maps gateway id to its synchronization requirement.
type Requirements map[string]*Requirement

// BuildRequirements computes the synchronization requirements of a scope.
// Only parallel and inclusive gateways with more than one incoming flow and
// at least one outgoing flow synchronize. Requirements are keyed by the
// gateway's own id; sources that are gateways themselves are left out.
func BuildRequirements(elements []bpmn.Element) Requirements {
	return Plan(bpmn.NewIndex(elements))
}

// Plan computes requirements over an indexed scope
func Plan(index *bpmn.Index) Requirements {
	ret := Requirements{}
	for _, element := range index.Elements {
		gateway, ok := element.(*bpmn.Gateway)
		if !ok || !gateway.GatewayKind().Synchronizes() {
			continue
		}
		incoming := index.Incoming(gateway.ID)
		if len(incoming) < 2 || len(index.Outgoing(gateway.ID)) == 0 {
			continue
		}
		requirement := &Requirement{
			GatewayID:       gateway.ID,
			GatewayType:     gateway.Type,
			RequiredSources: map[string]bool{},
		}
		for _, flow := range incoming {
			sourceID := bpmn.ExtractSourceID(flow)
			if sourceID == "" {
				continue
			}
			source, found := index.Lookup(sourceID)
			if !found || source.Kind() == bpmn.KindGateway {
				continue
			}
			requirement.RequiredSources[sourceID] = true
		}
		ret[gateway.ID] = requirement
	}
	return ret
}
