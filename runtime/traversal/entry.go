package traversal

// Provenance identifies the flow and source instance a token came from.
type Provenance struct {
	FlowID           string `json:"flowId,omitempty"`
	SourceElementID  string `json:"sourceElementId,omitempty"`
	SourceInstanceID string `json:"sourceInstanceId,omitempty"`
}

// Entry is a worklist item: a token about to enter ElementID on a path.
type Entry struct {
	ElementID   string
	PathKey     string
	CurrentTime int64
	// Visited is the ordered sequence of elements the path went through.
	Visited []string
	// PathVisits counts how many times the path left each element.
	PathVisits map[string]int

	SourceInstanceID string
	FlowID           string
	SourceElementID  string

	// merged holds the provenance of every token folded into this entry at a join
	merged []Provenance
}

func seed(elementID, pathKey string, at int64) *Entry {
	return &Entry{
		ElementID:   elementID,
		PathKey:     pathKey,
		CurrentTime: at,
		PathVisits:  map[string]int{},
	}
}

// Visits returns how many times the path already passed through elementID.
func (e *Entry) Visits(elementID string) int {
	return e.PathVisits[elementID]
}

// Provenance returns where the token came from; joins report every merged arrival.
func (e *Entry) Provenance() []Provenance {
	if len(e.merged) > 0 {
		return e.merged
	}
	if e.FlowID == "" && e.SourceInstanceID == "" {
		return nil
	}
	return []Provenance{{FlowID: e.FlowID, SourceElementID: e.SourceElementID, SourceInstanceID: e.SourceInstanceID}}
}

// advance returns the entry for the next element after leaving the current one.
func (e *Entry) advance(targetID, pathKey string, at int64, from Provenance) *Entry {
	visited := make([]string, len(e.Visited), len(e.Visited)+1)
	copy(visited, e.Visited)
	visits := make(map[string]int, len(e.PathVisits)+1)
	for k, v := range e.PathVisits {
		visits[k] = v
	}
	visited = append(visited, e.ElementID)
	visits[e.ElementID]++
	return &Entry{
		ElementID:        targetID,
		PathKey:          pathKey,
		CurrentTime:      at,
		Visited:          visited,
		PathVisits:       visits,
		SourceInstanceID: from.SourceInstanceID,
		FlowID:           from.FlowID,
		SourceElementID:  from.SourceElementID,
	}
}

// merge folds the arrivals of a join round into one entry that starts at at.
// Visit counters take the per-element maximum; the visited sequence comes
// from the latest arrival.
func merge(elementID string, at int64, arrivals []*Entry) *Entry {
	ret := &Entry{ElementID: elementID, CurrentTime: at, PathVisits: map[string]int{}}
	var latest *Entry
	for _, arrival := range arrivals {
		if ret.PathKey == "" {
			ret.PathKey = arrival.PathKey
		}
		if latest == nil || arrival.CurrentTime > latest.CurrentTime {
			latest = arrival
		}
		for k, v := range arrival.PathVisits {
			if v > ret.PathVisits[k] {
				ret.PathVisits[k] = v
			}
		}
		ret.merged = append(ret.merged, arrival.Provenance()...)
	}
	if latest != nil {
		ret.Visited = append([]string(nil), latest.Visited...)
		ret.SourceElementID = latest.SourceElementID
		ret.SourceInstanceID = latest.SourceInstanceID
		ret.FlowID = latest.FlowID
	}
	return ret
}
