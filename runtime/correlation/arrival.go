package correlation

// Arrival represents one synchronization instance of a join gateway: the
// rendezvous of the token arrivals belonging to the same round. T is the
// caller's per-arrival payload (e.g. the path state of the arriving token).
type Arrival[T any] struct {
	ID        string
	GatewayID string
	Expected  int

	requirement *Requirement
	// arrived holds required sources in arrival order
	arrived []string
	// completion times of every recorded arrival, required or not
	completion map[string]int64
	payloads   []T
	fired      bool
}

// NewArrival creates a synchronization instance for the requirement
func NewArrival[T any](id string, requirement *Requirement) *Arrival[T] {
	return &Arrival[T]{
		ID:          id,
		GatewayID:   requirement.GatewayID,
		Expected:    requirement.Expected(),
		requirement: requirement,
		completion:  map[string]int64{},
	}
}

// Has reports whether sourceID was already recorded in this round.
func (a *Arrival[T]) Has(sourceID string) bool {
	_, ok := a.completion[sourceID]
	return ok
}

// Record registers the arrival of sourceID completed at time and returns
// true when the rendezvous condition is satisfied. Sources outside the
// requirement contribute their completion time but never readiness.
func (a *Arrival[T]) Record(sourceID string, time int64, payload T) (ready bool) {
	if sourceID == "" {
		sourceID = "unknown"
	}
	if _, seen := a.completion[sourceID]; !seen && a.requirement.Requires(sourceID) {
		a.arrived = append(a.arrived, sourceID)
	}
	a.completion[sourceID] = time
	a.payloads = append(a.payloads, payload)
	return a.Ready()
}

// Ready reports whether every required source has arrived.
func (a *Arrival[T]) Ready() bool {
	return len(a.arrived) >= a.Expected
}

// Arrived returns required sources recorded so far, in arrival order
func (a *Arrival[T]) Arrived() []string {
	return append([]string(nil), a.arrived...)
}

// SyncTime returns the latest completion time among recorded arrivals.
func (a *Arrival[T]) SyncTime() int64 {
	var ret int64
	first := true
	for _, t := range a.completion {
		if first || t > ret {
			ret = t
			first = false
		}
	}
	return ret
}

// Payloads returns the payloads of all recorded arrivals in arrival order.
func (a *Arrival[T]) Payloads() []T {
	return append([]T(nil), a.payloads...)
}

// MarkFired flags the round as consumed.
func (a *Arrival[T]) MarkFired() { a.fired = true }

// Fired reports whether the round was consumed.
func (a *Arrival[T]) Fired() bool { return a.fired }
