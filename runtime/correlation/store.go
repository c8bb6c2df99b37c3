package correlation

import (
	"strconv"
	"sync"
)

// Store keeps the open synchronization instances of every join gateway.
// Each gateway has a FIFO of rounds; an arriving source joins the oldest
// round that has not seen it yet, so loop iterations synchronize separately.
type Store[T any] struct {
	mu     sync.RWMutex
	rounds map[string][]*Arrival[T]
	// creation order across gateways
	order []*Arrival[T]
	seq   map[string]int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{rounds: map[string][]*Arrival[T]{}, seq: map[string]int{}}
}

// Open returns the round the next arrival of sourceID at the gateway
// belongs to, creating one when every open round already recorded it.
func (s *Store[T]) Open(requirement *Requirement, sourceID string) *Arrival[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	gatewayID := requirement.GatewayID
	for _, round := range s.rounds[gatewayID] {
		if !round.Has(sourceID) {
			return round
		}
	}
	s.seq[gatewayID]++
	round := NewArrival[T](gatewayID+"#"+strconv.Itoa(s.seq[gatewayID]), requirement)
	s.rounds[gatewayID] = append(s.rounds[gatewayID], round)
	s.order = append(s.order, round)
	return round
}

// Retire removes a fired round.
func (s *Store[T]) Retire(round *Arrival[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round.MarkFired()
	rounds := s.rounds[round.GatewayID]
	for i, candidate := range rounds {
		if candidate == round {
			s.rounds[round.GatewayID] = append(rounds[:i:i], rounds[i+1:]...)
			break
		}
	}
	if len(s.rounds[round.GatewayID]) == 0 {
		delete(s.rounds, round.GatewayID)
	}
	for i, candidate := range s.order {
		if candidate == round {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Pending returns open rounds in creation order.
func (s *Store[T]) Pending() []*Arrival[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Arrival[T](nil), s.order...)
}

// Get returns the open rounds of a gateway
func (s *Store[T]) Get(gatewayID string) []*Arrival[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Arrival[T](nil), s.rounds[gatewayID]...)
}

// Iterate executes fn for each open round under read lock.
func (s *Store[T]) Iterate(fn func(round *Arrival[T])) {
	s.mu.RLock()
	for _, round := range s.order {
		fn(round)
	}
	s.mu.RUnlock()
}
