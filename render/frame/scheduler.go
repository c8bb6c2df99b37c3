package frame

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when requesting a frame from a closed scheduler.
var ErrClosed = errors.New("frame: scheduler closed")

// Frame paints one frame.
type Frame func(ctx context.Context)

// Config represents scheduler configuration
type Config struct {
	// Interval is the frame period, about 60 frames per second by default.
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{Interval: 16 * time.Millisecond}
}

// Stats counts scheduler activity.
type Stats struct {
	Requested int `json:"requested"`
	// Coalesced counts frames replaced or canceled before painting.
	Coalesced int `json:"coalesced"`
	Painted   int `json:"painted"`
}

type request struct {
	id    uint64
	frame Frame
}

// Scheduler coalesces frame requests: a request replaces any frame still
// pending, so only the latest one paints. Frames never run concurrently.
type Scheduler struct {
	config     Config
	mux        sync.Mutex
	running    sync.Mutex
	pending    *request
	seq        uint64
	stats      Stats
	closed     bool
	shutdownCh chan struct{}
	wakeCh     chan struct{}
}

// New creates a scheduler
func New(config Config) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &Scheduler{config: config, shutdownCh: make(chan struct{}), wakeCh: make(chan struct{}, 1)}
}

// Request schedules frame for the next tick, canceling the pending one.
func (s *Scheduler) Request(frame Frame) (uint64, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	s.seq++
	s.stats.Requested++
	if s.pending != nil {
		s.stats.Coalesced++
	}
	s.pending = &request{id: s.seq, frame: frame}
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
	return s.seq, nil
}

// Cancel drops the pending frame if its id matches.
func (s *Scheduler) Cancel(id uint64) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.pending == nil || s.pending.id != id {
		return false
	}
	s.pending = nil
	s.stats.Coalesced++
	return true
}

// Pending reports whether a frame waits to be painted.
func (s *Scheduler) Pending() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.pending != nil
}

// Flush paints the pending frame synchronously; it reports whether one ran.
func (s *Scheduler) Flush(ctx context.Context) bool {
	s.running.Lock()
	defer s.running.Unlock()
	s.mux.Lock()
	next := s.pending
	s.pending = nil
	s.mux.Unlock()
	if next == nil {
		return false
	}
	next.frame(ctx)
	s.mux.Lock()
	s.stats.Painted++
	s.mux.Unlock()
	return true
}

// Start paints pending frames on every tick until ctx is done or Close is called.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.shutdownCh:
			return nil
		case <-ticker.C:
			s.Flush(ctx)
		}
	}
}

// Wake returns a channel signalled after each request; it lets callers
// without a running loop flush on demand.
func (s *Scheduler) Wake() <-chan struct{} { return s.wakeCh }

// Stats returns a snapshot of the counters
func (s *Scheduler) Stats() Stats {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.stats
}

// Close cancels the pending frame and stops Start.
func (s *Scheduler) Close() {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.pending != nil {
		s.pending = nil
		s.stats.Coalesced++
	}
	close(s.shutdownCh)
}
