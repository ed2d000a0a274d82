package pps

// Package pps monitors a GNSS pulse-per-second output wired to a GPIO
// line. The pulse edge is only observed, never timestamped against the
// NMEA stream here; consumers correlate via the status snapshot.

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	// Chip is the GPIO character device, e.g. /dev/gpiochip0.
	Chip string
	// Pin is the BCM line number carrying the PPS edge.
	Pin int
}

type Snapshot struct {
	Enabled bool   `json:"enabled"`
	Chip    string `json:"chip,omitempty"`
	Pin     int    `json:"pin,omitempty"`

	Pulses       uint64 `json:"pulses"`
	LastPulseUTC string `json:"last_pulse_utc,omitempty"`
	// IntervalMS is the spacing of the last two pulses; a healthy PPS sits
	// at ~1000.
	IntervalMS *float64 `json:"interval_ms,omitempty"`

	LastError string `json:"last_error,omitempty"`
}

type Service struct {
	cfg Config

	last atomic.Value // Snapshot

	mu        sync.Mutex
	closer    func() error
	lastPulse time.Time
}

func New(cfg Config) *Service {
	s := &Service{cfg: cfg}
	s.last.Store(Snapshot{Enabled: true, Chip: cfg.Chip, Pin: cfg.Pin})
	return s
}

// Start requests the GPIO line and begins counting rising edges.
// Best-effort: on unsupported platforms or missing hardware it records the
// error in the snapshot and returns it; the caller may treat that as
// non-fatal.
func (s *Service) Start() error {
	if s == nil {
		return fmt.Errorf("pps service is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer != nil {
		return nil
	}

	closer, err := watchLine(s.cfg, s.onPulse)
	if err != nil {
		s.setError(err.Error())
		return err
	}
	s.closer = closer
	return nil
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	closer := s.closer
	s.closer = nil
	s.mu.Unlock()
	if closer != nil {
		_ = closer()
	}
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

// onPulse is invoked from the GPIO event goroutine, one call per rising
// edge.
func (s *Service) onPulse(nowUTC time.Time) {
	s.mu.Lock()
	prev := s.lastPulse
	s.lastPulse = nowUTC
	s.mu.Unlock()

	cur := s.Snapshot()
	cur.Pulses++
	cur.LastPulseUTC = nowUTC.Format(time.RFC3339Nano)
	if !prev.IsZero() {
		ms := float64(nowUTC.Sub(prev)) / float64(time.Millisecond)
		cur.IntervalMS = &ms
	}
	s.last.Store(cur)
}

func (s *Service) setError(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	s.last.Store(cur)
}
