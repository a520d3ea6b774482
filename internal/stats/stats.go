// Package stats keeps rolling-window latency aggregates for page renders
// and site builds.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	micros    int64
}

// Snapshot is a point-in-time aggregate of latency samples, in microseconds.
type Snapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// Latency tracks recent operation latencies within a rolling window.
type Latency struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewLatency(maxAge time.Duration) *Latency {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Latency{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one sample. Negative durations count as zero.
func (s *Latency) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, micros: us})
}

// Since records the time elapsed since start.
func (s *Latency) Since(start time.Time) {
	s.Record(s.now().Sub(start))
}

func (s *Latency) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return Snapshot{}
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.micros)
		sum += sm.micros
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

func (s *Latency) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + ((hi - lo) * weight)
}

// Registry holds one Latency per operation name.
type Registry struct {
	mu     sync.Mutex
	maxAge time.Duration
	byName map[string]*Latency
}

func NewRegistry(maxAge time.Duration) *Registry {
	return &Registry{maxAge: maxAge, byName: make(map[string]*Latency)}
}

// For returns the tracker for name, creating it on first use.
func (r *Registry) For(name string) *Latency {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byName[name]
	if !ok {
		l = NewLatency(r.maxAge)
		r.byName[name] = l
	}
	return l
}

// Snapshots returns a snapshot per tracked operation.
func (r *Registry) Snapshots() map[string]Snapshot {
	r.mu.Lock()
	names := make(map[string]*Latency, len(r.byName))
	for k, v := range r.byName {
		names[k] = v
	}
	r.mu.Unlock()

	out := make(map[string]Snapshot, len(names))
	for k, v := range names {
		out[k] = v.Snapshot()
	}
	return out
}
