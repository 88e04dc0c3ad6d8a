package domain

import (
	"sort"
	"sync"
)

// HostStats holds per-host counters of task outcomes. Accumulated
// across tasks, used only for the end-of-run recap, never persisted.
type HostStats struct {
	OK          int
	Changed     int
	Unreachable int
	Failures    int
}

// RunStats is the aggregated statistics collector for a run. It is the
// only mutable state shared between host workers, so every update is
// serialized through the mutex.
type RunStats struct {
	mu    sync.Mutex
	hosts map[InternedString]*HostStats
	order []InternedString
}

// NewRunStats creates an empty statistics collector.
func NewRunStats() *RunStats {
	return &RunStats{hosts: make(map[InternedString]*HostStats)}
}

func (s *RunStats) host(name InternedString) *HostStats {
	h, ok := s.hosts[name]
	if !ok {
		h = &HostStats{}
		s.hosts[name] = h
		s.order = append(s.order, name)
	}
	return h
}

// Touch registers a host so it appears in the recap even when no task
// ran against it.
func (s *RunStats) Touch(name InternedString) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host(name)
}

// Record folds a task result into the per-host counters.
func (s *RunStats) Record(res *TaskResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.host(res.Host)
	switch res.Status {
	case StatusOK, StatusSkipped:
		h.OK++
	case StatusChanged:
		h.OK++
		h.Changed++
	case StatusFailed:
		h.Failures++
	case StatusUnreachable:
		h.Unreachable++
	}
}

// Host returns a copy of the counters for the given host.
func (s *RunStats) Host(name InternedString) HostStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.hosts[name]; ok {
		return *h
	}
	return HostStats{}
}

// Dark reports whether the host has failed or become unreachable and
// must be removed from the remainder of the run.
func (s *RunStats) Dark(name InternedString) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hosts[name]
	return ok && (h.Failures > 0 || h.Unreachable > 0)
}

// Entry is one host's recap line.
type Entry struct {
	Host  string
	Stats HostStats
}

// Entries returns the per-host counters in first-seen order.
func (s *RunStats) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Entry{Host: name.String(), Stats: *s.hosts[name]})
	}
	return out
}

// FailedHosts returns the hosts that reported failures or became
// unreachable, sorted by name. Used for the retry inventory.
func (s *RunStats) FailedHosts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, name := range s.order {
		h := s.hosts[name]
		if h.Failures > 0 || h.Unreachable > 0 {
			out = append(out, name.String())
		}
	}
	sort.Strings(out)
	return out
}

// ExitCode classifies the run: 2 if any host has failures, else 3 if
// any host is unreachable, else 0. Failures win over unreachability.
func (s *RunStats) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := 0
	for _, h := range s.hosts {
		if h.Failures > 0 {
			return 2
		}
		if h.Unreachable > 0 {
			code = 3
		}
	}
	return code
}
