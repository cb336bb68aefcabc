package wormhole4d

import (
	"sort"
	"sync"
)

type Category uint8

const (
	Halved      Category = iota // step shrunk before the solver converged
	RootFailure                 // solver gave up, path abandoned
	ClipFailure                 // radius clip diverged
)

type TraceEvent struct {
	Name      string
	Category  Category
	Point     Point4
	Direction Dir4
	Attempts  int
}

type TraceEventCache struct {
	mu     sync.Mutex
	events map[string][]TraceEvent
}

var cache = &TraceEventCache{
	events: make(map[string][]TraceEvent),
}

func logTrace(name string, category Category, point Point4, direction Dir4, attempts int) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.events[name] = append(cache.events[name], TraceEvent{
		Name:      name,
		Category:  category,
		Point:     point,
		Direction: direction,
		Attempts:  attempts,
	})
}

// EventCount is the number of recorded events of one name, with the first
// one recorded.
type EventCount struct {
	Name  string
	Count int
	First TraceEvent
}

// TraceEventStats returns recorded event counts sorted by name.
func TraceEventStats() []EventCount {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	out := make([]EventCount, 0, len(cache.events))
	for k, v := range cache.events {
		out = append(out, EventCount{Name: k, Count: len(v), First: v[0]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResetTraceEvents drops all recorded events.
func ResetTraceEvents() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.events = make(map[string][]TraceEvent)
}
