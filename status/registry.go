package status

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

// Registry groups named counters, gauges and labels
// Writers cache pointers from Get; readers take a Snapshot
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Entry is one formatted metric
type Entry struct {
	Name  string
	Value string
}

func (e Entry) String() string { return e.Name + "=" + e.Value }

// Snapshot returns every metric formatted, sorted by name
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	for k, v := range r.Ints.All() {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	}
	for k, v := range r.Floats.All() {
		out = append(out, Entry{k, fmt.Sprintf("%.3f", v.Get())})
	}
	for k, v := range r.Strings.All() {
		out = append(out, Entry{k, v.Load()})
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
