// Package charts holds the chart datasets of a page keyed by the canvas they are drawn on
package charts

import (
	"sort"
	"sync"
)

type Type string

const (
	Bar      Type = "bar"
	Pie      Type = "pie"
	Doughnut Type = "doughnut"
)

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type Chart struct {
	Type     Type      `json:"type"`
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Registry replaces the one-global-per-chart pattern: registering a chart for a
// canvas id drops whatever was drawn there before.
type Registry struct {
	mu     sync.RWMutex
	charts map[string]Chart
}

func NewRegistry() *Registry {
	return &Registry{charts: make(map[string]Chart)}
}

// Set stores chart under id and returns the chart it replaced, if any
func (r *Registry) Set(id string, chart Chart) (Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous, ok := r.charts[id]
	r.charts[id] = chart
	return previous, ok
}

func (r *Registry) Get(id string) (Chart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.charts[id]
	return c, ok
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.charts, id)
}

func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.charts = make(map[string]Chart)
}

// IDs returns the registered canvas ids in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.charts))
	for id := range r.charts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot copies the registered charts
func (r *Registry) Snapshot() map[string]Chart {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Chart, len(r.charts))
	for id, c := range r.charts {
		out[id] = c
	}
	return out
}

// FromCounts builds a single dataset chart from a count map, labels sorted
func FromCounts(t Type, title string, label string, counts map[string]int64) Chart {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return FromOrderedCounts(t, title, label, labels, counts)
}

// FromOrderedCounts builds a chart with a fixed label order. Labels missing from counts plot as zero.
func FromOrderedCounts(t Type, title string, label string, labels []string, counts map[string]int64) Chart {
	data := make([]float64, len(labels))
	for i, l := range labels {
		data[i] = float64(counts[l])
	}
	return Chart{
		Type:     t,
		Title:    title,
		Labels:   append([]string(nil), labels...),
		Datasets: []Dataset{{Label: label, Data: data}},
	}
}
