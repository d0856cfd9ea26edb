// Package loader provides the global "working on it" indicator shown while a backend call is in flight
package loader

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

const DefaultMessage = "Processing..."

type Indicator interface {
	Show(message string)
	Hide()
}

type nop struct{}

func (nop) Show(string) {}
func (nop) Hide()       {}

// Nop returns an indicator that does nothing
func Nop() Indicator {
	return nop{}
}

type logIndicator struct {
	logger log.FieldLogger
}

// Log reports indicator transitions on the given logger
func Log(logger log.FieldLogger) Indicator {
	return logIndicator{logger: logger}
}

func (l logIndicator) Show(message string) {
	l.logger.WithField("loader", "show").Info(message)
}

func (l logIndicator) Hide() {
	l.logger.WithField("loader", "hide").Debug("done")
}

// Status tracks whether the indicator is visible and what it says.
// Overlapping calls keep it visible until the last one hides it.
type Status struct {
	mu      sync.Mutex
	active  int
	message string
}

type State struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) Show(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active++
	s.message = message
}

func (s *Status) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == 0 {
		return
	}
	s.active--
	if s.active == 0 {
		s.message = ""
	}
}

func (s *Status) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Visible: s.active > 0, Message: s.message}
}

type multi []Indicator

// Multi fans Show and Hide out to every indicator
func Multi(indicators ...Indicator) Indicator {
	return multi(indicators)
}

func (m multi) Show(message string) {
	for _, i := range m {
		i.Show(message)
	}
}

func (m multi) Hide() {
	for _, i := range m {
		i.Hide()
	}
}
