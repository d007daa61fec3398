package model

import (
	"slices"
	"sync"
)

// Component represents a screen the app navigates to.
type Component interface {
	Name() string
	Start()
	Stop()
}

// StackListener listens to stack events
type StackListener interface {
	StackPushed(Component)
	StackPopped(old, new Component)
	StackTop(Component)
}

// Stack manages the navigation stack: clusters, then a cluster's hosts,
// then a host's storage. Only the top component is started.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

// NewStack returns a new stack
func NewStack() *Stack {
	return &Stack{}
}

// AddListener adds a stack listener
func (s *Stack) AddListener(l StackListener) {
	s.mx.Lock()
	s.listeners = append(s.listeners, l)
	s.mx.Unlock()

	if top := s.Top(); top != nil {
		l.StackTop(top)
	}
}

// RemoveListener removes a stack listener
func (s *Stack) RemoveListener(l StackListener) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

func (s *Stack) notifiers() []StackListener {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return slices.Clone(s.listeners)
}

// Push stops the current top and starts c.
func (s *Stack) Push(c Component) {
	if top := s.Top(); top != nil {
		top.Stop()
	}

	s.mx.Lock()
	s.components = append(s.components, c)
	s.mx.Unlock()
	c.Start()

	for _, l := range s.notifiers() {
		l.StackPushed(c)
		l.StackTop(c)
	}
}

// Pop stops and removes the top component and restarts the one below.
// The last component is never popped.
func (s *Stack) Pop() (Component, bool) {
	s.mx.Lock()
	if len(s.components) <= 1 {
		s.mx.Unlock()
		return nil, false
	}
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	top := s.components[len(s.components)-1]
	s.mx.Unlock()

	c.Stop()
	top.Start()
	for _, l := range s.notifiers() {
		l.StackPopped(c, top)
		l.StackTop(top)
	}

	return c, true
}

// Reset stops every component and starts c as the only one.
func (s *Stack) Reset(c Component) {
	s.mx.Lock()
	old := s.components
	s.components = []Component{c}
	s.mx.Unlock()

	for _, o := range old {
		o.Stop()
	}
	c.Start()
	for _, l := range s.notifiers() {
		l.StackPushed(c)
		l.StackTop(c)
	}
}

// Top returns the top component
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

// Empty checks if stack is empty
func (s *Stack) Empty() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components) == 0
}

// IsLast indicates if stack only has one item left
func (s *Stack) IsLast() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components) == 1
}

// Flatten returns all component names as a slice
func (s *Stack) Flatten() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ss := make([]string, len(s.components))
	for i, c := range s.components {
		ss[i] = c.Name()
	}
	return ss
}
