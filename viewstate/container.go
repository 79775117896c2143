// Package viewstate keeps each screen's local state in step with the backend.
//
// Every screen owns a Container: a state value, a reducer, and a dispatcher
// that applies actions one at a time under a lock. Network calls happen
// outside the lock; their results come back as actions. Fetches take a
// Ticket so that only the most recently issued fetch of a kind may land.
// file: viewstate/container.go
package viewstate

import (
	"fmt"
	"sync"

	"go-ballpark/logger"
)

// Strict makes reducers panic on actions they do not handle. main turns it
// off in production, where the action is logged and ignored.
var Strict = true

// Action is a transition request. The set of actions is closed to this
// package.
type Action interface {
	isAction()
}

// Reducer computes the next state. It must not mutate slices or maps of the
// previous state in place.
type Reducer[S any] func(S, Action) S

// Ticket identifies one issued fetch of a given kind.
type Ticket struct {
	kind string
	seq  uint64
}

// Container holds one screen's state.
type Container[S any] struct {
	mu     sync.Mutex
	name   string
	state  S
	reduce Reducer[S]
	issued map[string]uint64
	watch  func(S)
}

// NewContainer creates a container with an initial state.
func NewContainer[S any](name string, initial S, reduce Reducer[S]) *Container[S] {
	return &Container[S]{
		name:   name,
		state:  initial,
		reduce: reduce,
		issued: make(map[string]uint64),
	}
}

// Watch registers a hook called with the new state after each dispatch.
func (c *Container[S]) Watch(fn func(S)) {
	c.mu.Lock()
	c.watch = fn
	c.mu.Unlock()
}

// State returns the current state.
func (c *Container[S]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies actions in order as one atomic step.
func (c *Container[S]) Dispatch(actions ...Action) S {
	c.mu.Lock()
	for _, a := range actions {
		c.state = c.reduce(c.state, a)
	}
	st, watch := c.state, c.watch
	c.mu.Unlock()
	if watch != nil {
		watch(st)
	}
	return st
}

// Begin issues a new ticket of kind, superseding earlier ones, and applies
// the start actions in the same step.
func (c *Container[S]) Begin(kind string, actions ...Action) Ticket {
	c.mu.Lock()
	c.issued[kind]++
	t := Ticket{kind: kind, seq: c.issued[kind]}
	for _, a := range actions {
		c.state = c.reduce(c.state, a)
	}
	st, watch := c.state, c.watch
	c.mu.Unlock()
	if watch != nil && len(actions) > 0 {
		watch(st)
	}
	return t
}

// Resolve applies actions only if t is still the latest ticket of its kind.
// It reports whether they were applied.
func (c *Container[S]) Resolve(t Ticket, actions ...Action) bool {
	c.mu.Lock()
	if c.issued[t.kind] != t.seq {
		c.mu.Unlock()
		logger.Debug.Printf("[%s] dropping stale %s response (ticket %d)", c.name, t.kind, t.seq)
		return false
	}
	for _, a := range actions {
		c.state = c.reduce(c.state, a)
	}
	st, watch := c.state, c.watch
	c.mu.Unlock()
	if watch != nil {
		watch(st)
	}
	return true
}

// unhandled is every reducer's default branch.
func unhandled[S any](container string, s S, a Action) S {
	msg := fmt.Sprintf("%s: unhandled action %T", container, a)
	if Strict {
		panic(msg)
	}
	logger.Error.Println(msg)
	return s
}
