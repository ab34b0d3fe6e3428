// Package prefetch runs short background tasks, one goroutine per task, and
// hands their results back to the goroutine that spawned them.
//
// Tasks are never cancelled. A Worker must be joined exactly once so its
// error is always observed.
package prefetch

import (
	"sort"
)

// Worker is the handle of one running task.
type Worker[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn on its own goroutine.
func Go[T any](fn func() (T, error)) *Worker[T] {
	w := &Worker[T]{done: make(chan struct{})}
	go func() {
		defer close(w.done)
		w.val, w.err = fn()
	}()
	return w
}

// Done reports whether the task has finished without blocking.
func (w *Worker[T]) Done() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Join blocks until the task finishes and returns its result.
func (w *Worker[T]) Join() (T, error) {
	<-w.done
	return w.val, w.err
}

// Set tracks at most one worker per index. It is owned by a single goroutine
// and does no locking.
type Set[T any] struct {
	workers map[int]*Worker[T]
}

// NewSet returns an empty set.
func NewSet[T any]() *Set[T] {
	return &Set[T]{workers: make(map[int]*Worker[T])}
}

// Spawn starts fn for index i unless a worker for i is already tracked. It
// reports whether a new worker was started.
func (s *Set[T]) Spawn(i int, fn func() (T, error)) bool {
	if _, ok := s.workers[i]; ok {
		return false
	}
	s.workers[i] = Go(fn)
	return true
}

// Has reports whether a worker for i is tracked.
func (s *Set[T]) Has(i int) bool {
	_, ok := s.workers[i]
	return ok
}

// Take removes and returns the worker for i. The caller owns the join.
func (s *Set[T]) Take(i int) (*Worker[T], bool) {
	w, ok := s.workers[i]
	if ok {
		delete(s.workers, i)
	}
	return w, ok
}

// Indices returns the tracked indices in ascending order.
func (s *Set[T]) Indices() []int {
	out := make([]int, 0, len(s.workers))
	for i := range s.workers {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of tracked workers.
func (s *Set[T]) Len() int { return len(s.workers) }
