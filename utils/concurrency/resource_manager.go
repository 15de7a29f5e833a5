// Package concurrency implements a channel based pool of bootstrap workers.
// Each worker is an engine obtained with ShallowCopy, since engines are
// not safe for concurrent use.
package concurrency

import (
	"sync"
)

// ResourceManager holds a pool of workers (typically *ggsw.Engine values
// bootstrapping the ciphertexts of a vector) and the first error reported
// by a worker.
type ResourceManager[T any] struct {
	sync.WaitGroup
	Resources chan T
	Errors    chan error
}

// NewResourceManager returns a [ResourceManager] pooling the given workers.
// The workers must not share scratch buffers.
func NewResourceManager[T any](resources []T) *ResourceManager[T] {
	Resources := make(chan T, len(resources))
	for i := range resources {
		Resources <- resources[i]
	}
	return &ResourceManager[T]{
		Resources: Resources,
		Errors:    make(chan error, len(resources)),
	}
}

// Task is a unit of work run on a worker of the pool, for example the
// bootstrapping of one ciphertext. A worker runs at most one task at a time.
type Task[T any] func(resource T) (err error)

// Run schedules f on the next free worker.
// Once a task has failed, subsequent tasks are skipped.
func (r *ResourceManager[T]) Run(f Task[T]) {
	r.Add(1)
	go func() {
		defer r.Done()
		if len(r.Errors) != 0 {
			return
		}
		resource := <-r.Resources
		if err := f(resource); err != nil {
			select {
			case r.Errors <- err:
			default:
			}
		}
		r.Resources <- resource
	}()
}

// Wait blocks until every scheduled [Task] has returned the worker to the
// pool and returns the first error, if any.
func (r *ResourceManager[T]) Wait() (err error) {
	r.WaitGroup.Wait()
	select {
	case err = <-r.Errors:
	default:
	}
	return
}
