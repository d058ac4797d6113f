// Copyright 2023 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package queue

import (
	"sync"

	"github.com/pingcap/log"
	"github.com/pingcap/stealqueue/pkg/container/deque"
	"github.com/pingcap/stealqueue/pkg/syncutil"
)

// Queue is an unbounded concurrent deque for distributing work among
// goroutines, e.g. the per-worker run queues of a work-stealing pool. A
// single guard serializes every operation, so any number of goroutines may
// use one instance without external synchronization.
//
// The owner drains its queue FIFO with Pop while other workers take the
// newest element from the opposite end with Steal, keeping the two
// consumption paths apart. No operation ever waits for data: an empty queue
// reports the absence immediately, and callers that want to sleep until
// work arrives must layer that on top.
//
// The zero Queue is not usable; construct instances with New or
// NewWithLock.
type Queue[T any] struct {
	mu   syncutil.Lockable
	data *deque.Deque[T]
}

// New creates an empty Queue guarded by a sync.Mutex.
func New[T any]() *Queue[T] {
	return NewWithLock[T](&sync.Mutex{})
}

// NewWithLock creates an empty Queue guarded by the given primitive, e.g. a
// *syncutil.SpinLock. The guard must be dedicated to this queue.
func NewWithLock[T any](mu syncutil.Lockable) *Queue[T] {
	if mu == nil {
		log.Panic("queue guard must not be nil")
	}
	return &Queue[T]{
		mu:   mu,
		data: deque.NewDeque[T](),
	}
}

// NewFrom creates a Queue holding exactly the elements other held, in the
// same order, and leaves other empty. See TakeFrom.
func NewFrom[T any](other *Queue[T]) *Queue[T] {
	q := New[T]()
	q.TakeFrom(other)
	return q
}

// Push appends v at the back of the queue. It never fails.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data.PushBack(v)
}

// Pop removes and returns the oldest element. This is the owner's FIFO
// consumption path. It reports false without waiting when the queue is
// empty. Each element is delivered to exactly one caller of Pop or Steal.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data.PopFront()
}

// Steal removes and returns the newest element. It is meant for goroutines
// other than the queue's owner to take work when their own queue is
// exhausted; draining from the back keeps thieves away from the end the
// owner pops from. It reports false without waiting when the queue is
// empty.
func (q *Queue[T]) Steal() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data.PopBack()
}

// Empty reports whether the queue held zero elements at the instant the
// guard was held. Under concurrent use the answer is advisory only.
func (q *Queue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data.Empty()
}

// Size returns a snapshot of the element count, with the same caveat as
// Empty.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data.Len()
}

// Clear discards all elements. A racing Push, Pop or Steal observes either
// the pre-clear or the post-clear state, never a partial one.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data.Clear()
}

// TakeFrom moves other's elements into q in their original order,
// discarding whatever q held, and leaves other empty and reusable. Moving a
// queue into itself is a no-op.
//
// Both guards are acquired jointly, never one after the other, so two
// goroutines concurrently moving the same pair of queues into each other
// cannot deadlock.
func (q *Queue[T]) TakeFrom(other *Queue[T]) {
	if q == other {
		return
	}
	syncutil.LockBoth(q.mu, other.mu)
	defer syncutil.UnlockBoth(q.mu, other.mu)

	q.data = other.data
	other.data = deque.NewDeque[T]()
}
