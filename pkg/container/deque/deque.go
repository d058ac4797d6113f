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

package deque

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const (
	// the size of each chunk is 1024 bytes (1kB) by default
	defaultSizePerChunk = 1024
	// the minimum length of each chunk is 16
	minimumChunkLen      = 16
	defaultChunkArrayLen = 16
)

// Deque is a generic, efficient and GC-friendly double-ended queue. Elements
// are appended at the back and may be removed from either end. It grows
// without bound; storage is a sliding window of fixed-size chunks recycled
// through a pool. Attention, it's not thread-safe.
type Deque[T any] struct {
	// [head, tail) is the section of chunks in use
	head int
	tail int

	// size is the number of elements in the deque
	size int

	// chunks is an array storing ptr
	chunks []*chunk[T]
	// chunkLength is the max number of elements stored in every chunk
	chunkLength int
	chunkPool   sync.Pool
	zero        T
}

// NewDeque creates a new Deque.
func NewDeque[T any]() *Deque[T] {
	return NewDequeLeastCapacity[T](1)
}

// NewDequeLeastCapacity creates a Deque with an argument minCapacity. It
// requests that the deque capacity be at least minCapacity, similar to the
// cap argument when making a slice using make([]T, len, cap).
func NewDequeLeastCapacity[T any](minCapacity int) *Deque[T] {
	elementSize := unsafe.Sizeof(*new(T))
	if elementSize == 0 {
		log.Panic("cannot create a deque of zero-size elements",
			zap.String("type", fmt.Sprintf("%T", *new(T))))
	}

	chunkLength := int(defaultSizePerChunk / elementSize)
	if chunkLength < minimumChunkLen {
		chunkLength = minimumChunkLen
	}

	d := &Deque[T]{
		head:        0,
		tail:        0,
		size:        0,
		chunkLength: chunkLength,
	}
	d.chunkPool = sync.Pool{
		New: func() any {
			return newChunk[T](chunkLength)
		},
	}

	d.chunks = make([]*chunk[T], defaultChunkArrayLen)
	d.extend(minCapacity)
	return d
}

func (d *Deque[T]) firstChunk() *chunk[T] {
	return d.chunks[d.head]
}

func (d *Deque[T]) lastChunk() *chunk[T] {
	return d.chunks[d.tail-1]
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	return d.size
}

// Empty indicates whether the deque is empty.
func (d *Deque[T]) Empty() bool {
	return d.size == 0
}

// Cap returns the capacity of the deque. The deque can hold more elements
// than that number by automatic expansion.
func (d *Deque[T]) Cap() int {
	return d.chunkLength*(d.tail-d.head) - d.firstChunk().l
}

// Head returns the value of the first element. It does not remove it.
func (d *Deque[T]) Head() (T, bool) {
	if d.Empty() {
		return d.zero, false
	}
	c := d.firstChunk()
	return c.data[c.l], true
}

// Tail returns the value of the last element. It does not remove it.
func (d *Deque[T]) Tail() (T, bool) {
	if d.Empty() {
		return d.zero, false
	}
	c := d.lastChunk()
	return c.data[c.r-1], true
}

// extend extends the space by adding chunk(s) to the deque
func (d *Deque[T]) extend(n int) {
	if n <= 0 {
		n = 1
	}
	chunksNum := (n + d.chunkLength - 1) / d.chunkLength

	// should reallocate the chunks pointers array if the tail cannot hold
	if d.tail+chunksNum+1 >= len(d.chunks) {
		d.reallocateChunksArray(chunksNum)
	}

	for i := 0; i < chunksNum; i++ {
		d.chunks[d.tail] = d.chunkPool.Get().(*chunk[T])
		d.tail++
	}
}

// reallocateChunksArray extends/shrinks the []chunks array,
// and moves the pointers to head
func (d *Deque[T]) reallocateChunksArray(need int) {
	var n int
	if need < 0 {
		n = defaultChunkArrayLen
	} else {
		n = len(d.chunks)
	}
	used := d.tail - d.head
	// Twice the array if more than a half will be in use
	for used+need > n/2 {
		n *= 2
	}
	if n != len(d.chunks) {
		newChunks := make([]*chunk[T], n)
		copy(newChunks[:used], d.chunks[d.head:d.tail])
		d.chunks = newChunks
	} else if d.head > 0 {
		copy(d.chunks[:used], d.chunks[d.head:d.tail])
		for i := used; i < d.tail; i++ {
			d.chunks[i] = nil
		}
	}
	d.tail -= d.head
	d.head = 0
}

// PushBack appends an element at the back.
func (d *Deque[T]) PushBack(v T) {
	c := d.lastChunk()
	if c.r == d.chunkLength {
		d.extend(1)
		c = d.lastChunk()
	}

	c.data[c.r] = v
	c.r++
	d.size++
}

// PopFront removes and returns the element at the front.
func (d *Deque[T]) PopFront() (T, bool) {
	if d.Empty() {
		return d.zero, false
	}

	c := d.firstChunk()
	v := c.data[c.l]
	c.data[c.l] = d.zero
	c.l++
	d.size--

	if c.l == d.chunkLength {
		d.popFrontChunk()
	} else if d.size == 0 {
		// the only chunk is drained mid-way, rewind its indexes
		c.reset()
	}
	return v, true
}

// PopBack removes and returns the element at the back.
func (d *Deque[T]) PopBack() (T, bool) {
	if d.Empty() {
		return d.zero, false
	}

	c := d.lastChunk()
	v := c.data[c.r-1]
	c.data[c.r-1] = d.zero
	c.r--
	d.size--

	if c.len() == 0 {
		if d.tail-d.head > 1 {
			d.popBackChunk()
		} else {
			c.reset()
		}
	}
	return v, true
}

func (d *Deque[T]) popFrontChunk() {
	c := d.firstChunk()
	// the window always keeps at least one chunk
	if d.tail-d.head == 1 {
		d.extend(1)
	}
	d.chunks[d.head] = nil
	d.head++

	c.reset()
	d.chunkPool.Put(c)
}

func (d *Deque[T]) popBackChunk() {
	c := d.lastChunk()
	d.tail--
	d.chunks[d.tail] = nil

	c.reset()
	d.chunkPool.Put(c)
}

// Clear clears the deque to empty and shrinks the chunks array.
func (d *Deque[T]) Clear() {
	if !d.Empty() {
		empty := make([]T, d.chunkLength)
		n := d.tail - d.head
		for i := 0; i < n; i++ {
			c := d.firstChunk()
			copy(c.data, empty)
			d.popFrontChunk()
		}
		d.size = 0
	}
	// Shrink the chunks array
	d.reallocateChunksArray(-1)
}

// Range iterates the deque from front to the first element that does NOT
// satisfy f().
func (d *Deque[T]) Range(f func(v T) bool) {
	for i := d.head; i < d.tail; i++ {
		c := d.chunks[i]
		for j := c.l; j < c.r; j++ {
			if !f(c.data[j]) {
				return
			}
		}
	}
}
