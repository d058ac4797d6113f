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

// chunk is a fixed-size run of elements. [l, r) is the section in use.
// Vacated slots are scrubbed to the zero value before a chunk goes back
// to the pool, so pooled chunks never pin garbage.
type chunk[T any] struct {
	data []T
	l    int
	r    int
}

func newChunk[T any](length int) *chunk[T] {
	return &chunk[T]{
		data: make([]T, length),
	}
}

func (c *chunk[T]) len() int {
	return c.r - c.l
}

func (c *chunk[T]) reset() {
	c.l, c.r = 0, 0
}
