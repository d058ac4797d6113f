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

package syncutil

import (
	"runtime"
	"sync"
)

// Lockable is the capability set a guard must provide: blocking acquire,
// release, and speculative acquire. *sync.Mutex satisfies it as-is, and so
// does *SpinLock. Implementations must support use from multiple goroutines.
type Lockable interface {
	Lock()
	Unlock()
	TryLock() bool
}

var (
	_ Lockable = (*sync.Mutex)(nil)
	_ Lockable = (*SpinLock)(nil)
)

// LockBoth acquires two guards together without assuming any global lock
// order. It locks one, speculatively locks the other, and on failure backs
// off with everything released before retrying with the roles swapped. Two
// goroutines calling LockBoth on the same pair in opposite orders therefore
// cannot deadlock each other.
//
// The two guards must be distinct.
func LockBoth(a, b Lockable) {
	for {
		a.Lock()
		if b.TryLock() {
			return
		}
		a.Unlock()
		runtime.Gosched()
		a, b = b, a
	}
}

// UnlockBoth releases two guards acquired by LockBoth.
func UnlockBoth(a, b Lockable) {
	a.Unlock()
	b.Unlock()
}
