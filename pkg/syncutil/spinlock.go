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
	"sync/atomic"
)

// SpinLock is a Lockable built on a single CAS word. It yields the
// processor between acquisition attempts instead of parking the goroutine,
// which suits very short critical sections. The zero value is an unlocked
// SpinLock. It must not be copied after first use.
type SpinLock struct {
	held atomic.Bool
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// TryLock acquires the lock if it is free and reports whether it succeeded.
func (l *SpinLock) TryLock() bool {
	return l.held.CompareAndSwap(false, true)
}

// Unlock releases the lock. It must only be called by the holder.
func (l *SpinLock) Unlock() {
	l.held.Store(false)
}
