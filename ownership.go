// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"runtime"
)

// ownershipState is a Continuation's three-state ownership flag:
// acquired, released, frozen.
//
// It is an atomic.Uint32 rather than a plain field because the leak
// check in [armLeakFinalizer] runs from a GC finalizer goroutine that
// may observe a contState concurrently with whatever goroutine is still
// arming or freezing it — the collector reclaims memory on a background
// goroutine, not synchronously with the last reference going out of
// scope.
type ownershipState uint32

const (
	stateAcquired ownershipState = iota
	stateFrozen
	stateReleased
)

// acquire initialises a freshly constructed contState as acquired and
// registers the finalizer that reports a drop-unarmed leak.
func (s *contState) acquire() {
	s.ownership.Store(uint32(stateAcquired))
	runtime.SetFinalizer(s, armLeakFinalizer)
}

// release transitions out of acquired/frozen on move-out or arming.
func (s *contState) release() {
	s.ownership.Store(uint32(stateReleased))
	runtime.SetFinalizer(s, nil)
}

// freeze marks s as held inside a larger composition; it may no longer
// be armed directly until the enclosing composition is armed and
// releases it in turn.
func (s *contState) freeze() {
	s.ownership.CompareAndSwap(uint32(stateAcquired), uint32(stateFrozen))
}

func (s *contState) isAcquired() bool {
	return ownershipState(s.ownership.Load()) == stateAcquired
}

func (s *contState) isFrozen() bool {
	return ownershipState(s.ownership.Load()) == stateFrozen
}

func (s *contState) isReleased() bool {
	return ownershipState(s.ownership.Load()) == stateReleased
}

// armLeakFinalizer is installed via runtime.SetFinalizer on every freshly
// acquired contState. If the continuation is garbage collected while
// still acquired (never armed, never frozen into a composition, never
// explicitly released), that is a leak: it must be reported, though
// there is nothing further to release beyond reporting since the
// collector reclaims the memory itself.
func armLeakFinalizer(s *contState) {
	if ownershipState(s.ownership.Load()) != stateAcquired {
		return
	}
	traceLeak(s)
	reportViolation(ViolationLeakedUnarmed, "continuation dropped unarmed")
}
