// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"reflect"
	"sync/atomic"
)

// unknownArity marks a Continuation whose success arity cannot be
// determined ahead of materialisation or handler invocation — notably
// the result of [Continuation.Then]'s flatten case, where the returned
// child's arity is only known once the handler actually runs. Arity is
// therefore best-effort bookkeeping (see foldArity); dispatch.go's arity
// check compares a delivered tuple with the handler's parameters, and the
// composer's actual value tuples are always built from the runtime length
// of a delivered [Result], never from this field.
const unknownArity = -1

// contState is the shared mutable state behind a [Continuation] handle.
// Continuations are move-only by convention: a Continuation value is a
// thin handle over a *contState. Arm and the composers check and
// transition ownership when called; Then, Fail, Next and Finally capture
// the handle and transition it when the returned Continuation is armed.
// Reusing a handle whose state has already been released or frozen is
// therefore caught, not silently tolerated.
type contState struct {
	ownership atomic.Uint32
	debug     debugID

	arity int // unknownArity, or the declared success arity

	isComposition bool
	kind          compositionKind
	children      []Continuation

	producer func(*Receiver)
}

// Continuation is a lazy, single-shot handle over an asynchronous
// computation that, once armed with a [Receiver], eventually delivers a
// [Result] exactly once.
type Continuation struct {
	s *contState
}

func newContState() *contState {
	s := &contState{}
	s.acquire()
	return s
}

// MakeContinuation wraps a user producer. producer is invoked at most
// once, when the returned Continuation is armed; it must eventually
// call exactly one of the Receiver's delivery methods, inline or from
// another goroutine.
//
// arity is the declared success arity (len(values) producer will
// deliver on success), or [unknownArity] equivalent (-1) if not known
// ahead of time.
func MakeContinuation(producer func(*Receiver), arity int) Continuation {
	s := newContState()
	s.arity = arity
	s.producer = producer
	return Continuation{s: s}
}

// MakeReady returns a Continuation whose producer immediately delivers
// values(values...) when armed.
func MakeReady(values ...any) Continuation {
	return MakeContinuation(func(r *Receiver) {
		r.SetValue(values...)
	}, len(values))
}

// MakeCancelled returns a Continuation whose producer immediately
// delivers an empty cancellation.
func MakeCancelled() Continuation {
	return MakeContinuation(func(r *Receiver) {
		r.SetDone()
	}, 0)
}

// MakeExceptional returns a Continuation whose producer immediately
// delivers failure(err).
func MakeExceptional(err error) Continuation {
	return MakeContinuation(func(r *Receiver) {
		r.SetException(err)
	}, unknownArity)
}

// Defer invokes fn with args when armed and completes with fn's return
// value, without constructing an intermediate [Result] the way
// MakeReady(...).Then(fn) would — the producer calls fn directly and
// builds exactly one Result from its outputs.
//
// fn follows the same return-shape rules as a [Continuation.Then]
// handler (see dispatch.go): a trailing error output signals failure, a
// lone Continuation output flattens, a [Stop] output cancels, and any
// other outputs become the success value tuple.
func Defer(fn any, args ...any) Continuation {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	return MakeContinuation(func(r *Receiver) {
		runProtected(r, func() (outcome dispatchOutcome) {
			return invoke(fnVal, fnType, args)
		})
	}, staticArity(fnType))
}

// Arm hands receiver to c, starting its execution. Arm consumes c: it
// asserts c is acquired and not frozen, marks it released, and then
// either invokes its producer directly (signature-tagged) or
// materialises it first (composition-tagged).
//
// Arming a frozen or already-released Continuation is a fatal contract
// violation (see [SetContractViolationHook]).
func (c Continuation) Arm(receiver *Receiver) {
	switch ownershipState(c.s.ownership.Load()) {
	case stateFrozen:
		reportViolation(ViolationArmFrozen, "frozen continuation armed directly")
		return
	case stateReleased:
		reportViolation(ViolationDoubleArm, "continuation armed twice")
		return
	}
	armChild(c, receiver)
}

// armChild is the internal counterpart of Arm used by the composers
// (materialize.go) and by Fail's recovery-continuation sugar
// (sequencer.go), both of which legitimately arm a continuation they
// hold frozen ownership of without going through the frozen-arm check
// a caller-facing Arm performs.
func armChild(c Continuation, receiver *Receiver) {
	s := c.s
	if ownershipState(s.ownership.Load()) == stateReleased {
		reportViolation(ViolationDoubleArm, "continuation armed twice")
		return
	}
	s.release()
	traceLog(s, "ARM")

	if !s.isComposition {
		s.producer(receiver)
		return
	}
	materialise(s)(receiver)
}

// arity reports the best-effort declared success arity of c, or
// unknownArity. It does not consume c.
func (c Continuation) arity() int { return c.s.arity }
