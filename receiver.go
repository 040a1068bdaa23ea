// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import "sync/atomic"

// Receiver is a one-shot sink for a [Result]. Invocation transfers the
// Result and releases the Receiver; a consumed Receiver must not be
// invoked again.
//
// Receiver enforces affine, single-claim semantics the same way
// kont's Affine and Suspension types do: an atomic counter guards the
// single transition from unused to used, so Deliver is safe to race
// against a concurrent Discard or a second Deliver attempt from a
// different goroutine — exactly one wins.
type Receiver struct {
	used    atomic.Uintptr
	deliver func(Result)
	dropped atomic.Bool
}

// newReceiver wraps a plain callback as a Receiver.
func newReceiver(deliver func(Result)) *Receiver {
	return &Receiver{deliver: deliver}
}

// NewReceiver builds a terminal Receiver from a plain callback. This is
// the seam a caller's executor integration uses to arm the outermost
// Continuation of a pipeline.
func NewReceiver(deliver func(Result)) *Receiver {
	return newReceiver(deliver)
}

// Deliver transfers res to the receiver and consumes it. Calling Deliver
// on an already-consumed Receiver is a fatal contract violation.
func (r *Receiver) Deliver(res Result) {
	if r.used.Add(1) != 1 {
		if r.dropped.Load() {
			// Intentionally dropped by a composer (e.g. AnyFailFast after
			// the winning child); a late completion is expected, not a
			// violation.
			return
		}
		reportViolation(ViolationDoubleDeliver, "receiver delivered to twice")
		return
	}
	r.deliver(res)
}

// TryDeliver attempts to transfer res. Returns false without invoking
// the sink if the Receiver was already consumed.
func (r *Receiver) TryDeliver(res Result) bool {
	if r.used.Add(1) != 1 {
		return false
	}
	r.deliver(res)
	return true
}

// SetValue is shorthand for Deliver(FromValues(values...)).
func (r *Receiver) SetValue(values ...any) { r.Deliver(FromValues(values...)) }

// SetException is shorthand for Deliver(FromFailure(err)).
func (r *Receiver) SetException(err error) { r.Deliver(FromFailure(err)) }

// SetDone is shorthand for Deliver(Cancelled()).
func (r *Receiver) SetDone() { r.Deliver(Cancelled()) }

// Discard marks the Receiver as consumed without invoking its sink. Used
// when a composition drops the remaining children after a winning
// completion (e.g. [AnyFailFast] after the first failure): the
// corresponding child producer may still call Deliver later, and that
// late call is silently ignored rather than reported as a violation.
func (r *Receiver) Discard() {
	r.dropped.Store(true)
	r.used.Store(1)
}
