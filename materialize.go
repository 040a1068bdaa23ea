// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"sync/atomic"

	"github.com/gammazero/deque"
)

// materialise looks up the finaliser for s's composition kind and
// returns the producer closure that drives the whole child tree when
// eventually called with a Receiver. The All and Any finalisers
// coordinate concurrent children through a small completion coordinator
// built from sync/atomic; Seq arms one child at a time and keeps its
// pending children in a deque. No finaliser holds a mutex across a
// suspension point.
func materialise(s *contState) func(*Receiver) {
	traceLogf(s, "MATERIALISE kind=%d children=%d", int(s.kind), len(s.children))
	switch s.kind {
	case compAll:
		return finaliseAll(s.children)
	case compAny:
		return finaliseAny(s.children, false)
	case compAnyFailFast:
		return finaliseAny(s.children, true)
	case compSeq:
		return finaliseSeq(s.children)
	default:
		panic("continuable: unknown composition kind")
	}
}

// finaliseAll builds the All producer: every child is armed
// immediately; completion order is unobservable by the combined
// receiver, and the coordinator is a plain decrement-and-test counter.
// The first failure observed wins (a compare-and-swap claim), but the
// coordinator still waits for every child to report before delivering.
func finaliseAll(children []Continuation) func(*Receiver) {
	return func(out *Receiver) {
		n := len(children)
		if n == 0 {
			out.SetValue()
			return
		}

		results := make([]Result, n)
		var remaining atomic.Int32
		remaining.Store(int32(n))
		var failedClaim atomic.Bool
		var failure atomic.Pointer[error]
		var cancelled atomic.Bool

		finish := func() {
			if failedClaim.Load() {
				out.Deliver(FromFailure(*failure.Load()))
				return
			}
			if cancelled.Load() {
				out.Deliver(Cancelled())
				return
			}
			var values []any
			for _, r := range results {
				values = append(values, r.Values()...)
			}
			out.Deliver(FromValues(values...))
		}

		for i, child := range children {
			i, child := i, child
			inner := newReceiver(func(res Result) {
				switch {
				case res.IsFailure():
					if failedClaim.CompareAndSwap(false, true) {
						err := res.Err()
						failure.Store(&err)
					}
				case res.IsCancelled():
					cancelled.Store(true)
				default:
					results[i] = res
				}
				if remaining.Add(-1) == 0 {
					finish()
				}
			})
			armChild(child, inner)
		}
	}
}

// finaliseAny builds the Any/AnyFailFast producer. Every child is armed
// immediately; a single atomic claim guarantees the combined Receiver
// fires exactly once, even under adversarial concurrent completion of
// multiple children. A cancellation from any child wins the claim
// immediately, the same as a success.
//
// For plain Any, failures accumulate in a counter rather than a
// per-child boolean array, and the overall result becomes the last
// observed failure only once every child has failed.
func finaliseAny(children []Continuation, failFast bool) func(*Receiver) {
	return func(out *Receiver) {
		n := len(children)
		if n == 0 {
			out.SetDone()
			return
		}

		var claimed atomic.Bool
		var failCount atomic.Int32
		var lastFailure atomic.Pointer[error]
		inners := make([]*Receiver, n)

		winWith := func(deliver func(), winnerIdx int) {
			if !claimed.CompareAndSwap(false, true) {
				return
			}
			deliver()
			dropRemaining(inners, winnerIdx)
		}

		for i := range children {
			idx := i
			inners[i] = newReceiver(func(res Result) {
				switch {
				case res.IsFailure():
					err := res.Err()
					lastFailure.Store(&err)
					if failFast {
						winWith(func() { out.Deliver(FromFailure(err)) }, idx)
						return
					}
					if int(failCount.Add(1)) == n {
						winWith(func() { out.Deliver(FromFailure(*lastFailure.Load())) }, idx)
					}
				case res.IsCancelled():
					winWith(func() { out.Deliver(Cancelled()) }, idx)
				default:
					winWith(func() { out.Deliver(res) }, idx)
				}
			})
		}
		for i, child := range children {
			armChild(child, inners[i])
		}
	}
}

// dropRemaining discards every inner Receiver except the winner's, so a
// late completion from a dropped child is silently ignored rather than
// reported as a double-delivery violation.
func dropRemaining(inners []*Receiver, winner int) {
	for i, r := range inners {
		if i != winner {
			r.Discard()
		}
	}
}

// finaliseSeq builds the Seq producer. Children are held in a
// github.com/gammazero/deque.Deque so each completed child can be popped
// from the front in O(1). Child i+1 is armed only from within child i's
// Receiver callback, so it is never invoked until child i's Receiver
// fires; the first failure or cancellation stops the chain without
// starting the remaining children.
func finaliseSeq(children []Continuation) func(*Receiver) {
	return func(out *Receiver) {
		pending := deque.New[Continuation](len(children))
		for _, c := range children {
			pending.PushBack(c)
		}

		var collected []any
		var step func()
		step = func() {
			if pending.Len() == 0 {
				out.Deliver(FromValues(collected...))
				return
			}
			child := pending.PopFront()
			inner := newReceiver(func(res Result) {
				res.Match(
					func(values []any) {
						collected = append(collected, values...)
						step()
					},
					func(error) { out.Deliver(res) },
					func() { out.Deliver(res) },
				)
			})
			armChild(child, inner)
		}
		step()
	}
}
