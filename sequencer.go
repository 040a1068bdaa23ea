// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import "reflect"

// Overload bundles the two callables selected between by
// [Continuation.Next]. Go has no function overloading, so a handler that
// could be called either on success or on failure is rendered as a small
// struct naming the two branches explicitly, rather than a single
// ambiguous func value.
type Overload struct {
	OnValues  any // func(T...) U, selected on upstream success
	OnFailure any // func(error) U, selected on upstream failure
}

// chain attaches a new stage in front of c: the returned Continuation's
// producer, once armed with out, arms c with an inner Receiver that
// applies handle to whatever Result c eventually delivers. c is
// consumed (by the time Arm on the returned Continuation runs); newArity
// is the best-effort declared arity of the new stage (see unknownArity).
func (c Continuation) chain(newArity int, handle func(res Result, out *Receiver)) Continuation {
	upstream := c
	return MakeContinuation(func(out *Receiver) {
		inner := newReceiver(func(res Result) {
			handle(res, out)
		})
		armChild(upstream, inner)
	}, newArity)
}

// Then attaches a transform f: (T…) → U to a typed Continuation. On
// upstream failure or cancellation, f is bypassed and the outcome is
// forwarded unchanged; otherwise f is invoked and its return value is
// classified per dispatch.go's flatten rules.
func (c Continuation) Then(f any) Continuation {
	fnVal := reflect.ValueOf(f)
	fnType := fnVal.Type()
	return c.chain(staticArity(fnType), func(res Result, out *Receiver) {
		res.Match(
			func(values []any) {
				runProtected(out, func() dispatchOutcome { return invoke(fnVal, fnType, values) })
			},
			func(err error) { out.Deliver(FromFailure(err)) },
			func() { out.Deliver(Cancelled()) },
		)
	})
}

// Fail attaches a failure handler h: (E) → U. On upstream success or
// cancellation, h is bypassed and the outcome is forwarded unchanged.
//
// h may also be a [Continuation] directly — sugar for
// Fail(func(error) Continuation { return h }). The supplied recovery
// Continuation is frozen immediately (it is now held for conditional
// later use) and released without complaint if the failure branch never
// runs.
func (c Continuation) Fail(h any) Continuation {
	if recovery, ok := h.(Continuation); ok {
		return c.failWithRecovery(recovery)
	}
	fnVal := reflect.ValueOf(h)
	fnType := fnVal.Type()
	return c.chain(staticArity(fnType), func(res Result, out *Receiver) {
		res.Match(
			func(values []any) { out.Deliver(FromValues(values...)) },
			func(err error) {
				runProtected(out, func() dispatchOutcome { return invoke(fnVal, fnType, []any{err}) })
			},
			func() { out.Deliver(Cancelled()) },
		)
	})
}

func (c Continuation) failWithRecovery(recovery Continuation) Continuation {
	recovery.s.freeze()
	return c.chain(unknownArity, func(res Result, out *Receiver) {
		res.Match(
			func(values []any) {
				recovery.s.release()
				out.Deliver(FromValues(values...))
			},
			func(error) {
				armChild(recovery, out)
			},
			func() {
				recovery.s.release()
				out.Deliver(Cancelled())
			},
		)
	})
}

// Next attaches a single overloaded handler, selecting ov.OnValues on
// upstream success and ov.OnFailure on upstream failure. On upstream
// cancellation neither branch runs and the outcome is forwarded
// unchanged. Return-type flattening follows Then.
func (c Continuation) Next(ov Overload) Continuation {
	onValues := reflect.ValueOf(ov.OnValues)
	onValuesType := onValues.Type()
	onFailure := reflect.ValueOf(ov.OnFailure)
	onFailureType := onFailure.Type()
	return c.chain(staticArity(onValuesType), func(res Result, out *Receiver) {
		res.Match(
			func(values []any) {
				runProtected(out, func() dispatchOutcome { return invoke(onValues, onValuesType, values) })
			},
			func(err error) {
				runProtected(out, func() dispatchOutcome { return invoke(onFailure, onFailureType, []any{err}) })
			},
			func() { out.Deliver(Cancelled()) },
		)
	})
}

// Finally runs h regardless of outcome and forwards the original result
// unchanged, unless h itself panics, in which case the stage fails
// instead (under strict_failures the panic is not recovered and
// propagates).
func (c Continuation) Finally(h func()) Continuation {
	return c.chain(c.arity(), func(res Result, out *Receiver) {
		_, recovered := protectedCall(func() dispatchOutcome {
			h()
			return dispatchOutcome{}
		})
		if recovered != nil {
			out.Deliver(FromFailure(recovered))
			return
		}
		out.Deliver(res)
	})
}
