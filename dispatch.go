// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"errors"
	"reflect"
)

// A handler passed to Then/Fail/Next/Defer is an ordinary Go func value
// (any); its static reflect.Type is inspected once per attach
// (staticArity) plus once per actual invocation (invoke) to classify its
// return shape into exactly one of: failure, flatten, cancelled, or a
// value tuple.

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// stop is the sentinel type a handler returns to request cancellation
// from within a Then/Fail/Next/Defer handler.
type stop struct{}

// Stop is returned by a handler to cancel the pipeline from within
// Then/Fail/Next, without it being mistaken for an ordinary zero-arity
// success.
var Stop = stop{}

var stopType = reflect.TypeOf(stop{})
var contType = reflect.TypeOf(Continuation{})

// dispatchOutcome is the result of inspecting and invoking a handler:
// either it flattens into a child Continuation (flatten, hasFlatten),
// or it produced a final Result directly.
type dispatchOutcome struct {
	result     Result
	flatten    Continuation
	hasFlatten bool
}

// staticArity determines the best-effort declared success arity of
// calling fn, from its static Go func type alone, without invoking it.
// Returns unknownArity when the shape can only be resolved at call time
// (the flatten case, since a Continuation's true arity is type-erased).
func staticArity(fnType reflect.Type) int {
	n := fnType.NumOut()
	if n == 0 {
		return 0
	}
	if fnType.Out(n-1) == errorType {
		n--
	}
	if n == 1 {
		switch fnType.Out(0) {
		case contType:
			return unknownArity
		case stopType:
			return 0
		}
	}
	return n
}

// buildArgs adapts a plain []any argument list to fn's parameter types.
// Returns ok=false on arity mismatch: a mismatch between a delivered
// value tuple and a handler's declared parameters is a contract
// violation, caught here at the boundary where the call is built.
func buildArgs(fnType reflect.Type, args []any) ([]reflect.Value, bool) {
	want := fnType.NumIn()
	if fnType.IsVariadic() {
		if len(args) < want-1 {
			return nil, false
		}
	} else if len(args) != want {
		return nil, false
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		switch {
		case fnType.IsVariadic() && i >= want-1:
			pt = fnType.In(want - 1).Elem()
		default:
			pt = fnType.In(i)
		}
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(pt) {
			if v.Type().ConvertibleTo(pt) {
				v = v.Convert(pt)
			} else {
				return nil, false
			}
		}
		in[i] = v
	}
	return in, true
}

// invoke calls fn with the adapted args and classifies the return
// values per the rules in staticArity/dispatchOutcome.
func invoke(fnVal reflect.Value, fnType reflect.Type, args []any) dispatchOutcome {
	in, ok := buildArgs(fnType, args)
	if !ok {
		reportViolation(ViolationArityMismatch, "handler arity does not match delivered value tuple")
		return dispatchOutcome{result: FromFailure(errArityMismatch)}
	}
	outs := fnVal.Call(in)
	return classify(outs)
}

func classify(outs []reflect.Value) dispatchOutcome {
	n := len(outs)
	if n > 0 {
		last := outs[n-1]
		if last.Type() == errorType {
			if err, _ := last.Interface().(error); err != nil {
				return dispatchOutcome{result: FromFailure(err)}
			}
			outs = outs[:n-1]
			n--
		}
	}
	if n == 1 {
		switch v := outs[0].Interface().(type) {
		case Continuation:
			return dispatchOutcome{flatten: v, hasFlatten: true}
		case stop:
			return dispatchOutcome{result: Cancelled()}
		}
	}
	values := make([]any, n)
	for i, o := range outs {
		values[i] = o.Interface()
	}
	return dispatchOutcome{result: FromValues(values...)}
}

var errArityMismatch = errors.New("continuable: handler arity does not match delivered value tuple")

// deliverOutcome applies a dispatchOutcome to r: arming the flatten
// target with r directly (so its eventual completion becomes this
// stage's completion), or delivering the final Result.
func deliverOutcome(r *Receiver, outcome dispatchOutcome) {
	if outcome.hasFlatten {
		outcome.flatten.Arm(r)
		return
	}
	r.Deliver(outcome.result)
}

// runProtected invokes fn and delivers its outcome to r, recovering a
// panic into a failure Result unless built with the strict_failures tag
// (see errors_strict.go / errors_lenient.go).
func runProtected(r *Receiver, fn func() dispatchOutcome) {
	outcome, recovered := protectedCall(fn)
	if recovered != nil {
		r.Deliver(FromFailure(recovered))
		return
	}
	deliverOutcome(r, outcome)
}
