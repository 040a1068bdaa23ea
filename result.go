// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import "strconv"

// Result is a tagged union over the three ways a stage of a pipeline can
// complete: a tuple of success values, a failure, or cooperative
// cancellation. Every inter-stage handoff in this package crosses
// through a Result.
//
// A Result is delivered to a [Receiver] exactly once; values are never
// implicitly copied, only moved by ordinary Go assignment of the
// (small, immutable) Result struct itself.
type Result struct {
	kind   resultKind
	values []any
	err    error
}

type resultKind uint8

const (
	kindValues resultKind = iota
	kindFailure
	kindCancelled
)

// FromValues builds a success Result carrying the given value tuple.
// The arity of values is the Result's effective signature.
func FromValues(values ...any) Result {
	return Result{kind: kindValues, values: values}
}

// FromFailure builds a failure Result. err must not be nil; the core
// never synthesises a failure value, it only forwards what it is given.
func FromFailure(err error) Result {
	if err == nil {
		panic("continuable: FromFailure called with nil error")
	}
	return Result{kind: kindFailure, err: err}
}

// Cancelled builds an empty completion meaning "stop the pipeline, this
// is not a failure".
func Cancelled() Result {
	return Result{kind: kindCancelled}
}

// IsValues reports whether r carries a success value tuple.
func (r Result) IsValues() bool { return r.kind == kindValues }

// IsFailure reports whether r carries a failure.
func (r Result) IsFailure() bool { return r.kind == kindFailure }

// IsCancelled reports whether r is a cancellation.
func (r Result) IsCancelled() bool { return r.kind == kindCancelled }

// Values returns the success value tuple. It is empty unless IsValues.
func (r Result) Values() []any { return r.values }

// Arity returns len(r.Values()); 0 for failure and cancellation.
func (r Result) Arity() int { return len(r.values) }

// Err returns the failure carried by r, or nil unless IsFailure.
func (r Result) Err() error { return r.err }

// Match is total: it invokes exactly one of the three branches and
// returns nothing, for side-effecting consumers.
func (r Result) Match(onValues func([]any), onFailure func(error), onCancelled func()) {
	switch r.kind {
	case kindValues:
		onValues(r.values)
	case kindFailure:
		onFailure(r.err)
	default:
		onCancelled()
	}
}

// MatchResult is the value-returning counterpart of [Result.Match],
// useful when all three branches reduce to the same type U.
func MatchResult[U any](r Result, onValues func([]any) U, onFailure func(error) U, onCancelled func() U) U {
	switch r.kind {
	case kindValues:
		return onValues(r.values)
	case kindFailure:
		return onFailure(r.err)
	default:
		return onCancelled()
	}
}

// String renders a short diagnostic form of the Result, used by trace.go
// and test failure messages; it is not part of the wire contract.
func (r Result) String() string {
	switch r.kind {
	case kindValues:
		return "values" + formatArity(len(r.values))
	case kindFailure:
		return "failure(" + r.err.Error() + ")"
	default:
		return "cancelled"
	}
}

func formatArity(n int) string {
	switch n {
	case 0:
		return "()"
	case 1:
		return "(1)"
	default:
		return "(" + strconv.Itoa(n) + ")"
	}
}
