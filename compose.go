// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"fmt"
	"reflect"
	"sort"
)

// CompositionKind names one of the four composer strategies a
// Continuation can be tagged with in place of a concrete signature while
// it is still an unmaterialised composition.
type CompositionKind uint8

const (
	CompositionAll CompositionKind = iota
	CompositionAny
	CompositionAnyFailFast
	CompositionSeq
)

// kept as the field type on contState; an alias keeps the rest of the
// package's internal code reading naturally without the "Composition"
// prefix on every use.
type compositionKind = CompositionKind

const (
	compAll         = CompositionAll
	compAny         = CompositionAny
	compAnyFailFast = CompositionAnyFailFast
	compSeq         = CompositionSeq
)

// All runs its children concurrently; it succeeds with the concatenation
// of their signatures in input order, fails on the first failure
// observed (but still awaits every child before delivering), and
// propagates a child's cancellation as overall cancellation.
func All(cs ...Continuation) Continuation { return composeN(compAll, cs) }

// Any runs its children concurrently and succeeds with whichever
// completes successfully first; if every child fails, the overall
// result is the last observed failure.
func Any(cs ...Continuation) Continuation { return composeN(compAny, cs) }

// AnyFailFast is Any, except the first observed child failure is
// surfaced immediately and the remaining children are dropped.
func AnyFailFast(cs ...Continuation) Continuation { return composeN(compAnyFailFast, cs) }

// Seq runs its children one at a time in input order, feeding each only
// after its predecessor has completed successfully; it fails immediately
// on the first child failure without starting the rest.
func Seq(cs ...Continuation) Continuation { return composeN(compSeq, cs) }

// Apply is the n-ary composition entry point: in addition to repeated
// binary application, it traverses arbitrarily nested slices, arrays and
// maps of Continuation in stable pre-order, leaves only, and composes
// every leaf it finds under kind.
//
// The traversal preserves leaf *order* — what the combined signature's
// arity arithmetic needs, since it concatenates in input order — rather
// than reconstructing the original container shape in the result.
func Apply(kind CompositionKind, args ...any) Continuation {
	var leaves []Continuation
	for _, a := range args {
		walkContinuations(reflect.ValueOf(a), &leaves)
	}
	return composeN(kind, leaves)
}

func walkContinuations(v reflect.Value, out *[]Continuation) {
	if !v.IsValid() {
		return
	}
	if v.Type() == contType {
		*out = append(*out, v.Interface().(Continuation))
		return
	}
	switch v.Kind() {
	case reflect.Interface:
		walkContinuations(v.Elem(), out)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walkContinuations(v.Index(i), out)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			walkContinuations(v.MapIndex(k), out)
		}
	}
}

// composeN normalises each operand, concatenates their child lists in
// order, freezes every child, and produces a new composition-tagged
// Continuation.
func composeN(kind CompositionKind, cs []Continuation) Continuation {
	var children []Continuation
	for _, c := range cs {
		children = append(children, normalise(kind, c)...)
	}

	s := &contState{
		isComposition: true,
		kind:          kind,
		children:      children,
		arity:         foldArity(kind, children),
	}
	s.acquire()

	for _, child := range children {
		child.s.freeze()
	}
	return Continuation{s: s}
}

// normalise prepares a single operand for concatenation into a parent
// composition's child list:
//   - a typed (non-composition) operand becomes a one-element list;
//   - an operand already under the same strategy is inlined (its
//     children are taken directly, flattening same-kind chains);
//   - an operand under a different strategy is materialised first and
//     wrapped as a one-element list, preserving grouping so that
//     all(a, any(b, c)) is never reducible to all(a, b, c).
func normalise(kind CompositionKind, c Continuation) []Continuation {
	if !c.s.isAcquired() {
		reportViolation(ViolationNonAcquired, "continuation passed to a composer is not acquired")
	}

	s := c.s
	if !s.isComposition {
		return []Continuation{c}
	}
	if s.kind == kind {
		children := s.children
		s.release()
		return children
	}
	return []Continuation{materialiseToContinuation(c)}
}

// materialiseToContinuation converts a composition-tagged Continuation
// into a signature-tagged one, eagerly, for cross-strategy nesting. This
// is the same per-strategy finaliser materialise() installs at Arm time
// (materialize.go), just captured into a fresh Continuation instead of
// being driven immediately by a Receiver.
func materialiseToContinuation(c Continuation) Continuation {
	s := c.s
	producer := materialise(s)
	arity := foldArity(s.kind, s.children)
	s.release()
	return MakeContinuation(producer, arity)
}

// foldArity computes the best-effort combined declared arity for a
// composition by folding its children's declared signatures. All and
// Seq concatenate; Any and AnyFailFast resolve to unknownArity since the
// winning child (and therefore the delivered arity) is not known ahead
// of materialisation — arity here is advisory bookkeeping only, the
// actual value tuple is always built from runtime Result lengths.
func foldArity(kind CompositionKind, children []Continuation) int {
	switch kind {
	case compAll, compSeq:
		total := 0
		for _, c := range children {
			a := c.arity()
			if a == unknownArity {
				return unknownArity
			}
			total += a
		}
		return total
	default:
		return unknownArity
	}
}
