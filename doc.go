// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package continuable provides a deferred asynchronous computation
// primitive in Go.
//
// The core type [Continuation] represents a computation that, once armed
// with a [Receiver], will eventually deliver either a tuple of values or
// a failure exactly once. Continuations are lazy, single-shot, and
// move-only by convention: arming a continuation twice, or dropping one
// without arming it, is a contract violation (see
// [SetContractViolationHook]).
//
// # Design Philosophy
//
// continuable provides:
//   - A minimal result carrier ([Result]) that every stage of a pipeline
//     passes through: success values, a failure, or cooperative
//     cancellation.
//   - Sequencing via [Continuation.Then], [Continuation.Fail],
//     [Continuation.Next] and [Continuation.Finally], with automatic
//     flattening when a handler itself returns a [Continuation].
//   - Composition via [All], [Any], [AnyFailFast] and [Seq], represented
//     as data (a child list plus a strategy tag) until the composition is
//     armed, or nested under a different strategy, at which point it is
//     materialised into a single producer closure.
//
// # Core Operations
//
// Construction:
//
//   - [MakeContinuation]: wrap a user producer closure.
//   - [MakeReady]: a continuation that immediately succeeds.
//   - [MakeCancelled]: a continuation that immediately cancels.
//   - [MakeExceptional]: a continuation that immediately fails.
//   - [Defer]: invoke a plain function when armed, without building an
//     intermediate [Result] the way `MakeReady(...).Then(fn)` would.
//
// Sequencing:
//
//   - [Continuation.Then]: transform a success.
//   - [Continuation.Fail]: recover from a failure.
//   - [Continuation.Next]: a pair of handlers bundled in an [Overload];
//     OnValues runs on success and OnFailure on failure.
//   - [Continuation.Finally]: run regardless of outcome.
//
// Composition:
//
//   - [All]: run children concurrently, concatenate their signatures.
//   - [Any]: run children concurrently, take the first success.
//   - [AnyFailFast]: as [Any], but the first failure is surfaced
//     immediately and remaining children are dropped.
//   - [Seq]: run children one at a time, failing fast.
//   - [Apply]: n-ary entry point that also walks nested slices, arrays
//     and maps of [Continuation] in stable pre-order.
//
// Arming:
//
//   - [Continuation.Arm]: hand a [Receiver] to a continuation, starting
//     its execution. Consumes the continuation.
//
// # Ownership
//
// Every [Continuation] is created `acquired`. It becomes `frozen` when
// stored as a child of a composition (and may no longer be armed
// directly), and `released` once armed or once consumed by a
// composition. Dropping an `acquired`, non-`frozen` continuation without
// arming it is a leak, reported through [runtime/trace] when tracing is
// enabled and surfaced to tests via [SetContractViolationHook].
//
// # Environment switch
//
// By default, a panic escaping a producer or a handler is recovered and
// turned into a [Result] failure, matching the behaviour of languages
// with exception-style error propagation. Building with the
// `strict_failures` tag disables this: panics propagate as real Go
// panics, and every failure must be encoded by the caller as a stored
// error value.
package continuable
