// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaoyuan1216/continuable"
)

// This file is the literal end-to-end scenario table: each test name
// corresponds to one row, matching the pipeline and outcome verbatim.

func TestScenarioS1_ChainedThen(t *testing.T) {
	r := require.New(t)
	got := armAndCollect(continuable.MakeReady(1).
		Then(func(x int) int { return x + 2 }).
		Then(func(y int) int { return y * 10 }))
	r.True(got.IsValues())
	r.Equal(30, got.Values()[0])
}

func TestScenarioS2_FailRecoversException(t *testing.T) {
	r := require.New(t)
	got := armAndCollect(continuable.MakeExceptional(errors.New("E")).
		Then(func() int { return 99 }).
		Fail(func(error) int { return 7 }))
	r.True(got.IsValues())
	r.Equal(7, got.Values()[0])
}

func TestScenarioS3_AllConcatenatesThenDestructures(t *testing.T) {
	r := require.New(t)
	got := armAndCollect(continuable.All(continuable.MakeReady("a"), continuable.MakeReady(3)).
		Then(func(s string, n int) (string, int, int) { return s, n, n }))
	r.True(got.IsValues())
	r.Equal([]any{"a", 3, 3}, got.Values())
}

func TestScenarioS4_AnyFailFastSurfacesFirstFailure(t *testing.T) {
	r := require.New(t)
	e1 := errors.New("E1")
	got := armAndCollect(continuable.AnyFailFast(continuable.MakeExceptional(e1), continuable.MakeReady(5)))
	r.True(got.IsFailure())
	r.Equal(e1, got.Err())
}

func TestScenarioS5_SeqStopsBeforeThirdChild(t *testing.T) {
	r := require.New(t)
	err := errors.New("E")
	neverCalled := false
	third := continuable.Defer(func() { neverCalled = true })

	got := armAndCollect(continuable.Seq(
		continuable.MakeReady(1),
		continuable.MakeExceptional(err),
		third,
	))

	r.True(got.IsFailure())
	r.Equal(err, got.Err())
	r.False(neverCalled, "third producer must never be invoked")
}

func TestScenarioS6_GroupingKeepsArityTwo(t *testing.T) {
	r := require.New(t)
	a := continuable.MakeReady(1)
	b := continuable.MakeExceptional(errors.New("b fails"))
	c := continuable.MakeReady("z")

	got := armAndCollect(continuable.All(a, continuable.Any(b, c)))
	r.True(got.IsValues())
	r.Equal(2, got.Arity())
	r.Equal([]any{1, "z"}, got.Values())
}

// Invariant 1: c.Arm(r) invokes r at most once, exactly once unless
// cancelled or dropped.
func TestInvariantArmInvokesReceiverExactlyOnce(t *testing.T) {
	r := require.New(t)
	calls := 0
	continuable.MakeReady(1).Arm(continuable.NewReceiver(func(continuable.Result) { calls++ }))
	r.Equal(1, calls)
}

// Invariant 4: seq(a,b): b's producer invoked only after a's receiver
// fires with success.
func TestInvariantSeqOrdering(t *testing.T) {
	r := require.New(t)
	var aFired bool
	a := continuable.MakeContinuation(func(rv *continuable.Receiver) {
		aFired = true
		rv.SetValue()
	}, 0)
	b := continuable.MakeContinuation(func(rv *continuable.Receiver) {
		r.True(aFired, "b's producer must not run before a's receiver fires")
		rv.SetValue()
	}, 0)
	armAndCollect(continuable.Seq(a, b))
}
