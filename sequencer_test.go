// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable_test

import (
	"errors"
	"testing"

	"github.com/yaoyuan1216/continuable"
)

func armAndCollect(c continuable.Continuation) continuable.Result {
	var got continuable.Result
	c.Arm(continuable.NewReceiver(func(res continuable.Result) { got = res }))
	return got
}

func TestThenChains(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(1).
		Then(func(x int) int { return x + 2 }).
		Then(func(y int) int { return y * 10 }))
	if !got.IsValues() || got.Values()[0].(int) != 30 {
		t.Fatalf("got %v, want values(30)", got)
	}
}

func TestThenBypassedOnFailure(t *testing.T) {
	called := false
	err := errors.New("upstream")
	got := armAndCollect(continuable.MakeExceptional(err).Then(func() int {
		called = true
		return 99
	}))
	if called {
		t.Fatal("Then handler must not run on upstream failure")
	}
	if !got.IsFailure() || got.Err() != err {
		t.Fatalf("got %v, want failure(%v)", got, err)
	}
}

func TestThenBypassedOnCancelled(t *testing.T) {
	called := false
	got := armAndCollect(continuable.MakeCancelled().Then(func() int {
		called = true
		return 99
	}))
	if called {
		t.Fatal("Then handler must not run on upstream cancellation")
	}
	if !got.IsCancelled() {
		t.Fatalf("got %v, want cancelled", got)
	}
}

func TestThenFlattensReturnedContinuation(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(1).Then(func(x int) continuable.Continuation {
		return continuable.MakeReady(x + 41)
	}))
	if !got.IsValues() || got.Values()[0].(int) != 42 {
		t.Fatalf("got %v, want values(42)", got)
	}
}

func TestThenFlattenLaw(t *testing.T) {
	direct := armAndCollect(continuable.MakeReady(10).Then(func(v int) int { return v + 1 }))
	flattened := armAndCollect(continuable.MakeReady(10).Then(func(v int) continuable.Continuation {
		return continuable.MakeReady(v + 1)
	}))
	if direct.Values()[0] != flattened.Values()[0] {
		t.Fatalf("flatten law violated: %v != %v", direct, flattened)
	}
}

func TestThenIdentity(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(7).Then(func(x int) int { return x }))
	if !got.IsValues() || got.Values()[0].(int) != 7 {
		t.Fatalf("got %v, want values(7)", got)
	}
}

func TestThenTrailingErrorBecomesFailure(t *testing.T) {
	boom := errors.New("boom")
	got := armAndCollect(continuable.MakeReady(1).Then(func(int) (int, error) {
		return 0, boom
	}))
	if !got.IsFailure() || got.Err() != boom {
		t.Fatalf("got %v, want failure(%v)", got, boom)
	}
}

func TestThenStopSentinelCancels(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(1).Then(func(int) any {
		return continuable.Stop
	}))
	if !got.IsCancelled() {
		t.Fatalf("got %v, want cancelled", got)
	}
}

func TestFailRecoversFromFailure(t *testing.T) {
	got := armAndCollect(continuable.MakeExceptional(errors.New("E")).
		Then(func() int { return 99 }).
		Fail(func(error) int { return 7 }))
	if !got.IsValues() || got.Values()[0].(int) != 7 {
		t.Fatalf("got %v, want values(7) (scenario S2)", got)
	}
}

func TestFailBypassedOnSuccess(t *testing.T) {
	called := false
	got := armAndCollect(continuable.MakeReady(5).Fail(func(error) int {
		called = true
		return -1
	}))
	if called {
		t.Fatal("Fail handler must not run on upstream success")
	}
	if !got.IsValues() || got.Values()[0].(int) != 5 {
		t.Fatalf("got %v, want values(5)", got)
	}
}

func TestFailBypassedOnCancelled(t *testing.T) {
	called := false
	got := armAndCollect(continuable.MakeCancelled().Fail(func(error) int {
		called = true
		return -1
	}))
	if called {
		t.Fatal("Fail handler must not run on upstream cancellation")
	}
	if !got.IsCancelled() {
		t.Fatalf("got %v, want cancelled", got)
	}
}

func TestFailAcceptsRecoveryContinuation(t *testing.T) {
	recovery := continuable.MakeReady(11)
	got := armAndCollect(continuable.MakeExceptional(errors.New("x")).Fail(recovery))
	if !got.IsValues() || got.Values()[0].(int) != 11 {
		t.Fatalf("got %v, want values(11)", got)
	}
}

func TestFailRecoveryContinuationReleasedWhenUnused(t *testing.T) {
	recovery := continuable.MakeReady(11)
	got := armAndCollect(continuable.MakeReady(1).Fail(recovery))
	if !got.IsValues() || got.Values()[0].(int) != 1 {
		t.Fatalf("got %v, want values(1); recovery branch must not run", got)
	}
}

func TestNextSelectsSuccessBranch(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(3).Next(continuable.Overload{
		OnValues:  func(x int) int { return x * 2 },
		OnFailure: func(error) int { return -1 },
	}))
	if !got.IsValues() || got.Values()[0].(int) != 6 {
		t.Fatalf("got %v, want values(6)", got)
	}
}

func TestNextSelectsFailureBranch(t *testing.T) {
	got := armAndCollect(continuable.MakeExceptional(errors.New("E")).Next(continuable.Overload{
		OnValues:  func(x int) int { return x * 2 },
		OnFailure: func(error) int { return -1 },
	}))
	if !got.IsValues() || got.Values()[0].(int) != -1 {
		t.Fatalf("got %v, want values(-1)", got)
	}
}

func TestFinallyRunsOnSuccess(t *testing.T) {
	ran := false
	got := armAndCollect(continuable.MakeReady(1, 2).Finally(func() { ran = true }))
	if !ran {
		t.Fatal("Finally must run on success")
	}
	if !got.IsValues() || got.Arity() != 2 {
		t.Fatalf("got %v, want the original values forwarded unchanged", got)
	}
}

func TestFinallyRunsOnFailure(t *testing.T) {
	ran := false
	err := errors.New("E")
	got := armAndCollect(continuable.MakeExceptional(err).Finally(func() { ran = true }))
	if !ran {
		t.Fatal("Finally must run on failure")
	}
	if !got.IsFailure() || got.Err() != err {
		t.Fatalf("got %v, want the original failure forwarded unchanged", got)
	}
}

func TestFinallyRunsOnCancelled(t *testing.T) {
	ran := false
	got := armAndCollect(continuable.MakeCancelled().Finally(func() { ran = true }))
	if !ran {
		t.Fatal("Finally must run on cancellation")
	}
	if !got.IsCancelled() {
		t.Fatalf("got %v, want cancelled", got)
	}
}

func TestFinallyHandlerPanicBecomesFailure(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(1).Finally(func() {
		panic(errors.New("finally blew up"))
	}))
	if !got.IsFailure() {
		t.Fatalf("got %v, want failure", got)
	}
}

func TestDeferInvokesOnArm(t *testing.T) {
	got := armAndCollect(continuable.Defer(func(a, b int) int { return a + b }, 2, 3))
	if !got.IsValues() || got.Values()[0].(int) != 5 {
		t.Fatalf("got %v, want values(5)", got)
	}
}

func TestDeferPropagatesHandlerFailure(t *testing.T) {
	boom := errors.New("boom")
	got := armAndCollect(continuable.Defer(func() (int, error) { return 0, boom }))
	if !got.IsFailure() || got.Err() != boom {
		t.Fatalf("got %v, want failure(%v)", got, boom)
	}
}
