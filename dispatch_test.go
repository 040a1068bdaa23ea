// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable_test

import (
	"errors"
	"testing"

	"github.com/yaoyuan1216/continuable"
)

func TestHandlerPanicBecomesFailure(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(1).Then(func(int) int {
		panic("handler exploded")
	}))
	if !got.IsFailure() {
		t.Fatalf("got %v, want failure recovered from panic", got)
	}
}

func TestHandlerPanicWithErrorValuePreservesError(t *testing.T) {
	boom := errors.New("boom")
	got := armAndCollect(continuable.MakeReady(1).Then(func(int) int {
		panic(boom)
	}))
	if !got.IsFailure() || got.Err() != boom {
		t.Fatalf("got %v, want failure(%v)", got, boom)
	}
}

func TestThenVariadicHandler(t *testing.T) {
	got := armAndCollect(continuable.MakeReady(1, 2, 3).Then(func(xs ...int) int {
		sum := 0
		for _, x := range xs {
			sum += x
		}
		return sum
	}))
	if !got.IsValues() || got.Values()[0].(int) != 6 {
		t.Fatalf("got %v, want values(6)", got)
	}
}

func TestThenZeroArityHandlerOnEmptySuccess(t *testing.T) {
	got := armAndCollect(continuable.MakeReady().Then(func() int { return 9 }))
	if !got.IsValues() || got.Values()[0].(int) != 9 {
		t.Fatalf("got %v, want values(9)", got)
	}
}

func TestThenVoidHandlerProducesEmptySignature(t *testing.T) {
	ran := false
	got := armAndCollect(continuable.MakeReady(1).Then(func(int) { ran = true }))
	if !ran {
		t.Fatal("handler must run")
	}
	if !got.IsValues() || got.Arity() != 0 {
		t.Fatalf("got %v, want values() (arity 0)", got)
	}
}
