// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !strict_failures

package continuable

import "fmt"

// protectedCall is the default (exception-style) behaviour: a panic
// escaping fn is recovered and turned into a failure Result, matching a
// language where throwing from a handler is the ordinary way to signal
// failure.
func protectedCall(fn func() dispatchOutcome) (outcome dispatchOutcome, recovered error) {
	defer func() {
		if p := recover(); p != nil {
			recovered = panicToError(p)
		}
	}()
	outcome = fn()
	return
}

func panicToError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("continuable: recovered panic: %v", p)
}
