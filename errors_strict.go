// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build strict_failures

package continuable

// protectedCall, under the strict_failures build tag, requires every
// failure to be encoded by the caller as a stored error value (via
// FromFailure / SetException / a trailing error return); a panic
// escaping a producer or handler is not recovered here and propagates as
// a real Go panic.
func protectedCall(fn func() dispatchOutcome) (outcome dispatchOutcome, recovered error) {
	outcome = fn()
	return
}
