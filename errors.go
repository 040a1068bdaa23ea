// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import "sync/atomic"

// Violation names a contract violation kind: double-arm, drop-unarmed,
// reuse of a consumed receiver, arity mismatch, arming a frozen
// continuation directly, and passing a non-acquired continuation to a
// composer.
type Violation uint8

const (
	ViolationDoubleArm Violation = iota
	ViolationDoubleDeliver
	ViolationArmFrozen
	ViolationLeakedUnarmed
	ViolationArityMismatch
	ViolationNonAcquired
)

func (v Violation) String() string {
	switch v {
	case ViolationDoubleArm:
		return "continuation armed twice"
	case ViolationDoubleDeliver:
		return "receiver delivered to twice"
	case ViolationArmFrozen:
		return "frozen continuation armed directly"
	case ViolationLeakedUnarmed:
		return "acquired continuation dropped without arming"
	case ViolationArityMismatch:
		return "result arity does not match declared signature"
	case ViolationNonAcquired:
		return "non-acquired continuation passed to a composer"
	default:
		return "unknown contract violation"
	}
}

// violationHook, when non-nil, is invoked in place of panicking. It
// exists solely so tests can observe a contract violation without
// tearing down the test binary; see [SetContractViolationHook].
var violationHook atomic.Pointer[func(Violation, string)]

// SetContractViolationHook installs f to be called whenever this
// package detects a contract violation (double-arm, drop-unarmed reuse
// of a consumed receiver, arity mismatch, arming a frozen continuation,
// or passing a non-acquired continuation to a composer) instead of
// panicking. It returns a function that restores the previous hook.
//
// This exists so tests can observe arming twice, dropping a continuation
// unarmed, and passing a non-acquired continuation to a composer, all
// without tearing down the test binary; production code should leave no
// hook installed so violations panic loudly.
func SetContractViolationHook(f func(kind Violation, detail string)) (restore func()) {
	var next *func(Violation, string)
	if f != nil {
		next = &f
	}
	prev := violationHook.Swap(next)
	return func() { violationHook.Store(prev) }
}

// reportViolation panics with a message in the teacher's style
// ("continuable: <detail>") unless a test hook is installed, in which
// case the hook is invoked instead and control returns to the caller.
func reportViolation(kind Violation, detail string) {
	if hook := violationHook.Load(); hook != nil {
		(*hook)(kind, detail)
		return
	}
	panic("continuable: " + detail)
}
