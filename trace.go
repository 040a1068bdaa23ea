// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"context"
	"fmt"
	"runtime/trace"
)

const traceCategory = "continuable"

// traceLog mirrors the teacher's Task.Log: it is a no-op unless
// runtime/trace is actively recording, so production code pays nothing
// for it in the common case.
func traceLog(s *contState, msg string) {
	if !trace.IsEnabled() {
		return
	}
	trace.Log(context.Background(), traceCategory, s.debug.String()+" "+msg)
}

func traceLogf(s *contState, format string, args ...any) {
	if !trace.IsEnabled() {
		return
	}
	trace.Log(context.Background(), traceCategory, s.debug.String()+" "+fmt.Sprintf(format, args...))
}

// traceLeak reports a dropped-unarmed continuation. It always logs via
// runtime/trace when tracing is enabled (so a trace capture shows
// exactly which pipeline leaked), independent of whether a contract
// violation hook is installed for tests.
func traceLeak(s *contState) {
	if !trace.IsEnabled() {
		return
	}
	trace.Log(context.Background(), traceCategory, s.debug.String()+" LEAK dropped while acquired")
}
