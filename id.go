// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package continuable

import (
	"sync"

	"github.com/google/uuid"
)

// debugID lazily mints a correlation id for a contState, used only to
// tag runtime/trace log lines so a pipeline's stages can be correlated
// in a trace viewer. It is never allocated unless tracing is actually
// enabled (see trace.go), so the common case pays nothing for it.
type debugID struct {
	once sync.Once
	id   uuid.UUID
}

func (d *debugID) String() string {
	d.once.Do(func() { d.id = uuid.New() })
	return d.id.String()
}
