package appsystems

import (
	"testing"
	"time"

	"github.com/l1jgo/ecsrun/internal/components"
)

func TestSnapshotDoesNotPanicOffCadence(t *testing.T) {
	w := newWorld()
	s := NewSnapshot(w)

	e := w.AddEntity(components.Transform{})
	e.Activate()

	// frame 0 is on cadence (0 % 150 == 0); frame 1 is not. Neither should panic.
	s.Render(w, time.Second)
	w.Update(time.Millisecond) // no pipeline attached: only advances FrameCount to 1
	s.Render(w, time.Second)
}
