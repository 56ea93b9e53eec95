// Package diagnostics implements the per-system timing sinks a Scheduler
// reports to (see ecs.TimingSink), plus a legacy-text sanitizer for
// diagnostic display of components carrying pre-Unicode encoded strings.
package diagnostics

import "github.com/l1jgo/ecsrun/internal/core/ecs"

// NoopSink discards every sample. It is the world's default; wiring a real
// sink is opt-in.
type NoopSink struct{}

func (NoopSink) Record(string, float64, int) {}

var _ ecs.TimingSink = NoopSink{}
