package appsystems

import (
	"time"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/system"
	"go.uber.org/zap"
)

// PauseHeartbeat runs only while the world is paused, logging once per
// update so an operator watching the log stream can tell the pipeline is
// idling rather than stalled.
type PauseHeartbeat struct {
	log *zap.Logger
}

func NewPauseHeartbeat(log *zap.Logger) *PauseHeartbeat { return &PauseHeartbeat{log: log} }

func (*PauseHeartbeat) ID() string                     { return "pause-heartbeat" }
func (*PauseHeartbeat) Capabilities() system.Capability { return system.CapUpdate }
func (*PauseHeartbeat) PauseBehavior() system.PauseBehavior { return system.PauseOnly }

func (p *PauseHeartbeat) Update(w *ecs.World, dt time.Duration) {
	p.log.Debug("world paused", zap.Uint64("frame", w.FrameCount()))
}

var (
	_ system.Updater   = (*PauseHeartbeat)(nil)
	_ system.PauseAware = (*PauseHeartbeat)(nil)
)
