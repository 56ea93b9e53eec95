package appsystems

import (
	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/system"
	"go.uber.org/zap"
)

// LabelWatch logs every add/remove/modify of a Label component, in the
// order the reactive drain delivers them.
type LabelWatch struct {
	watcher *ecs.ComponentWatcher
	log     *zap.Logger
	labelID ecs.ComponentID
}

func NewLabelWatch(world *ecs.World, labelID ecs.ComponentID, log *zap.Logger) *LabelWatch {
	sig := ecs.Signature{Clauses: []ecs.Clause{ecs.AllOf(labelID)}}
	ctx := world.Context(sig)
	return &LabelWatch{watcher: ctx.Watch(labelID), log: log, labelID: labelID}
}

func (*LabelWatch) ID() string                     { return "label-watch" }
func (*LabelWatch) Capabilities() system.Capability { return system.CapReactive }

func (l *LabelWatch) Watchers() []*ecs.ComponentWatcher { return []*ecs.ComponentWatcher{l.watcher} }

func (l *LabelWatch) OnNotify(w *ecs.World, kind ecs.NotificationKind, e *ecs.Entity) {
	name := kindName(kind)
	if v, ok := e.Get(l.labelID); ok {
		l.log.Debug("label event", zap.String("kind", name), zap.Uint64("entity", uint64(e.ID())), zap.Any("label", v))
		return
	}
	l.log.Debug("label event", zap.String("kind", name), zap.Uint64("entity", uint64(e.ID())))
}

func kindName(kind ecs.NotificationKind) string {
	switch kind {
	case ecs.NotifyAdded:
		return "added"
	case ecs.NotifyModified:
		return "modified"
	case ecs.NotifyRemoved:
		return "removed"
	case ecs.NotifyEnabled:
		return "enabled"
	case ecs.NotifyDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

var _ system.Reactive = (*LabelWatch)(nil)
