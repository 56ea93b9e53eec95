package appsystems

import (
	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/system"
	"go.uber.org/zap"
)

// ChatLog logs every Chat message sent this frame, matching the teacher's
// HandleChat debug log line. It declares no component watchers of its
// own — it is driven purely by the scheduler's message-descriptor
// dispatch rather than the notification-batch path.
type ChatLog struct {
	chatID ecs.ComponentID
	log    *zap.Logger
}

func NewChatLog(world *ecs.World, log *zap.Logger) *ChatLog {
	return &ChatLog{chatID: world.Registry().IDOf(components.Chat{}), log: log}
}

func (*ChatLog) ID() string                     { return "chat-log" }
func (*ChatLog) Capabilities() system.Capability { return system.CapReactive }

func (*ChatLog) Watchers() []*ecs.ComponentWatcher { return nil }
func (*ChatLog) OnNotify(*ecs.World, ecs.NotificationKind, *ecs.Entity) {}

func (c *ChatLog) MessageDescriptors() []ecs.ComponentID { return []ecs.ComponentID{c.chatID} }

func (c *ChatLog) OnMessage(w *ecs.World, e *ecs.Entity, typeID ecs.ComponentID, message any) {
	chat, ok := message.(components.Chat)
	if !ok {
		return
	}
	c.log.Debug("chat",
		zap.Uint64("entity", uint64(e.ID())),
		zap.Int("channel", chat.Channel),
		zap.String("text", chat.Text),
	)
}

var (
	_ system.Reactive        = (*ChatLog)(nil)
	_ system.MessageConsumer = (*ChatLog)(nil)
)
