package appsystems

import (
	"testing"

	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"go.uber.org/zap"
)

func TestLabelWatchReceivesAddedNotification(t *testing.T) {
	w := newWorld()
	labelID := w.Registry().IDOf(components.Label{})
	watch := NewLabelWatch(w, labelID, zap.NewNop())

	e := w.AddEntity()
	e.Activate()
	e.Add(components.Label{Name: "hello"})

	var seen []ecs.NotificationKind
	for _, batch := range watch.watcher.PopNotifications() {
		for _, ent := range batch.Entities {
			watch.OnNotify(w, batch.Kind, ent)
			seen = append(seen, batch.Kind)
		}
	}
	if len(seen) != 1 || seen[0] != ecs.NotifyAdded {
		t.Fatalf("expected one Added notification, got %v", seen)
	}
}

func TestKindNameCoversEveryNotificationKind(t *testing.T) {
	cases := map[ecs.NotificationKind]string{
		ecs.NotifyAdded:    "added",
		ecs.NotifyModified: "modified",
		ecs.NotifyRemoved:  "removed",
		ecs.NotifyEnabled:  "enabled",
		ecs.NotifyDisabled: "disabled",
	}
	for kind, want := range cases {
		if got := kindName(kind); got != want {
			t.Fatalf("kindName(%v) = %q, want %q", kind, got, want)
		}
	}
}
