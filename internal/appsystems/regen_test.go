package appsystems

import (
	"testing"
	"time"

	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

func TestRegenHealsBelowMaxAndNotifiesModified(t *testing.T) {
	w := newWorld()
	r := NewRegen(w)
	vitalsID := w.Registry().IDOf((*components.Vitals)(nil))

	e := w.AddEntity(&components.Vitals{HP: 5, MaxHP: 10})
	e.Activate()

	var modified int
	e.OnComponentModified(func(ev ecs.Event) {
		if ev.Component == vitalsID {
			modified++
		}
	})

	r.Update(w, time.Second)

	v, _ := ecs.Get[*components.Vitals](e, vitalsID)
	if v.HP != 6 {
		t.Fatalf("expected HP to increase to 6, got %d", v.HP)
	}
	if modified != 1 {
		t.Fatalf("expected NotifyModified to fire the Modified event once, got %d", modified)
	}
}

func TestRegenStopsAtMaxHPAndFiresNoEvent(t *testing.T) {
	w := newWorld()
	r := NewRegen(w)
	vitalsID := w.Registry().IDOf((*components.Vitals)(nil))

	e := w.AddEntity(&components.Vitals{HP: 10, MaxHP: 10})
	e.Activate()

	var modified int
	e.OnComponentModified(func(ev ecs.Event) { modified++ })

	r.Update(w, time.Second)

	v, _ := ecs.Get[*components.Vitals](e, vitalsID)
	if v.HP != 10 {
		t.Fatalf("expected HP to stay at max, got %d", v.HP)
	}
	if modified != 0 {
		t.Fatal("expected no Modified event once HP is already at max")
	}
}
