package system

import (
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

// FrameDelta returns the seconds one update advances. Worlds without a
// Clock step at the default rate.
func FrameDelta(w *ecs.World) float64 {
	if e, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.ClockComponent.Kind()); ok && c.Delta > 0 {
			return c.Delta
		}
	}
	return common.FrameDelta
}

// SetTickRate sets the Clock from an update rate in ticks per second.
func SetTickRate(w *ecs.World, tps int) {
	if tps <= 0 {
		tps = common.TPS
	}
	delta := 1.0 / float64(tps)
	if e, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.ClockComponent.Kind()); ok {
			c.Delta = delta
			return
		}
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{Delta: delta}); err != nil {
		panic("clock: add clock: " + err.Error())
	}
	if err := ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{
		ID:                clockID,
		KeepOnLevelChange: true,
		KeepOnReload:      true,
	}); err != nil {
		panic("clock: add persistent: " + err.Error())
	}
}

const clockID = "clock"
