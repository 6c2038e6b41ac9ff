package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// BoltSystem bobs bolts in place, pulls them toward a nearby player and
// collects them on contact.
type BoltSystem struct{}

func NewBoltSystem() *BoltSystem {
	return &BoltSystem{}
}

func (s *BoltSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	clock := w.Clock()

	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())
	var playerPos mgl32.Vec3
	var playerBody *component.Body
	if hasPlayer {
		pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
		body, okBody := ecs.Get(w, player, component.BodyComponent.Kind())
		hasPlayer = ok && okBody
		if hasPlayer {
			playerPos = pt.Position
			playerBody = body
		}
	}

	ecs.ForEach2(w, component.BoltComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bolt, t *component.Transform) {
		if !b.Initialized {
			b.BaseY = t.Position.Y()
			b.BobPhase = t.Position.X() + t.Position.Z()
			b.Initialized = true
		}
		b.BobPhase += b.BobSpeed * clock.Delta

		if hasPlayer {
			toPlayer := playerPos.Sub(t.Position)
			if dist := toPlayer.Len(); dist > 0 && dist < b.MagnetRadius {
				step := math32.Min(b.MagnetSpeed*clock.Delta, dist)
				t.Position = t.Position.Add(toPlayer.Mul(step / dist))
				b.BaseY = t.Position.Y()
			} else {
				t.Position[1] = b.BaseY + math32.Sin(b.BobPhase)*b.BobAmplitude
			}

			box := component.CenteredBox(t.Position, mgl32.Vec3{b.HalfExtent, b.HalfExtent, b.HalfExtent})
			if box.IntersectsWith(playerBody.Box(playerPos)) {
				if bolts, ok := ecs.Get(w, player, component.BoltsComponent.Kind()); ok {
					bolts.Count += b.Value
				}
				playSound(w, "bolt")
				ecs.DestroyEntity(w, e)
			}
			return
		}
		t.Position[1] = b.BaseY + math32.Sin(b.BobPhase)*b.BobAmplitude
	})
}
