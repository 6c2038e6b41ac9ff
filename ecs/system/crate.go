package system

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/ecs/entity"
	"github.com/milk9111/ratchet/prefabs"
	"github.com/sirupsen/logrus"
)

const (
	boltRingRadius = 0.6
	maxCrateBolts  = 32
)

// applyDamage hits a crate. Other Hittable entities ignore damage.
func applyDamage(w *ecs.World, target ecs.Entity, damage, combo int) bool {
	crate, ok := ecs.Get(w, target, component.CrateComponent.Kind())
	if !ok || crate.Health <= 0 {
		return false
	}
	crate.Health -= damage
	crate.LastCombo = combo
	playSound(w, "crate_hit")
	return true
}

// CrateSystem breaks crates whose health ran out into a ring of bolts. The
// drop count comes from the crate's tengo script.
type CrateSystem struct {
	log     logrus.FieldLogger
	scripts map[string]*tengo.Compiled
}

func NewCrateSystem(log logrus.FieldLogger) *CrateSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CrateSystem{log: log, scripts: make(map[string]*tengo.Compiled)}
}

// Invalidate drops compiled scripts so the next break reloads them.
func (s *CrateSystem) Invalidate() {
	clear(s.scripts)
}

func (s *CrateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CrateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, crate *component.Crate, t *component.Transform) {
		if crate.Health > 0 {
			return
		}
		count, err := s.boltCount(crate)
		if err != nil {
			s.log.WithError(err).WithField("script", crate.Script).Warn("crate script failed, using base bolt count")
			count = crate.Bolts
		}
		count = max(0, min(count, maxCrateBolts))

		center := t.Position
		for i := 0; i < count; i++ {
			a := common.TwoPi * float32(i) / float32(count)
			pos := center.Add(mgl32.Vec3{math32.Cos(a) * boltRingRadius, 0, math32.Sin(a) * boltRingRadius})
			if _, err := entity.NewBoltAt(w, pos, ""); err != nil {
				s.log.WithError(err).Error("spawn bolt")
				break
			}
		}
		playSound(w, "crate_break")
		ecs.DestroyEntity(w, e)
	})
}

func (s *CrateSystem) boltCount(crate *component.Crate) (int, error) {
	if strings.TrimSpace(crate.Script) == "" {
		return crate.Bolts, nil
	}
	compiled, err := s.compile(crate.Script)
	if err != nil {
		return 0, err
	}
	if err := compiled.Set("base", crate.Bolts); err != nil {
		return 0, err
	}
	if err := compiled.Set("combo", crate.LastCombo); err != nil {
		return 0, err
	}
	if err := compiled.Set("health_max", crate.MaxHealth); err != nil {
		return 0, err
	}
	if err := compiled.Run(); err != nil {
		return 0, fmt.Errorf("run %s: %w", crate.Script, err)
	}
	if !compiled.IsDefined("bolts") {
		return 0, fmt.Errorf("%s: script does not define bolts", crate.Script)
	}
	return compiled.Get("bolts").Int(), nil
}

func (s *CrateSystem) compile(path string) (*tengo.Compiled, error) {
	if c, ok := s.scripts[path]; ok {
		return c, nil
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("base", 0)
	_ = script.Add("combo", 0)
	_ = script.Add("health_max", 1)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	s.scripts[path] = compiled
	return compiled, nil
}
