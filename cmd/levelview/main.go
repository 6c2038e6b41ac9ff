package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/ecs/entity"
	"github.com/milk9111/ratchet/ecs/system"
	"github.com/milk9111/ratchet/levels"
	"github.com/sirupsen/logrus"
)

// previewGame turns the camera around a level's spawn point without running
// gameplay.
type previewGame struct {
	world  *ecs.World
	camera *system.CameraSystem
	render *system.RenderSystem
	name   string
	speed  float32
	tick   int
}

func (g *previewGame) Update() error {
	g.tick++
	ecs.ForEach(g.world, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		cam.Yaw += g.speed * ecs.DefaultDelta
	})
	g.camera.Update(g.world)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x10, G: 0x14, B: 0x1c, A: 0xff})
	g.render.Draw(g.world, screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  entities: %d  tick: %d", g.name, len(ecs.Entities(g.world)), g.tick))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	distance := flag.Float64("distance", 30, "camera distance from the spawn point")
	pitch := flag.Float64("pitch", 35, "camera pitch in degrees")
	speed := flag.Float64("speed", 0.3, "turn rate in radians per second")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.WithError(err).Fatal("load level")
	}
	w := ecs.NewWorld()
	spawned, err := entity.SpawnLevel(w, lvl)
	if err != nil {
		log.WithError(err).Fatal("spawn level")
	}
	if cam, ok := ecs.Get(w, spawned.Camera, component.CameraComponent.Kind()); ok {
		cam.Distance = float32(*distance)
		cam.Pitch = common.Rad(float32(*pitch))
		cam.Far = max(cam.Far, cam.Distance*4)
	}
	log.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"boxes":  len(lvl.Boxes),
		"crates": len(lvl.Crates),
		"bolts":  len(lvl.Bolts),
	}).Info("previewing level")

	g := &previewGame{
		world:  w,
		camera: system.NewCameraSystem(),
		render: system.NewRenderSystem(),
		name:   lvl.Name,
		speed:  float32(*speed),
	}
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Level Preview: " + lvl.Name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
