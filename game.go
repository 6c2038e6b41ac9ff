package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/ecs/entity"
	"github.com/milk9111/ratchet/ecs/system"
	"github.com/milk9111/ratchet/levels"
	"github.com/milk9111/ratchet/prefabs"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
)

var skyColor = color.NRGBA{R: 0x1b, G: 0x22, B: 0x33, A: 0xff}

type Config struct {
	Level string
	Debug bool
	Mute  bool
	Watch bool
}

type Game struct {
	cfg    Config
	log    logrus.FieldLogger
	frames int

	world   *ecs.World
	spawned entity.SpawnedLevel

	input   *system.InputSystem
	actions *system.PlayerActionSystem
	crates  *system.CrateSystem
	weapons *system.WeaponSystem
	audio   *system.AudioSystem
	render  *system.RenderSystem

	watcher *prefabs.Watcher

	hud    *HUD
	pause  *ebitenui.UI
	paused bool
	quit   bool

	clipboardReady bool
	clipboardErr   error
}

func NewGame(cfg Config, log logrus.FieldLogger) (*Game, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		input:   system.NewInputSystem(),
		actions: system.NewPlayerActionSystem(),
		crates:  system.NewCrateSystem(log.WithField("system", "crate")),
		weapons: system.NewWeaponSystem(log.WithField("system", "weapon")),
		audio:   system.NewAudioSystem(log.WithField("system", "audio"), cfg.Mute),
		render:  system.NewRenderSystem(),
		hud:     NewHUD(),
	}
	g.pause = NewPauseUI(g)

	if err := g.loadLevel(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(levels.Dir)
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
			log.WithFields(logrus.Fields{"prefabs": prefabs.Dir, "levels": levels.Dir}).Info("watching for changes")
		}
	}
	return g, nil
}

// loadLevel builds a fresh world for the configured level. The systems are
// kept, so their caches survive a reload.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	w := ecs.NewWorld()
	g.registerSystems(w)
	spawned, err := entity.SpawnLevel(w, lvl)
	if err != nil {
		return fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}

	if g.world != nil {
		system.StopAll(g.world)
		g.actions.Reset()
	}
	g.world = w
	g.spawned = spawned
	g.log.WithFields(logrus.Fields{
		"level":    lvl.Name,
		"boxes":    len(lvl.Boxes),
		"crates":   len(lvl.Crates),
		"entities": len(ecs.Entities(w)),
	}).Info("level loaded")
	return nil
}

func (g *Game) registerSystems(w *ecs.World) {
	w.AddSystem(g.input)
	w.AddSystem(system.NewGroundedSystem())
	w.AddSystem(g.actions)
	// Weapons queue the swing lunge, so they run before movement drains events.
	w.AddSystem(g.weapons)
	w.AddSystem(system.NewMovementSystem())
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewTransformHierarchySystem())
	w.AddSystem(system.NewBulletSystem())
	w.AddSystem(system.NewHitboxSystem())
	w.AddSystem(g.crates)
	w.AddSystem(system.NewBoltSystem())
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(g.audio)
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pause.Update()
		return nil
	}

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.audio.SetMuted(g.world, !g.audio.Muted())
	}
	if g.cfg.Debug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPlayerPosition()
	}
	if g.cfg.Debug && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.loadLevel(); err != nil {
			g.log.WithError(err).Error("reload level")
		}
	}

	g.world.Update()
	g.hud.Update(g.world, g.spawned.Player)
	return nil
}

func pausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) &&
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

// pollWatcher applies every change reported since the last frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	log := g.log.WithField("file", change.Path)
	switch change.Kind {
	case prefabs.ChangeScript:
		g.crates.Invalidate()
		log.Info("crate scripts reloaded")
	case prefabs.ChangeLevel:
		if !sameLevel(change.Path, g.cfg.Level) {
			return
		}
		if err := g.loadLevel(); err != nil {
			log.WithError(err).Error("reload level")
		}
	case prefabs.ChangePrefab:
		if filepath.Base(change.Path) != entity.PlayerPrefab {
			log.Debug("prefab changed, applies to new spawns")
			return
		}
		if err := entity.ApplyPlayerTuning(g.world, g.spawned.Player); err != nil {
			log.WithError(err).Error("reload player tuning")
			return
		}
		log.Info("player tuning reloaded")
	}
}

func sameLevel(path, name string) bool {
	if name == "" {
		name = levels.DefaultLevel
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return base == strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

func (g *Game) copyPlayerPosition() {
	t, ok := ecs.Get(g.world, g.spawned.Player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if !g.clipboardReady && g.clipboardErr == nil {
		g.clipboardErr = clipboard.Init()
		g.clipboardReady = g.clipboardErr == nil
	}
	if !g.clipboardReady {
		g.log.WithError(g.clipboardErr).Warn("clipboard unavailable")
		return
	}
	text := formatPosition(t.Position)
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.log.WithField("position", text).Info("copied player position")
}

func formatPosition(p mgl32.Vec3) string {
	return fmt.Sprintf("[%.2f, %.2f, %.2f]", p.X(), p.Y(), p.Z())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) debugText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f  frame: %d\n", ebiten.ActualFPS(), g.frames)
	player := g.spawned.Player
	if t, ok := ecs.Get(g.world, player, component.TransformComponent.Kind()); ok {
		fmt.Fprintf(&b, "pos: %s\n", formatPosition(t.Position))
	}
	if body, ok := ecs.Get(g.world, player, component.BodyComponent.Kind()); ok {
		fmt.Fprintf(&b, "vel: %s\n", formatPosition(body.Velocity))
	}
	fmt.Fprintf(&b, "states: %s\n", strings.Join(entity.ActiveStates(g.world, player), " "))
	if anim, ok := ecs.Get(g.world, player, component.AnimationComponent.Kind()); ok {
		fmt.Fprintf(&b, "anim: %s\n", anim.Current)
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}
