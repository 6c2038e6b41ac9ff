package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"golang.org/x/image/colornames"
)

var animationColors = map[string]color.Color{
	component.AnimIdle:       colornames.Orange,
	component.AnimWalk:       colornames.Gold,
	component.AnimCrouch:     colornames.Sienna,
	component.AnimLand:       colornames.Tan,
	component.AnimFall:       colornames.Lightsalmon,
	component.AnimJump:       colornames.Deepskyblue,
	component.AnimDoubleJump: colornames.Dodgerblue,
	component.AnimSideflipL:  colornames.Mediumorchid,
	component.AnimSideflipR:  colornames.Orchid,
	component.AnimLongjump:   colornames.Limegreen,
	component.AnimHighjump:   colornames.Springgreen,
	component.AnimGlide:      colornames.Aquamarine,
	component.AnimSwing:      colornames.Crimson,
}

var (
	gunColor    = colornames.Silver
	wrenchColor = colornames.Lightsteelblue
	facingColor = colornames.White
)

// boxEdges indexes the corners produced by boxCorners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// RenderSystem draws the world as perspective wireframe boxes seen from the
// first camera.
type RenderSystem struct {
	LineWidth float32
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{LineWidth: 1.5}
}

type projector struct {
	viewProj      mgl32.Mat4
	width, height float32
	near          float32
}

func newProjector(cam *component.Camera, eye mgl32.Vec3, rot mgl32.Quat, width, height float32) projector {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	proj := mgl32.Perspective(common.Rad(cam.FOV), aspect, cam.Near, cam.Far)
	forward := rot.Rotate(mgl32.Vec3{0, 0, -1})
	view := mgl32.LookAtV(eye, eye.Add(forward), common.Up)
	return projector{viewProj: proj.Mul4(view), width: width, height: height, near: cam.Near}
}

// project maps p to screen pixels. ok is false for points behind the near
// plane.
func (p projector) project(pt mgl32.Vec3) (mgl32.Vec2, bool) {
	clip := p.viewProj.Mul4x1(pt.Vec4(1))
	if clip.W() < p.near {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) / 2 * p.width,
		(1 - ndc.Y()) / 2 * p.height,
	}, true
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	camT, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	b := screen.Bounds()
	proj := newProjector(cam, camT.Position, camT.Rotation, float32(b.Dx()), float32(b.Dy()))

	ecs.ForEach2(w, component.RenderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rc *component.Render, t *component.Transform) {
		var clr color.Color = rc.Color
		if cur, ok := ecs.Get(w, e, component.CurrentAnimationComponent.Kind()); ok {
			if c, ok := animationColors[cur.Name]; ok {
				clr = c
			}
		}
		r.drawBox(screen, proj, t.Position, t.Rotation, rc.HalfExtents, clr)
		if has(w, e, component.PlayerTagComponent) {
			r.drawLine(screen, proj, t.Position, t.Position.Add(t.Forward()), facingColor)
		}
	})

	r.drawWeapon(w, screen, proj, component.GunComponent, gunColor)
	r.drawWeapon(w, screen, proj, component.WrenchComponent, wrenchColor)
}

func (r *RenderSystem) drawWeapon(w *ecs.World, screen *ebiten.Image, proj projector, h component.ComponentHandle[component.WeaponModel], clr color.Color) {
	ecs.ForEach2(w, h.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, m *component.WeaponModel, t *component.Transform) {
		if m.Visible {
			r.drawBox(screen, proj, t.Position, t.Rotation, m.HalfExtents, clr)
		}
	})
}

func (r *RenderSystem) drawBox(screen *ebiten.Image, proj projector, center mgl32.Vec3, rot mgl32.Quat, half mgl32.Vec3, clr color.Color) {
	corners := boxCorners(center, rot, half)
	for _, edge := range boxEdges {
		r.drawLine(screen, proj, corners[edge[0]], corners[edge[1]], clr)
	}
}

func (r *RenderSystem) drawLine(screen *ebiten.Image, proj projector, a, b mgl32.Vec3, clr color.Color) {
	pa, ok := proj.project(a)
	if !ok {
		return
	}
	pb, ok := proj.project(b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, pa.X(), pa.Y(), pb.X(), pb.Y(), r.LineWidth, clr, true)
}

func boxCorners(center mgl32.Vec3, rot mgl32.Quat, half mgl32.Vec3) [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		local := mgl32.Vec3{-half.X(), -half.Y(), -half.Z()}
		if i&1 != 0 {
			local[0] = half.X()
		}
		if i&2 != 0 {
			local[2] = half.Z()
		}
		if i&4 != 0 {
			local[1] = half.Y()
		}
		out[i] = center.Add(rot.Rotate(local))
	}
	return out
}
