package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// HUD shows the bolt counter in the top-right corner.
type HUD struct {
	ui    *ebitenui.UI
	bolts *widget.Text
	count int
}

func NewHUD() *HUD {
	bolts := widget.NewText(
		widget.TextOpts.Text(boltLabel(0), uiFace(), boltGold),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionEnd,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 16, Right: 20}),
		)),
	)
	root.AddChild(bolts)

	return &HUD{ui: &ebitenui.UI{Container: root}, bolts: bolts}
}

func boltLabel(n int) string {
	return fmt.Sprintf("Bolts: %d", n)
}

func (h *HUD) Update(w *ecs.World, player ecs.Entity) {
	if b, ok := ecs.Get(w, player, component.BoltsComponent.Kind()); ok && b.Count != h.count {
		h.count = b.Count
		h.bolts.Label = boltLabel(b.Count)
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
