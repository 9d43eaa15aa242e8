package main

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"golang.org/x/image/font/gofont/goregular"
)

const hudHelp = "WASD move  SPACE hop  Q/E turn toad  T croak  F spawn  R reload  C copy  P pause"

type hud struct {
	face text.Face
}

func newHUD() (*hud, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	return &hud{face: &text.GoTextFace{Source: s, Size: 11}}, nil
}

func (h *hud) Draw(screen *ebiten.Image, report, status string) {
	lines := report + "\n" + hudHelp
	if status != "" {
		lines += "\n" + status
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 6)
	op.LineSpacing = 14
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, lines, h.face, op)
}

// report describes the player frog and the toad; it is shown on the HUD and
// copied to the clipboard with C.
func (g *Game) report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state=%s  last_frame=%d  action_changes=%d\n", g.state, g.lastFrames, g.actionSwaps)
	for _, row := range []struct {
		label string
		e     ecs.Entity
	}{
		{"frog", g.player},
		{"toad", g.toad},
	} {
		actor, ok := ecs.Get(g.world, row.e, component.ViewActorComponent.Kind())
		if !ok {
			continue
		}
		frame := 0
		if atlas, ok := ecs.Get(g.world, row.e, component.TextureAtlasComponent.Kind()); ok {
			frame = atlas.Index
		}
		fmt.Fprintf(&b, "%s: angle=%s action=%#x flipped=%t frame=%d\n", row.label, actor.Angle, uint64(actor.Action), actor.Flipped, frame)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
