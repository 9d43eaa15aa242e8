// Command spsa previews how one (actor, action) resolves for every view angle.
// The eight directions are laid out as a compass around the Any slot, each
// cell animating its atlas frames and mirrored when the sheet was borrowed
// from the opposite side.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/assets"
	"github.com/milk9111/viewangle/prefabs"
	"github.com/milk9111/viewangle/view"
	"github.com/milk9111/viewangle/viewangle"
)

const (
	cellSize = 160
	gridSize = cellSize * 3
)

// compass places each angle in a 3x3 grid, front at the bottom.
var compass = map[view.Angle]image.Point{
	view.AngleBackLeft:   {0, 0},
	view.AngleBack:       {1, 0},
	view.AngleBackRight:  {2, 0},
	view.AngleLeft:       {0, 1},
	view.AngleAny:        {1, 1},
	view.AngleRight:      {2, 1},
	view.AngleFrontLeft:  {0, 2},
	view.AngleFront:      {1, 2},
	view.AngleFrontRight: {2, 2},
}

type cell struct {
	angle  view.Angle
	res    view.Resolution
	ok     bool
	frames []*ebiten.Image
}

type previewGame struct {
	cells       []cell
	current     int
	tick        int
	ticksPerFrm int
}

func (g *previewGame) Update() error {
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current++
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x10, 0x18, 0xff})
	for _, c := range g.cells {
		pos := compass[c.angle]
		x, y := pos.X*cellSize, pos.Y*cellSize

		label := fmt.Sprintf("%s\nunavailable", c.angle)
		if c.ok {
			label = fmt.Sprintf("%s\n%s flip=%t", c.angle, c.res.Tier, c.res.Flipped)
		}
		ebitenutil.DebugPrintAt(screen, label, x+4, y+4)

		if len(c.frames) == 0 {
			continue
		}
		frame := c.frames[g.current%len(c.frames)]
		fw, fh := frame.Bounds().Dx(), frame.Bounds().Dy()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(fw)/2, -float64(fh)/2)
		if c.res.Flipped {
			op.GeoM.Scale(-1, 1)
		}
		op.GeoM.Scale(3, 3)
		op.GeoM.Translate(float64(x+cellSize/2), float64(y+cellSize/2+10))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(frame, op)
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gridSize, gridSize
}

// loadFrames cuts the resolved sheet into its atlas frames. A sheet without a
// layout is shown whole.
func loadFrames(p *viewangle.Plugin, sheet view.SpriteSheet) []*ebiten.Image {
	img, ok := p.Images().Get(sheet.Image)
	if !ok {
		return nil
	}
	layout, ok := p.Layouts().Get(sheet.Layout)
	if !ok || layout.Len() == 0 {
		return []*ebiten.Image{img}
	}
	frames := make([]*ebiten.Image, 0, layout.Len())
	for i := 0; i < layout.Len(); i++ {
		r, _ := layout.Frame(i)
		frames = append(frames, img.SubImage(r).(*ebiten.Image))
	}
	return frames
}

func main() {
	actorName := flag.String("actor", "frog", "actor name or numeric id")
	actionName := flag.String("action", "idle", "action name or numeric id")
	fps := flag.Int("fps", 8, "animation frames per second")
	flag.Parse()

	actor, err := view.ParseActorID(*actorName)
	if err != nil {
		log.Fatal(err)
	}
	action, err := view.ParseActionID(*actionName)
	if err != nil {
		log.Fatal(err)
	}

	spec, err := prefabs.LoadPluginSpec()
	if err != nil {
		log.Fatal(err)
	}
	p := viewangle.New(viewangle.Config{}, asset.NewStore[ebiten.Image](), asset.NewStore[asset.AtlasLayout]())
	toad, err := assets.Load(p.Images(), p.Layouts())
	if err != nil {
		log.Fatal(err)
	}
	if _, err := p.LoadStruct(toad); err != nil {
		log.Fatal(err)
	}
	for _, m := range spec.Manifests {
		if err := p.LoadManifest(m); err != nil {
			log.Fatal(err)
		}
	}

	g := &previewGame{ticksPerFrm: 1}
	if *fps > 0 {
		g.ticksPerFrm = max(1, ebiten.DefaultTPS / *fps)
	}
	for _, angle := range view.Angles() {
		res, ok := p.Registry().Resolve(actor, action, angle)
		c := cell{angle: angle, res: res, ok: ok}
		if ok {
			c.frames = loadFrames(p, res.Sheet)
		}
		g.cells = append(g.cells, c)
	}

	ebiten.SetWindowSize(gridSize, gridSize)
	ebiten.SetWindowTitle(fmt.Sprintf("spsa: %s/%s", *actorName, *actionName))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
