// Package assets draws the demo sprite sheets. Every sheet is a horizontal
// strip of TileSize frames so one grid layout fits all of them.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
)

const TileSize = 32

var (
	frogGreen   = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	toadBrown   = color.RGBA{R: 0x8d, G: 0x6e, B: 0x63, A: 0xff}
	croakYellow = color.RGBA{R: 0xfb, G: 0xc0, B: 0x2d, A: 0xff}
	placeholder = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

type sheetSpec struct {
	name   string
	body   color.RGBA
	facing image.Point
	frames int
	hop    bool
}

// frogSheets are referenced by name from prefabs/frog_views.yaml.
var frogSheets = []sheetSpec{
	{name: "frog_idle_front", body: frogGreen, facing: image.Pt(0, 1), frames: 4},
	{name: "frog_idle_back", body: frogGreen, facing: image.Pt(0, -1), frames: 4},
	{name: "frog_idle_left", body: frogGreen, facing: image.Pt(-1, 0), frames: 4},
	{name: "frog_idle_front_left", body: frogGreen, facing: image.Pt(-1, 1), frames: 4},
	{name: "frog_idle_back_left", body: frogGreen, facing: image.Pt(-1, -1), frames: 4},
	{name: "frog_hop_front", body: frogGreen, facing: image.Pt(0, 1), frames: 6, hop: true},
	{name: "frog_hop_left", body: frogGreen, facing: image.Pt(-1, 0), frames: 6, hop: true},
	{name: "placeholder", body: placeholder, frames: 4},
}

var toadSheets = []sheetSpec{
	{name: "toad_idle_front", body: toadBrown, facing: image.Pt(0, 1), frames: 4},
	{name: "toad_idle_right", body: toadBrown, facing: image.Pt(1, 0), frames: 4},
	{name: "toad_idle_back", body: toadBrown, facing: image.Pt(0, -1), frames: 4},
	{name: "toad_croak", body: croakYellow, facing: image.Pt(0, 1), frames: 2},
}

// Load draws every demo sheet into images and the toad layouts into layouts.
// Frog layouts come from the frog manifest.
func Load(images *asset.Store[ebiten.Image], layouts *asset.Store[asset.AtlasLayout]) (*ToadSheets, error) {
	for _, s := range frogSheets {
		images.Add(s.name, ebiten.NewImageFromImage(drawStrip(s)))
	}

	handles := make(map[string]asset.Handle[ebiten.Image], len(toadSheets))
	for _, s := range toadSheets {
		handles[s.name] = images.Add(s.name, ebiten.NewImageFromImage(drawStrip(s)))
	}

	strip, err := asset.NewGridAtlas(asset.GridLayout{TileW: TileSize, TileH: TileSize, Columns: 4, Rows: 1})
	if err != nil {
		return nil, fmt.Errorf("assets: toad strip: %w", err)
	}
	croak, err := asset.NewGridAtlas(asset.GridLayout{TileW: TileSize, TileH: TileSize, Columns: 2, Rows: 1})
	if err != nil {
		return nil, fmt.Errorf("assets: croak strip: %w", err)
	}

	return &ToadSheets{
		IdleFront:  handles["toad_idle_front"],
		IdleRight:  handles["toad_idle_right"],
		IdleBack:   handles["toad_idle_back"],
		Strip:      layouts.Add("toad_strip", strip),
		Croak:      handles["toad_croak"],
		CroakStrip: layouts.Add("toad_croak_strip", croak),
	}, nil
}

// drawStrip paints a blob with two eyes pushed toward facing. Hop strips
// lift the body through the middle frames.
func drawStrip(s sheetSpec) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize*s.frames, TileSize))
	for i := 0; i < s.frames; i++ {
		ox := i * TileSize
		lift := i % 2
		if s.hop {
			lift = hopLift(i, s.frames)
		}

		body := image.Rect(ox+6, 10-lift, ox+26, 28-lift)
		draw.Draw(img, body, image.NewUniform(s.body), image.Point{}, draw.Src)

		cx, cy := ox+16+s.facing.X*5, 18-lift+s.facing.Y*4
		for _, dx := range []int{-4, 3} {
			eye := image.Rect(cx+dx, cy-2, cx+dx+3, cy+1)
			draw.Draw(img, eye, image.White, image.Point{}, draw.Src)
			pupil := image.Rect(cx+dx+1+s.facing.X, cy-1+s.facing.Y, cx+dx+2+s.facing.X, cy+s.facing.Y)
			draw.Draw(img, pupil, image.Black, image.Point{}, draw.Src)
		}
	}
	return img
}

func hopLift(frame, frames int) int {
	mid := frames / 2
	d := frame
	if frame > mid {
		d = frames - frame
	}
	return d * 3
}
