package asset

import (
	"fmt"
	"image"
)

// AtlasLayout describes the frames of a sprite sheet as sub-rectangles.
type AtlasLayout struct {
	Size     image.Point
	Textures []image.Rectangle
}

// GridLayout describes a uniform grid of tiles.
type GridLayout struct {
	TileW   int
	TileH   int
	Columns int
	Rows    int
	PadX    int
	PadY    int
	OffsetX int
	OffsetY int
}

// NewGridAtlas builds a layout from a uniform grid, frames ordered row-major.
func NewGridAtlas(g GridLayout) (*AtlasLayout, error) {
	if g.TileW <= 0 || g.TileH <= 0 {
		return nil, fmt.Errorf("asset: grid tile size must be positive, got %dx%d", g.TileW, g.TileH)
	}
	if g.Columns <= 0 || g.Rows <= 0 {
		return nil, fmt.Errorf("asset: grid must have at least one column and row, got %dx%d", g.Columns, g.Rows)
	}

	layout := &AtlasLayout{
		Textures: make([]image.Rectangle, 0, g.Columns*g.Rows),
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			x := g.OffsetX + col*(g.TileW+g.PadX)
			y := g.OffsetY + row*(g.TileH+g.PadY)
			r := image.Rect(x, y, x+g.TileW, y+g.TileH)
			layout.Textures = append(layout.Textures, r)
			if r.Max.X > layout.Size.X {
				layout.Size.X = r.Max.X
			}
			if r.Max.Y > layout.Size.Y {
				layout.Size.Y = r.Max.Y
			}
		}
	}
	return layout, nil
}

// Len returns the number of frames.
func (l *AtlasLayout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Textures)
}

// Frame returns the rectangle of frame i.
func (l *AtlasLayout) Frame(i int) (image.Rectangle, bool) {
	if l == nil || i < 0 || i >= len(l.Textures) {
		return image.Rectangle{}, false
	}
	return l.Textures[i], true
}
