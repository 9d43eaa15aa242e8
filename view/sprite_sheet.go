package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
)

// ImageHandle references a sprite sheet image.
type ImageHandle = asset.Handle[ebiten.Image]

// LayoutHandle references an atlas layout.
type LayoutHandle = asset.Handle[asset.AtlasLayout]

// SpriteSheet is one renderable view. Either handle may be absent.
type SpriteSheet struct {
	Image  ImageHandle
	Layout LayoutHandle
}

// Empty reports whether neither handle is set.
func (s SpriteSheet) Empty() bool {
	return !s.Image.Valid() && !s.Layout.Valid()
}

// fillFrom copies the handles of src into the absent slots of s.
func (s *SpriteSheet) fillFrom(src SpriteSheet) {
	if !s.Image.Valid() && src.Image.Valid() {
		s.Image = src.Image
	}
	if !s.Layout.Valid() && src.Layout.Valid() {
		s.Layout = src.Layout
	}
}
