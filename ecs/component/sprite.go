package component

import "github.com/milk9111/viewangle/view"

// Sprite is the renderable image of an entity. FlipX mirrors it horizontally
// when drawn.
type Sprite struct {
	Image   view.ImageHandle
	OriginX float64
	OriginY float64
	FlipX   bool
}

var SpriteComponent = NewComponent[Sprite]()
