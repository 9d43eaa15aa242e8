package component

import "github.com/milk9111/viewangle/view"

// TextureAtlas selects frame Index of Layout inside the sprite image.
type TextureAtlas struct {
	Layout view.LayoutHandle
	Index  int
}

var TextureAtlasComponent = NewComponent[TextureAtlas]()
