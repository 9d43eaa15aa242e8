package prefabs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/view"
)

// ViewManifest declares view entries by asset name. Entries follow the same
// carry-forward rule as struct tags: an entry without actor or action keeps
// the previous entry's value.
type ViewManifest struct {
	Name    string                    `yaml:"name"`
	Layouts map[string]GridLayoutSpec `yaml:"layouts"`
	Entries []ViewEntrySpec           `yaml:"entries"`
}

type GridLayoutSpec struct {
	TileW   int `yaml:"tile_w"`
	TileH   int `yaml:"tile_h"`
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
	PadX    int `yaml:"pad_x"`
	PadY    int `yaml:"pad_y"`
	OffsetX int `yaml:"offset_x"`
	OffsetY int `yaml:"offset_y"`
}

type ViewEntrySpec struct {
	Actor  string `yaml:"actor"`
	Action string `yaml:"action"`
	Angle  string `yaml:"angle"`
	Image  string `yaml:"image"`
	Layout string `yaml:"layout"`
}

// AssetResolver maps asset names to handles.
type AssetResolver interface {
	Image(name string) (view.ImageHandle, bool)
	Layout(name string) (view.LayoutHandle, bool)
}

// StoreResolver resolves names against asset stores.
type StoreResolver struct {
	Images  *asset.Store[ebiten.Image]
	Layouts *asset.Store[asset.AtlasLayout]
}

func (r StoreResolver) Image(name string) (view.ImageHandle, bool) {
	if r.Images == nil {
		return view.ImageHandle{}, false
	}
	return r.Images.Lookup(name)
}

func (r StoreResolver) Layout(name string) (view.LayoutHandle, bool) {
	if r.Layouts == nil {
		return view.LayoutHandle{}, false
	}
	return r.Layouts.Lookup(name)
}

// stagedLayoutID stands in for layouts that are built but not yet stored.
// Entries compiled against it are only good for validation.
const stagedLayoutID = ^uint64(0)

// StagedResolver resolves like Base and also accepts layout names that are
// about to be added.
type StagedResolver struct {
	Base    AssetResolver
	Layouts map[string]*asset.AtlasLayout
}

func (r StagedResolver) Image(name string) (view.ImageHandle, bool) {
	if r.Base == nil {
		return view.ImageHandle{}, false
	}
	return r.Base.Image(name)
}

func (r StagedResolver) Layout(name string) (view.LayoutHandle, bool) {
	if r.Base != nil {
		if h, ok := r.Base.Layout(name); ok {
			return h, true
		}
	}
	if _, ok := r.Layouts[name]; ok {
		return asset.HandleOf[asset.AtlasLayout](stagedLayoutID), true
	}
	return view.LayoutHandle{}, false
}

func LoadViewManifest(filename string) (*ViewManifest, error) {
	spec, err := LoadSpec[ViewManifest](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(filename), ".yaml")
	}
	return &spec, nil
}

// BuildLayouts builds the manifest's grid layouts without touching any
// store.
func (m *ViewManifest) BuildLayouts() (map[string]*asset.AtlasLayout, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]*asset.AtlasLayout, len(m.Layouts))
	for name, g := range m.Layouts {
		layout, err := asset.NewGridAtlas(asset.GridLayout{
			TileW:   g.TileW,
			TileH:   g.TileH,
			Columns: g.Columns,
			Rows:    g.Rows,
			PadX:    g.PadX,
			PadY:    g.PadY,
			OffsetX: g.OffsetX,
			OffsetY: g.OffsetY,
		})
		if err != nil {
			return nil, fmt.Errorf("prefabs: %s: layout %q: %w", m.Name, name, err)
		}
		out[name] = layout
	}
	return out, nil
}

// RegisterLayouts builds the manifest's grid layouts into store under their
// names, replacing layouts of the same name. Nothing is added when any
// layout is invalid.
func (m *ViewManifest) RegisterLayouts(store *asset.Store[asset.AtlasLayout]) error {
	if m == nil || store == nil {
		return nil
	}
	layouts, err := m.BuildLayouts()
	if err != nil {
		return err
	}
	AddLayouts(store, layouts)
	return nil
}

// AddLayouts adds layouts to store in name order.
func AddLayouts(store *asset.Store[asset.AtlasLayout], layouts map[string]*asset.AtlasLayout) {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		store.Add(name, layouts[name])
	}
}

// Compile turns the manifest into registry entries. Every named asset must
// resolve and every entry needs an angle.
func (m *ViewManifest) Compile(assets AssetResolver) ([]view.Entry, error) {
	if m == nil {
		return nil, nil
	}
	entries := make([]view.Entry, 0, len(m.Entries))
	for i, spec := range m.Entries {
		entry, err := spec.compile(assets)
		if err != nil {
			var cfgErr *view.ConfigError
			if errors.As(err, &cfgErr) {
				cfgErr.Field = fmt.Sprintf("entries[%d]", i)
			}
			return nil, fmt.Errorf("prefabs: %s: %w", m.Name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s ViewEntrySpec) compile(assets AssetResolver) (view.Entry, error) {
	var entry view.Entry

	if s.Actor != "" {
		id, err := view.ParseActorID(s.Actor)
		if err != nil {
			return entry, err
		}
		entry.Actor = view.ActorRef(id)
	}
	if s.Action != "" {
		id, err := view.ParseActionID(s.Action)
		if err != nil {
			return entry, err
		}
		entry.Action = view.ActionRef(id)
	}

	if strings.TrimSpace(s.Angle) == "" {
		return entry, &view.ConfigError{Key: "angle", Err: view.ErrMissingAngle}
	}
	angle, err := view.ParseAngle(s.Angle)
	if err != nil {
		return entry, &view.ConfigError{Key: "angle", Value: s.Angle, Err: err}
	}
	entry.Angle = angle

	if s.Image != "" {
		h, ok := assets.Image(s.Image)
		if !ok {
			return entry, &view.ConfigError{Key: "image", Value: s.Image, Err: view.ErrUnknownAsset}
		}
		entry.Image = h
	}
	if s.Layout != "" {
		h, ok := assets.Layout(s.Layout)
		if !ok {
			return entry, &view.ConfigError{Key: "layout", Value: s.Layout, Err: view.ErrUnknownAsset}
		}
		entry.Layout = h
	}
	return entry, nil
}
