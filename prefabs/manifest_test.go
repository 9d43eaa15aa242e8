package prefabs

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver struct {
	images  map[string]view.ImageHandle
	layouts map[string]view.LayoutHandle
}

func (r mapResolver) Image(name string) (view.ImageHandle, bool) {
	h, ok := r.images[name]
	return h, ok
}

func (r mapResolver) Layout(name string) (view.LayoutHandle, bool) {
	h, ok := r.layouts[name]
	return h, ok
}

func testResolver() mapResolver {
	return mapResolver{
		images: map[string]view.ImageHandle{
			"front": asset.HandleOf[ebiten.Image](1),
			"left":  asset.HandleOf[ebiten.Image](2),
		},
		layouts: map[string]view.LayoutHandle{
			"strip": asset.HandleOf[asset.AtlasLayout](7),
		},
	}
}

func TestViewManifestCompile(t *testing.T) {
	m := &ViewManifest{
		Name: "test",
		Entries: []ViewEntrySpec{
			{Actor: "frog", Action: "idle", Angle: "any", Layout: "strip"},
			{Angle: "front", Image: "front"},
			{Action: "7", Angle: "LEFT", Image: "left"},
		},
	}

	entries, err := m.Compile(testResolver())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.NotNil(t, entries[0].Actor)
	assert.Equal(t, view.ActorOf("frog"), *entries[0].Actor)
	assert.Equal(t, view.ActionOf("idle"), *entries[0].Action)
	assert.Equal(t, view.AngleAny, entries[0].Angle)
	assert.Equal(t, asset.HandleOf[asset.AtlasLayout](7), entries[0].Layout)

	assert.Nil(t, entries[1].Actor)
	assert.Nil(t, entries[1].Action)
	assert.Equal(t, asset.HandleOf[ebiten.Image](1), entries[1].Image)

	require.NotNil(t, entries[2].Action)
	assert.Equal(t, view.ActionID(7), *entries[2].Action)
	assert.Equal(t, view.AngleLeft, entries[2].Angle)

	reg := view.NewRegistry()
	reg.Register(entries...)
	res, ok := reg.Resolve(view.ActorOf("frog"), view.ActionOf("idle"), view.AngleFront)
	require.True(t, ok)
	assert.Equal(t, asset.HandleOf[ebiten.Image](1), res.Sheet.Image)
	assert.Equal(t, asset.HandleOf[asset.AtlasLayout](7), res.Sheet.Layout)
}

func TestViewManifestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		entry ViewEntrySpec
		want  error
		field string
	}{
		{name: "unknown image", entry: ViewEntrySpec{Angle: "front", Image: "missing"}, want: view.ErrUnknownAsset},
		{name: "unknown layout", entry: ViewEntrySpec{Angle: "front", Layout: "missing"}, want: view.ErrUnknownAsset},
		{name: "unknown angle", entry: ViewEntrySpec{Angle: "sideways"}, want: view.ErrUnknownAngle},
		{name: "missing angle", entry: ViewEntrySpec{Image: "front"}, want: view.ErrMissingAngle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &ViewManifest{Name: "bad", Entries: []ViewEntrySpec{{Angle: "front"}, tc.entry}}
			entries, err := m.Compile(testResolver())
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.ErrorIs(t, err, tc.want)

			var cfgErr *view.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "entries[1]", cfgErr.Field)
		})
	}
}

func TestRegisterLayouts(t *testing.T) {
	m := &ViewManifest{
		Name: "layouts",
		Layouts: map[string]GridLayoutSpec{
			"strip": {TileW: 8, TileH: 8, Columns: 3, Rows: 2},
		},
	}
	store := asset.NewStore[asset.AtlasLayout]()
	require.NoError(t, m.RegisterLayouts(store))

	h, ok := store.Lookup("strip")
	require.True(t, ok)
	layout, ok := store.Get(h)
	require.True(t, ok)
	assert.Equal(t, 6, layout.Len())

	bad := &ViewManifest{Name: "bad", Layouts: map[string]GridLayoutSpec{"zero": {}}}
	assert.Error(t, bad.RegisterLayouts(store))
}

func TestEmbeddedPrefabs(t *testing.T) {
	spec, err := LoadPluginSpec()
	require.NoError(t, err)
	assert.Equal(t, []string{"playing"}, spec.RunStates)
	assert.Equal(t, 120*time.Millisecond, spec.FrameDuration)
	require.NotEmpty(t, spec.Manifests)

	for _, name := range spec.Manifests {
		m, err := LoadViewManifest(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, m.Entries, name)

		layouts := asset.NewStore[asset.AtlasLayout]()
		require.NoError(t, m.RegisterLayouts(layouts))
		for _, e := range m.Entries {
			if e.Layout != "" {
				_, ok := layouts.Lookup(e.Layout)
				assert.True(t, ok, "layout %q", e.Layout)
			}
		}
	}

	for _, name := range []string{"frog.yaml", "wandering_frog.yaml"} {
		b, err := LoadEntityBuildSpec(name)
		require.NoError(t, err)
		assert.Contains(t, b.Components, "view_actor")
	}

	src, err := LoadScript("scripts/wander.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "update := func(view, state)")
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{"actor": "frog", "frame_ms": 80, "next_actions": []any{"hop", "idle"}}
	spec, err := DecodeComponentSpec[ViewActorComponentSpec](raw)
	require.NoError(t, err)
	assert.Equal(t, "frog", spec.Actor)
	assert.Equal(t, 80, spec.FrameMS)
	assert.Equal(t, []string{"hop", "idle"}, spec.NextActions)

	empty, err := DecodeComponentSpec[ViewActorComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty.FrameMS)
}

func TestRegisterLayoutsIsAllOrNothing(t *testing.T) {
	m := &ViewManifest{
		Name: "mixed",
		Layouts: map[string]GridLayoutSpec{
			"a_good": {TileW: 8, TileH: 8, Columns: 2, Rows: 1},
			"b_zero": {},
		},
	}
	store := asset.NewStore[asset.AtlasLayout]()
	require.Error(t, m.RegisterLayouts(store))
	assert.Zero(t, store.Len())
}

func TestStagedResolver(t *testing.T) {
	m := &ViewManifest{
		Name: "staged",
		Layouts: map[string]GridLayoutSpec{
			"fresh": {TileW: 8, TileH: 8, Columns: 2, Rows: 1},
		},
		Entries: []ViewEntrySpec{
			{Actor: "frog", Action: "idle", Angle: "front", Image: "front", Layout: "fresh"},
			{Angle: "left", Image: "left", Layout: "strip"},
		},
	}
	layouts, err := m.BuildLayouts()
	require.NoError(t, err)
	require.Contains(t, layouts, "fresh")

	_, err = m.Compile(testResolver())
	require.ErrorIs(t, err, view.ErrUnknownAsset)

	resolver := StagedResolver{Base: testResolver(), Layouts: layouts}
	entries, err := m.Compile(resolver)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Layout.Valid())

	stored, ok := testResolver().Layout("strip")
	require.True(t, ok)
	assert.Equal(t, stored, entries[1].Layout)
}
