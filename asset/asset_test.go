package asset

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHandles(t *testing.T) {
	s := NewStore[int]()
	one, two := 1, 2

	h1 := s.Add("one", &one)
	h2 := s.Add("", &two)
	require.True(t, h1.Valid())
	require.True(t, h2.Valid())
	assert.NotEqual(t, h1, h2)

	v, ok := s.Get(h1)
	require.True(t, ok)
	assert.Equal(t, 1, *v)

	byName, ok := s.Lookup("one")
	require.True(t, ok)
	assert.Equal(t, h1, byName)

	_, ok = s.Get(Handle[int]{})
	assert.False(t, ok, "zero handle is absent")
	assert.Equal(t, 2, s.Len())
}

func TestStoreRebindsName(t *testing.T) {
	s := NewStore[int]()
	a, b := 1, 2
	h1 := s.Add("x", &a)
	h2 := s.Add("x", &b)
	assert.Equal(t, h1, h2)
	v, _ := s.Get(h1)
	assert.Equal(t, 2, *v)
}

func TestNewGridAtlas(t *testing.T) {
	tests := []struct {
		name    string
		grid    GridLayout
		frames  int
		second  image.Rectangle
		size    image.Point
		wantErr bool
	}{
		{
			name:   "column",
			grid:   GridLayout{TileW: 16, TileH: 16, Columns: 1, Rows: 3},
			frames: 3,
			second: image.Rect(0, 16, 16, 32),
			size:   image.Pt(16, 48),
		},
		{
			name:   "padded_row",
			grid:   GridLayout{TileW: 8, TileH: 8, Columns: 3, Rows: 1, PadX: 2},
			frames: 3,
			second: image.Rect(10, 0, 18, 8),
			size:   image.Pt(28, 8),
		},
		{name: "zero_tile", grid: GridLayout{Columns: 1, Rows: 1}, wantErr: true},
		{name: "zero_rows", grid: GridLayout{TileW: 1, TileH: 1, Columns: 1}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			layout, err := NewGridAtlas(tc.grid)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.frames, layout.Len())
			r, ok := layout.Frame(1)
			require.True(t, ok)
			assert.Equal(t, tc.second, r)
			assert.Equal(t, tc.size, layout.Size)
			_, ok = layout.Frame(tc.frames)
			assert.False(t, ok)
		})
	}
}
