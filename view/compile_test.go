package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frogAssets struct {
	IdleFront ImageHandle  `view:"actor=frog,action=idle,angle=front,kind=image"`
	IdleBack  ImageHandle  `view:"angle=back,kind=image"`
	IdleLeft  ImageHandle  `view:"angle=left,kind=image"`
	Layout    LayoutHandle `view:"angle=any,kind=atlas_layout"`
	Label     string
	JumpFront ImageHandle `view:"action=jump,angle=front,kind=image"`
}

func TestCompileFrogAssets(t *testing.T) {
	assets := frogAssets{
		IdleFront: img(1),
		IdleBack:  img(2),
		IdleLeft:  img(3),
		Layout:    layout(4),
		JumpFront: img(5),
	}

	entries, syms, err := Compile(&assets)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	frog := ActorOf("frog")
	idle := ActionOf("idle")
	jump := ActionOf("jump")
	for i, e := range entries[:4] {
		assert.Equal(t, frog, *e.Actor, "entry %d", i)
		assert.Equal(t, idle, *e.Action, "entry %d", i)
	}
	assert.Equal(t, frog, *entries[4].Actor)
	assert.Equal(t, jump, *entries[4].Action)
	assert.Equal(t, AngleAny, entries[3].Angle)
	assert.Equal(t, layout(4), entries[3].Layout)
	assert.False(t, entries[3].Image.Valid())

	assert.Equal(t, []Symbol{{Name: "frog", ID: uint64(frog)}}, syms.Actors)
	assert.Equal(t, []Symbol{{Name: "idle", ID: uint64(idle)}, {Name: "jump", ID: uint64(jump)}}, syms.Actions)

	r := NewRegistry()
	r.Register(entries...)
	res, ok := r.Resolve(frog, idle, AngleRight)
	require.True(t, ok)
	assert.True(t, res.Flipped)
	assert.Equal(t, SpriteSheet{Image: img(3), Layout: layout(4)}, res.Sheet)
}

func TestCompileNumericIDs(t *testing.T) {
	type numeric struct {
		Front ImageHandle `view:"actor=3,action=0x10,angle=front,kind=image"`
		Back  ImageHandle `view:"angle=back,kind=image"`
	}
	entries, syms, err := Compile(numeric{Front: img(1), Back: img(2)})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActorID(3), *entries[1].Actor)
	assert.Equal(t, ActionID(16), *entries[1].Action)
	assert.Empty(t, syms.Actors)
	assert.Empty(t, syms.Actions)
}

func TestCompileFirstFieldDefaultsToZero(t *testing.T) {
	type plain struct {
		Front ImageHandle `view:"angle=front,kind=image"`
	}
	entries, _, err := Compile(plain{Front: img(1)})
	require.NoError(t, err)
	assert.Equal(t, ActorAny, *entries[0].Actor)
	assert.Equal(t, ActionAny, *entries[0].Action)
}

func TestCompileSymbolsAreStable(t *testing.T) {
	type a struct {
		F ImageHandle `view:"actor=player,action=walk,angle=front,kind=image"`
	}
	type b struct {
		B ImageHandle `view:"actor=player,action=walk,angle=back,kind=image"`
	}
	ea, _, err := Compile(a{})
	require.NoError(t, err)
	eb, _, err := Compile(b{})
	require.NoError(t, err)
	assert.Equal(t, *ea[0].Actor, *eb[0].Actor)
	assert.Equal(t, *ea[0].Action, *eb[0].Action)
	assert.Equal(t, ActorID(SymbolID("player")), *ea[0].Actor)
}

func TestCompileErrors(t *testing.T) {
	type unknownAngle struct {
		F ImageHandle `view:"angle=upward,kind=image"`
	}
	type unknownKind struct {
		F ImageHandle `view:"angle=front,kind=sound"`
	}
	type missingKind struct {
		F ImageHandle `view:"angle=front"`
	}
	type missingAngle struct {
		F ImageHandle `view:"kind=image"`
	}
	type mismatch struct {
		F ImageHandle `view:"angle=front,kind=atlas_layout"`
	}
	type badKey struct {
		F ImageHandle `view:"angle=front,kind=image,colour=red"`
	}
	type malformed struct {
		F ImageHandle `view:"angle,kind=image"`
	}
	type unexported struct {
		f ImageHandle `view:"angle=front,kind=image"`
	}

	tests := []struct {
		name  string
		input any
		want  error
	}{
		{"unknown_angle", unknownAngle{}, ErrUnknownAngle},
		{"unknown_kind", unknownKind{}, ErrUnknownKind},
		{"missing_kind", missingKind{}, ErrMissingKind},
		{"missing_angle", missingAngle{}, ErrMissingAngle},
		{"kind_mismatch", mismatch{}, ErrKindMismatch},
		{"unknown_key", badKey{}, ErrUnknownOption},
		{"malformed", malformed{}, ErrMalformedTag},
		{"unexported", unexported{}, ErrUnexported},
		{"not_struct", 42, ErrNotStruct},
		{"nil_pointer", (*frogAssets)(nil), ErrNotStruct},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Compile(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}

	_ = unexported{}.f
}

func TestCompileErrorNamesField(t *testing.T) {
	type bad struct {
		Good ImageHandle `view:"angle=front,kind=image"`
		Bad  ImageHandle `view:"angle=sideways,kind=image"`
	}
	_, _, err := Compile(bad{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field Bad")
	assert.Contains(t, err.Error(), `angle="sideways"`)
}

func TestParseTagLastWins(t *testing.T) {
	ann, err := ParseTag("angle=front,kind=image,angle=any")
	require.NoError(t, err)
	assert.Equal(t, AngleAny, ann.Angle)

	ann, err = ParseTag(`actor="frog", angle=left, handle=image`)
	require.NoError(t, err)
	assert.Equal(t, "frog", ann.Actor)
	assert.Equal(t, KindImage, ann.Kind)
}

func TestLoadStruct(t *testing.T) {
	r := NewRegistry()
	syms, err := r.LoadStruct(&frogAssets{IdleFront: img(1)})
	require.NoError(t, err)
	assert.Len(t, syms.Actors, 1)
	assert.Equal(t, 2, r.Len())

	_, err = r.LoadStruct(struct {
		F ImageHandle `view:"angle=nope,kind=image"`
	}{})
	require.Error(t, err)
	assert.Equal(t, 2, r.Len(), "failed compile registers nothing")
}

type generatedAssets struct{ front ImageHandle }

func (g generatedAssets) ViewEntries() []Entry {
	return []Entry{{Actor: ActorRef(9), Angle: AngleFront, Image: g.front}}
}

func TestLoadStructPrefersCollection(t *testing.T) {
	r := NewRegistry()
	_, err := r.LoadStruct(generatedAssets{front: img(3)})
	require.NoError(t, err)
	res, ok := r.Resolve(9, 0, AngleFront)
	require.True(t, ok)
	assert.Equal(t, img(3), res.Sheet.Image)
}
