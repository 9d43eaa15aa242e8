package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolIDIsStable(t *testing.T) {
	// Generated code bakes these values in.
	tests := map[string]uint64{
		"frog":  0x40963ef6b1ea20f8,
		"idle":  0x003611cee8c91ccf,
		"hop":   0x1934a63111576ffa,
		"toad":  0x3734cf0a618c738f,
		"croak": 0x83e4b0f55ae4008e,
	}
	for name, want := range tests {
		assert.Equal(t, want, SymbolID(name), name)
	}
	assert.Equal(t, ActorID(SymbolID("frog")), ActorOf("frog"))
	assert.Equal(t, ActionID(SymbolID("hop")), ActionOf("hop"))
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in     string
		actor  ActorID
		action ActionID
	}{
		{"0", ActorAny, ActionAny},
		{"42", 42, 42},
		{"0x10", 16, 16},
		{"frog", ActorOf("frog"), ActionOf("frog")},
		{" hop ", ActorOf("hop"), ActionOf("hop")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			actor, err := ParseActorID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.actor, actor)

			action, err := ParseActionID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestParseIDsRejectMalformed(t *testing.T) {
	for _, in := range []string{"", "  ", "12abc", "0xzz"} {
		_, err := ParseActorID(in)
		require.ErrorIs(t, err, ErrMalformedTag, in)

		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, "actor", cfg.Key)

		_, err = ParseActionID(in)
		require.ErrorIs(t, err, ErrMalformedTag, in)
	}
}
