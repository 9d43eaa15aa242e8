package view

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ActorID identifies a category of actor (player, frog, npc...).
type ActorID uint64

// ActionID identifies an action of an actor (idle, walk...).
type ActionID uint64

const (
	// ActorAny is both the default actor and the fallback tier tried after
	// a specific actor misses.
	ActorAny ActorID = 0
	// ActionAny is both the default action and the fallback tier tried after
	// a specific action misses.
	ActionAny ActionID = 0
)

// SymbolID hashes a symbolic name into the numeric id space shared by actors
// and actions. The result is stable across runs and binaries.
func SymbolID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// ActorOf returns the id for a symbolic actor name.
func ActorOf(name string) ActorID {
	return ActorID(SymbolID(name))
}

// ActionOf returns the id for a symbolic action name.
func ActionOf(name string) ActionID {
	return ActionID(SymbolID(name))
}

// ActorRef returns a pointer to id, for optional Entry fields.
func ActorRef(id ActorID) *ActorID {
	return &id
}

// ActionRef returns a pointer to id, for optional Entry fields.
func ActionRef(id ActionID) *ActionID {
	return &id
}

// parseID reads an annotation value: decimal or 0x-prefixed integers are
// taken literally, anything else is a symbolic name.
func parseID(raw string) (id uint64, symbolic bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, ErrMalformedTag
	}
	if raw[0] >= '0' && raw[0] <= '9' {
		v, err := strconv.ParseUint(raw, 0, 64)
		if err != nil {
			return 0, false, err
		}
		return v, false, nil
	}
	return SymbolID(raw), true, nil
}

// ParseActorID reads an actor reference the way struct tags do.
func ParseActorID(raw string) (ActorID, error) {
	id, _, err := parseID(raw)
	if err != nil {
		return 0, &ConfigError{Key: "actor", Value: raw, Err: ErrMalformedTag}
	}
	return ActorID(id), nil
}

// ParseActionID reads an action reference the way struct tags do.
func ParseActionID(raw string) (ActionID, error) {
	id, _, err := parseID(raw)
	if err != nil {
		return 0, &ConfigError{Key: "action", Value: raw, Err: ErrMalformedTag}
	}
	return ActionID(id), nil
}
