package view

import (
	"fmt"
	"strings"
)

// TagName is the struct tag key read by Compile and the code generator.
const TagName = "view"

// Kind selects which SpriteSheet slot a field fills.
type Kind uint8

const (
	KindImage Kind = iota + 1
	KindAtlasLayout
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAtlasLayout:
		return "atlas_layout"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps "image" or "atlas_layout" (also "layout") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage, nil
	case "atlas_layout", "layout":
		return KindAtlasLayout, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Annotation is a parsed `view` struct tag.
type Annotation struct {
	// Actor and Action hold the raw values; empty means carry forward.
	Actor  string
	Action string
	Angle  Angle
	Kind   Kind
}

// ParseTag parses a tag body such as
// `actor=frog,action=idle,angle=front,kind=image`. Later keys win over
// earlier ones. The returned error is a *ConfigError without a field name.
func ParseTag(tag string) (Annotation, error) {
	var (
		ann      Annotation
		hasAngle bool
	)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if !ok || key == "" || value == "" {
			return Annotation{}, &ConfigError{Key: key, Value: value, Err: ErrMalformedTag}
		}
		switch key {
		case "actor":
			if _, _, err := parseID(value); err != nil {
				return Annotation{}, &ConfigError{Key: key, Value: value, Err: fmt.Errorf("%w: %v", ErrMalformedTag, err)}
			}
			ann.Actor = value
		case "action":
			if _, _, err := parseID(value); err != nil {
				return Annotation{}, &ConfigError{Key: key, Value: value, Err: fmt.Errorf("%w: %v", ErrMalformedTag, err)}
			}
			ann.Action = value
		case "angle":
			a, err := ParseAngle(value)
			if err != nil {
				return Annotation{}, &ConfigError{Key: key, Value: value, Err: err}
			}
			ann.Angle = a
			hasAngle = true
		case "kind", "handle":
			k, err := ParseKind(value)
			if err != nil {
				return Annotation{}, &ConfigError{Key: key, Value: value, Err: err}
			}
			ann.Kind = k
		default:
			return Annotation{}, &ConfigError{Key: key, Value: value, Err: ErrUnknownOption}
		}
	}
	if !hasAngle {
		return Annotation{}, &ConfigError{Err: ErrMissingAngle}
	}
	if ann.Kind == 0 {
		return Annotation{}, &ConfigError{Err: ErrMissingKind}
	}
	return ann, nil
}

// ActorID resolves the actor value. ok is false when the value is omitted.
func (a Annotation) ActorID() (id ActorID, symbolic bool, ok bool) {
	if a.Actor == "" {
		return 0, false, false
	}
	raw, sym, err := parseID(a.Actor)
	if err != nil {
		return 0, false, false
	}
	return ActorID(raw), sym, true
}

// ActionID resolves the action value. ok is false when the value is omitted.
func (a Annotation) ActionID() (id ActionID, symbolic bool, ok bool) {
	if a.Action == "" {
		return 0, false, false
	}
	raw, sym, err := parseID(a.Action)
	if err != nil {
		return 0, false, false
	}
	return ActionID(raw), sym, true
}
