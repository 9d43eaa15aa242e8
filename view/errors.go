package view

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAngle  = errors.New("view: unknown angle")
	ErrUnknownKind   = errors.New("view: unknown kind")
	ErrMalformedTag  = errors.New("view: malformed annotation")
	ErrNotStruct     = errors.New("view: collection must be a struct")
	ErrKindMismatch  = errors.New("view: field type does not match kind")
	ErrUnknownAsset  = errors.New("view: unknown asset")
	ErrMissingAngle  = errors.New("view: annotation has no angle")
	ErrMissingKind   = errors.New("view: annotation has no kind")
	ErrUnknownOption = errors.New("view: unknown annotation key")
	ErrUnexported    = errors.New("view: annotated field is not exported")
	ErrNameCollision = errors.New("view: symbolic names share a generated constant")
)

// ConfigError reports a declarative entry that cannot be compiled. Setup must
// stop on it; a silently defaulted entry would show the wrong sprite forever.
type ConfigError struct {
	Field string
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("view")
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(e.Field)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, ": %s=%q", e.Key, e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimPrefix(e.Err.Error(), "view: "))
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
