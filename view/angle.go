package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

// Angle is the discrete direction an actor is seen from. The zero value is
// Front.
type Angle uint8

const (
	AngleFront Angle = iota
	AngleBack
	AngleLeft
	AngleRight
	AngleFrontLeft
	AngleFrontRight
	AngleBackLeft
	AngleBackRight
	// AngleAny is the wildcard: it back-fills missing slots at registration
	// and is the last resort at resolution.
	AngleAny
)

var angleNames = [...]string{
	AngleFront:      "front",
	AngleBack:       "back",
	AngleLeft:       "left",
	AngleRight:      "right",
	AngleFrontLeft:  "front_left",
	AngleFrontRight: "front_right",
	AngleBackLeft:   "back_left",
	AngleBackRight:  "back_right",
	AngleAny:        "any",
}

// Angles lists every angle, Any last.
func Angles() []Angle {
	return []Angle{
		AngleFront, AngleBack, AngleLeft, AngleRight,
		AngleFrontLeft, AngleFrontRight, AngleBackLeft, AngleBackRight,
		AngleAny,
	}
}

func (a Angle) String() string {
	if int(a) < len(angleNames) {
		return angleNames[a]
	}
	return fmt.Sprintf("angle(%d)", uint8(a))
}

// Valid reports whether a is one of the nine known angles.
func (a Angle) Valid() bool {
	return a <= AngleAny
}

// Mirror returns the horizontally opposite angle. Front, Back and Any have no
// partner.
func (a Angle) Mirror() (Angle, bool) {
	switch a {
	case AngleLeft:
		return AngleRight, true
	case AngleRight:
		return AngleLeft, true
	case AngleFrontLeft:
		return AngleFrontRight, true
	case AngleFrontRight:
		return AngleFrontLeft, true
	case AngleBackLeft:
		return AngleBackRight, true
	case AngleBackRight:
		return AngleBackLeft, true
	}
	return a, false
}

// ParseAngle maps a name such as "front_left" to its Angle. Matching ignores
// case, surrounding space and accepts '-' for '_'.
func ParseAngle(s string) (Angle, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range angleNames {
		if n == name {
			return Angle(i), nil
		}
	}
	return AngleFront, fmt.Errorf("%w: %q", ErrUnknownAngle, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Angle) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAngle, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Angle) UnmarshalText(b []byte) error {
	parsed, err := ParseAngle(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AngleFromDirection converts a screen-space direction (+x right, +y down,
// toward the camera) into a view angle. With diagonals disabled the result is
// snapped to the four cardinal angles. A zero vector yields Front and false.
func AngleFromDirection(dir cp.Vector, diagonals bool) (Angle, bool) {
	if dir.X == 0 && dir.Y == 0 {
		return AngleFront, false
	}
	// 0 rad points right, increasing clockwise on screen because +y is down.
	theta := math.Atan2(dir.Y, dir.X)
	if !diagonals {
		sector := int(math.Round(theta/(math.Pi/2))) & 3
		return [...]Angle{AngleRight, AngleFront, AngleLeft, AngleBack}[sector], true
	}
	sector := int(math.Round(theta/(math.Pi/4))) & 7
	return [...]Angle{
		AngleRight, AngleFrontRight, AngleFront, AngleFrontLeft,
		AngleLeft, AngleBackLeft, AngleBack, AngleBackRight,
	}[sector], true
}
