package view

// Tier names which (actor, action) pair satisfied a resolution.
type Tier uint8

const (
	TierExact Tier = iota
	TierAnyAction
	TierAnyActor
	TierAnyBoth
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierAnyAction:
		return "any_action"
	case TierAnyActor:
		return "any_actor"
	case TierAnyBoth:
		return "any_actor_any_action"
	}
	return "unknown"
}

// Resolution is the sprite sheet chosen for a view. Flipped means the sheet
// belongs to the mirrored angle and must be drawn mirrored horizontally.
type Resolution struct {
	Sheet   SpriteSheet
	Flipped bool
	Angle   Angle
	Tier    Tier
}

// Resolve picks the sprite sheet for (actor, action, angle).
//
// Tiers are tried in order (actor, action), (actor, ActionAny),
// (ActorAny, action), (ActorAny, ActionAny), skipping repeats. Inside a tier
// the exact angle wins, then its mirror (Flipped), then the Any angle. The
// first hit is returned. ok is false when nothing matches; callers must then
// leave the displayed sprite unchanged.
func (r *Registry) Resolve(actor ActorID, action ActionID, angle Angle) (Resolution, bool) {
	if r == nil {
		return Resolution{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tiers := [...]tierKey{
		{actor, action, TierExact},
		{actor, ActionAny, TierAnyAction},
		{ActorAny, action, TierAnyActor},
		{ActorAny, ActionAny, TierAnyBoth},
	}

	for i, t := range tiers {
		if repeatsTier(tiers[:i], t) {
			continue
		}
		angles, ok := r.actors[t.actor][t.action]
		if !ok {
			continue
		}
		if res, ok := resolveAngle(angles, angle); ok {
			res.Tier = t.tier
			return res, true
		}
	}
	return Resolution{}, false
}

type tierKey struct {
	actor  ActorID
	action ActionID
	tier   Tier
}

func repeatsTier(prev []tierKey, t tierKey) bool {
	for _, p := range prev {
		if p.actor == t.actor && p.action == t.action {
			return true
		}
	}
	return false
}

func resolveAngle(angles AngleTable, angle Angle) (Resolution, bool) {
	if sheet, ok := angles[angle]; ok {
		return Resolution{Sheet: sheet, Angle: angle}, true
	}
	if mirror, ok := angle.Mirror(); ok {
		if sheet, ok := angles[mirror]; ok {
			return Resolution{Sheet: sheet, Angle: mirror, Flipped: true}, true
		}
	}
	if sheet, ok := angles[AngleAny]; ok {
		return Resolution{Sheet: sheet, Angle: AngleAny}, true
	}
	return Resolution{}, false
}
