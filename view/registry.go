package view

import (
	"sync"
)

// AngleTable maps angles to the sprite sheet shown for them.
type AngleTable map[Angle]SpriteSheet

// AnglePair is one row of a hand-built AngleTable.
type AnglePair struct {
	Angle Angle
	Sheet SpriteSheet
}

// NewAngleTable builds a table from pairs; a repeated angle keeps the last
// sheet.
func NewAngleTable(pairs ...AnglePair) AngleTable {
	table := make(AngleTable, len(pairs))
	for _, p := range pairs {
		table[p.Angle] = p.Sheet
	}
	return table
}

// ActionTable maps action ids to their angle tables.
type ActionTable map[ActionID]AngleTable

// Registry is the actor → action → angle → sprite sheet table. One registry
// is owned by the plugin for the lifetime of the application. Registration
// takes the write lock; resolution shares the read lock.
type Registry struct {
	mu     sync.RWMutex
	actors map[ActorID]ActionTable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actors: make(map[ActorID]ActionTable)}
}

// Register folds entries into the table in order. Omitted actor and action
// ids carry forward from the previous entry, starting at 0/0 for each call.
//
// An entry that leaves its image or layout empty inherits it from the Any
// angle of the same (actor, action) as it was before the entry. An Any entry
// also fills the empty slots of every angle already present. Slots that hold
// a value are never replaced by inherited ones, so the result depends on
// registration order only through which angles exist when Any is applied.
func (r *Registry) Register(entries ...Entry) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		actor  ActorID
		action ActionID
	)
	for _, e := range entries {
		if e.Actor != nil {
			actor = *e.Actor
		}
		if e.Action != nil {
			action = *e.Action
		}
		angles := r.angleTableLocked(actor, action)

		anyBefore, hadAny := angles[AngleAny]

		sheet := angles[e.Angle]
		if e.Image.Valid() {
			sheet.Image = e.Image
		}
		if e.Layout.Valid() {
			sheet.Layout = e.Layout
		}
		if hadAny {
			sheet.fillFrom(anyBefore)
		}
		angles[e.Angle] = sheet

		if e.Angle == AngleAny {
			for a, other := range angles {
				if a == AngleAny {
					continue
				}
				other.fillFrom(sheet)
				angles[a] = other
			}
		}
	}
}

// Insert stores a hand-built table for (actor, action), replacing any
// previous one.
func (r *Registry) Insert(actor ActorID, action ActionID, table AngleTable) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.actors == nil {
		r.actors = make(map[ActorID]ActionTable)
	}
	actions, ok := r.actors[actor]
	if !ok {
		actions = make(ActionTable)
		r.actors[actor] = actions
	}
	copied := make(AngleTable, len(table))
	for a, s := range table {
		copied[a] = s
	}
	actions[action] = copied
}

// LoadCollection registers the entries of a Collection.
func (r *Registry) LoadCollection(c Collection) {
	if c == nil {
		return
	}
	r.Register(c.ViewEntries()...)
}

// LoadStruct compiles a tagged struct with Compile and registers the result.
// Nothing is registered when compilation fails.
func (r *Registry) LoadStruct(collection any) (Symbols, error) {
	if c, ok := collection.(Collection); ok {
		r.LoadCollection(c)
		return Symbols{}, nil
	}
	entries, syms, err := Compile(collection)
	if err != nil {
		return syms, err
	}
	r.Register(entries...)
	return syms, nil
}

// Reset removes every entry.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors = make(map[ActorID]ActionTable)
}

// Replace swaps the contents of r for those of other, leaving other empty.
func (r *Registry) Replace(other *Registry) {
	if r == nil || other == nil || r == other {
		return
	}
	other.mu.Lock()
	actors := other.actors
	other.actors = make(map[ActorID]ActionTable)
	other.mu.Unlock()

	r.mu.Lock()
	r.actors = actors
	r.mu.Unlock()
}

// Table returns a copy of the angle table for (actor, action).
func (r *Registry) Table(actor ActorID, action ActionID) (AngleTable, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	angles, ok := r.actors[actor][action]
	if !ok {
		return nil, false
	}
	out := make(AngleTable, len(angles))
	for a, s := range angles {
		out[a] = s
	}
	return out, true
}

// Len reports the number of (actor, action) tables.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, actions := range r.actors {
		n += len(actions)
	}
	return n
}

func (r *Registry) angleTableLocked(actor ActorID, action ActionID) AngleTable {
	if r.actors == nil {
		r.actors = make(map[ActorID]ActionTable)
	}
	actions, ok := r.actors[actor]
	if !ok {
		actions = make(ActionTable)
		r.actors[actor] = actions
	}
	angles, ok := actions[action]
	if !ok {
		angles = make(AngleTable)
		actions[action] = angles
	}
	return angles
}
