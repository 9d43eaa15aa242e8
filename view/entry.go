package view

// Entry is one normalized declaration: a sprite-sheet slot for an
// (actor, action, angle). A nil Actor or Action carries the previous entry's
// value forward. An unset Angle is Front.
type Entry struct {
	Actor  *ActorID
	Action *ActionID
	Angle  Angle
	Image  ImageHandle
	Layout LayoutHandle
}

// Collection is implemented by asset holders that can list their entries
// without reflection, typically through generated code.
type Collection interface {
	ViewEntries() []Entry
}

// Symbol pairs a symbolic name with its hashed id.
type Symbol struct {
	Name string
	ID   uint64
}

// Symbols lists the distinct symbolic actor and action names seen while
// compiling, in first-seen order.
type Symbols struct {
	Actors  []Symbol
	Actions []Symbol
}

func (s *Symbols) addActor(name string, id uint64) {
	s.Actors = appendSymbol(s.Actors, name, id)
}

func (s *Symbols) addAction(name string, id uint64) {
	s.Actions = appendSymbol(s.Actions, name, id)
}

func appendSymbol(list []Symbol, name string, id uint64) []Symbol {
	for _, sym := range list {
		if sym.Name == name {
			return list
		}
	}
	return append(list, Symbol{Name: name, ID: id})
}
