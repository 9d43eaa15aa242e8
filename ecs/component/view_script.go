package component

// ViewScript attaches a tengo script that steers the entity's angle and
// action each tick.
type ViewScript struct {
	Path string
	// State persists between runs; scripts read and write it as `state`.
	State map[string]any
	Tick  int
}

var ViewScriptComponent = NewComponent[ViewScript]()
