package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body whose velocity drives facing.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
