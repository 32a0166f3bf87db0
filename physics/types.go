// Package physics is the rigid-body simulation adapter
// The merge engine only sees opaque handles and the kind flag delivered with each contact
package physics

import "errors"

// Handle identifies a body owned by a Simulator; zero is never issued
type Handle uint64

// BodyKind is carried alongside every handle so contact consumers never inspect user data
type BodyKind uint8

const (
	KindFruit BodyKind = iota
	KindWall
	KindFloor
)

func (k BodyKind) String() string {
	switch k {
	case KindFruit:
		return "fruit"
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Boundary reports whether the kind is static field geometry
func (k BodyKind) Boundary() bool {
	return k == KindWall || k == KindFloor
}

// Vec2 is a world-space vector in world units, y up
type Vec2 struct {
	X, Y float64
}

// Midpoint returns the point halfway between v and o
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{X: (v.X + o.X) * 0.5, Y: (v.Y + o.Y) * 0.5}
}

// Body is the value delivered to contact callbacks
type Body struct {
	ID   Handle
	Kind BodyKind
}

// FruitDef describes a dynamic circular body
type FruitDef struct {
	Position       Vec2
	Radius         float64
	Density        float64
	Friction       float64
	Restitution    float64
	AngularDamping float64
	LinearDamping  float64
}

// ContactFunc receives every newly touching pair during Step
// Implementations must not create or destroy bodies from inside the callback
type ContactFunc func(a, b Body)

// Simulator is the contract the engine requires from a physics backend
type Simulator interface {
	CreateFruit(def FruitDef) (Handle, error)
	CreateBoundary(kind BodyKind, pos, halfExtents Vec2, friction float64) (Handle, error)
	DestroyBody(h Handle) error
	Position(h Handle) (Vec2, bool)
	Step(dt float64, velocityIterations, positionIterations int)
	OnBeginContact(fn ContactFunc)
}

// Sentinel errors
var (
	ErrLocked      = errors.New("physics: world is locked during step")
	ErrUnknownBody = errors.New("physics: unknown body")
	ErrInvalidDef  = errors.New("physics: invalid body definition")
)
