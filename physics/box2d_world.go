package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

type bodyRecord struct {
	body *box2d.B2Body
	kind BodyKind
}

// World is a Simulator backed by the box2d port
// Not safe for concurrent use; the frame driver owns it
type World struct {
	world     box2d.B2World
	bodies    map[Handle]bodyRecord
	nextID    Handle
	onContact ContactFunc
	stepping  bool
}

// NewWorld creates an empty world with the given gravity
func NewWorld(gravity Vec2) *World {
	w := &World{
		world:  box2d.MakeB2World(box2d.MakeB2Vec2(gravity.X, gravity.Y)),
		bodies: make(map[Handle]bodyRecord),
	}
	w.world.SetContactListener(&contactListener{w: w})
	return w
}

func (w *World) allocate(body *box2d.B2Body, kind BodyKind) Handle {
	w.nextID++
	h := w.nextID
	body.SetUserData(h)
	w.bodies[h] = bodyRecord{body: body, kind: kind}
	return h
}

// CreateFruit adds a dynamic circle body
func (w *World) CreateFruit(def FruitDef) (Handle, error) {
	if w.stepping {
		return 0, ErrLocked
	}
	if def.Radius <= 0 || def.Density <= 0 {
		return 0, fmt.Errorf("%w: radius %.3f density %.3f", ErrInvalidDef, def.Radius, def.Density)
	}

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = box2d.MakeB2Vec2(def.Position.X, def.Position.Y)
	bd.AngularDamping = def.AngularDamping
	bd.LinearDamping = def.LinearDamping
	body := w.world.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = def.Radius

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.Restitution = def.Restitution
	body.CreateFixtureFromDef(&fd)

	return w.allocate(body, KindFruit), nil
}

// CreateBoundary adds a static box used for the floor and walls
func (w *World) CreateBoundary(kind BodyKind, pos, halfExtents Vec2, friction float64) (Handle, error) {
	if w.stepping {
		return 0, ErrLocked
	}
	if !kind.Boundary() {
		return 0, fmt.Errorf("%w: boundary kind %s", ErrInvalidDef, kind)
	}

	bd := box2d.MakeB2BodyDef()
	bd.Position = box2d.MakeB2Vec2(pos.X, pos.Y)
	body := w.world.CreateBody(&bd)

	box := box2d.MakeB2PolygonShape()
	box.SetAsBox(halfExtents.X, halfExtents.Y)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &box
	fd.Density = 1.0
	fd.Friction = friction
	body.CreateFixtureFromDef(&fd)

	return w.allocate(body, kind), nil
}

// DestroyBody removes a body; refused while a step is in progress
func (w *World) DestroyBody(h Handle) error {
	if w.stepping {
		return ErrLocked
	}
	rec, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, h)
	}
	w.world.DestroyBody(rec.body)
	delete(w.bodies, h)
	return nil
}

// Position returns the body center
func (w *World) Position(h Handle) (Vec2, bool) {
	rec, ok := w.bodies[h]
	if !ok {
		return Vec2{}, false
	}
	p := rec.body.GetPosition()
	return Vec2{X: p.X, Y: p.Y}, true
}

// Step advances the simulation; contact callbacks fire synchronously inside
func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	w.stepping = true
	defer func() { w.stepping = false }()
	w.world.Step(dt, velocityIterations, positionIterations)
}

// OnBeginContact registers the single contact consumer
func (w *World) OnBeginContact(fn ContactFunc) {
	w.onContact = fn
}

// BodyCount returns the number of bodies including boundaries
func (w *World) BodyCount() int {
	return len(w.bodies)
}

func (w *World) lookup(b *box2d.B2Body) (Body, bool) {
	if b == nil {
		return Body{}, false
	}
	h, ok := b.GetUserData().(Handle)
	if !ok {
		return Body{}, false
	}
	rec, ok := w.bodies[h]
	if !ok {
		return Body{}, false
	}
	return Body{ID: h, Kind: rec.kind}, true
}

// contactListener forwards begin-contact events as handle pairs
type contactListener struct {
	w *World
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	if l.w.onContact == nil {
		return
	}
	a, okA := l.w.lookup(contact.GetFixtureA().GetBody())
	b, okB := l.w.lookup(contact.GetFixtureB().GetBody())
	if !okA || !okB {
		return
	}
	l.w.onContact(a, b)
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}
