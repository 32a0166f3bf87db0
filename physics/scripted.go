package physics

import "fmt"

type scriptedBody struct {
	kind     BodyKind
	pos      Vec2
	velocity Vec2
}

// ScriptedWorld is a deterministic Simulator for tests and headless runs
// Bodies move only by their scripted velocity; contacts fire only when queued
// Create/Destroy during Step return ErrLocked, mirroring the box2d world lock
type ScriptedWorld struct {
	bodies    map[Handle]*scriptedBody
	nextID    Handle
	onContact ContactFunc
	stepping  bool
	queued    [][2]Handle

	// Steps counts completed Step calls
	Steps int

	// CreateErr, when set, fails the next CreateFruit call and is then cleared
	CreateErr error
	// DestroyErr fails DestroyBody for the listed handles
	DestroyErr map[Handle]error
	// LockViolations counts create/destroy attempts made from inside Step
	LockViolations int
}

// NewScriptedWorld creates an empty scripted world
func NewScriptedWorld() *ScriptedWorld {
	return &ScriptedWorld{
		bodies:     make(map[Handle]*scriptedBody),
		DestroyErr: make(map[Handle]error),
	}
}

func (w *ScriptedWorld) add(b *scriptedBody) Handle {
	w.nextID++
	w.bodies[w.nextID] = b
	return w.nextID
}

func (w *ScriptedWorld) CreateFruit(def FruitDef) (Handle, error) {
	if w.stepping {
		w.LockViolations++
		return 0, ErrLocked
	}
	if w.CreateErr != nil {
		err := w.CreateErr
		w.CreateErr = nil
		return 0, err
	}
	if def.Radius <= 0 {
		return 0, fmt.Errorf("%w: radius %.3f", ErrInvalidDef, def.Radius)
	}
	return w.add(&scriptedBody{kind: KindFruit, pos: def.Position}), nil
}

func (w *ScriptedWorld) CreateBoundary(kind BodyKind, pos, halfExtents Vec2, friction float64) (Handle, error) {
	if w.stepping {
		w.LockViolations++
		return 0, ErrLocked
	}
	if !kind.Boundary() {
		return 0, fmt.Errorf("%w: boundary kind %s", ErrInvalidDef, kind)
	}
	return w.add(&scriptedBody{kind: kind, pos: pos}), nil
}

func (w *ScriptedWorld) DestroyBody(h Handle) error {
	if w.stepping {
		w.LockViolations++
		return ErrLocked
	}
	if err, ok := w.DestroyErr[h]; ok {
		return err
	}
	if _, ok := w.bodies[h]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, h)
	}
	delete(w.bodies, h)
	return nil
}

func (w *ScriptedWorld) Position(h Handle) (Vec2, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return Vec2{}, false
	}
	return b.pos, true
}

// Step moves scripted velocities by dt then fires queued contacts in order
// Contacts referencing bodies destroyed since queuing are dropped, as a real broadphase would
func (w *ScriptedWorld) Step(dt float64, velocityIterations, positionIterations int) {
	w.stepping = true
	defer func() { w.stepping = false }()

	for _, b := range w.bodies {
		b.pos.X += b.velocity.X * dt
		b.pos.Y += b.velocity.Y * dt
	}

	pending := w.queued
	w.queued = nil
	for _, pair := range pending {
		a, okA := w.bodies[pair[0]]
		b, okB := w.bodies[pair[1]]
		if !okA || !okB || w.onContact == nil {
			continue
		}
		w.onContact(Body{ID: pair[0], Kind: a.kind}, Body{ID: pair[1], Kind: b.kind})
	}
	w.Steps++
}

func (w *ScriptedWorld) OnBeginContact(fn ContactFunc) {
	w.onContact = fn
}

// QueueContact schedules a begin-contact event for the next Step
func (w *ScriptedWorld) QueueContact(a, b Handle) {
	w.queued = append(w.queued, [2]Handle{a, b})
}

// SetPosition teleports a body
func (w *ScriptedWorld) SetPosition(h Handle, pos Vec2) {
	if b, ok := w.bodies[h]; ok {
		b.pos = pos
	}
}

// SetVelocity gives a body a constant scripted velocity
func (w *ScriptedWorld) SetVelocity(h Handle, v Vec2) {
	if b, ok := w.bodies[h]; ok {
		b.velocity = v
	}
}

// Exists reports whether h is a live body
func (w *ScriptedWorld) Exists(h Handle) bool {
	_, ok := w.bodies[h]
	return ok
}

// Kind returns the kind of a live body
func (w *ScriptedWorld) Kind(h Handle) (BodyKind, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return 0, false
	}
	return b.kind, true
}

// BodyCount returns the number of bodies including boundaries
func (w *ScriptedWorld) BodyCount() int {
	return len(w.bodies)
}
