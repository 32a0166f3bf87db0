package engine

import (
	"math/rand/v2"

	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/physics"
)

// DropState is the drop-cycle phase
type DropState int

const (
	// StateReady shows the current fruit on the guide and accepts drops
	StateReady DropState = iota
	// StateDropping ignores drop requests until the tracked fruit lands
	StateDropping
)

func (s DropState) String() string {
	if s == StateDropping {
		return "dropping"
	}
	return "ready"
}

// Direction moves the guide along x
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// Spawner creates fruit bodies on behalf of the drop cycle
type Spawner interface {
	SpawnFruit(pos physics.Vec2, tier constants.Tier) (physics.Handle, error)
}

// DropCycle sequences current/next fruit and gates input to one fruit in flight
type DropCycle struct {
	state   DropState
	current constants.Tier
	next    constants.Tier
	guideX  int // Pixels from the left edge

	tracked    physics.Handle
	hasTracked bool

	rng *rand.Rand
}

// NewDropCycle draws the first two fruits from rng
func NewDropCycle(rng *rand.Rand) *DropCycle {
	d := &DropCycle{
		state:  StateReady,
		guideX: constants.GuideStartX,
		rng:    rng,
	}
	d.current = d.draw()
	d.next = d.draw()
	return d
}

func (d *DropCycle) draw() constants.Tier {
	return constants.Tier(d.rng.IntN(constants.NextTierRange))
}

// RequestDrop spawns the current fruit under the guide and starts tracking it
// No-op while a drop is in flight; a failed spawn leaves the cycle Ready
func (d *DropCycle) RequestDrop(s Spawner) (physics.Handle, bool, error) {
	if d.state == StateDropping {
		return 0, false, nil
	}

	pos := physics.Vec2{X: d.DropX(), Y: constants.DropHeight}
	h, err := s.SpawnFruit(pos, d.current)
	if err != nil {
		return 0, false, err
	}

	d.state = StateDropping
	d.tracked = h
	d.hasTracked = true
	d.current = constants.TierNone
	return h, true, nil
}

// Land completes the drop cycle: next becomes current and a new next is drawn
func (d *DropCycle) Land() {
	if d.state != StateDropping {
		return
	}
	d.current = d.next
	d.next = d.draw()
	d.tracked = 0
	d.hasTracked = false
	d.state = StateReady
}

// MoveGuide shifts the guide by step pixels, clamped to the field
func (d *DropCycle) MoveGuide(dir Direction, step int) {
	d.SetGuide(d.guideX + int(dir)*step)
}

// SetGuide places the guide at x pixels, clamped to the field
func (d *DropCycle) SetGuide(x int) {
	d.guideX = min(max(x, 0), constants.FieldWidthPixels)
}

// DropX is the world x the current fruit spawns at
// The guide spans the full panel; the spawn keeps the fruit between the walls
func (d *DropCycle) DropX() float64 {
	x := float64(d.guideX) / constants.PixelsPerUnit
	r := 0.0
	if d.current.Valid() {
		r = d.current.Info().Radius
	}
	lo := constants.LeftWallX + constants.WallHalfWidth + r
	hi := constants.RightWallX - constants.WallHalfWidth - r
	return min(max(x, lo), hi)
}

// Tracked returns the in-flight fruit, if any
func (d *DropCycle) Tracked() (physics.Handle, bool) {
	return d.tracked, d.hasTracked
}

// State returns the current drop phase
func (d *DropCycle) State() DropState { return d.state }

// Current returns the fruit on the guide, TierNone while dropping
func (d *DropCycle) Current() constants.Tier { return d.current }

// Next returns the fruit shown in the NEXT panel
func (d *DropCycle) Next() constants.Tier { return d.next }

// GuideX returns the guide position in pixels
func (d *DropCycle) GuideX() int { return d.guideX }
