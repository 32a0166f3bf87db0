package engine

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/physics"
)

type fakeSpawner struct {
	calls []PendingSpawn
	err   error
	next  physics.Handle
}

func (f *fakeSpawner) SpawnFruit(pos physics.Vec2, tier constants.Tier) (physics.Handle, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, PendingSpawn{Position: pos, Tier: tier})
	f.next++
	return f.next, nil
}

func newTestDropCycle() *DropCycle {
	return NewDropCycle(rand.New(rand.NewPCG(7, 11)))
}

// TestDropGating verifies only one fruit is in flight at a time
func TestDropGating(t *testing.T) {
	d := newTestDropCycle()
	sp := &fakeSpawner{}
	current := d.Current()

	h, ok, err := d.RequestDrop(sp)
	if err != nil || !ok {
		t.Fatalf("First drop rejected: ok=%v err=%v", ok, err)
	}
	if d.State() != StateDropping {
		t.Errorf("Expected dropping state, got %s", d.State())
	}
	if tracked, has := d.Tracked(); !has || tracked != h {
		t.Errorf("Expected tracked %d, got %d (%v)", h, tracked, has)
	}
	if sp.calls[0].Tier != current {
		t.Errorf("Expected dropped tier %s, got %s", current, sp.calls[0].Tier)
	}
	if d.Current() != constants.TierNone {
		t.Errorf("Current should be empty while dropping, got %s", d.Current())
	}

	// Repeated requests while dropping do nothing
	for range 5 {
		if _, ok, err := d.RequestDrop(sp); ok || err != nil {
			t.Fatalf("Drop accepted while dropping: ok=%v err=%v", ok, err)
		}
	}
	if len(sp.calls) != 1 {
		t.Errorf("Expected 1 spawn, got %d", len(sp.calls))
	}
}

// TestDropPosition verifies the fruit spawns under the guide at drop height
func TestDropPosition(t *testing.T) {
	d := newTestDropCycle()
	sp := &fakeSpawner{}
	d.SetGuide(300)

	if _, _, err := d.RequestDrop(sp); err != nil {
		t.Fatalf("RequestDrop failed: %v", err)
	}
	want := physics.Vec2{X: 10, Y: constants.DropHeight}
	if sp.calls[0].Position != want {
		t.Errorf("Expected spawn at %+v, got %+v", want, sp.calls[0].Position)
	}
}

// TestDropClampedInsideWalls verifies guide extremes still spawn the fruit between the walls
func TestDropClampedInsideWalls(t *testing.T) {
	for _, guide := range []int{0, constants.FieldWidthPixels} {
		d := newTestDropCycle()
		sp := &fakeSpawner{}
		d.SetGuide(guide)
		r := d.Current().Info().Radius

		if _, _, err := d.RequestDrop(sp); err != nil {
			t.Fatalf("RequestDrop at guide %d failed: %v", guide, err)
		}
		x := sp.calls[0].Position.X
		if x-r < constants.LeftWallX+constants.WallHalfWidth || x+r > constants.RightWallX-constants.WallHalfWidth {
			t.Errorf("Guide %d: fruit at x=%.3f radius %.2f overlaps a wall", guide, x, r)
		}
	}
}

// TestLandAdvancesQueue verifies next becomes current on landing
func TestLandAdvancesQueue(t *testing.T) {
	d := newTestDropCycle()
	sp := &fakeSpawner{}
	next := d.Next()

	// Land while ready is ignored
	d.Land()
	if d.Next() != next || d.State() != StateReady {
		t.Fatal("Land while ready changed the cycle")
	}

	d.RequestDrop(sp)
	d.Land()

	if d.State() != StateReady {
		t.Errorf("Expected ready state, got %s", d.State())
	}
	if d.Current() != next {
		t.Errorf("Expected current %s, got %s", next, d.Current())
	}
	if _, has := d.Tracked(); has {
		t.Error("Tracked handle should clear on landing")
	}
	if _, ok, _ := d.RequestDrop(sp); !ok {
		t.Error("Drop rejected after landing")
	}
}

// TestFailedDropStaysReady verifies a spawn error leaves the cycle unchanged
func TestFailedDropStaysReady(t *testing.T) {
	d := newTestDropCycle()
	sentinel := errors.New("no room")
	sp := &fakeSpawner{err: sentinel}
	current, next := d.Current(), d.Next()

	_, ok, err := d.RequestDrop(sp)
	if !errors.Is(err, sentinel) || ok {
		t.Fatalf("Expected spawn error, got ok=%v err=%v", ok, err)
	}
	if d.State() != StateReady || d.Current() != current || d.Next() != next {
		t.Error("Failed drop changed the cycle")
	}
	if _, has := d.Tracked(); has {
		t.Error("Failed drop left a tracked handle")
	}
}

// TestGeneratedTierRange verifies generated fruits come from the small tiers only
func TestGeneratedTierRange(t *testing.T) {
	d := newTestDropCycle()
	sp := &fakeSpawner{}
	seen := make(map[constants.Tier]bool)

	for range 500 {
		seen[d.Current()] = true
		if _, _, err := d.RequestDrop(sp); err != nil {
			t.Fatalf("RequestDrop failed: %v", err)
		}
		d.Land()
	}
	for tier := range seen {
		if tier < 0 || int(tier) >= constants.NextTierRange {
			t.Errorf("Generated tier %s outside [0,%d)", tier, constants.NextTierRange)
		}
	}
	if len(seen) != constants.NextTierRange {
		t.Errorf("Expected all %d tiers over 500 drops, saw %d", constants.NextTierRange, len(seen))
	}
}

// TestGuideClamp verifies the guide stays within the field
func TestGuideClamp(t *testing.T) {
	d := newTestDropCycle()
	if d.GuideX() != constants.GuideStartX {
		t.Errorf("Expected guide start %d, got %d", constants.GuideStartX, d.GuideX())
	}

	d.MoveGuide(DirLeft, constants.GuideStep)
	if d.GuideX() != constants.GuideStartX-constants.GuideStep {
		t.Errorf("Expected %d after left, got %d", constants.GuideStartX-constants.GuideStep, d.GuideX())
	}

	for range 50 {
		d.MoveGuide(DirLeft, constants.GuideStep)
	}
	if d.GuideX() != 0 {
		t.Errorf("Expected left clamp 0, got %d", d.GuideX())
	}

	d.SetGuide(10_000)
	if d.GuideX() != constants.FieldWidthPixels {
		t.Errorf("Expected right clamp %d, got %d", constants.FieldWidthPixels, d.GuideX())
	}
	d.MoveGuide(DirRight, constants.GuideStep)
	if d.GuideX() != constants.FieldWidthPixels {
		t.Errorf("Guide moved past right edge: %d", d.GuideX())
	}
}
