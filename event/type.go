// Package event carries gameplay notifications from the engine to the frame driver
package event

import (
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/physics"
)

// EventType represents the type of game event
type EventType int

const (
	// EventDrop fires when a fruit is released from the guide
	// Trigger: Session.Drop | Tier: dropped tier
	EventDrop EventType = iota

	// EventLand fires on the tracked drop's first contact with a fruit or the floor
	// Trigger: MergeEngine.OnContact | Tier: landed fruit tier
	EventLand

	// EventMerge fires when two equal fruits are queued to merge
	// Trigger: MergeEngine.OnContact | Tier: input tier, Score: points awarded
	EventMerge

	// EventAnnihilate fires when two terminal fruits are queued for removal
	// Trigger: MergeEngine.OnContact | Tier: terminal tier, Score: points awarded
	EventAnnihilate

	// EventGameOver fires once per session on the game-over transition
	// Trigger: Session.Tick | Score: final score
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventDrop:
		return "drop"
	case EventLand:
		return "land"
	case EventMerge:
		return "merge"
	case EventAnnihilate:
		return "annihilate"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameEvent is a single notification
type GameEvent struct {
	Type     EventType
	Tier     constants.Tier
	Score    int
	Position physics.Vec2
	Frame    int64 // Session step at which the event was emitted
}
