package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // Esc, q, Ctrl+C, Ctrl+Q
	IntentToggleMute // m, Ctrl+S
	IntentResize     // Terminal resize event
	IntentRestart    // r, honored only after game over

	// Play
	IntentMoveLeft  // Left arrow, h
	IntentMoveRight // Right arrow, l
	IntentDrop      // Down arrow, Space, j, left click
	IntentGuide     // Mouse motion, guide follows the pointer
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentToggleMute:
		return "toggle_mute"
	case IntentResize:
		return "resize"
	case IntentRestart:
		return "restart"
	case IntentMoveLeft:
		return "move_left"
	case IntentMoveRight:
		return "move_right"
	case IntentDrop:
		return "drop"
	case IntentGuide:
		return "guide"
	default:
		return "none"
	}
}

// Intent is one translated user action
// GuideX is the pointer position in field pixels, set for IntentGuide and mouse drops
type Intent struct {
	Type     IntentType
	GuideX   int
	HasGuide bool
}
