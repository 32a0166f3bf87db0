package engine

import "github.com/lixenwraith/fruit-merge/physics"

// GameOverMonitor latches once any settled fruit reaches above the line
type GameOverMonitor struct {
	line float64
	over bool
}

func NewGameOverMonitor(line float64) *GameOverMonitor {
	return &GameOverMonitor{line: line}
}

// Check scans bodies, skipping the tracked drop which legitimately starts above the line
// Returns true only on the transition into game over
func (g *GameOverMonitor) Check(bodies []FruitState, tracked physics.Handle, hasTracked bool) bool {
	if g.over {
		return false
	}
	for _, b := range bodies {
		if hasTracked && b.Handle == tracked {
			continue
		}
		if b.TopEdge() > g.line {
			g.over = true
			return true
		}
	}
	return false
}

// Over reports the latch; it is never cleared
func (g *GameOverMonitor) Over() bool {
	return g.over
}
