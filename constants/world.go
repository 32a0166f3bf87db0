package constants

import "time"

// Simulation stepping
const (
	// StepSeconds is the fixed simulation time step
	StepSeconds  = 1.0 / 60.0
	StepDuration = time.Second / 60

	VelocityIterations = 6
	PositionIterations = 2

	// FrameInterval is the frame driver tick (~60 FPS)
	FrameInterval = 16 * time.Millisecond
)

// World geometry in world units (y points up)
const (
	GravityX = 0.0
	GravityY = -150.0

	FieldWidth = 12.9

	FloorX         = 6.5
	FloorY         = -0.9
	FloorHalfWidth = 7.0
	FloorHalfDepth = 1.0
	FloorFriction  = 1.0

	LeftWallX      = 0.0
	RightWallX     = FieldWidth
	WallY          = 9.0
	WallHalfWidth  = 0.1
	WallHalfHeight = 20.0

	// GameOverLine is the height a settled fruit's top edge must not exceed
	GameOverLine = 17.0
)

// Fruit body material
const (
	// FruitMass keeps every tier at the same mass: density = FruitMass / (pi r^2)
	FruitMass           = 3.0
	FruitFriction       = 0.3
	FruitRestitution    = 0.0
	FruitAngularDamping = 15.0
	FruitLinearDamping  = 1.0
)

// Pixel space used by the guide and the renderer (y points down)
const (
	// PixelsPerUnit converts world units to pixels
	PixelsPerUnit = 30.0

	FieldWidthPixels  = 400
	FieldHeightPixels = 600

	// GuideY is the guide line distance from the top edge
	GuideY = 50

	GuideStartX = FieldWidthPixels / 2
	GuideStep   = 20

	// DropHeight is the world y at which dropped fruit spawn, just below the guide line
	DropHeight = float64(FieldHeightPixels-GuideY) / PixelsPerUnit
)

// MaxTopScores is the number of persisted high scores
const MaxTopScores = 3
