package physics

// World units are metres with y growing upwards; the ground is at y = 0.
const (
	TickRate = 60 // Physics steps per second
	TimeStep = 1.0 / TickRate

	velocityIterations = 8
	positionIterations = 3

	CourtWidth   = 8.0
	CourtHeight  = 6.0  // visible height, the ball may fly above it
	GroundY      = 0.0
	NetX         = CourtWidth / 2
	NetHalfWidth = 0.07
	NetHeight    = 2.16 // height of the net top sphere centre
	wallHeight   = 60.0

	BallRadius         = 0.315
	BallGravity        = 16.1 // m/s², applies to the ball only
	BallCollisionSpeed = 9.84 // speed of the ball right after a blob contact
	BallRestitution    = 0.6
	BallFriction       = 0.3
	BallServeHeight    = 2.0 // centre height of the ball waiting for the serve
	BallHoverSpin      = 6.0 // rad/s while waiting for the serve
	BallDampFactor     = 0.6
	BallSettleSpeed    = 1.0 // |vy| under which a dead ball counts as settled
	BallSettleHeight   = 0.7 // clearance over the ground under which a dead ball counts as settled
	BallOutTimeout     = 150 // ticks after which a dead ball ends the round regardless

	BlobUpperOffset     = 0.19
	BlobUpperRadius     = 0.25
	BlobLowerOffset     = -0.13
	BlobLowerRadius     = 0.33
	BlobHeight          = 0.89
	BlobGroundY         = GroundY - BlobLowerOffset + BlobLowerRadius // centre of a standing blob
	BlobSpeed           = 3.4
	BlobJumpSpeed       = 11.3
	BlobGravity         = 49.5
	BlobJumpBuffer      = 24.75 // gravity taken off while jump is held
	BlobAnimationFrames = 5
	BlobAnimationSpeed  = 0.25

	LeftStartX  = 2.0
	RightStartX = CourtWidth - LeftStartX
)
