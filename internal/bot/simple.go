// Package bot contains the computer opponent.
package bot

import (
	"math"
	"math/rand"
	"time"

	"github.com/diegok/blobvolley/internal/physics"
	"github.com/diegok/blobvolley/internal/protocol"
)

const (
	MaxStrength = 10

	// hitOffset is how far behind the ball the bot stands so the ball bounces
	// towards the net
	hitOffset      = 0.25
	serveOffset    = 0.15
	moveTolerance  = 0.05
	jumpReach      = 0.6
	jumpHeight     = 2.2
	contactHeight  = physics.BlobGroundY + physics.BlobHeight/2
	maxPredictTime = 4.0
	maxAimError    = 0.4 // at strength 0
	maxReaction    = 10  // ticks between decisions at strength 0
)

// SimpleBot plays one side by tracking where the ball will come down
type SimpleBot struct {
	side     protocol.Side
	strength int
	rng      *rand.Rand

	target   float64
	aimError float64
	cooldown int
	input    protocol.PlayerInput
}

// NewSimpleBot creates a bot for side. Strength goes from 0 to MaxStrength and
// controls how precise and how quick the bot is.
func NewSimpleBot(side protocol.Side, strength int) *SimpleBot {
	return NewSeededBot(side, strength, time.Now().UnixNano())
}

// NewSeededBot is NewSimpleBot with a fixed random source
func NewSeededBot(side protocol.Side, strength int, seed int64) *SimpleBot {
	side.Index() // panics on an invalid side
	strength = max(0, min(strength, MaxStrength))
	return &SimpleBot{
		side:     side,
		strength: strength,
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // gameplay only
		target:   homeX(side),
	}
}

func (b *SimpleBot) Side() protocol.Side { return b.side }

func (b *SimpleBot) Strength() int { return b.strength }

// Step looks at the court and decides the input for the coming tick
func (b *SimpleBot) Step(snapshot protocol.Snapshot, ballPos, ballVel protocol.Vec2) {
	me := snapshot.BlobPositions[b.side]

	if !snapshot.IsGameRunning {
		b.serve(snapshot, me, ballPos)
		return
	}

	if b.cooldown > 0 {
		b.cooldown--
	} else {
		b.cooldown = (MaxStrength - b.strength) * maxReaction / MaxStrength
		b.retarget(snapshot, ballPos, ballVel)
	}

	b.moveTowards(me.X, b.target)

	if snapshot.IsBallValid && b.onMySide(ballPos.X) &&
		math.Abs(ballPos.X-me.X) < jumpReach &&
		ballPos.Y > me.Y && ballPos.Y-me.Y < jumpHeight &&
		ballVel.Y < 0 {
		b.input.Up = true
	}
}

// ComputeInput returns the decision of the last Step
func (b *SimpleBot) ComputeInput() protocol.PlayerInput {
	return b.input
}

// ResetInput forgets the decision so nothing leaks into the next tick
func (b *SimpleBot) ResetInput() {
	b.input = protocol.PlayerInput{}
}

func (b *SimpleBot) serve(snapshot protocol.Snapshot, me, ballPos protocol.Vec2) {
	if snapshot.ServingPlayer != b.side || !snapshot.IsBallValid {
		b.moveTowards(me.X, homeX(b.side))
		return
	}
	target := ballPos.X - b.towardsNet()*serveOffset
	if b.moveTowards(me.X, target) {
		b.input.Up = true
	}
}

func (b *SimpleBot) retarget(snapshot protocol.Snapshot, ballPos, ballVel protocol.Vec2) {
	if !snapshot.IsBallValid {
		b.target = homeX(b.side)
		return
	}

	x := landingX(ballPos, ballVel)
	if !b.onMySide(x) {
		b.target = homeX(b.side)
		return
	}

	b.aimError = (b.rng.Float64()*2 - 1) * maxAimError * float64(MaxStrength-b.strength) / MaxStrength
	b.target = x - b.towardsNet()*hitOffset + b.aimError
}

// moveTowards steers the blob at x to target and reports whether it is there
func (b *SimpleBot) moveTowards(x, target float64) bool {
	switch {
	case target-x > moveTolerance:
		b.input.Right = true
		b.input.Left = false
	case x-target > moveTolerance:
		b.input.Left = true
		b.input.Right = false
	default:
		return true
	}
	return false
}

func (b *SimpleBot) towardsNet() float64 {
	if b.side == protocol.SideLeft {
		return 1
	}
	return -1
}

func (b *SimpleBot) onMySide(x float64) bool {
	if b.side == protocol.SideLeft {
		return x < physics.NetX
	}
	return x > physics.NetX
}

func homeX(side protocol.Side) float64 {
	if side == protocol.SideLeft {
		return physics.LeftStartX
	}
	return physics.RightStartX
}

// landingX predicts where the ball comes down to blob height, reflecting it
// off the side walls
func landingX(pos, vel protocol.Vec2) float64 {
	// pos.Y + vel.Y*t - g/2*t^2 = contactHeight
	g := physics.BallGravity
	c := pos.Y - contactHeight
	disc := vel.Y*vel.Y + 2*g*c
	t := maxPredictTime
	if disc >= 0 {
		if root := (vel.Y + math.Sqrt(disc)) / g; root >= 0 && root < t {
			t = root
		}
	}

	lo, hi := physics.BallRadius, physics.CourtWidth-physics.BallRadius
	x := pos.X + vel.X*t
	width := hi - lo
	// fold x back into [lo, hi]
	x = math.Mod(x-lo, 2*width)
	if x < 0 {
		x += 2 * width
	}
	if x > width {
		x = 2*width - x
	}
	return lo + x
}
