package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegok/blobvolley/internal/physics"
	"github.com/diegok/blobvolley/internal/protocol"
)

func snapshot(left, right float64, running bool, serving protocol.Side) protocol.Snapshot {
	return protocol.Snapshot{
		BlobPositions: [2]protocol.Vec2{
			{X: left, Y: physics.BlobGroundY},
			{X: right, Y: physics.BlobGroundY},
		},
		IsGameRunning: running,
		IsBallValid:   true,
		ServingPlayer: serving,
	}
}

func TestNewSimpleBot_ClampsStrength(t *testing.T) {
	assert.Equal(t, MaxStrength, NewSimpleBot(protocol.SideLeft, 42).Strength())
	assert.Equal(t, 0, NewSimpleBot(protocol.SideRight, -3).Strength())
	assert.Equal(t, protocol.SideRight, NewSimpleBot(protocol.SideRight, 5).Side())
	assert.Panics(t, func() { NewSimpleBot(protocol.Side(7), 5) })
}

func TestSimpleBot_Serve(t *testing.T) {
	ball := protocol.Vec2{X: physics.LeftStartX, Y: physics.BallServeHeight}

	tests := []struct {
		name string
		me   float64
		want protocol.PlayerInput
	}{
		{"walks right to the ball", 1.0, protocol.PlayerInput{Right: true}},
		{"walks left to the ball", 3.0, protocol.PlayerInput{Left: true}},
		{"jumps once behind the ball", physics.LeftStartX - serveOffset, protocol.PlayerInput{Up: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewSeededBot(protocol.SideLeft, MaxStrength, 1)

			b.Step(snapshot(tt.me, physics.RightStartX, false, protocol.SideLeft), ball, protocol.Vec2{})

			assert.Equal(t, tt.want, b.ComputeInput())
		})
	}
}

func TestSimpleBot_WaitsAtHomeForOpponentServe(t *testing.T) {
	b := NewSeededBot(protocol.SideRight, MaxStrength, 1)
	ball := protocol.Vec2{X: physics.LeftStartX, Y: physics.BallServeHeight}

	b.Step(snapshot(physics.LeftStartX, 7.5, false, protocol.SideLeft), ball, protocol.Vec2{})
	assert.Equal(t, protocol.PlayerInput{Left: true}, b.ComputeInput())
	b.ResetInput()

	b.Step(snapshot(physics.LeftStartX, physics.RightStartX, false, protocol.SideLeft), ball, protocol.Vec2{})
	assert.Equal(t, protocol.PlayerInput{}, b.ComputeInput())
}

func TestSimpleBot_RunsToLandingPoint(t *testing.T) {
	b := NewSeededBot(protocol.SideRight, MaxStrength, 1)
	ball := protocol.Vec2{X: 5.0, Y: 4.0}

	b.Step(snapshot(physics.LeftStartX, 7.0, true, protocol.SideLeft), ball, protocol.Vec2{})

	// the ball falls straight down at x=5, the bot stands a bit behind it
	assert.InDelta(t, 5.0+hitOffset, b.target, 1e-9)
	assert.Equal(t, protocol.PlayerInput{Left: true}, b.ComputeInput())
}

func TestSimpleBot_IgnoresBallOnOtherSide(t *testing.T) {
	b := NewSeededBot(protocol.SideLeft, MaxStrength, 1)
	ball := protocol.Vec2{X: 6.0, Y: 4.0}

	b.Step(snapshot(3.0, physics.RightStartX, true, protocol.SideLeft), ball, protocol.Vec2{})

	assert.InDelta(t, physics.LeftStartX, b.target, 1e-9)
	assert.Equal(t, protocol.PlayerInput{Left: true}, b.ComputeInput())
}

func TestSimpleBot_JumpsAtFallingBall(t *testing.T) {
	b := NewSeededBot(protocol.SideLeft, MaxStrength, 1)
	me := 2.0
	ball := protocol.Vec2{X: me + hitOffset, Y: 1.8}

	b.Step(snapshot(me, physics.RightStartX, true, protocol.SideRight), ball, protocol.Vec2{Y: -2})
	assert.True(t, b.ComputeInput().Up)
	b.ResetInput()

	// rising ball, wait for it
	b.Step(snapshot(me, physics.RightStartX, true, protocol.SideRight), ball, protocol.Vec2{Y: 2})
	assert.False(t, b.ComputeInput().Up)
	b.ResetInput()

	// dead ball, do not chase it
	s := snapshot(me, physics.RightStartX, true, protocol.SideRight)
	s.IsBallValid = false
	b.Step(s, ball, protocol.Vec2{Y: -2})
	assert.False(t, b.ComputeInput().Up)
}

func TestSimpleBot_ResetInput(t *testing.T) {
	b := NewSeededBot(protocol.SideLeft, MaxStrength, 1)
	ball := protocol.Vec2{X: physics.LeftStartX, Y: physics.BallServeHeight}

	b.Step(snapshot(0.5, physics.RightStartX, false, protocol.SideLeft), ball, protocol.Vec2{})
	require.NotEqual(t, protocol.PlayerInput{}, b.ComputeInput())

	b.ResetInput()

	assert.Equal(t, protocol.PlayerInput{}, b.ComputeInput())
}

func TestSimpleBot_NeverPressesBothDirections(t *testing.T) {
	b := NewSeededBot(protocol.SideRight, 0, 7)

	for i := 0; i < 200; i++ {
		x := 4.2 + float64(i%37)/10
		ball := protocol.Vec2{X: 8 - x/2, Y: 1 + float64(i%11)/4}
		vel := protocol.Vec2{X: float64(i%7) - 3, Y: float64(i%5) - 2}

		b.Step(snapshot(physics.LeftStartX, x, i%3 != 0, protocol.Sides[i%2]), ball, vel)
		in := b.ComputeInput()
		require.False(t, in.Left && in.Right, "tick %d", i)
		b.ResetInput()
	}
}

func TestSimpleBot_WeakBotReactsLate(t *testing.T) {
	b := NewSeededBot(protocol.SideLeft, 0, 3)
	s := snapshot(physics.LeftStartX, physics.RightStartX, true, protocol.SideRight)

	b.Step(s, protocol.Vec2{X: 1.0, Y: 4.0}, protocol.Vec2{})
	first := b.target
	b.ResetInput()

	// the ball is now over the other half but the bot has not looked again yet
	for i := 0; i < maxReaction; i++ {
		b.Step(s, protocol.Vec2{X: 6.0, Y: 4.0}, protocol.Vec2{})
		b.ResetInput()
		require.Equal(t, first, b.target, "tick %d", i)
	}

	b.Step(s, protocol.Vec2{X: 6.0, Y: 4.0}, protocol.Vec2{})
	assert.InDelta(t, physics.LeftStartX, b.target, 1e-9)
}

func TestLandingX(t *testing.T) {
	lo, hi := physics.BallRadius, physics.CourtWidth-physics.BallRadius

	tests := []struct {
		name     string
		pos, vel protocol.Vec2
		want     float64
	}{
		{"straight down", protocol.Vec2{X: 3, Y: 3}, protocol.Vec2{}, 3},
		{"drifting", protocol.Vec2{X: 6, Y: contactHeight}, protocol.Vec2{X: 1, Y: physics.BallGravity / 2}, 7},
		{"off the right wall", protocol.Vec2{X: 7, Y: contactHeight}, protocol.Vec2{X: 2, Y: physics.BallGravity / 2}, 2*hi - 9},
		{"off the left wall", protocol.Vec2{X: 1, Y: contactHeight}, protocol.Vec2{X: -2, Y: physics.BallGravity / 2}, 2*lo + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := landingX(tt.pos, tt.vel)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, lo)
			assert.LessOrEqual(t, got, hi)
		})
	}
}
