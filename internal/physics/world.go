// Package physics simulates the court, the two blobs and the ball on top of box2d.
package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/diegok/blobvolley/internal/protocol"
)

// World owns the continuous state of a match
type World struct {
	world    *box2d.B2World
	ball     *box2d.B2Body
	blobs    [2]*box2d.B2Body
	blobVel  [2]protocol.Vec2
	blobAnim [2]float64
	inputs   [2]protocol.PlayerInput
	contacts contactFlags

	ballValid         bool
	gameRunning       bool
	ticksSinceBallOut int
}

// NewWorld builds the court with both blobs at their start positions and the
// ball waiting above the left blob
func NewWorld() *World {
	gravity := box2d.MakeB2Vec2(0, -BallGravity)
	world2D := box2d.MakeB2World(gravity)

	w := &World{world: &world2D}
	w.createCourt()
	w.blobs[protocol.SideLeft] = w.createBlob(protocol.SideLeft)
	w.blobs[protocol.SideRight] = w.createBlob(protocol.SideRight)
	w.ball = w.createBall()

	w.world.SetContactListener(&contactListener{world: w})

	w.ResetPlayer()
	w.Reset(protocol.SideLeft)
	return w
}

func (w *World) createCourt() {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	court := w.world.CreateBody(&bd)

	edge := func(x1, y1, x2, y2 float64, p part) {
		shape := box2d.MakeB2EdgeShape()
		shape.Set(box2d.MakeB2Vec2(x1, y1), box2d.MakeB2Vec2(x2, y2))
		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Friction = BallFriction
		fd.UserData = p
		court.CreateFixtureFromDef(&fd)
	}

	edge(0, GroundY, NetX, GroundY, partGroundLeft)
	edge(NetX, GroundY, CourtWidth, GroundY, partGroundRight)
	edge(0, GroundY, 0, wallHeight, partWall)
	edge(CourtWidth, GroundY, CourtWidth, wallHeight, partWall)

	pole := box2d.MakeB2PolygonShape()
	pole.SetAsBoxFromCenterAndAngle(NetHalfWidth, NetHeight/2, box2d.MakeB2Vec2(NetX, NetHeight/2), 0)
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &pole
	fd.UserData = partNet
	court.CreateFixtureFromDef(&fd)

	top := box2d.MakeB2CircleShape()
	top.M_p = box2d.MakeB2Vec2(NetX, NetHeight)
	top.M_radius = NetHalfWidth
	fd = box2d.MakeB2FixtureDef()
	fd.Shape = &top
	fd.UserData = partNet
	court.CreateFixtureFromDef(&fd)
}

// Step advances the simulation by one fixed tick
func (w *World) Step() {
	w.contacts = contactFlags{}

	for _, side := range protocol.Sides {
		w.driveBlob(side)
	}
	if !w.gameRunning {
		w.holdBall()
	}

	w.world.Step(TimeStep, velocityIterations, positionIterations)

	for _, side := range protocol.Sides {
		w.clampBlob(side)
		w.animateBlob(side)
	}
	for _, side := range protocol.Sides {
		if w.contacts.hitPlayer[side] {
			w.bounceOffBlob(side)
		}
	}

	if !w.ballValid {
		w.ticksSinceBallOut++
	}
}

func (w *World) BallHitLeftPlayer() bool  { return w.contacts.hitPlayer[protocol.SideLeft] }
func (w *World) BallHitRightPlayer() bool { return w.contacts.hitPlayer[protocol.SideRight] }
func (w *World) BallHitLeftGround() bool  { return w.contacts.hitGround[protocol.SideLeft] }
func (w *World) BallHitRightGround() bool { return w.contacts.hitGround[protocol.SideRight] }

// IsRoundFinished reports whether a dead ball has come to rest with both blobs
// standing, or has been dead for too long
func (w *World) IsRoundFinished() bool {
	if w.ballValid {
		return false
	}
	if w.blobGrounded(protocol.SideLeft) && w.blobGrounded(protocol.SideRight) && w.ballSettled() {
		return true
	}
	return w.ticksSinceBallOut > BallOutTimeout
}

// Reset puts the ball above the serving blob and waits for the serve
func (w *World) Reset(serving protocol.Side) {
	w.ball.SetTransform(box2d.MakeB2Vec2(startX(serving), BallServeHeight), 0)
	w.ball.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	w.ball.SetAngularVelocity(BallHoverSpin)
	w.ball.SetGravityScale(0)

	w.gameRunning = false
	w.ballValid = true
	w.ticksSinceBallOut = 0
}

// ResetPlayer moves both blobs back to their start positions
func (w *World) ResetPlayer() {
	for _, side := range protocol.Sides {
		w.blobs[side].SetTransform(box2d.MakeB2Vec2(startX(side), BlobGroundY), 0)
		w.blobs[side].SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
		w.blobVel[side] = protocol.Vec2{}
		w.blobAnim[side] = 0
	}
}

// DampBall slows the ball down after an airborne fault
func (w *World) DampBall() {
	v := w.ball.GetLinearVelocity()
	w.ball.SetLinearVelocity(box2d.MakeB2Vec2(v.X*BallDampFactor, v.Y*BallDampFactor))
	w.ball.SetAngularVelocity(w.ball.GetAngularVelocity() * BallDampFactor)
}

// SetBallValidity marks whether contacts with the ball still matter. A dead
// ball passes through the blobs.
func (w *World) SetBallValidity(valid bool) {
	w.ballValid = valid
}

// SetBallState places the ball and puts it in play
func (w *World) SetBallState(pos, vel protocol.Vec2) {
	w.ball.SetTransform(toB2(pos), w.ball.GetAngle())
	w.ball.SetLinearVelocity(toB2(vel))
	w.ball.SetGravityScale(1)
	w.gameRunning = true
}

func (w *World) SetPlayerInput(side protocol.Side, input protocol.PlayerInput) {
	w.inputs[side.Index()] = input
}

func (w *World) PlayerInput(side protocol.Side) protocol.PlayerInput {
	return w.inputs[side.Index()]
}

func (w *World) BallPosition() protocol.Vec2 { return fromB2(w.ball.GetPosition()) }
func (w *World) BallVelocity() protocol.Vec2 { return fromB2(w.ball.GetLinearVelocity()) }
func (w *World) BallRotation() float64        { return w.ball.GetAngle() }

func (w *World) BlobPosition(side protocol.Side) protocol.Vec2 {
	return fromB2(w.blobs[side.Index()].GetPosition())
}

func (w *World) BlobVelocity(side protocol.Side) protocol.Vec2 {
	return w.blobVel[side.Index()]
}

// BlobState returns the animation phase of a blob in [0, BlobAnimationFrames)
func (w *World) BlobState(side protocol.Side) float64 {
	return w.blobAnim[side.Index()]
}

func (w *World) BlobPositions() [2]protocol.Vec2 {
	return [2]protocol.Vec2{w.BlobPosition(protocol.SideLeft), w.BlobPosition(protocol.SideRight)}
}

func (w *World) BlobVelocities() [2]protocol.Vec2 {
	return w.blobVel
}

// IsGameRunning reports whether the ball has been served
func (w *World) IsGameRunning() bool { return w.gameRunning }

func (w *World) IsBallValid() bool { return w.ballValid }

func toB2(v protocol.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func fromB2(v box2d.B2Vec2) protocol.Vec2 {
	return protocol.Vec2{X: v.X, Y: v.Y}
}
