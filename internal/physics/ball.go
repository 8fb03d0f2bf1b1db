package physics

import (
	"math"

	"github.com/ByteArena/box2d"

	"github.com/diegok/blobvolley/internal/protocol"
)

func (w *World) createBall() *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = box2d.MakeB2Vec2(LeftStartX, BallServeHeight)
	bd.Bullet = true
	bd.AllowSleep = false
	bd.Awake = true
	bd.GravityScale = 0
	body := w.world.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = BallRadius

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 1.0
	fd.Friction = BallFriction
	fd.Restitution = BallRestitution
	fd.UserData = partBall
	body.CreateFixtureFromDef(&fd)

	return body
}

// holdBall keeps the ball hovering in place until it is served
func (w *World) holdBall() {
	w.ball.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	w.ball.SetGravityScale(0)
}

// bounceOffBlob sends the ball away from the blob circle it touched at a fixed
// speed and puts it in play
func (w *World) bounceOffBlob(side protocol.Side) {
	ball := fromB2(w.ball.GetPosition())
	blob := fromB2(w.blobs[side].GetPosition())

	upper := blob.Add(protocol.Vec2{Y: BlobUpperOffset})
	lower := blob.Add(protocol.Vec2{Y: BlobLowerOffset})
	centre := upper
	if distance(ball, lower) < distance(ball, upper) {
		centre = lower
	}

	dir := ball.Sub(centre)
	length := math.Hypot(dir.X, dir.Y)
	if length == 0 {
		dir = protocol.Vec2{Y: 1}
		length = 1
	}
	vel := dir.Scale(BallCollisionSpeed / length)

	w.ball.SetLinearVelocity(toB2(vel))
	w.ball.SetAngularVelocity(-vel.X / BallRadius / 2)
	w.ball.SetGravityScale(1)
	w.gameRunning = true
}

// ballSettled reports whether the ball lies low with little vertical speed
func (w *World) ballSettled() bool {
	pos := w.ball.GetPosition()
	vel := w.ball.GetLinearVelocity()
	return math.Abs(vel.Y) < BallSettleSpeed && pos.Y < GroundY+BallRadius+BallSettleHeight
}

func distance(a, b protocol.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
