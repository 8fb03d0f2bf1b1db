package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/rotisserie/eris"

	"github.com/diegok/blobvolley/internal/protocol"
)

const groundTolerance = 1e-6

func startX(side protocol.Side) float64 {
	switch side {
	case protocol.SideLeft:
		return LeftStartX
	case protocol.SideRight:
		return RightStartX
	}
	panic(eris.Errorf("no start position for %v", side))
}

// blobBounds returns the horizontal range a blob centre may occupy
func blobBounds(side protocol.Side) (float64, float64) {
	if side == protocol.SideLeft {
		return BlobLowerRadius, NetX - NetHalfWidth - BlobLowerRadius
	}
	return NetX + NetHalfWidth + BlobLowerRadius, CourtWidth - BlobLowerRadius
}

// createBlob builds a kinematic body from two circles. The world moves it from
// player input; it pushes the ball but ignores everything else.
func (w *World) createBlob(side protocol.Side) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_kinematicBody
	bd.Position = box2d.MakeB2Vec2(startX(side), BlobGroundY)
	bd.FixedRotation = true
	bd.AllowSleep = false
	bd.Awake = true
	bd.UserData = side
	body := w.world.CreateBody(&bd)

	for _, c := range []struct{ offset, radius float64 }{
		{BlobUpperOffset, BlobUpperRadius},
		{BlobLowerOffset, BlobLowerRadius},
	} {
		shape := box2d.MakeB2CircleShape()
		shape.M_p = box2d.MakeB2Vec2(0, c.offset)
		shape.M_radius = c.radius

		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.UserData = blobPart(side)
		body.CreateFixtureFromDef(&fd)
	}

	return body
}

func (w *World) blobGrounded(side protocol.Side) bool {
	return w.blobs[side].GetPosition().Y <= BlobGroundY+groundTolerance
}

// driveBlob turns the player input into the blob velocity for the next step
func (w *World) driveBlob(side protocol.Side) {
	in := w.inputs[side]
	vel := w.blobVel[side]

	vel.X = 0
	switch {
	case in.Left && !in.Right:
		vel.X = -BlobSpeed
	case in.Right && !in.Left:
		vel.X = BlobSpeed
	}

	if w.blobGrounded(side) {
		vel.Y = 0
		if in.Up {
			vel.Y = BlobJumpSpeed
		}
	} else {
		gravity := BlobGravity
		if in.Up {
			gravity -= BlobJumpBuffer
		}
		vel.Y -= gravity * TimeStep
	}

	w.blobVel[side] = vel
	w.blobs[side].SetLinearVelocity(toB2(vel))
}

// clampBlob keeps a blob on its half of the court and on top of the ground
func (w *World) clampBlob(side protocol.Side) {
	body := w.blobs[side]
	pos := body.GetPosition()
	vel := w.blobVel[side]
	minX, maxX := blobBounds(side)

	if pos.X < minX {
		pos.X = minX
		vel.X = 0
	} else if pos.X > maxX {
		pos.X = maxX
		vel.X = 0
	}
	if pos.Y < BlobGroundY {
		pos.Y = BlobGroundY
		vel.Y = 0
	}

	body.SetTransform(pos, 0)
	body.SetLinearVelocity(toB2(vel))
	w.blobVel[side] = vel
}

// animateBlob advances the animation while the blob moves or jumps and lets it
// settle back to the rest frame otherwise
func (w *World) animateBlob(side protocol.Side) {
	vel := w.blobVel[side]
	if vel.X != 0 || !w.blobGrounded(side) {
		w.blobAnim[side] += BlobAnimationSpeed
		if w.blobAnim[side] >= BlobAnimationFrames {
			w.blobAnim[side] -= BlobAnimationFrames
		}
		return
	}
	if w.blobAnim[side] > 0 {
		w.blobAnim[side] -= BlobAnimationSpeed
		if w.blobAnim[side] < 0 {
			w.blobAnim[side] = 0
		}
	}
}
