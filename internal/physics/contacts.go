package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/diegok/blobvolley/internal/protocol"
)

// part tags every fixture through its user data
type part int

const (
	partNone part = iota
	partBall
	partBlobLeft
	partBlobRight
	partGroundLeft
	partGroundRight
	partWall
	partNet
)

func blobPart(side protocol.Side) part {
	if side == protocol.SideLeft {
		return partBlobLeft
	}
	return partBlobRight
}

func partOf(f *box2d.B2Fixture) part {
	if f == nil {
		return partNone
	}
	p, _ := f.GetUserData().(part)
	return p
}

// ballContact returns what the ball touches in contact, or partNone when the
// ball is not part of it
func ballContact(contact box2d.B2ContactInterface) part {
	a, b := partOf(contact.GetFixtureA()), partOf(contact.GetFixtureB())
	switch {
	case a == partBall:
		return b
	case b == partBall:
		return a
	}
	return partNone
}

// contactFlags collects the contacts that started during the last step
type contactFlags struct {
	hitPlayer [2]bool
	hitGround [2]bool
}

// contactListener records ball contacts for the world and lets a dead ball
// pass through the blobs
type contactListener struct {
	world *World
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	switch ballContact(contact) {
	case partBlobLeft:
		if l.world.ballValid {
			l.world.contacts.hitPlayer[protocol.SideLeft] = true
		}
	case partBlobRight:
		if l.world.ballValid {
			l.world.contacts.hitPlayer[protocol.SideRight] = true
		}
	case partGroundLeft:
		l.world.contacts.hitGround[protocol.SideLeft] = true
	case partGroundRight:
		l.world.contacts.hitGround[protocol.SideRight] = true
	}
}

func (l *contactListener) EndContact(_ box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, _ box2d.B2Manifold) {
	if l.world.ballValid {
		return
	}
	if p := ballContact(contact); p == partBlobLeft || p == partBlobRight {
		contact.SetEnabled(false)
	}
}

func (l *contactListener) PostSolve(_ box2d.B2ContactInterface, _ *box2d.B2ContactImpulse) {}
