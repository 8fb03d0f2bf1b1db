// Package gametest provides scripted physics and rules for driving a Match in
// tests. Both fakes can share a Recorder to check the order of calls across
// them.
package gametest

import (
	"fmt"

	"github.com/diegok/blobvolley/internal/protocol"
)

// Recorder collects calls in the order they were made
type Recorder struct {
	Calls []string
}

func (r *Recorder) record(format string, args ...any) {
	if r == nil {
		return
	}
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Reset forgets every recorded call
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Contacts is what the fake physics reports for one tick
type Contacts struct {
	LeftPlayer    bool
	RightPlayer   bool
	LeftGround    bool
	RightGround   bool
	RoundFinished bool
}

// Physics is a scripted physics collaborator. Whatever is in Next becomes the
// contacts of the following Step and is then cleared.
type Physics struct {
	Rec  *Recorder
	Next Contacts

	current   Contacts
	Steps     int
	ResetSide protocol.Side
	Resets    int

	BallPos     protocol.Vec2
	BallVel     protocol.Vec2
	BallValid   bool
	GameRunning bool
	Blobs       [2]protocol.Vec2
	BlobVels    [2]protocol.Vec2
	Inputs      [2]protocol.PlayerInput

	// StepInputs holds the inputs seen by each Step
	StepInputs [][2]protocol.PlayerInput
	// DampedFrom is the ball velocity right before the last DampBall
	DampedFrom *protocol.Vec2
}

func NewPhysics(rec *Recorder) *Physics {
	return &Physics{Rec: rec, BallValid: true}
}

func (p *Physics) Step() {
	p.Steps++
	p.current = p.Next
	p.Next = Contacts{}
	p.StepInputs = append(p.StepInputs, p.Inputs)
	p.Rec.record("physics.Step")
}

func (p *Physics) BallHitLeftPlayer() bool  { return p.current.LeftPlayer }
func (p *Physics) BallHitRightPlayer() bool { return p.current.RightPlayer }
func (p *Physics) BallHitLeftGround() bool  { return p.current.LeftGround }
func (p *Physics) BallHitRightGround() bool { return p.current.RightGround }
func (p *Physics) IsRoundFinished() bool    { return p.current.RoundFinished }

func (p *Physics) Reset(serving protocol.Side) {
	p.Resets++
	p.ResetSide = serving
	p.BallValid = true
	p.GameRunning = false
	p.BallVel = protocol.Vec2{}
	p.Rec.record("physics.Reset(%v)", serving)
}

func (p *Physics) ResetPlayer() {
	p.Blobs = [2]protocol.Vec2{}
	p.BlobVels = [2]protocol.Vec2{}
	p.Rec.record("physics.ResetPlayer")
}

func (p *Physics) DampBall() {
	from := p.BallVel
	p.DampedFrom = &from
	p.BallVel = p.BallVel.Scale(0.6)
	p.Rec.record("physics.DampBall")
}

func (p *Physics) SetBallValidity(valid bool) {
	p.BallValid = valid
	p.Rec.record("physics.SetBallValidity(%t)", valid)
}

func (p *Physics) SetPlayerInput(side protocol.Side, input protocol.PlayerInput) {
	p.Inputs[side.Index()] = input
}

func (p *Physics) PlayerInput(side protocol.Side) protocol.PlayerInput {
	return p.Inputs[side.Index()]
}

func (p *Physics) BallPosition() protocol.Vec2 { return p.BallPos }
func (p *Physics) BallVelocity() protocol.Vec2 { return p.BallVel }
func (p *Physics) BallRotation() float64        { return 0 }

func (p *Physics) BlobPosition(side protocol.Side) protocol.Vec2 { return p.Blobs[side.Index()] }
func (p *Physics) BlobVelocity(side protocol.Side) protocol.Vec2 { return p.BlobVels[side.Index()] }
func (p *Physics) BlobState(protocol.Side) float64               { return 0 }

func (p *Physics) IsGameRunning() bool { return p.GameRunning }
func (p *Physics) IsBallValid() bool   { return p.BallValid }

// Rules is a scripted rules collaborator. Hits are valid unless listed in
// RejectHits; a queued error is reported once by LastError.
type Rules struct {
	Rec *Recorder

	RejectHits  map[protocol.Side]bool
	Serving     protocol.Side
	Left, Right int
	Won         *protocol.Side

	pendingError *protocol.Side
	Hits         []protocol.Side
	Grounds      []protocol.Side
	Serves       int
}

func NewRules(rec *Recorder) *Rules {
	return &Rules{Rec: rec, RejectHits: map[protocol.Side]bool{}}
}

// Fault queues side as the next error
func (r *Rules) Fault(side protocol.Side) {
	r.pendingError = &side
}

// SetWinner makes Winner report side from now on
func (r *Rules) SetWinner(side protocol.Side) {
	r.Won = &side
}

func (r *Rules) Step() {
	r.Rec.record("rules.Step")
}

func (r *Rules) OnBallHitsPlayer(side protocol.Side) bool {
	r.Rec.record("rules.OnBallHitsPlayer(%v)", side)
	if r.RejectHits[side] {
		return false
	}
	r.Hits = append(r.Hits, side)
	return true
}

func (r *Rules) OnBallHitsGround(side protocol.Side) {
	r.Grounds = append(r.Grounds, side)
	r.Rec.record("rules.OnBallHitsGround(%v)", side)
}

func (r *Rules) LastError() (protocol.Side, bool) {
	if r.pendingError == nil {
		return protocol.SideLeft, false
	}
	side := *r.pendingError
	r.pendingError = nil
	return side, true
}

func (r *Rules) Winner() (protocol.Side, bool) {
	if r.Won == nil {
		return protocol.SideLeft, false
	}
	return *r.Won, true
}

func (r *Rules) ServingPlayer() protocol.Side {
	r.Rec.record("rules.ServingPlayer")
	return r.Serving
}

func (r *Rules) Scores() (int, int) { return r.Left, r.Right }

func (r *Rules) OnServe() {
	r.Serves++
	r.Rec.record("rules.OnServe")
}
