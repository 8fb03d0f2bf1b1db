package protocol

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Side identifies one of the two players
type Side int

const (
	SideLeft  Side = 0
	SideRight Side = 1
)

// Sides lists both players in their canonical order (left first)
var Sides = [2]Side{SideLeft, SideRight}

// Opposite returns the other player
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Valid reports whether s names a real player
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Index returns s as an array index, panicking on anything but a real side
func (s Side) Index() int {
	if !s.Valid() {
		panic(eris.Errorf("invalid side %d", int(s)))
	}
	return int(s)
}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, eris.Errorf("invalid side %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return eris.Errorf("unknown side %q", string(text))
	}
	return nil
}

// PlayerInput holds the movement intents of one player for the next tick
type PlayerInput struct {
	Left  bool
	Right bool
	Up    bool
}

// Vec2 is a point or velocity in world units (y grows upwards)
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Snapshot is the read-only view of the world a bot decides on.
// It is assembled fresh every tick and never stored.
type Snapshot struct {
	BlobPositions  [2]Vec2
	BlobVelocities [2]Vec2
	IsGameRunning  bool
	IsBallValid    bool
	ServingPlayer  Side
}

// TickRecord is one line of the simulation log
type TickRecord struct {
	Tick       int          `json:"tick"`
	Events     []FrameEvent `json:"events,omitempty"`
	LeftScore  int          `json:"left_score"`
	RightScore int          `json:"right_score"`
	Ball       Vec2         `json:"ball"`
}
