package protocol

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// EventKind identifies what happened during a tick
type EventKind int

const (
	EventBlobbyHit EventKind = iota
	EventBallHitGround
	EventError
	EventWin
	EventReset
)

var eventKindNames = map[EventKind]string{
	EventBlobbyHit:     "blobby_hit",
	EventBallHitGround: "ball_hit_ground",
	EventError:         "error",
	EventWin:           "win",
	EventReset:         "reset",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	name, ok := eventKindNames[k]
	if !ok {
		return nil, eris.Errorf("invalid event kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for kind, name := range eventKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return eris.Errorf("unknown event kind %q", string(text))
}

// FrameEvent is a single semantic event produced by one match tick.
// Side is meaningless for EventReset and always SideLeft there.
type FrameEvent struct {
	Kind EventKind `json:"kind"`
	Side Side      `json:"side"`
}

func BlobbyHit(side Side) FrameEvent     { return FrameEvent{Kind: EventBlobbyHit, Side: side} }
func BallHitGround(side Side) FrameEvent { return FrameEvent{Kind: EventBallHitGround, Side: side} }
func Error(side Side) FrameEvent         { return FrameEvent{Kind: EventError, Side: side} }
func Win(side Side) FrameEvent           { return FrameEvent{Kind: EventWin, Side: side} }
func Reset() FrameEvent                  { return FrameEvent{Kind: EventReset} }

func (e FrameEvent) String() string {
	if e.Kind == EventReset {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Side)
}

// ContainsKind reports whether any event of the given kind is present
func ContainsKind(events []FrameEvent, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
