package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/blobvolley/internal/protocol"
)

// Intent is what a key asks a blob to do
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentJump
)

const (
	// Terminals send no key release events, a key counts as held until its
	// auto repeat stops arriving
	FirstHoldTicks  = 30 // covers the auto repeat delay (~500ms at 60Hz)
	RepeatHoldTicks = 8  // Ticks to keep moving after last repeat (~133ms at 60Hz)
)

// KeyToIntent maps a key to the side it controls and the intent.
// W/A/D drive the left blob, the arrow keys the right one.
func KeyToIntent(key tcell.Key, r rune) (protocol.Side, Intent) {
	switch key {
	case tcell.KeyLeft:
		return protocol.SideRight, IntentLeft
	case tcell.KeyRight:
		return protocol.SideRight, IntentRight
	case tcell.KeyUp:
		return protocol.SideRight, IntentJump
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return protocol.SideLeft, IntentLeft
		case 'd', 'D':
			return protocol.SideLeft, IntentRight
		case 'w', 'W':
			return protocol.SideLeft, IntentJump
		}
	}
	return protocol.SideLeft, IntentNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

// IsStartKey returns true if the key should start/confirm
func IsStartKey(key tcell.Key) bool {
	return key == tcell.KeyEnter
}

// Keyboard turns key presses into held inputs per side
type Keyboard struct {
	held [2][IntentJump + 1]int
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Press registers a key press or auto repeat
func (k *Keyboard) Press(side protocol.Side, intent Intent) {
	if intent == IntentNone {
		return
	}
	held := &k.held[side.Index()]
	if held[intent] > 0 {
		held[intent] = RepeatHoldTicks
	} else {
		held[intent] = FirstHoldTicks
	}

	// switching direction drops the old one at once
	switch intent {
	case IntentLeft:
		held[IntentRight] = 0
	case IntentRight:
		held[IntentLeft] = 0
	}
}

// HandleKey presses whatever key maps to and reports whether it was a game key
func (k *Keyboard) HandleKey(key tcell.Key, r rune) bool {
	side, intent := KeyToIntent(key, r)
	if intent == IntentNone {
		return false
	}
	k.Press(side, intent)
	return true
}

// Input returns the input currently held for side
func (k *Keyboard) Input(side protocol.Side) protocol.PlayerInput {
	held := k.held[side.Index()]
	return protocol.PlayerInput{
		Left:  held[IntentLeft] > 0,
		Right: held[IntentRight] > 0,
		Up:    held[IntentJump] > 0,
	}
}

// Tick lets held keys expire, call once per simulation tick
func (k *Keyboard) Tick() {
	for s := range k.held {
		for i := range k.held[s] {
			if k.held[s][i] > 0 {
				k.held[s][i]--
			}
		}
	}
}

// Release forgets every held key
func (k *Keyboard) Release() {
	k.held = [2][IntentJump + 1]int{}
}
