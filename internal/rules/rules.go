// Package rules enforces the volleyball rules of a match: touch limits, faults,
// rally scoring, serve rotation and the winning condition.
package rules

import "github.com/diegok/blobvolley/internal/protocol"

const (
	DefaultScoreToWin = 15 // Points needed to win a match
	WinningMargin     = 2  // Lead required over the opponent
	MaxTouches        = 3  // Touches allowed per side before a fault
	SquishTolerance   = 10 // Ticks during which a repeated contact does not count
)

// Logic holds the discrete match state
type Logic struct {
	scores        [2]int
	touches       [2]int
	squish        [2]int
	squishGround  int
	servingPlayer protocol.Side
	lastError     protocol.Side
	hasError      bool
	ballValid     bool
	gameRunning   bool
	scoreToWin    int
}

// NewLogic creates the rules for a fresh match where the left player serves
func NewLogic(scoreToWin int) *Logic {
	if scoreToWin < 1 {
		scoreToWin = DefaultScoreToWin
	}
	return &Logic{
		servingPlayer: protocol.SideLeft,
		ballValid:     true,
		scoreToWin:    scoreToWin,
	}
}

// Step advances the contact cooldowns by one tick
func (l *Logic) Step() {
	for i := range l.squish {
		if l.squish[i] > 0 {
			l.squish[i]--
		}
	}
	if l.squishGround > 0 {
		l.squishGround--
	}
}

// OnBallHitsPlayer records a contact and reports whether it counts as a hit.
// A fourth consecutive touch still counts but faults the side.
func (l *Logic) OnBallHitsPlayer(side protocol.Side) bool {
	i := side.Index()
	if !l.ballValid || l.squish[i] > 0 {
		return false
	}

	l.squish[i] = SquishTolerance
	// the other blob has to accept the next hit immediately
	l.squish[side.Opposite().Index()] = 0
	l.touches[side.Opposite().Index()] = 0
	l.touches[i]++
	l.gameRunning = true

	if l.touches[i] > MaxTouches {
		l.onError(side)
	}
	return true
}

// OnBallHitsGround faults the side the ball landed on
func (l *Logic) OnBallHitsGround(side protocol.Side) {
	if !l.ballValid || l.squishGround > 0 {
		return
	}
	l.squishGround = SquishTolerance
	l.touches[side.Opposite().Index()] = 0
	l.onError(side)
}

// onError awards the rally to the opponent of side and hands them the serve
func (l *Logic) onError(side protocol.Side) {
	scorer := side.Opposite()

	l.lastError = side
	l.hasError = true
	l.ballValid = false
	l.gameRunning = false
	l.scores[scorer.Index()]++
	l.servingPlayer = scorer
	l.touches = [2]int{}
}

// OnServe re-arms the rules for the next rally after the world was reset
func (l *Logic) OnServe() {
	l.ballValid = true
	l.gameRunning = false
	l.touches = [2]int{}
	l.squish = [2]int{}
	l.squishGround = 0
}

// LastError returns the side that faulted since the previous call.
// Reading clears it so every fault is reported exactly once.
func (l *Logic) LastError() (protocol.Side, bool) {
	if !l.hasError {
		return protocol.SideLeft, false
	}
	l.hasError = false
	return l.lastError, true
}

// Winner returns the winning side once one has reached the score to win
// with the required lead
func (l *Logic) Winner() (protocol.Side, bool) {
	left, right := l.scores[0], l.scores[1]
	if left >= l.scoreToWin && left >= right+WinningMargin {
		return protocol.SideLeft, true
	}
	if right >= l.scoreToWin && right >= left+WinningMargin {
		return protocol.SideRight, true
	}
	return protocol.SideLeft, false
}

func (l *Logic) ServingPlayer() protocol.Side {
	return l.servingPlayer
}

func (l *Logic) Scores() (int, int) {
	return l.scores[0], l.scores[1]
}

// Touches returns how often side touched the ball in the current rally
func (l *Logic) Touches(side protocol.Side) int {
	return l.touches[side.Index()]
}

func (l *Logic) IsBallValid() bool {
	return l.ballValid
}

// IsGameRunning reports whether the current rally has been served
func (l *Logic) IsGameRunning() bool {
	return l.gameRunning
}

func (l *Logic) ScoreToWin() int {
	return l.scoreToWin
}
