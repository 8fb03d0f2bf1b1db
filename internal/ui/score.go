package ui

import (
	"fmt"
	"strings"
)

const digitHeight = 5

// bigGlyphs are 3x5 block digits
var bigGlyphs = map[rune][digitHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" ██", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	'-': {"   ", "   ", "███", "   ", "   "},
	' ': {"   ", "   ", "   ", "   ", "   "},
}

// ScoreCache keeps the big score rows of the last scores it saw and only
// builds new ones when a score changes
type ScoreCache struct {
	left, right int
	rows        [digitHeight]string
	builds      int
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{left: -1, right: -1}
}

// Rows returns the glyph rows for the score left - right
func (c *ScoreCache) Rows(left, right int) [digitHeight]string {
	if left != c.left || right != c.right {
		c.left, c.right = left, right
		c.rows = bigText(fmt.Sprintf("%2d - %-2d", left, right))
		c.builds++
	}
	return c.rows
}

// Builds returns how many times the rows were rebuilt
func (c *ScoreCache) Builds() int { return c.builds }

func bigText(text string) [digitHeight]string {
	var rows [digitHeight]strings.Builder
	for i, r := range text {
		glyph, ok := bigGlyphs[r]
		if !ok {
			glyph = bigGlyphs[' ']
		}
		for y := range rows {
			if i > 0 {
				rows[y].WriteByte(' ')
			}
			rows[y].WriteString(glyph[y])
		}
	}

	var out [digitHeight]string
	for y := range rows {
		out[y] = rows[y].String()
	}
	return out
}
