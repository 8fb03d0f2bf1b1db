package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegok/blobvolley/internal/physics"
	"github.com/diegok/blobvolley/internal/protocol"
)

type fakeView struct {
	ball     protocol.Vec2
	rotation float64
	blobs    [2]protocol.Vec2
	states   [2]float64
}

func (v fakeView) BallPosition() protocol.Vec2                 { return v.ball }
func (v fakeView) BallRotation() float64                       { return v.rotation }
func (v fakeView) BlobPosition(s protocol.Side) protocol.Vec2 { return v.blobs[s] }
func (v fakeView) BlobState(s protocol.Side) float64           { return v.states[s] }

func newTestScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return NewScreen(sim), sim
}

func cell(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func line(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(cell(sim, x, y))
	}
	return b.String()
}

func restingView() fakeView {
	return fakeView{
		ball: protocol.Vec2{X: physics.LeftStartX, Y: physics.BallServeHeight},
		blobs: [2]protocol.Vec2{
			{X: physics.LeftStartX, Y: physics.BlobGroundY},
			{X: physics.RightStartX, Y: physics.BlobGroundY},
		},
	}
}

func TestRenderGame_Court(t *testing.T) {
	screen, sim := newTestScreen(t, 80, 26)
	r := NewRenderer(screen)
	c := newCourt(80, 26)

	r.RenderGame(restingView(), 3, 12, "serve: LEFT")

	assert.Equal(t, strings.Repeat(string(GroundChar), 80), line(sim, c.ground))
	assert.True(t, strings.HasPrefix(line(sim, 25), "serve: LEFT"))
	assert.Equal(t, NetChar, cell(sim, c.col(physics.NetX), c.ground-1))
	assert.Equal(t, NetChar, cell(sim, c.col(physics.NetX), c.row(physics.NetHeight)))

	ball := restingView().ball
	assert.Equal(t, BallGlyphs[0], cell(sim, c.col(ball.X), c.row(ball.Y)))

	for _, side := range protocol.Sides {
		blob := restingView().blobs[side]
		assert.Equal(t, BlobChar, cell(sim, c.col(blob.X), c.row(blob.Y)), "blob %v", side)
	}
}

func TestRenderGame_OffscreenBall(t *testing.T) {
	screen, sim := newTestScreen(t, 80, 26)
	r := NewRenderer(screen)
	c := newCourt(80, 26)
	v := restingView()
	v.ball = protocol.Vec2{X: 5, Y: physics.CourtHeight + 2}

	r.RenderGame(v, 0, 0, "")

	x := c.col(5)
	assert.Equal(t, OffscreenChar, cell(sim, x, 0))
	assert.Contains(t, line(sim, 0), "8.0m")
}

func TestRenderGame_Score(t *testing.T) {
	screen, sim := newTestScreen(t, 80, 26)
	r := NewRenderer(screen)

	r.RenderGame(restingView(), 7, 4, "")
	r.RenderGame(restingView(), 7, 4, "")
	assert.Equal(t, 1, r.scores.Builds())

	r.RenderGame(restingView(), 8, 4, "")
	assert.Equal(t, 2, r.scores.Builds())

	rows := bigText(" 8 - 4 ")
	assert.Contains(t, line(sim, 3), strings.TrimSpace(rows[2]))
}

func TestRenderWin(t *testing.T) {
	screen, sim := newTestScreen(t, 80, 24)
	r := NewRenderer(screen)

	r.RenderWin(protocol.SideRight, 9, 15)

	assert.Contains(t, line(sim, 13), "RIGHT PLAYER WINS!")
	assert.Contains(t, line(sim, 11), "Final Score: 9 - 15")
	assert.Contains(t, line(sim, 16), "ENTER")
}

func TestScoreCache(t *testing.T) {
	c := NewScoreCache()
	assert.Zero(t, c.Builds())

	first := c.Rows(0, 0)
	assert.Equal(t, 1, c.Builds(), "the cache starts invalid")

	assert.Equal(t, first, c.Rows(0, 0))
	assert.Equal(t, 1, c.Builds())

	c.Rows(0, 1)
	c.Rows(1, 1)
	assert.Equal(t, 3, c.Builds())
}

func TestBigText(t *testing.T) {
	rows := bigText("10")

	assert.Equal(t, " ██ ███", rows[0])
	assert.Equal(t, "  █ █ █", rows[1])
	assert.Equal(t, "  █ ███", rows[4])
}

func TestBallGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '◐'},
		{math.Pi / 2, '◓'},
		{math.Pi, '◑'},
		{3 * math.Pi / 2, '◒'},
		{2 * math.Pi, '◐'},
		{-0.1, '◒'},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BallGlyph(tt.angle+1e-9), "angle %v", tt.angle)
	}
}

func TestBlobColor(t *testing.T) {
	r0, g0, b0 := blobColor(protocol.SideLeft, 0).RGB()
	r1, g1, b1 := blobColor(protocol.SideLeft, 1).RGB()

	wr, wg, wb := SideColors[protocol.SideLeft].RGB()
	assert.Equal(t, []int32{wr, wg, wb}, []int32{r0, g0, b0})
	assert.Equal(t, []int32{255, 255, 255}, []int32{r1, g1, b1})
}

func TestDrawCentered(t *testing.T) {
	screen, sim := newTestScreen(t, 20, 3)

	screen.DrawCentered(1, "ab", tcell.StyleDefault)
	screen.DrawCentered(2, "世界", tcell.StyleDefault)

	assert.Equal(t, 'a', cell(sim, 9, 1))
	assert.Equal(t, 'b', cell(sim, 10, 1))
	assert.Equal(t, '世', cell(sim, 8, 2))
	assert.Equal(t, '界', cell(sim, 10, 2))
}

func TestRenderError(t *testing.T) {
	screen, sim := newTestScreen(t, 30, 10)
	r := NewRenderer(screen)

	r.RenderError(strings.Repeat("x", 40), "press q")

	assert.Contains(t, line(sim, 3), "ERROR")
	assert.Contains(t, line(sim, 5), "...")
	assert.Contains(t, line(sim, 8), "press q")
}
