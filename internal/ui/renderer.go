package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/diegok/blobvolley/internal/physics"
	"github.com/diegok/blobvolley/internal/protocol"
)

const (
	BlobChar      = '█'
	NetChar       = '█'
	GroundChar    = '▀'
	OffscreenChar = '▲'
)

// BallGlyphs show the ball rotation in quarter turns
var BallGlyphs = [4]rune{'◐', '◓', '◑', '◒'}

// View is the part of the match the renderer reads
type View interface {
	BallPosition() protocol.Vec2
	BallRotation() float64
	BlobPosition(side protocol.Side) protocol.Vec2
	BlobState(side protocol.Side) float64
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen *Screen
	scores *ScoreCache
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen, scores: NewScoreCache()}
}

// court maps world coordinates onto the screen. The last row is the status
// bar and the one above it the ground.
type court struct {
	w, ground      int
	scaleX, scaleY float64
}

func newCourt(screenW, screenH int) court {
	ground := screenH - 2
	return court{
		w:      screenW,
		ground: ground,
		scaleX: float64(screenW) / physics.CourtWidth,
		scaleY: float64(ground) / physics.CourtHeight,
	}
}

func (c court) col(x float64) int {
	return int(math.Floor(x * c.scaleX))
}

func (c court) row(y float64) int {
	return c.ground - 1 - int(math.Floor(y*c.scaleY))
}

// cellCentre returns the world position of the middle of a cell
func (c court) cellCentre(col, row int) protocol.Vec2 {
	return protocol.Vec2{
		X: (float64(col) + 0.5) / c.scaleX,
		Y: (float64(c.ground-1-row) + 0.5) / c.scaleY,
	}
}

// RenderGame displays the court, both blobs, the ball and the score
func (r *Renderer) RenderGame(v View, left, right int, status string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	c := newCourt(screenW, screenH)

	// Draw court background (black)
	courtStyle := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.FillRect(0, 0, screenW, c.ground, courtStyle, ' ')

	r.renderScore(left, right)

	groundStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	for x := 0; x < screenW; x++ {
		r.screen.SetCell(x, c.ground, groundStyle, GroundChar)
	}

	netStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	r.screen.DrawVerticalLine(c.col(physics.NetX), c.row(physics.NetHeight), c.ground-1, netStyle, NetChar)

	for _, side := range protocol.Sides {
		r.renderBlob(c, side, v.BlobPosition(side), v.BlobState(side))
	}
	r.renderBall(c, v.BallPosition(), v.BallRotation())

	// Status bar at bottom
	statusY := screenH - 1
	statusStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	r.screen.FillRect(0, statusY, screenW, 1, statusStyle, ' ')
	r.screen.DrawText(0, statusY, status, statusStyle)

	r.screen.Show()
}

func (r *Renderer) renderScore(left, right int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack)
	for i, row := range r.scores.Rows(left, right) {
		r.screen.DrawCentered(1+i, row, style)
	}
}

// renderBlob fills every cell whose centre lies inside one of the two blob
// circles. The head gets lighter while the blob is animated.
func (r *Renderer) renderBlob(c court, side protocol.Side, pos protocol.Vec2, state float64) {
	phase := state / physics.BlobAnimationFrames
	body := blobColor(side, 0.1*phase)
	head := blobColor(side, 0.25+0.3*phase)

	upper := pos.Add(protocol.Vec2{Y: physics.BlobUpperOffset})
	lower := pos.Add(protocol.Vec2{Y: physics.BlobLowerOffset})

	x0 := c.col(pos.X - physics.BlobLowerRadius)
	x1 := c.col(pos.X + physics.BlobLowerRadius)
	y0 := c.row(upper.Y + physics.BlobUpperRadius)
	y1 := c.row(lower.Y - physics.BlobLowerRadius)

	drawn := false
	for y := y0; y <= y1 && y < c.ground; y++ {
		for x := x0; x <= x1; x++ {
			p := c.cellCentre(x, y)
			switch {
			case dist(p, upper) <= physics.BlobUpperRadius:
				r.screen.SetCell(x, y, tcell.StyleDefault.Foreground(head).Background(tcell.ColorBlack), BlobChar)
				drawn = true
			case dist(p, lower) <= physics.BlobLowerRadius:
				r.screen.SetCell(x, y, tcell.StyleDefault.Foreground(body).Background(tcell.ColorBlack), BlobChar)
				drawn = true
			}
		}
	}
	// tiny terminals still show where the blob is
	if !drawn {
		r.screen.SetCell(c.col(pos.X), c.row(pos.Y), tcell.StyleDefault.Foreground(body), BlobChar)
	}
}

func (r *Renderer) renderBall(c court, pos protocol.Vec2, rotation float64) {
	x := c.col(pos.X)
	y := c.row(pos.Y)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	if y < 0 {
		r.screen.SetCell(x, 0, style.Bold(true), OffscreenChar)
		r.screen.DrawText(x+1, 0, fmt.Sprintf("%.1fm", pos.Y), style)
		return
	}
	r.screen.SetCell(x, y, style, BallGlyph(rotation))
}

// BallGlyph picks the glyph for a ball turned by angle radians
func BallGlyph(angle float64) rune {
	quarter := int(math.Floor(angle / (math.Pi / 2)))
	quarter %= len(BallGlyphs)
	if quarter < 0 {
		quarter += len(BallGlyphs)
	}
	return BallGlyphs[quarter]
}

// blobColor lightens the side colour towards white by t in [0, 1]
func blobColor(side protocol.Side, t float64) tcell.Color {
	cr, cg, cb := SideColors[side].RGB()
	base := colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}

	shade := base.BlendLab(white, math.Max(0, math.Min(t, 1))).Clamped()
	r8, g8, b8 := shade.RGB255()
	return tcell.NewRGBColor(int32(r8), int32(g8), int32(b8))
}

func dist(a, b protocol.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// RenderWin displays the end of match screen
func (r *Renderer) RenderWin(winner protocol.Side, left, right int) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	boxW := min(screenW, 50)
	r.screen.DrawBox((screenW-boxW)/2, screenH/2-6, boxW, 13, tcell.StyleDefault.Foreground(tcell.ColorGray))

	title := "=== GAME OVER ==="
	r.screen.DrawCentered(screenH/2-4, title, tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow))

	scoreText := fmt.Sprintf("Final Score: %d - %d", left, right)
	r.screen.DrawCentered(screenH/2-1, scoreText, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	winnerText := fmt.Sprintf("%s PLAYER WINS!", SideName(winner))
	r.screen.DrawCentered(screenH/2+1, winnerText, SideStyle(winner).Bold(true))

	hint := "Press ENTER for a new game | Press 'q' to quit"
	r.screen.DrawCentered(screenH/2+4, hint, tcell.StyleDefault.Foreground(tcell.ColorGreen))

	r.screen.Show()
}

// RenderError displays an error screen with a hint below it
func (r *Renderer) RenderError(err, hint string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-2, "ERROR", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed))

	// Truncate if too long
	maxErrLen := screenW - 4
	errMsg := err
	if maxErrLen > 3 && len(errMsg) > maxErrLen {
		errMsg = errMsg[:maxErrLen-3] + "..."
	}
	r.screen.DrawCentered(screenH/2, errMsg, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	r.screen.DrawCentered(screenH/2+3, hint, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
