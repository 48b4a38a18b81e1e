package tui

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/streetrunner/internal/core"
	"github.com/vovakirdan/streetrunner/internal/engine"
)

// Glyphs for the track.
const (
	PlayerChar  = '◆'
	ShadowChar  = '·'
	ConeChar    = '▲'
	BarrierChar = '▬'
	CarChar     = '█'
	CoinChar    = '●'
	EdgeChar    = '│'
	MarkChar    = '╎'
	HorizonChar = '▁'
)

const (
	hudRows      = 3  // score line, world, narrative
	footerRows   = 2  // flash line and help
	panelWidth   = 34 // feed panel on wide screens
	panelMinW    = 90 // screens at least this wide get the feed panel
	minLaneWidth = 2  // half-width of a lane at the horizon
)

// View is everything the renderer needs for one frame.
type View struct {
	State     engine.GameState
	HighScore int
	Flash     string
	Feed      []FeedEntry
}

// trackLayout maps track coordinates to screen cells.
type trackLayout struct {
	left, right int // horizontal extent of the track area
	top, bottom int // horizon row and player row
}

func newTrackLayout(w, h int) trackLayout {
	l := trackLayout{left: 0, right: w, top: hudRows + 1, bottom: h - footerRows - 1}
	if w >= panelMinW {
		l.right = w - panelWidth
	}
	return l
}

func (l trackLayout) centerX() int {
	return (l.left + l.right) / 2
}

// rowFor places a depth on screen. Far entities bunch up near the horizon.
func (l trackLayout) rowFor(depth float64) int {
	t := core.ClampF(depth/engine.SpawnDepth, 0, 1)
	span := float64(l.bottom - l.top)
	return l.top + int(math.Round(span*(1-t)*(1-t)))
}

// laneWidth is the lane half-width at a row, widening toward the player.
func (l trackLayout) laneWidth(y int) int {
	maxW := (l.right - l.left) / 6
	if maxW < minLaneWidth {
		maxW = minLaneWidth
	}
	span := l.bottom - l.top
	if span <= 0 {
		return maxW
	}
	return minLaneWidth + (maxW-minLaneWidth)*(y-l.top)/span
}

// laneX returns the column of a lane center at row y.
func (l trackLayout) laneX(lane engine.Lane, y int) int {
	return l.centerX() + int(lane)*2*l.laneWidth(y)
}

// Draw renders a full frame into dst.
func Draw(dst *core.Screen, v View) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < hudRows+footerRows+4 {
		dst.DrawTextCentered(dst.Height()/2, "terminal too small", core.ColorBrightRed)
		return
	}

	l := newTrackLayout(dst.Width(), dst.Height())
	pal := PaletteFor(v.State.BackgroundRef)

	drawRoad(dst, l, pal)
	for _, e := range v.State.Entities {
		drawEntity(dst, l, e)
	}
	drawPlayer(dst, l, v.State)
	drawHUD(dst, v, pal)
	if l.right < dst.Width() {
		drawFeed(dst, l.right+1, hudRows+1, v.Feed)
	}

	if v.Flash != "" {
		dst.DrawTextCentered(dst.Height()-2, v.Flash, core.ColorBrightYellow)
	}

	switch v.State.Status {
	case engine.StatusIdle:
		drawCenteredMessage(dst, "STREET RUNNER", "Press Enter to start")
	case engine.StatusGameOver:
		drawCenteredMessage(dst, "CRASHED",
			fmt.Sprintf("Score: %d  |  Sector %d  |  Press Enter to restart", v.State.Score, v.State.Phase))
	}
}

func drawRoad(dst *core.Screen, l trackLayout, pal Palette) {
	for x := l.left; x < l.right; x++ {
		dst.SetColored(x, l.top-1, HorizonChar, pal.Horizon)
	}
	for y := l.top; y <= l.bottom; y++ {
		w := l.laneWidth(y)
		cx := l.centerX()
		dst.SetColored(cx-3*w, y, EdgeChar, pal.Edge)
		dst.SetColored(cx+3*w, y, EdgeChar, pal.Edge)
		if y%2 == 0 {
			dst.SetColored(cx-w, y, MarkChar, pal.Marking)
			dst.SetColored(cx+w, y, MarkChar, pal.Marking)
		}
	}
}

func drawEntity(dst *core.Screen, l trackLayout, e engine.Entity) {
	if e.Depth < 0 {
		return
	}
	y := l.rowFor(e.Depth)
	x := l.laneX(e.Lane, y)

	switch e.Model {
	case engine.ModelCone:
		dst.SetColored(x, y, ConeChar, core.ColorOrange)
	case engine.ModelBarrier:
		dst.SetColored(x-1, y, BarrierChar, core.ColorRed)
		dst.SetColored(x, y, BarrierChar, core.ColorWhite)
		dst.SetColored(x+1, y, BarrierChar, core.ColorRed)
	case engine.ModelCar:
		dst.SetColored(x-1, y, CarChar, core.ColorBlue)
		dst.SetColored(x, y, CarChar, core.ColorBlue)
		dst.SetColored(x+1, y, CarChar, core.ColorBlue)
		if y > l.top {
			dst.SetColored(x, y-1, '▄', core.ColorBlue)
		}
	case engine.ModelCoin:
		dst.SetColored(x, y, CoinChar, core.ColorBrightYellow)
	}
}

func drawPlayer(dst *core.Screen, l trackLayout, s engine.GameState) {
	x := l.laneX(s.Lane, l.bottom)
	lift := int(math.Round(s.JumpY))
	if lift > 0 {
		dst.SetColored(x, l.bottom, ShadowChar, core.ColorGray)
	}
	color := core.ColorBrightCyan
	if s.Status == engine.StatusGameOver {
		color = core.ColorBrightRed
	}
	dst.SetColored(x, l.bottom-lift, PlayerChar, color)
}

func drawHUD(dst *core.Screen, v View, pal Palette) {
	s := v.State
	left := fmt.Sprintf(" Score: %d  Sector: %d ", s.Score, s.Phase)
	dst.DrawText(1, 0, left)

	right := fmt.Sprintf(" Spd: %.2f  Best: %d ", s.Speed, max(v.HighScore, s.Score))
	dst.DrawText(dst.Width()-utf8.RuneCountInString(right)-1, 0, right)

	dst.DrawTextCentered(1, s.CurrentWorld, pal.Accent)
	dst.DrawTextCentered(2, truncate(s.Narrative, dst.Width()-4), core.ColorGray)
}

func drawFeed(dst *core.Screen, x, y int, feed []FeedEntry) {
	h := dst.Height() - y - footerRows
	if h < 4 {
		return
	}
	dst.DrawBox(core.NewRect(x, y, panelWidth-1, h), core.ColorDarkGray)
	dst.DrawTextColored(x+2, y, " Sector log ", core.ColorGray)

	row := y + 1
	inner := panelWidth - 5
	// Newest first.
	for i := len(feed) - 1; i >= 0 && row < y+h-2; i-- {
		dst.DrawTextColored(x+2, row, truncate(feed[i].Line(), inner), core.ColorCyan)
		dst.DrawText(x+2, row+1, truncate(feed[i].Text, inner))
		row += 3
	}
}

// drawCenteredMessage draws a boxed two-line message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 6
	w = min(w, dst.Width())
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	dst.DrawRect(core.NewRect(x, y, w, h), ' ')
	dst.DrawBox(core.NewRect(x, y, w, h), core.ColorWhite)
	dst.DrawTextCentered(y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(y+3, truncate(subtitle, w-2), core.ColorDefault)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
