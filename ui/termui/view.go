// Package termui draws the game into a terminal with tcell and turns key
// events into actions.
package termui

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

// Layout is the character grid used by View. Each board cell is two columns wide.
var Layout = ui.Layout{CellWidth: 2, CellHeight: 1, Margin: 1, SidebarGap: 3, SidebarWidth: 10}

const (
	blockGlyph = '█'
	ghostGlyph = '░'
	emptyGlyph = '·'
)

// View is a loop.Renderer that draws snapshots to a tcell screen.
type View struct {
	screen tcell.Screen
	best   func() []scores.Entry

	mu sync.Mutex
}

// NewView draws to screen. best may be nil; it is called on every render.
func NewView(screen tcell.Screen, best func() []scores.Entry) *View {
	return &View{screen: screen, best: best}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var (
	baseStyle   = tcell.StyleDefault.Background(rgb(ui.Background)).Foreground(rgb(ui.Text))
	borderStyle = baseStyle.Foreground(rgb(ui.Border))
	emptyStyle  = baseStyle.Foreground(rgb(ui.Shade(ui.Border, 0.4)))
	alertStyle  = baseStyle.Foreground(rgb(ui.Alert)).Bold(true)
)

func pieceStyle(t tetris.PieceType) tcell.Style {
	return baseStyle.Foreground(rgb(ui.PieceColor(t)))
}

// Render draws state and shows the screen.
func (v *View) Render(state tetris.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.SetStyle(baseStyle)
	v.screen.Clear()

	v.drawBorder()
	v.drawBoard(&state)
	v.drawSidebar(&state)
	v.drawOverlay(&state)

	v.screen.Show()
}

func (v *View) put(x, y int, r rune, style tcell.Style) {
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.put(x, y, r, style)
		x++
	}
}

func (v *View) drawBorder() {
	b := Layout.Board()
	left, right := b.Min.X-1, b.Max.X
	top, bottom := b.Min.Y-1, b.Max.Y

	for x := left + 1; x < right; x++ {
		v.put(x, top, '─', borderStyle)
		v.put(x, bottom, '─', borderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		v.put(left, y, '│', borderStyle)
		v.put(right, y, '│', borderStyle)
	}
	v.put(left, top, '┌', borderStyle)
	v.put(right, top, '┐', borderStyle)
	v.put(left, bottom, '└', borderStyle)
	v.put(right, bottom, '┘', borderStyle)
}

func (v *View) cell(x, y int, r rune, style tcell.Style) {
	p := Layout.Cell(x, y)
	for i := range Layout.CellWidth {
		v.put(p.X+i, p.Y, r, style)
	}
}

func (v *View) drawBoard(state *tetris.Snapshot) {
	for y := range tetris.Rows {
		for x := range tetris.Cols {
			t, _ := state.Cell(x, y)
			switch {
			case t != tetris.Empty:
				v.cell(x, y, blockGlyph, pieceStyle(t))
			case !state.GameOver && state.Ghost(x, y):
				v.cell(x, y, ghostGlyph, pieceStyle(state.Active.Type))
			default:
				p := Layout.Cell(x, y)
				v.put(p.X, p.Y, ' ', emptyStyle)
				v.put(p.X+1, p.Y, emptyGlyph, emptyStyle)
			}
		}
	}
}

func (v *View) drawSidebar(state *tetris.Snapshot) {
	origin := Layout.Sidebar()
	x, y := origin.X, origin.Y

	v.text(x, y, "NEXT", baseStyle)
	state.Next.Shape.Cells(func(dx, dy int, t tetris.PieceType) {
		for i := range Layout.CellWidth {
			v.put(x+dx*Layout.CellWidth+i, y+1+dy, blockGlyph, pieceStyle(t))
		}
	})
	y += 6

	var best []scores.Entry
	if v.best != nil {
		best = v.best()
	}
	for _, line := range ui.Sidebar(*state, best) {
		switch {
		case line.Label == "":
			v.text(x, y, line.Value, baseStyle)
		case line.Value == "":
			y++
			v.text(x, y, line.Label, borderStyle)
		default:
			v.text(x, y, fmt.Sprintf("%-6s%s", line.Label, line.Value), baseStyle)
		}
		y++
	}
}

func (v *View) drawOverlay(state *tetris.Snapshot) {
	title, hint, ok := ui.Overlay(*state)
	if !ok {
		return
	}

	b := Layout.Board()
	mid := b.Min.Y + b.Dy()/2
	center := func(s string) int { return b.Min.X + (b.Dx()-len([]rune(s)))/2 }

	style := baseStyle.Bold(true)
	if state.GameOver {
		style = alertStyle
	}
	v.text(center(title), mid-1, title, style)
	v.text(center(hint), mid+1, hint, baseStyle)
}
