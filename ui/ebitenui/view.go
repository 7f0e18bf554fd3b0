// Package ebitenui is the windowed frontend: a renderer drawing snapshots
// with ebiten, keyboard input with auto-repeat, and the ebiten.Game that
// drives a loop.Scheduler.
package ebitenui

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

// Layout is the pixel layout of the window.
var Layout = ui.Layout{CellWidth: 30, CellHeight: 30, Margin: 20, SidebarGap: 24, SidebarWidth: 6}

const (
	glyphWidth  = 6
	lineHeight  = 18
	ghostAlpha  = 0.3
	dimmerAlpha = 0xb0
)

// View is a loop.Renderer. Render stores the snapshot, Draw paints the last one.
type View struct {
	best   func() []scores.Entry
	blocks *blocks

	mu    sync.Mutex
	state tetris.Snapshot
	ready bool
}

// NewView creates a view. best may be nil.
func NewView(best func() []scores.Entry) *View {
	return &View{best: best, blocks: newBlocks(Layout.CellWidth)}
}

func (v *View) Render(state tetris.Snapshot) {
	v.mu.Lock()
	v.state = state
	v.ready = true
	v.mu.Unlock()
}

// Size returns the window size the layout needs.
func (v *View) Size() (int, int) {
	s := Layout.Size()
	return s.X, s.Y
}

// Draw paints the most recent snapshot.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(ui.Background)

	v.mu.Lock()
	state, ready := v.state, v.ready
	v.mu.Unlock()
	if !ready {
		return
	}

	v.drawBoard(screen, &state)
	v.drawSidebar(screen, &state)
	v.drawOverlay(screen, &state)
}

func (v *View) drawBoard(screen *ebiten.Image, state *tetris.Snapshot) {
	b := Layout.Board()
	grid := ui.Shade(ui.Border, 0.3)
	w, h := float32(Layout.CellWidth), float32(Layout.CellHeight)

	for y := range tetris.Rows {
		for x := range tetris.Cols {
			p := Layout.Cell(x, y)
			t, _ := state.Cell(x, y)
			switch {
			case t != tetris.Empty:
				v.blocks.draw(screen, t, p.X, p.Y, 1)
			case !state.GameOver && state.Ghost(x, y):
				v.blocks.draw(screen, state.Active.Type, p.X, p.Y, ghostAlpha)
			default:
				vector.StrokeRect(screen, float32(p.X), float32(p.Y), w, h, 1, grid, false)
			}
		}
	}

	vector.StrokeRect(screen, float32(b.Min.X-2), float32(b.Min.Y-2), float32(b.Dx()+4), float32(b.Dy()+4), 2, ui.Border, false)
}

func (v *View) drawSidebar(screen *ebiten.Image, state *tetris.Snapshot) {
	origin := Layout.Sidebar()
	x, y := origin.X, origin.Y

	ebitenutil.DebugPrintAt(screen, "NEXT", x, y)
	y += lineHeight
	state.Next.Shape.Cells(func(dx, dy int, t tetris.PieceType) {
		v.blocks.draw(screen, t, x+dx*Layout.CellWidth, y+dy*Layout.CellHeight, 1)
	})
	y += 3 * Layout.CellHeight

	var best []scores.Entry
	if v.best != nil {
		best = v.best()
	}
	for _, line := range ui.Sidebar(*state, best) {
		switch {
		case line.Label == "":
			ebitenutil.DebugPrintAt(screen, line.Value, x, y)
		case line.Value == "":
			y += lineHeight
			ebitenutil.DebugPrintAt(screen, line.Label, x, y)
		default:
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-6s%s", line.Label, line.Value), x, y)
		}
		y += lineHeight
	}

	y += lineHeight
	for _, c := range ui.Controls {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-11s%s", c.Label, c.Value), x, y)
		y += lineHeight
	}
}

func (v *View) drawOverlay(screen *ebiten.Image, state *tetris.Snapshot) {
	title, hint, ok := ui.Overlay(*state)
	if !ok {
		return
	}

	b := Layout.Board()
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()),
		color.RGBA{A: dimmerAlpha}, false)

	mid := b.Min.Y + b.Dy()/2
	center := func(s string) int { return b.Min.X + (b.Dx()-len(s)*glyphWidth)/2 }
	ebitenutil.DebugPrintAt(screen, title, center(title), mid-lineHeight)
	ebitenutil.DebugPrintAt(screen, hint, center(hint), mid+lineHeight/2)
}
