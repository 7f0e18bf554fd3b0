package ui

import (
	"fmt"
	"image"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

// Layout places the board and the sidebar in units of one cell. The graphical
// frontend uses pixels per cell, the terminal one character cells with
// CellWidth 2 so blocks look square.
type Layout struct {
	CellWidth  int
	CellHeight int
	Margin     int
	SidebarGap int
	// SidebarWidth is the sidebar width in cells.
	SidebarWidth int
}

// Board returns the rectangle covered by the playfield.
func (l Layout) Board() image.Rectangle {
	return image.Rect(l.Margin, l.Margin, l.Margin+tetris.Cols*l.CellWidth, l.Margin+tetris.Rows*l.CellHeight)
}

// Cell returns the top-left corner of board cell (x, y).
func (l Layout) Cell(x, y int) image.Point {
	b := l.Board()
	return image.Pt(b.Min.X+x*l.CellWidth, b.Min.Y+y*l.CellHeight)
}

// Sidebar returns the top-left corner of the sidebar.
func (l Layout) Sidebar() image.Point {
	b := l.Board()
	return image.Pt(b.Max.X+l.SidebarGap, b.Min.Y)
}

// Size returns the full extent of board, sidebar and margins.
func (l Layout) Size() image.Point {
	s := l.Sidebar()
	return image.Pt(s.X+l.SidebarWidth*l.CellWidth+l.Margin, l.Board().Max.Y+l.Margin)
}

// Line is one sidebar entry.
type Line struct {
	Label string
	Value string
}

// Sidebar lists the counters and the high-score table for state.
func Sidebar(state tetris.Snapshot, best []scores.Entry) []Line {
	lines := []Line{
		{"SCORE", fmt.Sprint(state.Score)},
		{"LEVEL", fmt.Sprint(state.Level)},
		{"LINES", fmt.Sprint(state.Lines)},
	}
	if len(best) == 0 {
		return lines
	}
	lines = append(lines, Line{Label: "BEST"})
	for i, e := range best {
		lines = append(lines, Line{Value: fmt.Sprintf("%d. %d", i+1, e.Score)})
	}
	return lines
}

// Overlay returns the banner drawn over the board, if any.
func Overlay(state tetris.Snapshot) (title, hint string, ok bool) {
	switch {
	case state.GameOver:
		return "GAME OVER", "Press R to restart", true
	case state.Paused:
		return "PAUSED", "Press P to resume", true
	}
	return "", "", false
}

// Controls describes the key bindings shared by both frontends.
var Controls = []Line{
	{"Left/Right", "move"},
	{"Down", "soft drop"},
	{"Up/X", "rotate"},
	{"Z", "rotate back"},
	{"Space", "hard drop"},
	{"P", "pause"},
	{"R", "restart"},
	{"Esc", "quit"},
}
