package ebitenui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/loop"
)

// Game implements ebiten.Game: every tick runs one scheduler frame.
type Game struct {
	Scheduler *loop.Scheduler
	View      *View
	// Debug, when set, hosts the Dear ImGui overlay around each frame.
	Debug *debugui_ebiten.ImguiBackend
	// Step is the frame time passed to the scheduler. Zero means one ebiten tick.
	Step time.Duration
	// Done, when closed, ends the game at the next update.
	Done <-chan struct{}
}

func (g *Game) step() time.Duration {
	if g.Step > 0 {
		return g.Step
	}
	return time.Second / time.Duration(ebiten.TPS())
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	select {
	case <-g.Done:
		return ebiten.Termination
	default:
	}

	if g.Debug != nil {
		g.Debug.BeginFrame()
	}

	g.Scheduler.Once(g.step())

	if g.Debug != nil {
		g.Debug.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.View.Draw(screen)

	if g.Debug != nil {
		g.Debug.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Debug != nil {
		g.Debug.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.View.Size()
}

// Run opens a window sized for the layout and blocks until it closes. With a
// debug backend the backend owns the window.
func Run(g *Game, title string) error {
	if g.Debug == nil {
		w, h := g.View.Size()
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(title)
	}
	return ebiten.RunGame(g)
}
