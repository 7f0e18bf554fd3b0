package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

var durationType = reflect.TypeOf(time.Duration(0))

// EngineInspector shows the engine's counters, gravity timer, pieces and board.
type EngineInspector struct{}

func NewEngineInspector() *EngineInspector {
	return &EngineInspector{}
}

func (ei *EngineInspector) Render(frame *loop.UpdateFrame) {
	engine := frame.Engine
	state := engine.Snapshot()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 520), imgui.CondOnce)

	if !imgui.BeginV("Engine Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ei.renderFields(engine, state)

	imgui.Separator()
	var progress float32
	if state.DropInterval > 0 {
		progress = float32(engine.DropCounter()) / float32(state.DropInterval)
	}
	imgui.Text("Gravity")
	imgui.ProgressBarV(progress, imgui.NewVec2(-1, 0),
		fmt.Sprintf("%v / %v", engine.DropCounter().Round(time.Millisecond), state.DropInterval))

	if imgui.Button("Hard Drop") {
		loop.Apply(engine, loop.ActionHardDrop)
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		loop.Apply(engine, loop.ActionReset)
	}

	imgui.Separator()
	if imgui.TreeNodeStr("Active Piece") {
		renderPiece(state.Active)
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Next Piece") {
		renderPiece(state.Next)
		imgui.TreePop()
	}
	if imgui.TreeNodeStr(fmt.Sprintf("Board (%d occupied)###board", state.Board.Occupied())) {
		renderBoard(&state)
		imgui.TreePop()
	}

	imgui.End()
}

func (ei *EngineInspector) renderFields(engine *tetris.Engine, state tetris.Snapshot) {
	val := reflect.ValueOf(state)
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fv := val.Field(field.Index)

		switch {
		case field.Name == "Paused":
			paused := fv.Bool()
			if imgui.Checkbox("Paused", &paused) {
				loop.Apply(engine, loop.ActionTogglePause)
			}
		case field.Type == durationType:
			imgui.Text(fmt.Sprintf("%s: %v", field.Name, time.Duration(fv.Int())))
		case fv.Kind() == reflect.Bool && fv.Bool():
			imgui.TextColored(imgui.NewVec4(1.0, 0.25, 0.2, 1.0), field.Name)
		default:
			imgui.Text(fmt.Sprintf("%s: %v", field.Name, fv.Interface()))
		}
	}
}

func renderPiece(p tetris.Piece) {
	imgui.Text(fmt.Sprintf("Type: %s  at (%d, %d)", p.Type, p.X, p.Y))
	for _, row := range p.Shape {
		var sb strings.Builder
		for _, c := range row {
			if c == tetris.Empty {
				sb.WriteString(". ")
			} else {
				sb.WriteString("# ")
			}
		}
		imgui.Text(sb.String())
	}
}

func pieceVec4(t tetris.PieceType) imgui.Vec4 {
	c := ui.PieceColor(t)
	return imgui.NewVec4(float32(c.R)/255.0, float32(c.G)/255.0, float32(c.B)/255.0, 1.0)
}

func renderBoard(state *tetris.Snapshot) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("##board", tetris.Cols, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	for y := range tetris.Rows {
		imgui.TableNextRow()
		for x := range tetris.Cols {
			imgui.TableNextColumn()
			t, _ := state.Cell(x, y)
			switch {
			case t != tetris.Empty:
				imgui.PushStyleColorVec4(imgui.ColText, pieceVec4(t))
				imgui.Text(t.String())
				imgui.PopStyleColor()
			case state.Ghost(x, y):
				imgui.Text("+")
			default:
				imgui.Text(".")
			}
		}
	}

	imgui.EndTable()
}
