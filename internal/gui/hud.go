package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

func (a *App) DrawHUD() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

	a.drawText("galaxy", 30, 30, 24, ColSelect)
	if snap, ok := a.host.Current(); ok {
		a.drawText(fmt.Sprintf(":: %d particles  build %d", snap.Count, a.host.Builds()), 130, 34, 16, ColText)
	} else {
		a.drawText(":: empty", 130, 34, 16, ColError)
	}
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
	a.drawText("[ARROWS] TWEAK  [ENTER] COMMIT  [R] REGENERATE  [TAB] PANEL  [DRAG] ORBIT  [Q] QUIT", 120, h-40, 14, ColTextDim)

	if a.titleErr != nil {
		a.drawText("title unavailable: "+a.titleErr.Error(), 30, h-64, 14, ColTextDim)
	}
	if a.showPanel {
		a.drawPanel(w-300, 30)
	}
}

func (a *App) drawPanel(x, y int) {
	controls := a.panel.Controls()
	rl.DrawRectangle(int32(x-12), int32(y-12), 290, int32(len(controls)*26+70), ColPanel)

	for i, c := range controls {
		sel := i == a.panel.Cursor()
		value := a.panel.Value(i)
		if sel && a.editing {
			value = a.editBuf + "_"
		} else if sel && a.panel.Dirty() {
			value += " *"
		}
		col := ColText
		prefix := "  "
		if sel {
			col, prefix = ColSelect, "> "
		}
		a.drawText(fmt.Sprintf("%s%-16s", prefix, c.Name), x, y, 16, col)

		if sw, ok := a.panel.ColorOf(i); ok {
			r, g, b := sw.Clamped().RGB255()
			rl.DrawRectangle(int32(x+170), int32(y), 16, 16, rl.NewColor(r, g, b, 255))
			a.drawText(value, x+194, y, 16, col)
		} else {
			a.drawSlider(x+170, y+6, 100, a.panel.Ratio(i), sel)
			a.drawText(value, x+170, y+10, 10, col)
		}
		y += 26
	}

	if err := a.panel.Err(); err != nil {
		a.drawText(err.Error(), x, y+4, 12, ColError)
		y += 18
	}
	if a.inputErr != nil {
		a.drawText(a.inputErr.Error(), x, y+4, 12, ColError)
	}
}

func (a *App) drawSlider(x, y, width int, ratio float64, selected bool) {
	col := ColTextDim
	if selected {
		col = ColAccent
	}
	rl.DrawRectangle(int32(x), int32(y), int32(width), 2, ColTextDim)
	rl.DrawRectangle(int32(x), int32(y), int32(float64(width)*ratio), 2, col)
}
