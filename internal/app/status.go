package app

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keyhook/internal/config"
)

var (
	titleStyle  = tcell.StyleDefault.Bold(true)
	keysStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// draw renders the binding list and the status line.
func (app *Application) draw() {
	app.mu.RLock()
	term := app.terminal
	manager := app.keymaps
	status := app.status
	app.mu.RUnlock()
	if term == nil || !app.running.Load() {
		return
	}

	app.drawMu.Lock()
	defer app.drawMu.Unlock()

	screen := term.Screen()
	screen.Clear()
	width, height := screen.Size()

	row := 0
	if manager != nil {
		if km := manager.Current(); km != nil {
			drawText(screen, 0, row, width, titleStyle, "keymap: "+km.Name)
			row += 2
			for _, b := range km.Bindings {
				if row >= height-1 {
					break
				}
				keys := strings.Join(b.Keys, ", ")
				col := drawText(screen, 2, row, width, keysStyle, keys)
				desc := b.Description
				if desc == "" {
					desc = b.Action
				}
				drawText(screen, col+2, row, width, tcell.StyleDefault, desc)
				row++
			}
		}
	}

	if height > 0 {
		for x := 0; x < width; x++ {
			screen.SetContent(x, height-1, ' ', nil, statusStyle)
		}
		drawText(screen, 0, height-1, width, statusStyle, status)
	}
	screen.Show()
}

// drawText writes s at (x, y), clipped to width, one grapheme cluster
// per cell run. It returns the column after the text.
func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, s string) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

func durationOf(d config.Duration) time.Duration {
	return time.Duration(d)
}
