package read

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tableflip.dev/viewer/pkg/cursor"
)

var bindings = map[cursor.Action][]ebiten.Key{
	cursor.Next:       {ebiten.KeyArrowRight, ebiten.KeyL, ebiten.KeyPageDown},
	cursor.Prev:       {ebiten.KeyArrowLeft, ebiten.KeyH, ebiten.KeyPageUp},
	cursor.ScrollDown: {ebiten.KeyArrowDown, ebiten.KeyJ, ebiten.KeySpace},
	cursor.ScrollUp:   {ebiten.KeyArrowUp, ebiten.KeyK},
	cursor.PanLeft:    {ebiten.KeyA},
	cursor.PanRight:   {ebiten.KeyD},
	cursor.ZoomIn:     {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	cursor.ZoomOut:    {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	cursor.Reset:      {ebiten.KeyDigit0, ebiten.KeyNumpad0},
	cursor.Quit:       {ebiten.KeyQ, ebiten.KeyEscape},
}

// Held keys repeat for these actions after a short delay, in ticks.
var repeating = map[cursor.Action]bool{
	cursor.ScrollDown: true,
	cursor.ScrollUp:   true,
	cursor.PanLeft:    true,
	cursor.PanRight:   true,
}

const (
	repeatDelay    = 15
	repeatInterval = 3
)

// keyboard answers cursor input queries from ebiten's key state. The mouse
// wheel scrolls too.
type keyboard struct{}

func (keyboard) Pressed(a cursor.Action) bool {
	switch a {
	case cursor.ScrollDown:
		if _, dy := ebiten.Wheel(); dy < 0 {
			return true
		}
	case cursor.ScrollUp:
		if _, dy := ebiten.Wheel(); dy > 0 {
			return true
		}
	}
	for _, k := range bindings[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
		if repeating[a] {
			if d := inpututil.KeyPressDuration(k); d > repeatDelay && d%repeatInterval == 0 {
				return true
			}
		}
	}
	return false
}
