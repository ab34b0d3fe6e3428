package cursor

// Action is a bindable input.
type Action int

const (
	Next Action = iota
	Prev
	ScrollDown
	ScrollUp
	PanLeft
	PanRight
	ZoomIn
	ZoomOut
	Reset
	Quit
)

var actionNames = map[Action]string{
	Next:       "next",
	Prev:       "prev",
	ScrollDown: "scroll-down",
	ScrollUp:   "scroll-up",
	PanLeft:    "pan-left",
	PanRight:   "pan-right",
	ZoomIn:     "zoom-in",
	ZoomOut:    "zoom-out",
	Reset:      "reset",
	Quit:       "quit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Input answers whether an action was triggered during the current tick.
type Input interface {
	Pressed(a Action) bool
}

// Step applies one tick of input. height is the stacked height of the
// current page before zoom. It reports whether the reader asked to quit, and
// returns persistence failures from navigation or scrolling.
func (c *Cursor) Step(in Input, height float64) (bool, error) {
	if in.Pressed(Quit) {
		return true, nil
	}

	switch {
	case in.Pressed(Next):
		_, err := c.Advance()
		return false, err
	case in.Pressed(Prev):
		_, err := c.Retreat()
		return false, err
	}

	if in.Pressed(Reset) {
		c.ResetView()
	}
	if in.Pressed(ZoomIn) {
		c.ZoomBy(c.opts.ZoomStep)
	}
	if in.Pressed(ZoomOut) {
		c.ZoomBy(1 / c.opts.ZoomStep)
	}
	if in.Pressed(PanLeft) {
		c.Pan(-c.opts.PanStep)
	}
	if in.Pressed(PanRight) {
		c.Pan(c.opts.PanStep)
	}

	var dy float64
	if in.Pressed(ScrollDown) {
		dy += c.opts.ScrollStep
	}
	if in.Pressed(ScrollUp) {
		dy -= c.opts.ScrollStep
	}
	return false, c.Scroll(dy, height)
}
