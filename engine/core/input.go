package core

// Input keeps the latest key, pointer and scroll state fed by events.
type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
	mouseDown      bool
	pressedEdge    bool
	scrollX        float64
	scrollY        float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button == 0 {
			if e.Down && !in.mouseDown {
				in.pressedEdge = true
			}
			in.mouseDown = e.Down
		}
	case EventScroll:
		in.scrollX += e.Xoff
		in.scrollY += e.Yoff
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
func (in *Input) MouseDown() bool           { return in.mouseDown }

// MousePressed reports a rising edge of the primary button since the last
// EndFrame.
func (in *Input) MousePressed() bool { return in.pressedEdge }

// Scroll returns the scroll delta accumulated since the last EndFrame.
func (in *Input) Scroll() (float64, float64) { return in.scrollX, in.scrollY }

// EndFrame clears per-frame edges and deltas.
func (in *Input) EndFrame() {
	in.pressedEdge = false
	in.scrollX, in.scrollY = 0, 0
}
