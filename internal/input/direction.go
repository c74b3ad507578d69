package input

import "github.com/vovakirdan/coquette/internal/core"

// Direction returns the movement direction held on the arrow keys or WASD,
// one unit per axis. Opposite keys cancel.
func (in *Inputter) Direction() core.Vec {
	var d core.Vec
	if in.Down(KeyLeftArrow) || in.Down(KeyA) {
		d.X--
	}
	if in.Down(KeyRightArrow) || in.Down(KeyD) {
		d.X++
	}
	if in.Down(KeyUpArrow) || in.Down(KeyW) {
		d.Y--
	}
	if in.Down(KeyDownArrow) || in.Down(KeyS) {
		d.Y++
	}
	return d
}
