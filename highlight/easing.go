package highlight

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EaseFunc moves a cursor position towards its target. dt is the time since the previous call in
// milliseconds.
type EaseFunc func(position, target mgl32.Vec3, dt float32) mgl32.Vec3

// Easing is exponential-decay interpolation: every second the position covers Rate times the
// remaining distance on each axis, and snaps to the target once every axis is within Tolerance.
type Easing struct {
	Rate      float32
	Tolerance float32
}

// DefaultEasing is the easing used when Opts.Ease is nil.
var DefaultEasing = Easing{Rate: 10, Tolerance: 0.05}

// Step returns the eased position after dt milliseconds.
func (e Easing) Step(position, target mgl32.Vec3, dt float32) mgl32.Vec3 {
	if dt <= 0 {
		return position
	}
	if math32.Abs(target[0]-position[0]) < e.Tolerance &&
		math32.Abs(target[1]-position[1]) < e.Tolerance &&
		math32.Abs(target[2]-position[2]) < e.Tolerance {
		// Close enough to snap and be done.
		return target
	}

	f := e.Rate * (dt / 1000)
	return mgl32.Vec3{
		position[0] + f*(target[0]-position[0]),
		position[1] + f*(target[1]-position[1]),
		position[2] + f*(target[2]-position[2]),
	}
}
