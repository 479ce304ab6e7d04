package utils

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

type clipResult struct {
	penetration  float32
	clipped      mgl32.Vec3
	depenetrated mgl32.Vec3
}

// ClipCollide clips the velocity of the moving box so that it does not enter the stationary box. If
// the boxes already overlap and oneWay is false, the velocity is adjusted to push the moving box
// out along the axis of least penetration. The penetration depth is written to penetration if it
// is not nil.
func ClipCollide(stationary, moving cube.BBox, vel mgl32.Vec3, oneWay bool, penetration *float32) mgl32.Vec3 {
	result := clipCollide(stationary, moving, vel)
	if penetration != nil {
		*penetration = result.penetration
	}

	if oneWay {
		return result.clipped
	}
	return result.depenetrated
}

func clipCollide(stationary, moving cube.BBox, vel mgl32.Vec3) (result clipResult) {
	result.clipped = vel
	result.depenetrated = vel

	if HasZeroVolume(stationary) {
		return
	}

	var (
		depth, signed, normal [3]float32

		separating, axis int
	)
	minDepth := float32(math32.MaxFloat32 - 1)

	for i := 0; i < 3; i++ {
		below := moving.Max()[i] - stationary.Min()[i]
		above := stationary.Max()[i] - moving.Min()[i]
		if math32.Abs(below) <= 1e-7 {
			below = 0
		}
		if math32.Abs(above) <= 1e-7 {
			above = 0
		}

		switch b, a := math32.Max(0, below), math32.Max(0, above); {
		case b == 0:
			signed[i], normal[i] = below, -1
			separating++
			axis = i
		case a == 0:
			signed[i], normal[i] = above, 1
			separating++
			axis = i
		case b < a:
			depth[i], signed[i], normal[i] = b, b, -1
		default:
			depth[i], signed[i], normal[i] = a, a, 1
		}

		// Separated on two axes: the boxes can never touch with a single axis velocity.
		if separating > 1 {
			return
		}
		minDepth = math32.Min(minDepth, depth[i])
	}

	if separating == 0 {
		result.penetration = minDepth
		best := 0
		for i := 1; i < 3; i++ {
			if depth[i] < depth[best] {
				best = i
			}
		}

		want := depth[best] * normal[best]
		if want > 0 {
			result.depenetrated[best] = math32.Max(want, vel[best])
		} else {
			result.depenetrated[best] = math32.Min(want, vel[best])
		}
		return
	}

	if swept := signed[axis] - normal[axis]*vel[axis]; swept <= 0 {
		return
	}
	resolved := signed[axis] * normal[axis]
	result.clipped[axis] = resolved
	result.depenetrated[axis] = resolved
	return
}

// HasZeroVolume returns true if the box is a single point.
func HasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}
