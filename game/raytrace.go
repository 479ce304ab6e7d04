package game

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// RaycastHit is the result of a ray striking a solid voxel.
type RaycastHit struct {
	// Voxel is the solid block that was struck.
	Voxel cube.Pos
	// Adjacent is the empty block the ray passed through right before Voxel. This is where a
	// block would be placed against the face that was hit.
	Adjacent cube.Pos
	// Face is the face of Voxel the ray entered through.
	Face cube.Face
	// Distance is the distance from the ray origin to the point the ray entered Voxel.
	Distance float32
}

// BlocksBetween yields every block position the segment between start and end passes through,
// starting with the block containing start.
// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L67
func BlocksBetween(start, end mgl32.Vec3) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		delta := end.Sub(start)
		radius := delta.Len()
		if radius <= 0 || !FiniteVec3(start) || !FiniteVec3(delta) {
			yield(cube.PosFromVec3(start))
			return
		}

		traverse(start, delta.Mul(1/radius), radius, func(pos cube.Pos, _ cube.Face, _ float32) bool {
			return yield(pos)
		})
	}
}

// Raycast casts a ray from origin along direction for at most maxDistance blocks and returns the
// first block for which solid returns true. A ray that starts inside a solid block, has a zero or
// non-finite direction, or a non-positive or infinite distance never hits anything.
func Raycast(origin, direction mgl32.Vec3, maxDistance float32, solid func(cube.Pos) bool) (RaycastHit, bool) {
	if maxDistance <= 0 || math32.IsNaN(maxDistance) || math32.IsInf(maxDistance, 1) || !FiniteVec3(origin) || !FiniteVec3(direction) {
		return RaycastHit{}, false
	}
	length := direction.Len()
	if length == 0 || math32.IsInf(length, 0) {
		return RaycastHit{}, false
	}
	dir := direction.Mul(1 / length)

	var (
		hit      RaycastHit
		found    bool
		previous cube.Pos
		first    = true
	)
	traverse(origin, dir, maxDistance, func(pos cube.Pos, face cube.Face, t float32) bool {
		if solid(pos) {
			if first {
				// The origin is embedded in a solid block, there is no empty cell to report.
				return false
			}
			hit = RaycastHit{Voxel: pos, Adjacent: previous, Face: face, Distance: t}
			found = true
			return false
		}
		first = false
		previous = pos
		return true
	})
	return hit, found
}

// traverse walks the grid along a normalised direction, calling f with each block, the face it was
// entered through and the ray distance at which it was entered. The face is meaningless for the
// first block. Walking stops once f returns false or the next boundary lies beyond radius.
func traverse(start, dir mgl32.Vec3, radius float32, f func(pos cube.Pos, face cube.Face, t float32) bool) {
	stepX := int(spaceship(dir.X(), 0))
	stepY := int(spaceship(dir.Y(), 0))
	stepZ := int(spaceship(dir.Z(), 0))

	tMaxX := rayTraceDistanceToBoundary(start.X(), dir.X())
	tMaxY := rayTraceDistanceToBoundary(start.Y(), dir.Y())
	tMaxZ := rayTraceDistanceToBoundary(start.Z(), dir.Z())

	tDeltaX, tDeltaY, tDeltaZ := boundaryDelta(stepX, dir.X()), boundaryDelta(stepY, dir.Y()), boundaryDelta(stepZ, dir.Z())

	current := cube.PosFromVec3(start)
	face, t := cube.FaceDown, float32(0)
	for {
		if !f(current, face, t) {
			return
		}

		if tMaxX < tMaxY && tMaxX < tMaxZ {
			if tMaxX > radius {
				return
			}
			current[0] += stepX
			face, t = enteredFace(stepX, cube.FaceWest, cube.FaceEast), tMaxX
			tMaxX += tDeltaX
		} else if tMaxY < tMaxZ {
			if tMaxY > radius {
				return
			}
			current[1] += stepY
			face, t = enteredFace(stepY, cube.FaceDown, cube.FaceUp), tMaxY
			tMaxY += tDeltaY
		} else {
			if tMaxZ > radius {
				return
			}
			current[2] += stepZ
			face, t = enteredFace(stepZ, cube.FaceNorth, cube.FaceSouth), tMaxZ
			tMaxZ += tDeltaZ
		}
	}
}

// enteredFace returns the face a block is entered through when stepping in the given direction
// along an axis: stepping positively enters through the negative face and vice versa.
func enteredFace(step int, negative, positive cube.Face) cube.Face {
	if step > 0 {
		return negative
	}
	return positive
}

func boundaryDelta(step int, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}
	return float32(step) / ds
}

// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L134
func rayTraceDistanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}

	if ds < 0 {
		s = -s
		ds = -ds

		if math32.Floor(s) == s {
			return 0
		}
	}

	return (1 - (s - math32.Floor(s))) / ds
}
