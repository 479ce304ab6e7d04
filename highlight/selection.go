package highlight

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Selection is a box of blocks spanned by two anchors. Start is where the selection began and End
// follows the aim.
type Selection struct {
	Start, End cube.Pos
}

// Scale returns the size of the selection in blocks on every axis.
func (s Selection) Scale() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(absInt(s.End[0]-s.Start[0]) + 1),
		float32(absInt(s.End[1]-s.Start[1]) + 1),
		float32(absInt(s.End[2]-s.Start[2]) + 1),
	}
}

// Centre returns the centre of the selection box.
func (s Selection) Centre() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(s.Start[0]) + 0.5 + float32(s.End[0]-s.Start[0])/2,
		float32(s.Start[1]) + 0.5 + float32(s.End[1]-s.Start[1])/2,
		float32(s.Start[2]) + 0.5 + float32(s.End[2]-s.Start[2])/2,
	}
}

// BBox returns the world space box covered by the selection.
func (s Selection) BBox() cube.BBox {
	return cube.Box(
		float32(min(s.Start[0], s.End[0])), float32(min(s.Start[1], s.End[1])), float32(min(s.Start[2], s.End[2])),
		float32(max(s.Start[0], s.End[0])+1), float32(max(s.Start[1], s.End[1])+1), float32(max(s.Start[2], s.End[2])+1),
	)
}

// Positions returns every block position inside the selection.
func (s Selection) Positions() []cube.Pos {
	lo := cube.Pos{min(s.Start[0], s.End[0]), min(s.Start[1], s.End[1]), min(s.Start[2], s.End[2])}
	hi := cube.Pos{max(s.Start[0], s.End[0]), max(s.Start[1], s.End[1]), max(s.Start[2], s.End[2])}

	positions := make([]cube.Pos, 0, (hi[0]-lo[0]+1)*(hi[1]-lo[1]+1)*(hi[2]-lo[2]+1))
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				positions = append(positions, cube.Pos{x, y, z})
			}
		}
	}
	return positions
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
