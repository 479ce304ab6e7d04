package world

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/zeebo/xxh3"
)

// Generator returns the block that should initially occupy a position.
type Generator func(pos cube.Pos) Block

// EmptyGenerator generates nothing but air.
func EmptyGenerator(cube.Pos) Block {
	return Air
}

// RoomGenerator generates a lattice of hollow rooms with an edge length of roomSize. Floors are made
// of stone and walls of grass.
func RoomGenerator(roomSize int) Generator {
	if roomSize <= 0 {
		roomSize = 16
	}
	return func(pos cube.Pos) Block {
		i, j, k := absInt(pos[0]), absInt(pos[1]), absInt(pos[2])
		if (i%roomSize)*(j%roomSize)*(k%roomSize) > 0 {
			return Air
		}
		if j%roomSize != 0 || k%roomSize == 0 {
			return Grass
		}
		return Stone
	}
}

// FlatGenerator generates solid ground below the height passed, topped with a layer of grass.
func FlatGenerator(height int) Generator {
	return func(pos cube.Pos) Block {
		switch {
		case pos[1] >= height:
			return Air
		case pos[1] == height-1:
			return Grass
		case pos[1] >= height-4:
			return Dirt
		}
		return Stone
	}
}

// noiseCell is the lattice spacing used to smooth column heights.
const noiseCell = 8

// NoiseGenerator generates rolling terrain. Column heights lie in [base, base+amplitude] and are
// derived from a seeded hash lattice, so the same seed always produces the same terrain.
func NoiseGenerator(seed uint64, base, amplitude int) Generator {
	return func(pos cube.Pos) Block {
		h := base + int(float32(amplitude)*columnNoise(seed, pos[0], pos[2]))
		switch {
		case pos[1] > h:
			return Air
		case pos[1] == h:
			return Grass
		case pos[1] >= h-3:
			return Dirt
		}
		return Stone
	}
}

// columnNoise returns a smoothly varying value in [0, 1] for the column at x, z.
func columnNoise(seed uint64, x, z int) float32 {
	cx, cz := floorDiv(x, noiseCell), floorDiv(z, noiseCell)
	fx := float32(x-cx*noiseCell) / noiseCell
	fz := float32(z-cz*noiseCell) / noiseCell

	v00, v10 := latticeValue(seed, cx, cz), latticeValue(seed, cx+1, cz)
	v01, v11 := latticeValue(seed, cx, cz+1), latticeValue(seed, cx+1, cz+1)

	sx, sz := smoothstep(fx), smoothstep(fz)
	top := v00 + (v10-v00)*sx
	bottom := v01 + (v11-v01)*sx
	return math32.Min(1, math32.Max(0, top+(bottom-top)*sz))
}

func latticeValue(seed uint64, x, z int) float32 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(int64(x)))
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(z)))
	return float32(xxh3.HashSeed(b[:], seed)>>40) / float32(1<<24)
}

func smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
