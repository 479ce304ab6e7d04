package world

import "github.com/ethaniccc/float32-cube/cube"

// ChunkSize is the edge length of a cubic chunk in blocks.
const ChunkSize = 16

const chunkBits = 4

// ChunkPos is the position of a chunk in chunk coordinates.
type ChunkPos [3]int32

// ChunkPosOf returns the position of the chunk that holds the block position passed.
func ChunkPosOf(pos cube.Pos) ChunkPos {
	return ChunkPos{int32(pos[0] >> chunkBits), int32(pos[1] >> chunkBits), int32(pos[2] >> chunkBits)}
}

// Origin returns the lowest block position held by the chunk.
func (p ChunkPos) Origin() cube.Pos {
	return cube.Pos{int(p[0]) << chunkBits, int(p[1]) << chunkBits, int(p[2]) << chunkBits}
}

// Chunk is a ChunkSize³ section of blocks.
type Chunk struct {
	blocks [ChunkSize * ChunkSize * ChunkSize]Block
	// dirty is true once a block in the chunk was changed after generation. Dirty chunks are never
	// evicted since they cannot be regenerated.
	dirty bool
}

// generateChunk fills a new chunk at the position passed using the generator.
func generateChunk(pos ChunkPos, gen Generator) *Chunk {
	c := &Chunk{}
	origin := pos.Origin()
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				c.blocks[index(x, y, z)] = gen(cube.Pos{origin[0] + x, origin[1] + y, origin[2] + z})
			}
		}
	}
	return c
}

// Block returns the block at the chunk-relative position passed.
func (c *Chunk) Block(x, y, z int) Block {
	return c.blocks[index(x, y, z)]
}

// SetBlock sets the block at the chunk-relative position passed and marks the chunk dirty.
func (c *Chunk) SetBlock(x, y, z int, b Block) {
	c.blocks[index(x, y, z)] = b
	c.dirty = true
}

// Dirty returns true if the chunk was modified after generation.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

func index(x, y, z int) int {
	return (x << (chunkBits * 2)) | (z << chunkBits) | y
}

// local returns the chunk-relative coordinates of a block position.
func local(pos cube.Pos) (int, int, int) {
	const mask = ChunkSize - 1
	return pos[0] & mask, pos[1] & mask, pos[2] & mask
}
