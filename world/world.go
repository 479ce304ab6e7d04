package world

import (
	"log/slog"
	"sync"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/game"
	"github.com/oomph-ac/leapvox/worker"
	"github.com/sasha-s/go-deadlock"
)

var currentWorldId uint64

// World is an in-memory voxel world whose chunks are generated lazily the first time they are read.
type World struct {
	id uint64

	gen    Generator
	chunks map[ChunkPos]*Chunk

	logger *slog.Logger

	deadlock.RWMutex
}

// New creates a world that generates its chunks with the generator passed. A nil logger discards
// all log output.
func New(gen Generator, logger *slog.Logger) *World {
	if gen == nil {
		gen = EmptyGenerator
	}
	currentWorldId++
	return &World{
		id:     currentWorldId,
		gen:    gen,
		chunks: make(map[ChunkPos]*Chunk),
		logger: logger,
	}
}

// ID returns the identifier of the world.
func (w *World) ID() uint64 {
	return w.id
}

// chunk returns the chunk at the position passed, generating it if it doesn't exist yet.
func (w *World) chunk(pos ChunkPos) *Chunk {
	w.RLock()
	c, ok := w.chunks[pos]
	w.RUnlock()
	if ok {
		return c
	}

	// Generation happens outside the lock. Another goroutine may generate the same chunk
	// concurrently, in which case the first one stored wins.
	generated := generateChunk(pos, w.gen)

	w.Lock()
	defer w.Unlock()
	if c, ok := w.chunks[pos]; ok {
		return c
	}
	w.chunks[pos] = generated
	return generated
}

// Block returns the block at the position passed.
func (w *World) Block(pos cube.Pos) Block {
	c := w.chunk(ChunkPosOf(pos))
	x, y, z := local(pos)

	w.RLock()
	defer w.RUnlock()
	return c.Block(x, y, z)
}

// SetBlock sets the block at the position passed.
func (w *World) SetBlock(pos cube.Pos, b Block) {
	c := w.chunk(ChunkPosOf(pos))
	x, y, z := local(pos)

	w.Lock()
	defer w.Unlock()
	c.SetBlock(x, y, z, b)
}

// Solid returns true if the block at the position passed stops rays.
func (w *World) Solid(pos cube.Pos) bool {
	return w.Block(pos).Solid()
}

// Raycast casts a ray through the world and returns the first solid block it strikes.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (game.RaycastHit, bool) {
	return game.Raycast(origin, direction, maxDistance, w.Solid)
}

// NearbyBoxes appends the boxes of every solid block intersecting the box passed to dst.
func (w *World) NearbyBoxes(dst []cube.BBox, bb cube.BBox) []cube.BBox {
	lo, hi := cube.PosFromVec3(bb.Min()), cube.PosFromVec3(bb.Max())

	boxes := dst
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if w.Solid(cube.Pos{x, y, z}) {
					boxes = append(boxes, cube.Box(0, 0, 0, 1, 1, 1).Translate(mgl32.Vec3{float32(x), float32(y), float32(z)}))
				}
			}
		}
	}
	return boxes
}

// Pregenerate generates every chunk within radius chunks of the block position passed using the
// worker pool, and blocks until all of them are stored.
func (w *World) Pregenerate(pool *worker.Pool, centre cube.Pos, radius int32) {
	origin := ChunkPosOf(centre)

	var wg sync.WaitGroup
	queued := 0
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			for z := -radius; z <= radius; z++ {
				pos := ChunkPos{origin[0] + x, origin[1] + y, origin[2] + z}
				wg.Add(1)
				if !pool.Submit(func() {
					defer wg.Done()
					w.chunk(pos)
				}) {
					wg.Done()
					continue
				}
				queued++
			}
		}
	}
	wg.Wait()

	if w.logger != nil {
		w.logger.Info("pregenerated chunks", "world", w.id, "centre", centre, "radius", radius, "count", queued)
	}
}

// CleanChunks evicts every unmodified chunk further than radius chunks away from the block position
// passed. Evicted chunks are regenerated when they are read again.
func (w *World) CleanChunks(radius int32, centre cube.Pos) {
	pos := ChunkPosOf(centre)

	w.Lock()
	defer w.Unlock()

	removed := 0
	for chunkPos, c := range w.chunks {
		if c.Dirty() || chunkInRange(radius, chunkPos, pos) {
			continue
		}
		delete(w.chunks, chunkPos)
		removed++
	}
	if removed > 0 && w.logger != nil {
		w.logger.Debug("removed chunks out of range", "world", w.id, "removed", removed, "radius", radius, "pos", pos)
	}
}

// ChunkCount returns the amount of chunks currently held in memory.
func (w *World) ChunkCount() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.chunks)
}

// chunkInRange returns true if the chunk position is within the given radius of the chunk position.
func chunkInRange(radius int32, chunkPos, pos ChunkPos) bool {
	diffX, diffY, diffZ := pos[0]-chunkPos[0], pos[1]-chunkPos[1], pos[2]-chunkPos[2]
	dist := math32.Sqrt(float32(diffX*diffX) + float32(diffY*diffY) + float32(diffZ*diffZ))

	return int32(dist) <= radius
}
