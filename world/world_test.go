package world

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/worker"
)

func TestChunkPosOfNegative(t *testing.T) {
	tests := []struct {
		pos  cube.Pos
		want ChunkPos
	}{
		{cube.Pos{0, 0, 0}, ChunkPos{0, 0, 0}},
		{cube.Pos{15, 16, 31}, ChunkPos{0, 1, 1}},
		{cube.Pos{-1, -16, -17}, ChunkPos{-1, -1, -2}},
	}
	for _, tt := range tests {
		if got := ChunkPosOf(tt.pos); got != tt.want {
			t.Fatalf("ChunkPosOf(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestSetBlockRoundTrip(t *testing.T) {
	w := New(EmptyGenerator, nil)
	positions := []cube.Pos{{0, 0, 0}, {-1, -1, -1}, {17, -33, 5}}
	for _, pos := range positions {
		w.SetBlock(pos, Brick)
	}
	for _, pos := range positions {
		if b := w.Block(pos); b != Brick {
			t.Fatalf("expected brick at %v, got %v", pos, b)
		}
	}
	if w.Block(cube.Pos{1, 0, 0}) != Air {
		t.Fatalf("expected untouched neighbour to stay air")
	}
}

func TestRoomGenerator(t *testing.T) {
	gen := RoomGenerator(16)
	if gen(cube.Pos{3, 5, 7}) != Air {
		t.Fatalf("expected room interior to be air")
	}
	if gen(cube.Pos{3, 0, 7}) != Stone {
		t.Fatalf("expected floor to be stone")
	}
	if gen(cube.Pos{0, 5, 7}) != Grass {
		t.Fatalf("expected wall to be grass")
	}
	if gen(cube.Pos{-3, -5, -7}) != Air {
		t.Fatalf("expected mirrored interior to be air")
	}
}

func TestNoiseGeneratorDeterministic(t *testing.T) {
	a, b := NoiseGenerator(42, 8, 6), NoiseGenerator(42, 8, 6)
	for x := -20; x < 20; x += 3 {
		for z := -20; z < 20; z += 5 {
			for y := 0; y < 16; y++ {
				pos := cube.Pos{x, y, z}
				if a(pos) != b(pos) {
					t.Fatalf("generators with the same seed disagree at %v", pos)
				}
			}
			if a(cube.Pos{x, 7, z}) != Stone && a(cube.Pos{x, 7, z}) != Dirt {
				t.Fatalf("expected solid ground below the base height at %v,%v", x, z)
			}
			if a(cube.Pos{x, 15, z}) != Air {
				t.Fatalf("expected air above base+amplitude at %v,%v", x, z)
			}
		}
	}
}

func TestWorldRaycast(t *testing.T) {
	w := New(FlatGenerator(4), nil)
	hit, ok := w.Raycast(mgl32.Vec3{0.5, 8.5, 0.5}, mgl32.Vec3{0, -1, 0}, 10)
	if !ok {
		t.Fatalf("expected the ray to hit the ground")
	}
	if hit.Voxel != (cube.Pos{0, 3, 0}) || hit.Adjacent != (cube.Pos{0, 4, 0}) {
		t.Fatalf("unexpected hit %+v", hit)
	}

	w.SetBlock(cube.Pos{0, 3, 0}, Air)
	hit, ok = w.Raycast(mgl32.Vec3{0.5, 8.5, 0.5}, mgl32.Vec3{0, -1, 0}, 10)
	if !ok || hit.Voxel != (cube.Pos{0, 2, 0}) {
		t.Fatalf("expected the ray to pass the removed block, got %+v", hit)
	}
}

func TestPregenerateAndClean(t *testing.T) {
	pool := worker.New(2)
	defer pool.Close()

	w := New(FlatGenerator(4), nil)
	w.Pregenerate(pool, cube.Pos{}, 1)
	if n := w.ChunkCount(); n != 27 {
		t.Fatalf("expected 27 chunks, got %d", n)
	}

	w.SetBlock(cube.Pos{-16, 0, 0}, Brick)
	w.CleanChunks(0, cube.Pos{})
	if n := w.ChunkCount(); n != 2 {
		t.Fatalf("expected the centre and the modified chunk to survive, got %d chunks", n)
	}
	if w.Block(cube.Pos{-16, 0, 0}) != Brick {
		t.Fatalf("expected the modified block to survive cleaning")
	}
}

func TestCleanChunksWithoutMoving(t *testing.T) {
	w := New(FlatGenerator(4), nil)
	w.Block(cube.Pos{})
	w.CleanChunks(1, cube.Pos{})

	// A far away read while the centre stays in the same chunk.
	w.Block(cube.Pos{160, 0, 0})
	if n := w.ChunkCount(); n != 2 {
		t.Fatalf("expected 2 chunks before cleaning, got %d", n)
	}
	w.CleanChunks(1, cube.Pos{3, 2, 1})
	if n := w.ChunkCount(); n != 1 {
		t.Fatalf("expected the far chunk to be evicted, got %d chunks", n)
	}
}

func TestNearbyBoxes(t *testing.T) {
	w := New(FlatGenerator(1), nil)
	boxes := w.NearbyBoxes(nil, cube.Box(0.2, 0.5, 0.2, 1.4, 1.5, 0.8))
	if len(boxes) != 2 {
		t.Fatalf("expected the two ground blocks below the box, got %d", len(boxes))
	}
	for _, bb := range boxes {
		if bb.Max().Y() != 1 || bb.Min().Y() != 0 {
			t.Fatalf("unexpected ground box %v", bb)
		}
	}

	reused := w.NearbyBoxes(boxes[:0], cube.Box(0.2, 2, 0.2, 0.8, 3, 0.8))
	if len(reused) != 0 {
		t.Fatalf("expected no boxes in the air, got %d", len(reused))
	}
}
