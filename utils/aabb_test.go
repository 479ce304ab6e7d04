package utils

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func TestClipCollideStopsOnFloor(t *testing.T) {
	floor := cube.Box(0, -1, 0, 1, 0, 1)
	player := cube.Box(0.2, 0.5, 0.2, 0.8, 2.3, 0.8)

	vel := ClipCollide(floor, player, mgl32.Vec3{0, -2, 0}, false, nil)
	if !mgl32.FloatEqualThreshold(vel[1], -0.5, 1e-5) {
		t.Fatalf("expected the fall to stop on the floor, got %v", vel)
	}
	if vel := ClipCollide(floor, player, mgl32.Vec3{0, -0.25, 0}, false, nil); !mgl32.FloatEqualThreshold(vel[1], -0.25, 1e-5) {
		t.Fatalf("expected a short fall to be left alone, got %v", vel)
	}
}

func TestClipCollideIgnoresDistantBoxes(t *testing.T) {
	wall := cube.Box(5, 0, 5, 6, 1, 6)
	player := cube.Box(0, 0, 0, 1, 1, 1)
	if vel := ClipCollide(wall, player, mgl32.Vec3{3, 0, 0}, false, nil); vel != (mgl32.Vec3{3, 0, 0}) {
		t.Fatalf("expected no clipping, got %v", vel)
	}
}

func TestClipCollidePushesOut(t *testing.T) {
	block := cube.Box(0, 0, 0, 1, 1, 1)
	player := cube.Box(0.1, 0.9, 0.1, 0.9, 2.7, 0.9)

	var depth float32
	vel := ClipCollide(block, player, mgl32.Vec3{}, false, &depth)
	if !mgl32.FloatEqualThreshold(depth, 0.1, 1e-5) || !mgl32.FloatEqualThreshold(vel[1], 0.1, 1e-5) {
		t.Fatalf("expected to be pushed up by 0.1, got %v (depth %v)", vel, depth)
	}
	if vel := ClipCollide(block, player, mgl32.Vec3{}, true, nil); vel != (mgl32.Vec3{}) {
		t.Fatalf("expected one way clipping to leave the velocity alone, got %v", vel)
	}
}
