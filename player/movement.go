package player

import (
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/game"
	"github.com/oomph-ac/leapvox/utils"
	"github.com/oomph-ac/leapvox/world"
)

// movement is the walking and jumping state of a player. Velocities are in blocks per second.
type movement struct {
	pos, vel mgl32.Vec3
	onGround bool

	forward, jump bool
	speed         float32
}

func (m *movement) eye() mgl32.Vec3 {
	return m.pos.Add(eyeHeight())
}

func (m *movement) box() cube.BBox {
	half := game.PlayerWidth / 2
	return cube.Box(-half, 0, -half, half, game.PlayerHeight, half).Translate(m.pos)
}

// tick moves the player for dt, walking towards yaw if forward is held.
func (m *movement) tick(w *world.World, yaw float32, dt time.Duration) {
	secs := float32(dt.Seconds())
	if secs <= 0 {
		return
	}

	m.vel[0], m.vel[2] = 0, 0
	if m.forward {
		dir := game.DirectionVector(yaw, 0)
		m.vel[0], m.vel[2] = dir[0]*m.speed, dir[2]*m.speed
	}
	if m.jump && m.onGround {
		m.vel[1] = game.DefaultJumpHeight * game.TicksPerSecond
	}
	m.vel[1] -= game.NormalGravity * game.TicksPerSecond * game.TicksPerSecond * secs
	m.vel[1] = max(m.vel[1], -game.TerminalVelocity*game.TicksPerSecond)

	want := m.vel.Mul(secs)
	moved := m.collide(w, want)
	m.pos = m.pos.Add(moved)

	m.onGround = want[1] < 0 && moved[1] != want[1]
	if moved[1] != want[1] {
		m.vel[1] = 0
	}
}

// collide clips the delta passed against the solid blocks around the player, resolving the
// vertical axis first.
func (m *movement) collide(w *world.World, delta mgl32.Vec3) mgl32.Vec3 {
	bb := m.box()
	list := utils.GetBBoxList()
	defer utils.PutBBoxList(list)
	*list = w.NearbyBoxes(*list, bb.Extend(delta))
	boxes := *list

	y := mgl32.Vec3{0, delta[1]}
	for i := len(boxes) - 1; i >= 0; i-- {
		y = utils.ClipCollide(boxes[i], bb, y, true, nil)
	}
	bb = bb.Translate(y)

	x := mgl32.Vec3{delta[0]}
	for i := len(boxes) - 1; i >= 0; i-- {
		x = utils.ClipCollide(boxes[i], bb, x, true, nil)
	}
	bb = bb.Translate(x)

	z := mgl32.Vec3{0, 0, delta[2]}
	for i := len(boxes) - 1; i >= 0; i-- {
		z = utils.ClipCollide(boxes[i], bb, z, true, nil)
	}
	return mgl32.Vec3{x[0], y[1], z[2]}
}
