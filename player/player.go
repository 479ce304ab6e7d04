package player

import (
	"fmt"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/game"
	"github.com/oomph-ac/leapvox/highlight"
	"github.com/oomph-ac/leapvox/input"
	"github.com/oomph-ac/leapvox/world"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// cleanInterval is the amount of ticks between two evictions of distant chunks.
const cleanInterval = 100

// Opts holds the options used to create a Player.
type Opts struct {
	// Position is the position of the player's feet.
	Position   mgl32.Vec3
	Yaw, Pitch float32

	Highlight highlight.Opts
	Input     input.Opts
	// Scene receives the cursor visual. It may be nil.
	Scene highlight.Scene
	// ChunkRadius is the radius in chunks around the player kept in memory.
	ChunkRadius int32
}

// Player binds a tracking device, a highlight tracker and a voxel world together.
type Player struct {
	log   *logrus.Logger
	world *world.World

	tracker    *highlight.Tracker
	aggregator *input.Aggregator

	chunkRadius int32

	// mu guards the camera and movement state, which may be changed from outside the tick loop.
	mu         deadlock.RWMutex
	yaw, pitch float32
	mov        movement

	alt, sel atomic.Bool

	grabTarget *cube.Pos

	hMutex deadlock.RWMutex
	h      Handler

	Debugger Debugger

	tick   atomic.Uint64
	closed atomic.Bool
}

// New creates a player in the world passed and connects to the device.
func New(log *logrus.Logger, w *world.World, device input.Device, opts Opts) (*Player, error) {
	p := &Player{
		log:         log,
		world:       w,
		chunkRadius: opts.ChunkRadius,
		yaw:         opts.Yaw,
		pitch:       opts.Pitch,
		mov:         movement{pos: opts.Position},
		h:           NopHandler{},
	}
	if p.chunkRadius <= 0 {
		p.chunkRadius = 4
	}

	p.tracker = highlight.New(w, opts.Scene, opts.Highlight)
	p.tracker.Subscribe(p)

	agg, err := input.New(device, p, p, p, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("create input aggregator: %w", err)
	}
	p.aggregator = agg
	agg.Handle(p)
	return p, nil
}

// Handle sets the handler of the player. A nil handler is replaced by NopHandler.
func (p *Player) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	p.hMutex.Lock()
	p.h = h
	p.hMutex.Unlock()
}

func (p *Player) handler() Handler {
	p.hMutex.RLock()
	defer p.hMutex.RUnlock()
	return p.h
}

// Log returns the logger of the player.
func (p *Player) Log() *logrus.Logger {
	return p.log
}

// World returns the world the player is in.
func (p *Player) World() *world.World {
	return p.world
}

// Tracker returns the highlight tracker of the player.
func (p *Player) Tracker() *highlight.Tracker {
	return p.tracker
}

// Aggregator returns the input aggregator of the player.
func (p *Player) Aggregator() *input.Aggregator {
	return p.aggregator
}

// Subscribe adds a handler for the highlight events of the player.
func (p *Player) Subscribe(h highlight.Handler) {
	p.tracker.Subscribe(h)
}

// Tick advances the player by dt: the device is read, the player moves, and the highlight is
// updated from the new camera.
func (p *Player) Tick(dt time.Duration) {
	if p.closed.Load() {
		return
	}
	tick := p.tick.Inc()

	p.aggregator.Tick(dt)

	p.mu.Lock()
	p.mov.tick(p.world, p.yaw, dt)
	eye, yaw, pitch := p.mov.eye(), p.yaw, p.pitch
	p.mu.Unlock()

	p.tracker.Tick(dt, highlight.Input{
		Origin:       eye,
		Direction:    p.aggregator.AimDirection(yaw, pitch),
		AdjacentMode: p.alt.Load(),
		SelectMode:   p.sel.Load(),
	})

	if tick%cleanInterval == 0 {
		p.world.CleanChunks(p.chunkRadius, cube.PosFromVec3(eye))
	}
	p.handler().HandleTick(p, dt)
}

// Ticks returns the amount of ticks processed.
func (p *Player) Ticks() uint64 {
	return p.tick.Load()
}

// Position returns the position of the player's feet.
func (p *Player) Position() mgl32.Vec3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mov.pos
}

// Eye returns the position the highlight ray is cast from.
func (p *Player) Eye() mgl32.Vec3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mov.eye()
}

// Teleport moves the player's feet to the position passed and stops any motion.
func (p *Player) Teleport(pos mgl32.Vec3) {
	p.mu.Lock()
	p.mov.pos, p.mov.vel = pos, mgl32.Vec3{}
	p.mu.Unlock()
}

// Rotation returns the yaw and pitch of the camera.
func (p *Player) Rotation() (yaw, pitch float32) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.yaw, p.pitch
}

// Rotate sets the yaw and pitch of the camera. The pitch is clamped to [-90, 90].
func (p *Player) Rotate(yaw, pitch float32) {
	p.mu.Lock()
	p.yaw, p.pitch = yaw, mgl32.Clamp(pitch, -90, 90)
	p.mu.Unlock()
}

// SetForward ...
func (p *Player) SetForward(forward bool) {
	p.mu.Lock()
	p.mov.forward = forward
	p.mu.Unlock()
	p.TryDebug("forward", debugParams("forward", forward), p.Debugger.LogInput)
}

// SetJump ...
func (p *Player) SetJump(jump bool) {
	p.mu.Lock()
	p.mov.jump = jump
	p.mu.Unlock()
	p.TryDebug("jump", debugParams("jump", jump), p.Debugger.LogInput)
}

// SetSpeed ...
func (p *Player) SetSpeed(speed float32) {
	p.mu.Lock()
	p.mov.speed = speed
	p.mu.Unlock()
}

// SetAlt sets whether the placement cell in front of the target is highlighted instead of the
// target itself.
func (p *Player) SetAlt(alt bool) {
	p.alt.Store(alt)
}

// SetSelect sets whether aiming spans a selection.
func (p *Player) SetSelect(sel bool) {
	p.sel.Store(sel)
}

// Target returns the block that would be grabbed.
func (p *Player) Target() (cube.Pos, bool) {
	if p.grabTarget == nil {
		return cube.Pos{}, false
	}
	return *p.grabTarget, true
}

// Grab removes the block at the position passed from the world.
func (p *Player) Grab(pos cube.Pos) {
	ctx := &Context{}
	p.handler().HandleGrab(ctx, pos)
	if ctx.Cancelled() {
		return
	}
	prev := p.world.Block(pos)
	p.world.SetBlock(pos, world.Air)
	p.TryDebug("grabbed block", debugParams("pos", pos, "block", prev), p.Debugger.LogHighlight)
}

// FillSelection sets every block of the current selection to b. It returns false if nothing is
// selected.
func (p *Player) FillSelection(b world.Block) bool {
	sel, ok := p.tracker.Selection()
	if !ok {
		return false
	}
	for _, pos := range sel.Positions() {
		p.world.SetBlock(pos, b)
	}
	return true
}

// Close disconnects the device. Ticks after closing are ignored.
func (p *Player) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.aggregator.Close()
}

// eyeHeight is the offset of the camera from the player's feet.
func eyeHeight() mgl32.Vec3 {
	return mgl32.Vec3{0, game.DefaultPlayerHeightOffset}
}
