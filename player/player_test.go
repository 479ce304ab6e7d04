package player

import (
	"io"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/highlight"
	"github.com/oomph-ac/leapvox/input"
	"github.com/oomph-ac/leapvox/world"
	"github.com/sirupsen/logrus"
)

type cancelGrab struct {
	NopHandler
	grabs int
}

func (h *cancelGrab) HandleGrab(ctx *Context, _ cube.Pos) {
	h.grabs++
	ctx.Cancel()
}

var (
	idle  = input.Frame{Valid: true, InteractionBox: input.InteractionBox{Width: 200, Height: 200, Depth: 200}}
	fist  = input.Frame{Valid: true, Hands: []input.Hand{{ID: 1, PalmPosition: mgl32.Vec3{0, 100, 0}}}, InteractionBox: idle.InteractionBox}
	aimed = cube.Pos{0, -1, 1}
)

// newTestPlayer creates a player standing on flat ground, looking down at the block in front of it.
// The device plays the frames passed in order and then repeats the last one.
func newTestPlayer(t *testing.T, frames ...input.Frame) *Player {
	t.Helper()
	if len(frames) == 0 {
		frames = []input.Frame{idle}
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	dev := input.NewScriptedDevice(func(uint64) input.Frame {
		f := frames[0]
		if len(frames) > 1 {
			frames = frames[1:]
		}
		return f
	})
	p, err := New(log, world.New(world.FlatGenerator(0), nil), dev, Opts{
		Position:  mgl32.Vec3{0.5, 0, 0.5},
		Pitch:     60,
		Highlight: highlight.Opts{Frequency: -1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPlayerHighlightsAimedBlock(t *testing.T) {
	p := newTestPlayer(t)
	p.Tick(50 * time.Millisecond)

	if pos, ok := p.Tracker().Target(); !ok || pos != aimed {
		t.Fatalf("expected to highlight %v, got %v (%v)", aimed, pos, ok)
	}
	if pos, ok := p.Target(); !ok || pos != aimed {
		t.Fatalf("expected the grab target to follow the highlight, got %v (%v)", pos, ok)
	}

	p.Rotate(0, -60)
	p.Tick(50 * time.Millisecond)
	if _, ok := p.Target(); ok {
		t.Fatalf("expected no grab target when looking at the sky")
	}
}

func TestPlayerGrabsTarget(t *testing.T) {
	p := newTestPlayer(t, idle, fist)
	p.Tick(50 * time.Millisecond)
	if p.World().Block(aimed) == world.Air {
		t.Fatalf("expected the aimed block to be solid before grabbing")
	}

	p.Tick(50 * time.Millisecond)
	if b := p.World().Block(aimed); b != world.Air {
		t.Fatalf("expected the grabbed block to be removed, got %v", b)
	}
	if !p.Aggregator().State().Grabbing {
		t.Fatalf("expected the grab to be held")
	}
}

func TestPlayerGrabCancelled(t *testing.T) {
	p := newTestPlayer(t, idle, fist)
	h := &cancelGrab{}
	p.Handle(h)

	p.Tick(50 * time.Millisecond)
	p.Tick(50 * time.Millisecond)
	if h.grabs != 1 {
		t.Fatalf("expected one grab attempt, got %d", h.grabs)
	}
	if p.World().Block(aimed) == world.Air {
		t.Fatalf("expected a cancelled grab to leave the block")
	}
}

func TestPlayerFallsOntoGround(t *testing.T) {
	p := newTestPlayer(t)
	p.Teleport(mgl32.Vec3{0.5, 3, 0.5})
	for i := 0; i < 40; i++ {
		p.Tick(50 * time.Millisecond)
	}
	if pos := p.Position(); math32.Abs(pos[1]) > 1e-4 {
		t.Fatalf("expected to land on the ground, got %v", pos)
	}
	if !p.mov.onGround {
		t.Fatalf("expected to be on the ground")
	}
}

func TestPlayerWalksForward(t *testing.T) {
	p := newTestPlayer(t)
	p.SetForward(true)
	p.SetSpeed(4)
	for i := 0; i < 20; i++ {
		p.Tick(50 * time.Millisecond)
	}
	pos := p.Position()
	if !mgl32.FloatEqualThreshold(pos[2], 4.5, 1e-3) || math32.Abs(pos[1]) > 1e-4 {
		t.Fatalf("expected to walk 4 blocks along +z on the ground, got %v", pos)
	}
}

func TestPlayerJumps(t *testing.T) {
	p := newTestPlayer(t)
	p.Tick(50 * time.Millisecond)
	p.SetJump(true)
	p.Tick(50 * time.Millisecond)
	if pos := p.Position(); pos[1] <= 0 {
		t.Fatalf("expected to leave the ground, got %v", pos)
	}
}

func TestPlayerFillSelection(t *testing.T) {
	p := newTestPlayer(t)
	if p.FillSelection(world.Brick) {
		t.Fatalf("expected nothing to fill without a selection")
	}

	p.SetSelect(true)
	p.Tick(50 * time.Millisecond)
	p.Rotate(0, 45)
	p.Tick(50 * time.Millisecond)

	sel, ok := p.Tracker().Selection()
	if !ok || sel.Start == sel.End {
		t.Fatalf("expected a selection spanning several blocks, got %+v (%v)", sel, ok)
	}
	if !p.FillSelection(world.Brick) {
		t.Fatalf("expected the selection to be filled")
	}
	for _, pos := range sel.Positions() {
		if p.World().Block(pos) != world.Brick {
			t.Fatalf("expected brick at %v", pos)
		}
	}
}

func TestPlayerClose(t *testing.T) {
	p := newTestPlayer(t)
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error closing twice: %v", err)
	}
	p.Tick(50 * time.Millisecond)
	if p.Ticks() != 0 {
		t.Fatalf("expected ticks after closing to be ignored")
	}
}

func TestPlayerGestureModes(t *testing.T) {
	tap := idle
	tap.Gestures = []input.Gesture{{Type: input.GestureKeyTap, State: input.GestureStop}}
	circling := idle
	circling.Gestures = []input.Gesture{{Type: input.GestureCircle, State: input.GestureUpdate}}
	stopped := idle
	stopped.Gestures = []input.Gesture{{Type: input.GestureCircle, State: input.GestureStop}}

	p := newTestPlayer(t, tap, circling, stopped)
	p.Tick(50 * time.Millisecond)
	if _, ok := p.Tracker().Adjacent(); !ok {
		t.Fatalf("expected a key tap to enable adjacent mode")
	}
	p.Tick(50 * time.Millisecond)
	if _, ok := p.Tracker().Selection(); !ok {
		t.Fatalf("expected a circle gesture to start a selection")
	}
	p.Tick(50 * time.Millisecond)
	if _, ok := p.Tracker().Selection(); ok {
		t.Fatalf("expected the selection to end with the gesture")
	}
}
