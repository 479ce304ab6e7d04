package input

import (
	"testing"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

type recordingControls struct {
	writes []string
	speed  float32
}

func (c *recordingControls) SetForward(forward bool) {
	if forward {
		c.writes = append(c.writes, "forward")
	} else {
		c.writes = append(c.writes, "stop")
	}
}

func (c *recordingControls) SetJump(jump bool) {
	if jump {
		c.writes = append(c.writes, "jump")
	} else {
		c.writes = append(c.writes, "land")
	}
}

func (c *recordingControls) SetSpeed(speed float32) {
	c.speed = speed
}

type fixedTarget struct {
	pos     cube.Pos
	ok      bool
	grabbed []cube.Pos
}

func (f *fixedTarget) Target() (cube.Pos, bool) { return f.pos, f.ok }
func (f *fixedTarget) Grab(pos cube.Pos)         { f.grabbed = append(f.grabbed, pos) }

type recordingHandler struct {
	NopHandler
	events []DeviceEvent
	ticks  int
	last   Aggregate
}

func (h *recordingHandler) HandleDeviceEvent(e DeviceEvent) { h.events = append(h.events, e) }

func (h *recordingHandler) HandleTick(_ time.Duration, _ Frame, agg Aggregate) {
	h.ticks++
	h.last = agg
}

// frameQueue replays frames in order, repeating the last one once exhausted.
type frameQueue struct {
	frames []Frame
}

func (q *frameQueue) next(uint64) Frame {
	f := q.frames[0]
	if len(q.frames) > 1 {
		q.frames = q.frames[1:]
	}
	return f
}

var box = InteractionBox{Width: 200, Height: 200, Depth: 200}

func handAt(x, y, z float32) Frame {
	return Frame{
		Valid:          true,
		Hands:          []Hand{{ID: 1, PalmPosition: mgl32.Vec3{x, y, z}}},
		InteractionBox: box,
	}
}

func withFingers(f Frame, n int) Frame {
	for i := 0; i < n; i++ {
		f.Fingers = append(f.Fingers, Pointable{ID: 10 + i, HandID: 1})
	}
	return f
}

func newTestAggregator(t *testing.T, frames ...Frame) (*Aggregator, *recordingControls, *fixedTarget) {
	t.Helper()
	q := &frameQueue{frames: frames}
	c, target := &recordingControls{}, &fixedTarget{}
	a, err := New(NewScriptedDevice(q.next), c, target, target, Opts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a, c, target
}

func TestForwardIntent(t *testing.T) {
	a, c, _ := newTestAggregator(t,
		handAt(0, 100, 0),
		handAt(0, 100, -100),
		handAt(0, 100, -200),
		handAt(0, 100, 0),
	)
	a.Tick(time.Millisecond)
	if len(c.writes) != 0 {
		t.Fatalf("expected no intents with a resting hand, got %v", c.writes)
	}

	a.Tick(time.Millisecond)
	if !a.State().Forward || len(c.writes) != 1 || c.writes[0] != "forward" {
		t.Fatalf("expected to walk forward, got %v", c.writes)
	}
	half := c.speed
	if half <= 0 || half >= DefaultMaxSpeed {
		t.Fatalf("expected a partial speed, got %v", half)
	}

	a.Tick(time.Millisecond)
	if !mgl32.FloatEqualThreshold(c.speed, DefaultMaxSpeed, 1e-5) {
		t.Fatalf("expected full speed with the palm pushed in, got %v", c.speed)
	}
	if len(c.writes) != 1 {
		t.Fatalf("expected forward to be written once, got %v", c.writes)
	}

	a.Tick(time.Millisecond)
	if a.State().Forward || c.writes[len(c.writes)-1] != "stop" {
		t.Fatalf("expected to stop, got %v", c.writes)
	}
}

func TestJumpIntent(t *testing.T) {
	a, c, _ := newTestAggregator(t,
		handAt(0, 100, 0),
		handAt(0, 130, 0),
		handAt(0, 125, 0),
		handAt(0, 110, 0),
	)
	a.Tick(time.Millisecond)
	a.Tick(time.Millisecond)
	if !a.State().Jumping {
		t.Fatalf("expected a jump after moving the palm up by 30mm")
	}
	a.Tick(time.Millisecond)
	if !a.State().Jumping {
		t.Fatalf("expected the jump to be held after a small drop")
	}
	a.Tick(time.Millisecond)
	if a.State().Jumping {
		t.Fatalf("expected the jump to be released after a 15mm drop")
	}
	if len(c.writes) != 2 || c.writes[0] != "jump" || c.writes[1] != "land" {
		t.Fatalf("unexpected writes %v", c.writes)
	}
}

func TestGrabIntent(t *testing.T) {
	a, _, target := newTestAggregator(t,
		withFingers(handAt(0, 100, 0), 5),
		withFingers(handAt(0, 100, 0), 1),
		withFingers(handAt(0, 100, 0), 0),
		withFingers(handAt(0, 100, 0), 4),
		withFingers(handAt(0, 100, 0), 1),
	)
	target.pos = cube.Pos{3, 4, 5}

	a.Tick(time.Millisecond)
	a.Tick(time.Millisecond)
	if len(target.grabbed) != 0 {
		t.Fatalf("expected no grab without a target")
	}

	target.ok = true
	a.Tick(time.Millisecond)
	if len(target.grabbed) != 1 || target.grabbed[0] != (cube.Pos{3, 4, 5}) {
		t.Fatalf("expected a single grab of the target, got %v", target.grabbed)
	}
	a.Tick(time.Millisecond)
	if a.State().Grabbing {
		t.Fatalf("expected an open hand to release the grab")
	}
	a.Tick(time.Millisecond)
	if len(target.grabbed) != 2 {
		t.Fatalf("expected a second grab after releasing, got %v", target.grabbed)
	}
}

func TestNoGrabWithoutHands(t *testing.T) {
	a, _, target := newTestAggregator(t, Frame{Valid: true, InteractionBox: box})
	target.ok = true
	a.Tick(time.Millisecond)
	if len(target.grabbed) != 0 {
		t.Fatalf("expected no grab without a hand in view")
	}
}

func TestDeviceEventsAreForwarded(t *testing.T) {
	q := &frameQueue{frames: []Frame{handAt(0, 0, 0)}}
	dev := NewScriptedDevice(q.next)
	a, err := New(dev, &recordingControls{}, &fixedTarget{}, &fixedTarget{}, Opts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Connected() || !a.Focused() {
		t.Fatalf("expected a connected and focused device")
	}

	h := &recordingHandler{}
	a.Handle(h)
	if err := a.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []DeviceEvent{EventBlur, EventDeviceDisconnected, EventDisconnect}
	if len(h.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, h.events)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, h.events)
		}
	}
	if a.Connected() || a.Focused() {
		t.Fatalf("expected the device to be disconnected")
	}
	if _, err := New(dev, &recordingControls{}, &fixedTarget{}, &fixedTarget{}, Opts{}); err != nil {
		t.Fatalf("expected a closed device to reconnect, got %v", err)
	}
}

func TestTickAggregatesFrame(t *testing.T) {
	f := withFingers(handAt(0, 0, 0), 2)
	f.Pointables = f.Fingers
	f.Gestures = []Gesture{{ID: 1, Type: GestureSwipe, State: GestureStart}}

	q := &frameQueue{frames: []Frame{f}}
	h := &recordingHandler{}
	a, err := New(NewScriptedDevice(q.next), &recordingControls{}, &fixedTarget{}, &fixedTarget{}, Opts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Handle(h)
	a.Tick(16 * time.Millisecond)
	if h.ticks != 1 {
		t.Fatalf("expected one tick, got %d", h.ticks)
	}
	if len(h.last.Hands) != 1 || len(h.last.Fingers) != 2 || len(h.last.Pointables) != 2 || len(h.last.Gestures) != 1 {
		t.Fatalf("unexpected aggregate %+v", h.last)
	}

	q = &frameQueue{frames: []Frame{f}}
	a, err = New(NewScriptedDevice(q.next), &recordingControls{}, &fixedTarget{}, &fixedTarget{}, Opts{DisableGestures: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Handle(h)
	a.Tick(16 * time.Millisecond)
	if len(h.last.Gestures) != 0 {
		t.Fatalf("expected gestures to be dropped, got %v", h.last.Gestures)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	q := &frameQueue{frames: []Frame{handAt(0, 0, 0)}}
	a, err := New(NewScriptedDevice(q.next), &recordingControls{}, &fixedTarget{}, &fixedTarget{}, Opts{HistorySize: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		a.Tick(time.Millisecond)
	}
	n := 0
	for range a.History() {
		n++
	}
	if n != 3 {
		t.Fatalf("expected 3 frames in history, got %d", n)
	}
}

func TestAimDirection(t *testing.T) {
	a, _, _ := newTestAggregator(t, handAt(0, 200, 0))
	if dir := a.AimDirection(0, 0); !dir.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("expected the camera vector before any hand is seen, got %v", dir)
	}

	a.opts.AimSpreadPitch = 60
	a.Tick(time.Millisecond)
	if c := a.Crosshair(); !mgl32.FloatEqualThreshold(c[0], 0.5, 1e-5) || !mgl32.FloatEqualThreshold(c[1], 0.5, 1e-5) {
		t.Fatalf("expected a centred crosshair, got %v", c)
	}

	a.crosshair = mgl32.Vec2{0.5, 1}
	if dir := a.AimDirection(0, 0); dir[1] >= 0 {
		t.Fatalf("expected a crosshair at the bottom to aim down, got %v", dir)
	}
}
