package input

import (
	"fmt"
	"iter"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/game"
	"github.com/oomph-ac/leapvox/utils"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/atomic"
)

const (
	DefaultJumpPrecision    = float32(25)
	DefaultForwardThreshold = float32(0.1)
	DefaultHistorySize      = 16
	DefaultMaxSpeed         = float32(4.3)
)

// Opts holds the options of an Aggregator. Zero values are replaced by their defaults, except for
// the aim spread where zero aims straight along the camera.
type Opts struct {
	// JumpPrecision is the upward palm travel in millimetres between two frames that triggers a
	// jump. The jump is released once the palm travels half of it downwards.
	JumpPrecision float32
	// ForwardThreshold is how far, as a fraction of the interaction box depth, a palm must be pushed
	// forward before the player starts walking.
	ForwardThreshold float32
	// DisableGestures turns off gesture recognition on the device.
	DisableGestures bool
	// AimSpreadYaw and AimSpreadPitch are the angles in degrees covered by the crosshair from one
	// edge of the interaction box to the other.
	AimSpreadYaw, AimSpreadPitch float32
	// HistorySize is the amount of frames kept.
	HistorySize int
	// MaxSpeed is the forward speed with the palm pushed all the way in, in blocks per second.
	MaxSpeed float32
}

// State is the set of intents currently held by the aggregator.
type State struct {
	Forward, Jumping, Grabbing bool
}

// Aggregator turns the frames of a tracking device into movement, jump and grab intents.
type Aggregator struct {
	device   Device
	controls Controls
	grabber  Grabber
	targets  TargetProvider
	opts     Opts

	handlerMu deadlock.RWMutex
	handler   Handler

	connected atomic.Bool
	focused   atomic.Bool

	history   *utils.CircularQueue[Frame]
	state     State
	crosshair mgl32.Vec2
}

// New connects to the device passed and returns an aggregator reading from it.
func New(device Device, controls Controls, grabber Grabber, targets TargetProvider, opts Opts) (*Aggregator, error) {
	if opts.JumpPrecision <= 0 {
		opts.JumpPrecision = DefaultJumpPrecision
	}
	if opts.ForwardThreshold <= 0 || opts.ForwardThreshold >= 1 {
		opts.ForwardThreshold = DefaultForwardThreshold
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	if opts.MaxSpeed <= 0 {
		opts.MaxSpeed = DefaultMaxSpeed
	}

	a := &Aggregator{
		device:    device,
		controls:  controls,
		grabber:   grabber,
		targets:   targets,
		opts:      opts,
		handler:   NopHandler{},
		history:   utils.NewCircularQueue[Frame](opts.HistorySize),
		crosshair: mgl32.Vec2{0.5, 0.5},
	}
	if err := device.Connect(DeviceOpts{EnableGestures: !opts.DisableGestures, OnEvent: a.HandleDeviceEvent}); err != nil {
		return nil, fmt.Errorf("connect device: %w", err)
	}
	return a, nil
}

// Handle sets the handler of the aggregator. A nil handler is replaced by NopHandler.
func (a *Aggregator) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	a.handlerMu.Lock()
	a.handler = h
	a.handlerMu.Unlock()
}

func (a *Aggregator) loadHandler() Handler {
	a.handlerMu.RLock()
	defer a.handlerMu.RUnlock()
	return a.handler
}

// HandleDeviceEvent records a device lifecycle event and forwards it to the handler.
func (a *Aggregator) HandleDeviceEvent(e DeviceEvent) {
	switch e {
	case EventConnect, EventDeviceConnected:
		a.connected.Store(true)
	case EventDisconnect, EventDeviceDisconnected:
		a.connected.Store(false)
		a.focused.Store(false)
	case EventFocus:
		a.focused.Store(true)
	case EventBlur:
		a.focused.Store(false)
	}
	a.loadHandler().HandleDeviceEvent(e)
}

// Connected returns true while the device is connected.
func (a *Aggregator) Connected() bool {
	return a.connected.Load()
}

// Focused returns true while the application holds the device's focus.
func (a *Aggregator) Focused() bool {
	return a.focused.Load()
}

// Tick reads the latest frame from the device, passes it to the handler and updates the intents
// derived from it.
func (a *Aggregator) Tick(dt time.Duration) {
	frame := a.device.Frame()
	agg := Aggregate{
		Hands:      append([]Hand(nil), frame.Hands...),
		Fingers:    append([]Pointable(nil), frame.Fingers...),
		Pointables: append([]Pointable(nil), frame.Pointables...),
	}
	if !a.opts.DisableGestures {
		agg.Gestures = append([]Gesture(nil), frame.Gestures...)
	}
	a.loadHandler().HandleTick(dt, frame, agg)

	prev, hasPrev := a.history.Last()
	for _, hand := range agg.Hands {
		pos := frame.InteractionBox.Normalize(hand.PalmPosition)
		a.crosshair = mgl32.Vec2{(pos[0] + 1) / 2, 1 - pos[1]/2}
		a.updateForward(pos[2])
	}
	if len(agg.Hands) > 0 && hasPrev && prev.Valid {
		a.updateJump(frame.Translation(prev)[1])
	}
	a.updateGrab(agg)

	// The queue always has a non-zero capacity.
	_ = a.history.Append(frame)
}

func (a *Aggregator) updateForward(z float32) {
	if z > -a.opts.ForwardThreshold {
		if a.state.Forward {
			a.state.Forward = false
			a.controls.SetForward(false)
		}
		return
	}
	if !a.state.Forward {
		a.state.Forward = true
		a.controls.SetForward(true)
	}
	push := mgl32.Clamp(-(z+a.opts.ForwardThreshold)/(1-a.opts.ForwardThreshold), 0, 1)
	a.controls.SetSpeed(a.opts.MaxSpeed * math32.Sin(math32.Pi/2*push))
}

func (a *Aggregator) updateJump(dy float32) {
	if !a.state.Jumping && dy >= a.opts.JumpPrecision {
		a.state.Jumping = true
		a.controls.SetJump(true)
	} else if a.state.Jumping && dy <= -a.opts.JumpPrecision/2 {
		a.state.Jumping = false
		a.controls.SetJump(false)
	}
}

func (a *Aggregator) updateGrab(agg Aggregate) {
	if a.state.Grabbing {
		if len(agg.Fingers) >= 4 {
			a.state.Grabbing = false
		}
		return
	}
	if len(agg.Fingers) > 1 || len(agg.Hands) == 0 {
		return
	}
	if target, ok := a.targets.Target(); ok {
		a.state.Grabbing = true
		a.grabber.Grab(target)
	}
}

// State returns the intents currently held.
func (a *Aggregator) State() State {
	return a.state
}

// Crosshair returns the aim point on screen, with (0, 0) the top left and (1, 1) the bottom right
// corner. It is centred until a hand is seen.
func (a *Aggregator) Crosshair() mgl32.Vec2 {
	return a.crosshair
}

// AimDirection returns the direction to cast the highlight ray in for a camera with the yaw and
// pitch passed, offset by the crosshair.
func (a *Aggregator) AimDirection(yaw, pitch float32) mgl32.Vec3 {
	yaw += (a.crosshair[0] - 0.5) * a.opts.AimSpreadYaw
	pitch += (a.crosshair[1] - 0.5) * a.opts.AimSpreadPitch
	return game.DirectionVector(yaw, mgl32.Clamp(pitch, -90, 90))
}

// History returns the frames read, oldest first.
func (a *Aggregator) History() iter.Seq[Frame] {
	return a.history.Iter()
}

// Close disconnects from the device.
func (a *Aggregator) Close() error {
	return a.device.Close()
}
