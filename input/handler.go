package input

import (
	"time"

	"github.com/ethaniccc/float32-cube/cube"
)

// Aggregate holds the features recognised in a single frame.
type Aggregate struct {
	Hands      []Hand
	Fingers    []Pointable
	Pointables []Pointable
	Gestures   []Gesture
}

// Handler handles everything the aggregator observes.
type Handler interface {
	// HandleDeviceEvent handles a lifecycle event of the device.
	HandleDeviceEvent(e DeviceEvent)
	// HandleTick is called on every tick with the frame read and the features recognised in it.
	HandleTick(dt time.Duration, frame Frame, agg Aggregate)
}

// NopHandler implements Handler without doing anything.
type NopHandler struct{}

func (NopHandler) HandleDeviceEvent(DeviceEvent)              {}
func (NopHandler) HandleTick(time.Duration, Frame, Aggregate) {}

// Controls is the movement surface of the game driven by the aggregator.
type Controls interface {
	SetForward(forward bool)
	SetJump(jump bool)
	// SetSpeed sets the forward speed in blocks per second.
	SetSpeed(speed float32)
}

// Grabber removes a block from the world when it is grabbed.
type Grabber interface {
	Grab(pos cube.Pos)
}

// TargetProvider returns the block currently aimed at.
type TargetProvider interface {
	Target() (cube.Pos, bool)
}
