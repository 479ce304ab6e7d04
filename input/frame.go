package input

import "github.com/go-gl/mathgl/mgl32"

// Frame is a snapshot of everything the tracking device saw at one point in time. Positions are in
// millimetres relative to the centre of the device.
type Frame struct {
	ID    uint64
	Valid bool

	Hands      []Hand
	Fingers    []Pointable
	Pointables []Pointable
	Gestures   []Gesture

	InteractionBox InteractionBox
}

// Hand is a tracked hand.
type Hand struct {
	ID           int
	PalmPosition mgl32.Vec3
	PalmNormal   mgl32.Vec3
	Direction    mgl32.Vec3
}

// Pointable is a tracked finger or tool.
type Pointable struct {
	ID          int
	HandID      int
	TipPosition mgl32.Vec3
	Direction   mgl32.Vec3
	Length      float32
	Tool        bool
}

// GestureType is the kind of a recognised gesture.
type GestureType uint8

const (
	GestureCircle GestureType = iota
	GestureSwipe
	GestureKeyTap
	GestureScreenTap
)

// GestureState is the progress of a gesture spanning several frames.
type GestureState uint8

const (
	GestureStart GestureState = iota
	GestureUpdate
	GestureStop
)

// Gesture is a movement pattern recognised by the device.
type Gesture struct {
	ID      int
	Type    GestureType
	State   GestureState
	HandIDs []int
}

// InteractionBox is the box above the device in which hands are tracked reliably.
type InteractionBox struct {
	Width, Height, Depth float32
}

// Normalize divides the position passed by the size of the box on every axis. An empty box leaves
// the position unchanged.
func (b InteractionBox) Normalize(pos mgl32.Vec3) mgl32.Vec3 {
	if b.Width == 0 || b.Height == 0 || b.Depth == 0 {
		return pos
	}
	return mgl32.Vec3{pos[0] / b.Width, pos[1] / b.Height, pos[2] / b.Depth}
}

// Hand returns the hand with the ID passed.
func (f Frame) Hand(id int) (Hand, bool) {
	for _, h := range f.Hands {
		if h.ID == id {
			return h, true
		}
	}
	return Hand{}, false
}

// Translation returns the mean palm displacement between prev and f, over the hands tracked in
// both frames. It is zero if either frame is invalid or no hand is shared.
func (f Frame) Translation(prev Frame) mgl32.Vec3 {
	if !f.Valid || !prev.Valid {
		return mgl32.Vec3{}
	}

	var (
		sum     mgl32.Vec3
		matched int
	)
	for _, h := range f.Hands {
		old, ok := prev.Hand(h.ID)
		if !ok {
			continue
		}
		sum = sum.Add(h.PalmPosition.Sub(old.PalmPosition))
		matched++
	}
	if matched == 0 {
		return mgl32.Vec3{}
	}
	return sum.Mul(1 / float32(matched))
}
