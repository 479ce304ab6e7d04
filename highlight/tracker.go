package highlight

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/leapvox/assert"
	"github.com/oomph-ac/leapvox/game"
)

const (
	// DefaultDistance is the default reach of the highlight ray in blocks.
	DefaultDistance = float32(10)
	// DefaultFrequency is the default minimum interval between two resolutions.
	DefaultFrequency = 100 * time.Millisecond
)

// Raycaster finds the block a ray strikes first.
type Raycaster interface {
	// Raycast returns the first solid block hit by the ray, or false if nothing is hit within
	// maxDistance or the ray cannot be cast.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (game.RaycastHit, bool)
}

// Opts holds the options of a Tracker. Zero values are replaced by their defaults, as are distances
// that are not finite.
type Opts struct {
	// Distance is the maximum distance a block may be highlighted from.
	Distance float32
	// Frequency is the minimum interval between two resolutions when driven by Tick. A negative
	// frequency resolves on every tick.
	Frequency time.Duration
	// Animate eases the cursor towards its target instead of moving it instantly.
	Animate bool
	// Ease is the easing used when Animate is true.
	Ease EaseFunc
	// Style is the style of the cursor visual.
	Style Style
}

// Input is the per-tick input of a Tracker.
type Input struct {
	// Origin and Direction describe the aiming ray, usually the camera position and look vector.
	Origin, Direction mgl32.Vec3
	// AdjacentMode highlights the empty block in front of the target instead of the target itself.
	AdjacentMode bool
	// SelectMode spans a selection from the block aimed at when it was enabled.
	SelectMode bool
}

// Tracker tracks the block a player is aiming at and maintains the cursor drawn around it.
type Tracker struct {
	raycaster Raycaster
	scene     Scene
	opts      Opts
	handlers  []Handler

	visual  *Visual
	inScene bool

	target   *cube.Pos
	adjacent *cube.Pos

	selection *Selection
	// selectAdjacent is the anchor basis of the current selection, fixed when it started.
	selectAdjacent bool

	positioned     bool
	targetPosition *mgl32.Vec3

	clock       time.Duration
	lastResolve time.Duration
	resolved    bool
}

// New creates a Tracker that casts rays through the raycaster passed and adds its cursor to the
// scene. A nil scene is replaced by NopScene.
func New(r Raycaster, scene Scene, opts Opts) *Tracker {
	if scene == nil {
		scene = NopScene{}
	}
	if opts.Distance <= 0 || math32.IsNaN(opts.Distance) || math32.IsInf(opts.Distance, 1) {
		opts.Distance = DefaultDistance
	}
	if opts.Frequency == 0 {
		opts.Frequency = DefaultFrequency
	}
	if opts.Ease == nil {
		opts.Ease = DefaultEasing.Step
	}
	if opts.Style == (Style{}) {
		opts.Style = DefaultStyle
	}
	return &Tracker{
		raycaster: r,
		scene:     scene,
		opts:      opts,
		visual:    &Visual{Scale: mgl32.Vec3{1, 1, 1}, Style: opts.Style},
	}
}

// Subscribe adds a handler that receives every event emitted from now on.
func (t *Tracker) Subscribe(h Handler) {
	t.handlers = append(t.handlers, h)
}

// Tick advances the tracker by dt. The cursor is eased on every tick, while the target is resolved
// at most once per Opts.Frequency: ticks inside that window only ease the cursor.
func (t *Tracker) Tick(dt time.Duration, in Input) {
	t.clock += dt
	if t.opts.Animate {
		t.animate(dt)
	}
	if t.resolved && t.clock-t.lastResolve < t.opts.Frequency {
		return
	}
	t.lastResolve, t.resolved = t.clock, true
	t.Resolve(in)
}

// Resolve casts the aiming ray and updates the highlight, the placement cell, the selection and the
// cursor target, emitting an event for every change.
func (t *Tracker) Resolve(in Input) {
	defer t.checkInvariants()

	hit, ok := t.raycaster.Raycast(in.Origin, in.Direction, t.opts.Distance)
	if !ok {
		if t.target != nil {
			t.scene.RemoveVisual(t.visual)
			t.inScene = false
			t.clearTarget()
		}
		t.clearAdjacent()
		if !in.SelectMode {
			t.deselect()
		}
		return
	}

	if t.target == nil || *t.target != hit.Voxel {
		if t.target != nil {
			// The highlight moved, the visual stays where it is.
			t.clearTarget()
		} else if !t.inScene {
			t.scene.AddVisual(t.visual)
			t.inScene = true
		}
		pos := hit.Voxel
		t.target = &pos
		for _, h := range t.handlers {
			h.HandleHighlight(pos)
		}
	}
	candidate := game.BlockCentre(*t.target)

	if in.AdjacentMode {
		if t.adjacent == nil || *t.adjacent != hit.Adjacent {
			t.clearAdjacent()
			pos := hit.Adjacent
			t.adjacent = &pos
			for _, h := range t.handlers {
				h.HandleHighlightAdjacent(pos)
			}
		}
		candidate = game.BlockCentre(*t.adjacent)
	} else {
		t.clearAdjacent()
	}

	if in.SelectMode {
		t.updateSelection(hit, candidate)
	} else {
		t.deselect()
		t.setTargetPosition(candidate)
	}

	if !t.opts.Animate || !t.positioned {
		t.visual.Position = *t.targetPosition
		t.positioned = true
	}
}

// updateSelection starts a selection or moves its end to the current anchor.
func (t *Tracker) updateSelection(hit game.RaycastHit, candidate mgl32.Vec3) {
	if t.selection == nil {
		t.selectAdjacent = t.adjacent != nil
		anchor := t.anchor(hit)
		t.selection = &Selection{Start: anchor, End: anchor}
		t.setTargetPosition(candidate)
		return
	}
	if t.targetPosition == nil {
		t.setTargetPosition(t.selection.Centre())
	}

	anchor := t.anchor(hit)
	if anchor == t.selection.End {
		return
	}
	t.selection.End = anchor
	sel := *t.selection
	for _, h := range t.handlers {
		h.HandleSelect(sel)
	}
	t.visual.Scale = sel.Scale()
	t.setTargetPosition(sel.Centre())
}

// anchor returns the block the selection end should follow for the hit passed.
func (t *Tracker) anchor(hit game.RaycastHit) cube.Pos {
	if t.selectAdjacent {
		return hit.Adjacent
	}
	return hit.Voxel
}

// deselect ends the current selection, if any, and resets the cursor to a single block.
func (t *Tracker) deselect() {
	if t.selection == nil {
		return
	}
	sel := *t.selection
	t.selection = nil
	t.selectAdjacent = false
	for _, h := range t.handlers {
		h.HandleDeselect(sel)
	}
	t.visual.Scale = mgl32.Vec3{1, 1, 1}
}

func (t *Tracker) clearTarget() {
	if t.target == nil {
		return
	}
	pos := *t.target
	t.target = nil
	for _, h := range t.handlers {
		h.HandleRemove(pos)
	}
}

func (t *Tracker) clearAdjacent() {
	if t.adjacent == nil {
		return
	}
	pos := *t.adjacent
	t.adjacent = nil
	for _, h := range t.handlers {
		h.HandleRemoveAdjacent(pos)
	}
}

func (t *Tracker) setTargetPosition(pos mgl32.Vec3) {
	t.targetPosition = &pos
}

// animate eases the cursor towards its target position.
func (t *Tracker) animate(dt time.Duration) {
	if !t.positioned || t.targetPosition == nil {
		return
	}
	t.visual.Position = t.opts.Ease(t.visual.Position, *t.targetPosition, float32(dt)/float32(time.Millisecond))
}

func (t *Tracker) checkInvariants() {
	assert.IsTrue(t.adjacent == nil || t.target != nil, "highlight: adjacent %v set without a target", t.adjacent)
	assert.IsTrue(t.inScene == (t.target != nil), "highlight: visual in scene (%v) disagrees with target %v", t.inScene, t.target)
}

// Target returns the highlighted block. ok is false if nothing is highlighted.
func (t *Tracker) Target() (pos cube.Pos, ok bool) {
	if t.target == nil {
		return pos, false
	}
	return *t.target, true
}

// Adjacent returns the highlighted placement cell. ok is false outside of adjacent mode or if
// nothing is highlighted.
func (t *Tracker) Adjacent() (pos cube.Pos, ok bool) {
	if t.adjacent == nil {
		return pos, false
	}
	return *t.adjacent, true
}

// Selection returns the selection in progress, if any.
func (t *Tracker) Selection() (sel Selection, ok bool) {
	if t.selection == nil {
		return sel, false
	}
	return *t.selection, true
}

// Position returns the current position of the cursor. ok is false until a block was highlighted
// for the first time.
func (t *Tracker) Position() (mgl32.Vec3, bool) {
	return t.visual.Position, t.positioned
}

// TargetPosition returns the position the cursor is moving towards.
func (t *Tracker) TargetPosition() (pos mgl32.Vec3, ok bool) {
	if t.targetPosition == nil {
		return pos, false
	}
	return *t.targetPosition, true
}

// Scale returns the current scale of the cursor.
func (t *Tracker) Scale() mgl32.Vec3 {
	return t.visual.Scale
}

// Visual returns the cursor visual handle.
func (t *Tracker) Visual() *Visual {
	return t.visual
}
