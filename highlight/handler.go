package highlight

import "github.com/ethaniccc/float32-cube/cube"

// Handler receives the events emitted by a Tracker. All methods are called synchronously from
// within Tracker.Resolve, in the order the changes happen.
type Handler interface {
	// HandleHighlight is called when a solid block becomes the highlighted target.
	HandleHighlight(pos cube.Pos)
	// HandleRemove is called with the previous target when the highlight moves away from it or
	// disappears entirely.
	HandleRemove(pos cube.Pos)
	// HandleHighlightAdjacent is called when an empty block next to the target becomes the
	// highlighted placement cell.
	HandleHighlightAdjacent(pos cube.Pos)
	// HandleRemoveAdjacent is called with the previous placement cell when it moves or is cleared.
	HandleRemoveAdjacent(pos cube.Pos)
	// HandleSelect is called whenever the end of an in-progress selection moves.
	HandleSelect(sel Selection)
	// HandleDeselect is called once when a selection ends.
	HandleDeselect(sel Selection)
}

// NopHandler implements Handler without doing anything. It may be embedded to implement only part
// of the interface.
type NopHandler struct{}

func (NopHandler) HandleHighlight(cube.Pos)         {}
func (NopHandler) HandleRemove(cube.Pos)            {}
func (NopHandler) HandleHighlightAdjacent(cube.Pos) {}
func (NopHandler) HandleRemoveAdjacent(cube.Pos)    {}
func (NopHandler) HandleSelect(Selection)           {}
func (NopHandler) HandleDeselect(Selection)         {}
