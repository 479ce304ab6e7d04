package event

import (
	"bytes"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/leapvox/highlight"
	"github.com/oomph-ac/leapvox/utils"
)

// PositionEvent is a highlight, remove, highlight-adjacent or remove-adjacent event. Kind holds the
// event ID.
type PositionEvent struct {
	NopEvent

	Kind byte
	Pos  cube.Pos
}

func (ev PositionEvent) ID() byte {
	return ev.Kind
}

func (ev PositionEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writePos(buf, ev.Pos)
	})
}

// SelectionEvent is a highlight-select or, if Deselect is set, a highlight-deselect event.
type SelectionEvent struct {
	NopEvent

	Selection highlight.Selection
	Deselect  bool
}

func (ev SelectionEvent) ID() byte {
	if ev.Deselect {
		return EventIDDeselect
	}
	return EventIDSelect
}

func (ev SelectionEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writePos(buf, ev.Selection.Start)
		writePos(buf, ev.Selection.End)
	})
}

func writePos(buf *bytes.Buffer, pos cube.Pos) {
	utils.WriteLInt64(buf, int64(pos[0]))
	utils.WriteLInt64(buf, int64(pos[1]))
	utils.WriteLInt64(buf, int64(pos[2]))
}

func readPos(buf *bytes.Buffer) (cube.Pos, error) {
	b, err := next(buf, 8*3)
	if err != nil {
		return cube.Pos{}, err
	}
	return cube.Pos{int(utils.LInt64(b)), int(utils.LInt64(b[8:])), int(utils.LInt64(b[16:]))}, nil
}
