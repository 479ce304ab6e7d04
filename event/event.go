package event

import (
	"bytes"

	"github.com/oomph-ac/leapvox/internal"
	"github.com/oomph-ac/leapvox/oerror"
	"github.com/oomph-ac/leapvox/utils"
)

// EventsVersion is written at the start of every recording.
const EventsVersion = "2"

type Event interface {
	ID() byte
	Encode() []byte

	// Time is the unix time in milliseconds the event was produced at.
	Time() int64
}

type NopEvent struct {
	EvTime int64
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

const (
	_ = iota
	EventIDTick
	EventIDHighlight
	EventIDRemove
	EventIDHighlightAdjacent
	EventIDRemoveAdjacent
	EventIDSelect
	EventIDDeselect
)

const headerSize = 1 + 8

func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	buf.WriteByte(ev.ID())
	utils.WriteLInt64(buf, ev.Time())
}

// encode runs the writer passed on a pooled buffer with the event header already written, and
// returns a copy of the result.
func encode(ev Event, write func(buf *bytes.Buffer)) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	WriteEventHeader(ev, buf)
	write(buf)
	return append([]byte(nil), buf.Bytes()...)
}

func DecodeEvents(dat []byte) ([]Event, error) {
	buf := bytes.NewBuffer(dat)

	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event %d: %v", len(events), err)
		}

		events = append(events, ev)
	}

	return events, nil
}

func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	header, err := next(buf, headerSize)
	if err != nil {
		return nil, err
	}
	id, t := header[0], utils.LInt64(header[1:])

	switch id {
	case EventIDTick:
		b, err := next(buf, 8+4)
		if err != nil {
			return nil, err
		}
		return TickEvent{NopEvent: NopEvent{EvTime: t}, Tick: utils.LInt64(b), DeltaMS: utils.LFloat32(b[8:])}, nil
	case EventIDHighlight, EventIDRemove, EventIDHighlightAdjacent, EventIDRemoveAdjacent:
		pos, err := readPos(buf)
		if err != nil {
			return nil, err
		}
		return PositionEvent{NopEvent: NopEvent{EvTime: t}, Kind: id, Pos: pos}, nil
	case EventIDSelect, EventIDDeselect:
		start, err := readPos(buf)
		if err != nil {
			return nil, err
		}
		end, err := readPos(buf)
		if err != nil {
			return nil, err
		}
		ev := SelectionEvent{NopEvent: NopEvent{EvTime: t}, Deselect: id == EventIDDeselect}
		ev.Selection.Start, ev.Selection.End = start, end
		return ev, nil
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
}

func next(buf *bytes.Buffer, n int) ([]byte, error) {
	if buf.Len() < n {
		return nil, oerror.New("unexpected end of data: need %d bytes, have %d", n, buf.Len())
	}
	return buf.Next(n), nil
}
