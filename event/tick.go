package event

import (
	"bytes"

	"github.com/oomph-ac/leapvox/utils"
)

// TickEvent marks the start of a host loop tick.
type TickEvent struct {
	NopEvent

	Tick    int64
	DeltaMS float32
}

func (TickEvent) ID() byte {
	return EventIDTick
}

func (ev TickEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteLInt64(buf, ev.Tick)
		utils.WriteLFloat32(buf, ev.DeltaMS)
	})
}
