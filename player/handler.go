package player

import (
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/leapvox/highlight"
	"github.com/oomph-ac/leapvox/input"
)

// Context is passed to handlers for actions that may be cancelled.
type Context struct {
	cancel bool
}

// Cancel cancels the action.
func (ctx *Context) Cancel() {
	ctx.cancel = true
}

// Cancelled returns true if a handler cancelled the action.
func (ctx *Context) Cancelled() bool {
	return ctx.cancel
}

type Handler interface {
	// HandleGrab is called before the player grabs the block at pos out of the world.
	HandleGrab(ctx *Context, pos cube.Pos)
	// HandleTick is called at the end of every tick.
	HandleTick(p *Player, dt time.Duration)
}

// NopHandler implements Handler without doing anything.
type NopHandler struct{}

func (NopHandler) HandleGrab(*Context, cube.Pos)     {}
func (NopHandler) HandleTick(*Player, time.Duration) {}

var (
	_ highlight.Handler = (*Player)(nil)
	_ input.Handler     = (*Player)(nil)
	_ input.Controls    = (*Player)(nil)
)

// HandleHighlight ...
func (p *Player) HandleHighlight(pos cube.Pos) {
	p.grabTarget = &pos
	p.TryDebug("highlight", debugParams("pos", pos), p.Debugger.LogHighlight)
}

// HandleRemove ...
func (p *Player) HandleRemove(pos cube.Pos) {
	p.grabTarget = nil
	p.TryDebug("remove", debugParams("pos", pos), p.Debugger.LogHighlight)
}

// HandleHighlightAdjacent ...
func (p *Player) HandleHighlightAdjacent(pos cube.Pos) {
	p.TryDebug("highlight adjacent", debugParams("pos", pos), p.Debugger.LogHighlight)
}

// HandleRemoveAdjacent ...
func (p *Player) HandleRemoveAdjacent(pos cube.Pos) {
	p.TryDebug("remove adjacent", debugParams("pos", pos), p.Debugger.LogHighlight)
}

// HandleSelect ...
func (p *Player) HandleSelect(sel highlight.Selection) {
	p.TryDebug("select", debugParams("start", sel.Start, "end", sel.End, "scale", sel.Scale()), p.Debugger.LogHighlight)
}

// HandleDeselect ...
func (p *Player) HandleDeselect(sel highlight.Selection) {
	p.TryDebug("deselect", debugParams("start", sel.Start, "end", sel.End), p.Debugger.LogHighlight)
}

// HandleDeviceEvent logs the lifecycle of the tracking device.
func (p *Player) HandleDeviceEvent(e input.DeviceEvent) {
	switch e {
	case input.EventDisconnect, input.EventDeviceDisconnected:
		p.log.Warnf("tracking device: %s", e)
	default:
		p.log.Infof("tracking device: %s", e)
	}
}

// HandleTick applies the gestures of a frame: a finished key tap toggles adjacent mode, and a
// selection is spanned for as long as a circle gesture lasts.
func (p *Player) HandleTick(dt time.Duration, frame input.Frame, agg input.Aggregate) {
	for _, g := range agg.Gestures {
		switch g.Type {
		case input.GestureKeyTap:
			if g.State == input.GestureStop {
				p.alt.Toggle()
			}
		case input.GestureCircle:
			p.sel.Store(g.State != input.GestureStop)
		}
	}

	if !p.Debugger.LogFrames || len(agg.Hands) == 0 {
		return
	}
	p.TryDebug("frame", debugParams(
		"id", frame.ID,
		"dt", dt,
		"hands", len(agg.Hands),
		"fingers", len(agg.Fingers),
		"gestures", len(agg.Gestures),
		"crosshair", p.aggregator.Crosshair(),
	), true)
}
