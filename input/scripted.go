package input

import (
	"github.com/oomph-ac/leapvox/oerror"
	"go.uber.org/atomic"
)

// ScriptedDevice is a Device that produces frames from a function instead of hardware. It is used
// for demos and tests.
type ScriptedDevice struct {
	script func(id uint64) Frame

	id        atomic.Uint64
	connected atomic.Bool
	gestures  atomic.Bool
	opts      DeviceOpts
}

// NewScriptedDevice returns a device that calls script with an increasing frame ID every time a
// frame is requested.
func NewScriptedDevice(script func(id uint64) Frame) *ScriptedDevice {
	return &ScriptedDevice{script: script}
}

// Connect ...
func (d *ScriptedDevice) Connect(opts DeviceOpts) error {
	if !d.connected.CompareAndSwap(false, true) {
		return oerror.New("scripted device: already connected")
	}
	d.opts = opts
	d.gestures.Store(opts.EnableGestures)
	d.emit(EventReady)
	d.emit(EventConnect)
	d.emit(EventDeviceConnected)
	d.emit(EventFocus)
	return nil
}

// Frame ...
func (d *ScriptedDevice) Frame() Frame {
	if !d.connected.Load() {
		return Frame{}
	}
	f := d.script(d.id.Inc())
	if !d.gestures.Load() {
		f.Gestures = nil
	}
	return f
}

// Close ...
func (d *ScriptedDevice) Close() error {
	if !d.connected.CompareAndSwap(true, false) {
		return nil
	}
	d.emit(EventBlur)
	d.emit(EventDeviceDisconnected)
	d.emit(EventDisconnect)
	return nil
}

func (d *ScriptedDevice) emit(e DeviceEvent) {
	if d.opts.OnEvent != nil {
		d.opts.OnEvent(e)
	}
}
