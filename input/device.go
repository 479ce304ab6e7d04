package input

// DeviceEvent is a lifecycle notification of a tracking device.
type DeviceEvent uint8

const (
	// EventReady is sent once the device driver accepted the connection.
	EventReady DeviceEvent = iota
	EventConnect
	EventDisconnect
	// EventFocus and EventBlur are sent when the application gains or loses the device's focus.
	EventFocus
	EventBlur
	EventDeviceConnected
	EventDeviceDisconnected
)

func (e DeviceEvent) String() string {
	switch e {
	case EventReady:
		return "ready"
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventDeviceConnected:
		return "deviceConnected"
	case EventDeviceDisconnected:
		return "deviceDisconnected"
	}
	return "unknown"
}

// DeviceOpts is passed to a Device when connecting.
type DeviceOpts struct {
	// EnableGestures turns on gesture recognition.
	EnableGestures bool
	// OnEvent receives lifecycle events. It may be called from any goroutine.
	OnEvent func(DeviceEvent)
}

// Device is a motion-tracking controller.
type Device interface {
	// Connect starts tracking.
	Connect(opts DeviceOpts) error
	// Frame returns the most recent frame. It never blocks.
	Frame() Frame
	// Close stops tracking.
	Close() error
}
