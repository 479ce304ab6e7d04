package game

// Movement constants, expressed per tick of a 20 tick per second simulation.
const (
	TicksPerSecond = 20

	DefaultJumpHeight       = float32(0.42)
	NormalGravity           = float32(0.08)
	NormalGravityMultiplier = float32(0.98)
	// TerminalVelocity is the fastest a body can fall, in blocks per tick.
	TerminalVelocity = float32(3.92)

	DefaultPlayerHeightOffset = float32(1.62)
	PlayerWidth               = float32(0.6)
	PlayerHeight              = float32(1.8)
)
