package constants

import "time"

// Picker coordination
const (
	EventChannelBufferSize = 64 // Pending picker events before new ones are dropped

	// Fallbacks when the configuration leaves a duration unset
	DefaultCooldown        = 3 * time.Second // Quiet interval after a dispatch
	DefaultDispatchTimeout = 5 * time.Second // Bound on each move or click primitive

	ShutdownTimeout = 5 * time.Second // Wait for in-flight dispatches on exit
)

// Surface timing
const (
	WebSocketWriteTimeout = 10 * time.Second
	WebSocketPingInterval = 30 * time.Second
	WebSocketPongWait     = 60 * time.Second

	// Test timing delays
	TestEventuallyTimeout = 2 * time.Second
	TestEventuallyTick    = 5 * time.Millisecond
)
