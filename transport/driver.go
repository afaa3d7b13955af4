package transport

// Driver is the boundary to the radio hardware. Delivery is best-effort,
// unordered and unacknowledged; records are at most
// protocol.MaxPayloadSize bytes.
//
// Implementations must be non-blocking: both control loops poll exactly
// once per tick and can never stall waiting on the radio.
type Driver interface {
	// TrySend hands one record to the radio, fire-and-forget. A failure
	// is not retried by callers; the next tick re-samples and re-sends.
	TrySend(data []byte) error

	// TryReceive returns the oldest pending record, if any.
	TryReceive() ([]byte, bool)

	Close() error
}

// Stats counts link traffic on one node. Single-writer: mutated only by
// the owning control loop, read by debug surfaces.
type Stats struct {
	Sent     uint64
	Received uint64
	Rejected uint64
}
