package protocol

// Mode is the operating mode shared by both nodes. The remote owns its
// mode (operator menu choice); the vehicle derives its effective mode
// from the last validated packet, overridden to ModeNotConnected when
// the link is lost.
type Mode int8

const (
	ModeIdle Mode = iota
	ModeEasy
	ModePro
	ModeDebug

	// ModeNotConnected never appears on the wire. The vehicle assigns it
	// locally when liveness expires.
	ModeNotConnected
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeEasy:
		return "easy"
	case ModePro:
		return "pro"
	case ModeDebug:
		return "debug"
	case ModeNotConnected:
		return "not-connected"
	}
	return "unknown"
}

// ValidOnWire reports whether m may be carried in a transmitted packet.
func (m Mode) ValidOnWire() bool {
	return m >= ModeIdle && m <= ModeDebug
}
