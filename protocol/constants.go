package protocol

// Link contract constants. The remote and the vehicle are built and
// flashed independently; everything both nodes must agree on lives in
// this file.
const (
	// MaxPayloadSize is the radio transport record limit (nRF24L01 FIFO).
	MaxPayloadSize = 32

	// PacketSize is the on-air size of an encoded ControlPacket:
	// 4 axes x 2 bytes, 3 signed bytes, 10 button bytes.
	PacketSize = 21

	// Joystick axis domain (10-bit ADC).
	AxisMin = 0
	AxisMax = 1023
	AxisMid = 512

	// Sensitivity domain, percent of actuator half travel.
	SensitivityMin = 0
	SensitivityMax = 100

	// Unset marks a numeric field that has not been sampled yet. It is a
	// permitted wire value; consumers treat it like sensitivity/axis zero.
	Unset = -1

	// Actuator travel in servo degrees. Both the steering servo and the
	// motor controller are driven as standard servos with neutral at mid
	// travel.
	ActuatorMin    = 0
	ActuatorMax    = 180
	ActuatorCenter = ActuatorMax / 2

	// Timeouts / intervals (milliseconds).
	LivenessTimeout    = 3000
	ActiveSendInterval = 0    // Easy/Pro: send every tick
	QuietSendInterval  = 2000 // Idle/Debug: save airtime and power

	// Sensitivities applied when the operator picks easy mode. Pro mode
	// uses persisted values instead.
	EasyThrottleSensitivity = 40
	EasySteerSensitivity    = 50
)

// 40-bit radio pipe addresses. The forward pipe carries control packets
// to the vehicle; the reverse pipe is reserved for telemetry and unused.
const (
	ForwardAddress uint64 = 0xA40F7CA5F7
	ReverseAddress uint64 = 0x32FA46D0E2
)
