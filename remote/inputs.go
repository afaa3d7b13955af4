package remote

// Axis identifies one joystick axis on the handheld.
type Axis uint8

const (
	AxisRightX Axis = iota
	AxisRightY
	AxisLeftX
	AxisLeftY
	axisCount
)

func (a Axis) String() string {
	switch a {
	case AxisRightX:
		return "rightX"
	case AxisRightY:
		return "rightY"
	case AxisLeftX:
		return "leftX"
	case AxisLeftY:
		return "leftY"
	}
	return "unknown"
}

// Button identifies one push button on the handheld.
type Button uint8

const (
	ButtonRightJoystick Button = iota
	ButtonLeftJoystick
	ButtonAck
	ButtonBack
	ButtonAux1
	ButtonAux2
	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonRightJoystick:
		return "rightJoystick"
	case ButtonLeftJoystick:
		return "leftJoystick"
	case ButtonAck:
		return "ack"
	case ButtonBack:
		return "back"
	case ButtonAux1:
		return "aux1"
	case ButtonAux2:
		return "aux2"
	}
	return "unknown"
}

// Inputs is the raw I/O collaborator. Axis reads are 10-bit samples.
// Button reads follow the pull-up wiring of the handheld: true means
// released, false means pressed; the remote inverts at the sampling
// boundary so that pressed is always true on the wire.
type Inputs interface {
	ReadAxis(Axis) int16
	ReadButton(Button) bool
}

// Settings persists the pro-mode sensitivities across power cycles
// (EEPROM or equivalent). The remote never inspects failures beyond
// logging them.
type Settings interface {
	ReadSensitivities() (throttle, steer int8, err error)
	WriteSensitivities(throttle, steer int8) error
}
