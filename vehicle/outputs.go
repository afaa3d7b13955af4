package vehicle

import "time"

// Outputs is the actuator collaborator on the vehicle. Implementations
// talk to the hardware (servo PWM, MOSFETs, a buzzer); the control loop
// only ever pushes values and never inspects results. Calls must not
// block.
type Outputs interface {
	// SetSteer positions the steering servo, protocol.ActuatorMin..Max.
	SetSteer(position int)
	// SetThrottle positions the motor controller, protocol.ActuatorMin..Max.
	SetThrottle(position int)

	SetHeadLight(on bool)
	SetTailLight(on bool)

	// PlayTone sounds the horn buzzer. The implementation owns the
	// timing; the loop never waits for a tone to finish.
	PlayTone(freqHz int, duration time.Duration)

	// Diagnostic lamps: receive pulses on every inbound record,
	// interference latches on when a record fails validation.
	SetReceiveLamp(on bool)
	SetInterferenceLamp(on bool)
}

// Horn and reconnect chime parameters.
const (
	HornFreqHz   = 220
	HornDuration = 500 * time.Millisecond

	ChimeLowFreqHz  = 220
	ChimeHighFreqHz = 880
	ChimeDuration   = 500 * time.Millisecond
)
