// Package remote implements the transmitter side of the control link:
// it snapshots operator input into control packets and rate-limits them
// onto the radio according to the current mode.
package remote

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ystepanoff/carlink/protocol"
	"github.com/ystepanoff/carlink/transport"
)

// Config carries the tunables of the remote loop.
type Config struct {
	// Minimum interval between sends per mode group. Easy/Pro use
	// ActiveSendInterval (every tick), Idle/Debug use QuietSendInterval.
	ActiveSendInterval time.Duration
	QuietSendInterval  time.Duration

	// Sensitivities applied when the operator enters easy mode.
	EasyThrottleSensitivity int8
	EasySteerSensitivity    int8
}

// DefaultConfig returns the protocol-level defaults.
func DefaultConfig() Config {
	return Config{
		ActiveSendInterval:      protocol.ActiveSendInterval * time.Millisecond,
		QuietSendInterval:       protocol.QuietSendInterval * time.Millisecond,
		EasyThrottleSensitivity: protocol.EasyThrottleSensitivity,
		EasySteerSensitivity:    protocol.EasySteerSensitivity,
	}
}

// Remote owns all mutable transmitter-side state. It is single-threaded:
// one Tick per scheduler tick, no internal goroutines.
type Remote struct {
	driver   transport.Driver
	inputs   Inputs
	settings Settings
	cfg      Config
	clock    clock.Clock
	logger   *zap.SugaredLogger

	mode   protocol.Mode
	packet protocol.ControlPacket // staged snapshot; accessory latches persist across ticks

	lastButton [buttonCount]bool // raw levels for edge detection, true = released
	lastSend   time.Time
	sentAny    bool

	stats transport.Stats
}

// New returns a remote driving the given radio. A nil logger disables
// logging.
func New(driver transport.Driver, inputs Inputs, settings Settings, cfg Config, clk clock.Clock, logger *zap.SugaredLogger) *Remote {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	r := &Remote{
		driver:   driver,
		inputs:   inputs,
		settings: settings,
		cfg:      cfg,
		clock:    clk,
		logger:   logger.Named("remote"),
		mode:     protocol.ModeIdle,
		packet:   *protocol.NewControlPacket(),
	}
	for i := range r.lastButton {
		r.lastButton[i] = true // released
	}
	return r
}

// Mode returns the operator-selected mode.
func (r *Remote) Mode() protocol.Mode { return r.mode }

// Stats returns a snapshot of the link counters.
func (r *Remote) Stats() transport.Stats { return r.stats }

// Sensitivities returns the values currently carried in outgoing packets.
func (r *Remote) Sensitivities() (throttle, steer int8) {
	return r.packet.ThrottleSensitivity, r.packet.SteerSensitivity
}

// SelectMode applies an explicit operator menu choice. Entering easy mode
// loads the fixed beginner sensitivities; entering pro mode loads the
// persisted ones.
func (r *Remote) SelectMode(m protocol.Mode) error {
	if !m.ValidOnWire() {
		return protocol.ErrInvalidMode
	}
	switch m {
	case protocol.ModeEasy:
		r.packet.ThrottleSensitivity = r.cfg.EasyThrottleSensitivity
		r.packet.SteerSensitivity = r.cfg.EasySteerSensitivity
	case protocol.ModePro:
		throttle, steer, err := r.settings.ReadSensitivities()
		if err != nil {
			r.logger.Warnw("reading persisted sensitivities failed, using easy defaults", "error", err)
			throttle, steer = r.cfg.EasyThrottleSensitivity, r.cfg.EasySteerSensitivity
		}
		r.packet.ThrottleSensitivity = throttle
		r.packet.SteerSensitivity = steer
	}
	r.mode = m
	return nil
}

// Back returns to the idle menu from any mode.
func (r *Remote) Back() { r.mode = protocol.ModeIdle }

// SetSensitivities persists and applies new pro-mode sensitivities. The
// values are transmitted on every packet from now on.
func (r *Remote) SetSensitivities(throttle, steer int8) error {
	if throttle < protocol.SensitivityMin || throttle > protocol.SensitivityMax ||
		steer < protocol.SensitivityMin || steer > protocol.SensitivityMax {
		return protocol.ErrInvalidSetting
	}
	if err := r.settings.WriteSensitivities(throttle, steer); err != nil {
		r.logger.Warnw("persisting sensitivities failed", "error", err)
	}
	r.packet.ThrottleSensitivity = throttle
	r.packet.SteerSensitivity = steer
	return nil
}

// Tick runs one iteration of the transmitter loop: update accessory
// latches, and if the per-mode send interval has elapsed, snapshot the
// inputs and submit a packet. Reports whether a packet was submitted.
func (r *Remote) Tick() bool {
	if r.mode == protocol.ModeEasy || r.mode == protocol.ModePro {
		r.updateAccessories()
	}

	if r.sentAny && r.clock.Since(r.lastSend) < r.sendInterval() {
		return false
	}
	r.lastSend = r.clock.Now()
	r.sentAny = true

	p := r.packet
	p.Mode = r.mode
	p.RightX = r.readAxis(AxisRightX)
	p.RightY = r.readAxis(AxisRightY)
	p.LeftX = r.readAxis(AxisLeftX)
	p.LeftY = r.readAxis(AxisLeftY)
	p.RightJoystickButton = r.pressed(ButtonRightJoystick)
	p.LeftJoystickButton = r.pressed(ButtonLeftJoystick)
	p.AckButton = r.pressed(ButtonAck)
	p.BackButton = r.pressed(ButtonBack)
	p.AuxButton1 = r.pressed(ButtonAux1)
	p.AuxButton2 = r.pressed(ButtonAux2)

	if err := r.driver.TrySend(protocol.Encode(&p)); err != nil {
		// Fire-and-forget: the next tick re-samples and re-sends.
		r.logger.Debugw("send failed", "error", err)
		return false
	}
	r.stats.Sent++
	return true
}

func (r *Remote) sendInterval() time.Duration {
	if r.mode == protocol.ModeEasy || r.mode == protocol.ModePro {
		return r.cfg.ActiveSendInterval
	}
	return r.cfg.QuietSendInterval
}

// updateAccessories maps button state onto the accessory latches: honk
// and brake follow their buttons, the lights toggle on press edges.
func (r *Remote) updateAccessories() {
	r.packet.Honk = r.pressed(ButtonRightJoystick)
	r.packet.Brake = r.pressed(ButtonAux1)
	if r.pressEdge(ButtonLeftJoystick) {
		r.packet.HeadLight = !r.packet.HeadLight
	}
	if r.pressEdge(ButtonAux2) {
		r.packet.TailLight = !r.packet.TailLight
	}
}

func (r *Remote) readAxis(a Axis) int16 {
	if a >= axisCount {
		r.logger.Errorw("readAxis called with invalid axis", "axis", int(a))
		return protocol.AxisMid
	}
	return r.inputs.ReadAxis(a)
}

// pressed samples a button and inverts the active-low level so that
// pressed is true.
func (r *Remote) pressed(b Button) bool {
	return !r.rawButton(b)
}

// pressEdge reports a released-to-pressed transition since the previous
// sample of b.
func (r *Remote) pressEdge(b Button) bool {
	if b >= buttonCount {
		r.logger.Errorw("pressEdge called with invalid button", "button", int(b))
		return false
	}
	raw := r.rawButton(b)
	if raw == r.lastButton[b] {
		return false
	}
	r.lastButton[b] = raw
	return !raw // went low = pressed
}

func (r *Remote) rawButton(b Button) bool {
	if b >= buttonCount {
		r.logger.Errorw("rawButton called with invalid button", "button", int(b))
		return true // released
	}
	return r.inputs.ReadButton(b)
}
