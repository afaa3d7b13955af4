// Package vehicle implements the receiver side of the control link: it
// validates inbound packets, tracks link liveness, derives the effective
// mode and drives the actuators, failing safe to neutral whenever the
// link is lost.
package vehicle

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ystepanoff/carlink/protocol"
	"github.com/ystepanoff/carlink/transport"
)

// Config carries the tunables of the vehicle loop.
type Config struct {
	LivenessTimeout time.Duration
	BlinkPeriod     time.Duration
}

// DefaultConfig returns the protocol-level defaults.
func DefaultConfig() Config {
	return Config{
		LivenessTimeout: protocol.LivenessTimeout * time.Millisecond,
		BlinkPeriod:     1500 * time.Millisecond,
	}
}

// Vehicle owns all mutable receiver-side state: the last validated
// packet, the effective mode and the liveness monitor. Single-writer,
// single-threaded: one Tick per scheduler tick.
type Vehicle struct {
	driver  transport.Driver
	outputs Outputs
	monitor *ConnectionMonitor
	cfg     Config
	clock   clock.Clock
	logger  *zap.SugaredLogger

	state protocol.ControlPacket // last validated packet
	mode  protocol.Mode          // effective mode, ModeNotConnected until proven otherwise

	blinkOn   bool
	lastBlink time.Time
	blinkEver bool

	stats transport.Stats
}

// New returns a vehicle loop reading from the given radio. A nil logger
// disables logging.
func New(driver transport.Driver, outputs Outputs, cfg Config, clk clock.Clock, logger *zap.SugaredLogger) *Vehicle {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Vehicle{
		driver:  driver,
		outputs: outputs,
		monitor: NewConnectionMonitor(clk, cfg.LivenessTimeout),
		cfg:     cfg,
		clock:   clk,
		logger:  logger.Named("vehicle"),
		state:   *protocol.NewControlPacket(),
		mode:    protocol.ModeNotConnected,
	}
}

// Mode returns the effective mode.
func (v *Vehicle) Mode() protocol.Mode { return v.mode }

// State returns a copy of the last validated packet.
func (v *Vehicle) State() protocol.ControlPacket { return v.state }

// Stats returns a snapshot of the link counters.
func (v *Vehicle) Stats() transport.Stats { return v.stats }

// Tick runs one iteration of the receiver loop. Ordering within a tick
// is fixed: validation happens before state mutation happens before
// actuation; the inbound buffer is consulted exactly once.
func (v *Vehicle) Tick() {
	v.receive()

	if v.mode != protocol.ModeNotConnected && !v.monitor.Alive() {
		v.mode = protocol.ModeNotConnected
		v.logger.Infow("link lost, failing safe")
	}

	switch v.mode {
	case protocol.ModeNotConnected:
		// Fail-safe: neutral actuation, slow blink to signal the state.
		// Packets keep being accepted above so the link can recover.
		v.outputs.SetSteer(protocol.ActuatorCenter)
		v.outputs.SetThrottle(protocol.ActuatorCenter)
		v.blink()
	case protocol.ModeIdle:
		// Motor stopped, steering left where it was, accessories live.
		v.updateAccessories()
		v.outputs.SetThrottle(protocol.ActuatorCenter)
	case protocol.ModeEasy, protocol.ModePro:
		v.updateAccessories()
		v.actuate()
	case protocol.ModeDebug:
		// Diagnostic-only: liveness and state tracked, no actuation.
	}
}

// receive consults the radio once. A malformed record is discarded
// whole; a validated one replaces the authoritative state in a single
// assignment.
func (v *Vehicle) receive() {
	data, ok := v.driver.TryReceive()
	if !ok {
		return
	}
	v.stats.Received++
	v.outputs.SetReceiveLamp(true)
	defer v.outputs.SetReceiveLamp(false)

	p, err := protocol.Decode(data)
	if err == nil {
		err = protocol.Validate(p)
	}
	if err != nil {
		v.stats.Rejected++
		v.outputs.SetInterferenceLamp(true)
		v.logger.Debugw("rejected packet", "error", err)
		return
	}
	v.outputs.SetInterferenceLamp(false)

	v.monitor.RecordReceipt()
	if v.mode == protocol.ModeNotConnected {
		// One-shot reconnect signal, once per down-to-up transition.
		v.outputs.PlayTone(ChimeLowFreqHz, ChimeDuration)
		v.outputs.PlayTone(ChimeHighFreqHz, ChimeDuration)
		v.logger.Infow("link restored", "mode", p.Mode.String())
	}
	v.state = *p
	v.mode = p.Mode
}

func (v *Vehicle) updateAccessories() {
	v.outputs.SetHeadLight(v.state.HeadLight)
	v.outputs.SetTailLight(v.state.TailLight)
	if v.state.Honk {
		v.outputs.PlayTone(HornFreqHz, HornDuration)
	}
}

func (v *Vehicle) actuate() {
	v.outputs.SetSteer(protocol.MapAxis(v.state.LeftX, v.state.SteerSensitivity, protocol.ActuatorCenter))

	throttle := protocol.MapAxis(v.state.RightY, v.state.ThrottleSensitivity, protocol.ActuatorCenter)
	if v.state.Brake {
		throttle = protocol.ActuatorMin
	}
	v.outputs.SetThrottle(throttle)
}

// blink toggles both lights every BlinkPeriod while not connected.
func (v *Vehicle) blink() {
	if v.blinkEver && v.clock.Since(v.lastBlink) <= v.cfg.BlinkPeriod {
		return
	}
	v.lastBlink = v.clock.Now()
	v.blinkEver = true
	v.blinkOn = !v.blinkOn
	v.outputs.SetHeadLight(v.blinkOn)
	v.outputs.SetTailLight(v.blinkOn)
}
