// Package carlink provides a façade over the control-link building
// blocks: the packet protocol, the transport drivers and the
// remote/vehicle control loops.
package carlink

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ystepanoff/carlink/protocol"
	"github.com/ystepanoff/carlink/remote"
	"github.com/ystepanoff/carlink/transport"
	"github.com/ystepanoff/carlink/vehicle"
)

// Re-export the public types.
type (
	ControlPacket = protocol.ControlPacket
	Mode          = protocol.Mode
	Driver        = transport.Driver
	Remote        = remote.Remote
	Vehicle       = vehicle.Vehicle
)

// Modes exposed in the public API.
const (
	ModeIdle         = protocol.ModeIdle
	ModeEasy         = protocol.ModeEasy
	ModePro          = protocol.ModePro
	ModeDebug        = protocol.ModeDebug
	ModeNotConnected = protocol.ModeNotConnected
)

// NewRemote wires a transmitter loop with default timing onto the given
// radio driver.
func NewRemote(d Driver, inputs remote.Inputs, settings remote.Settings, logger *zap.SugaredLogger) *Remote {
	return remote.New(d, inputs, settings, remote.DefaultConfig(), clock.New(), logger)
}

// NewVehicle wires a receiver loop with default timing onto the given
// radio driver.
func NewVehicle(d Driver, outputs vehicle.Outputs, logger *zap.SugaredLogger) *Vehicle {
	return vehicle.New(d, outputs, vehicle.DefaultConfig(), clock.New(), logger)
}

// Run drives a tick function at the given period until ctx is done. The
// tick functions themselves never block, so cancellation is prompt.
func Run(ctx context.Context, clk clock.Clock, period time.Duration, tick func()) error {
	if clk == nil {
		clk = clock.New()
	}
	ticker := clk.Ticker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick()
		}
	}
}
