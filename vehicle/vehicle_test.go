package vehicle

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/ystepanoff/carlink/driver/loopback"
	"github.com/ystepanoff/carlink/protocol"
)

// fakeOutputs records every actuator call for assertions.
type fakeOutputs struct {
	steer    []int
	throttle []int

	headLight []bool
	tailLight []bool
	tones     []int

	receivePulses int
	interference  []bool
}

func (f *fakeOutputs) SetSteer(position int)    { f.steer = append(f.steer, position) }
func (f *fakeOutputs) SetThrottle(position int) { f.throttle = append(f.throttle, position) }
func (f *fakeOutputs) SetHeadLight(on bool)     { f.headLight = append(f.headLight, on) }
func (f *fakeOutputs) SetTailLight(on bool)     { f.tailLight = append(f.tailLight, on) }
func (f *fakeOutputs) PlayTone(freqHz int, duration time.Duration) {
	f.tones = append(f.tones, freqHz)
}
func (f *fakeOutputs) SetReceiveLamp(on bool) {
	if on {
		f.receivePulses++
	}
}
func (f *fakeOutputs) SetInterferenceLamp(on bool) { f.interference = append(f.interference, on) }

func (f *fakeOutputs) lastSteer(t *testing.T) int {
	t.Helper()
	require.NotEmpty(t, f.steer)
	return f.steer[len(f.steer)-1]
}

func (f *fakeOutputs) lastThrottle(t *testing.T) int {
	t.Helper()
	require.NotEmpty(t, f.throttle)
	return f.throttle[len(f.throttle)-1]
}

func newTestVehicle(t *testing.T) (*Vehicle, *loopback.Endpoint, *fakeOutputs, *clock.Mock) {
	t.Helper()
	tx, rx := loopback.Pair()
	out := &fakeOutputs{}
	mock := clock.NewMock()
	v := New(rx, out, DefaultConfig(), mock, nil)
	return v, tx, out, mock
}

func send(t *testing.T, tx *loopback.Endpoint, p *protocol.ControlPacket) {
	t.Helper()
	require.NoError(t, tx.TrySend(protocol.Encode(p)))
}

func proPacket() *protocol.ControlPacket {
	p := protocol.NewControlPacket()
	p.Mode = protocol.ModePro
	p.RightX, p.RightY = protocol.AxisMid, protocol.AxisMid
	p.LeftX, p.LeftY = protocol.AxisMid, protocol.AxisMid
	p.ThrottleSensitivity = 40
	p.SteerSensitivity = 50
	return p
}

func TestStartsNotConnectedAndNeutral(t *testing.T) {
	v, _, out, _ := newTestVehicle(t)

	v.Tick()

	require.Equal(t, protocol.ModeNotConnected, v.Mode())
	require.Equal(t, protocol.ActuatorCenter, out.lastSteer(t))
	require.Equal(t, protocol.ActuatorCenter, out.lastThrottle(t))
	// blink starts immediately
	require.Equal(t, []bool{true}, out.headLight)
	require.Equal(t, []bool{true}, out.tailLight)
}

func TestNotConnectedBlinkPeriod(t *testing.T) {
	v, _, out, mock := newTestVehicle(t)

	v.Tick() // lights on
	mock.Add(1500 * time.Millisecond)
	v.Tick() // exactly at the period: no toggle yet
	require.Equal(t, []bool{true}, out.headLight)

	mock.Add(1 * time.Millisecond)
	v.Tick() // strictly past the period: toggled off
	require.Equal(t, []bool{true, false}, out.headLight)
	require.Equal(t, []bool{true, false}, out.tailLight)
}

func TestValidPacketAdoptsModeAndChimesOnce(t *testing.T) {
	v, tx, out, _ := newTestVehicle(t)

	send(t, tx, proPacket())
	v.Tick()

	require.Equal(t, protocol.ModePro, v.Mode())
	require.Equal(t, []int{ChimeLowFreqHz, ChimeHighFreqHz}, out.tones)
	require.Equal(t, protocol.ActuatorCenter, out.lastSteer(t))
	require.Equal(t, protocol.ActuatorCenter, out.lastThrottle(t))

	// a second packet while connected must not chime again
	send(t, tx, proPacket())
	v.Tick()
	require.Equal(t, []int{ChimeLowFreqHz, ChimeHighFreqHz}, out.tones)
	require.Equal(t, 2, out.receivePulses)
}

func TestMalformedPacketsLeaveStateUntouched(t *testing.T) {
	v, tx, out, _ := newTestVehicle(t)

	badAxis := proPacket()
	badAxis.RightX = protocol.AxisMax + 1
	badMode := proPacket()
	badMode.Mode = protocol.ModeNotConnected

	send(t, tx, badAxis)
	send(t, tx, badMode)
	require.NoError(t, tx.TrySend(make([]byte, 5))) // wrong length

	for i := 0; i < 3; i++ {
		v.Tick()
		require.Equal(t, protocol.ModeNotConnected, v.Mode())
		require.Equal(t, *protocol.NewControlPacket(), v.State())
	}
	require.Equal(t, uint64(3), v.Stats().Rejected)
	require.Equal(t, []bool{true, true, true}, out.interference)
	require.Empty(t, out.tones, "rejected packets must not trigger the chime")

	good := proPacket()
	good.Brake = true
	send(t, tx, good)
	v.Tick()

	require.Equal(t, protocol.ModePro, v.Mode())
	require.Equal(t, *good, v.State())
	require.Equal(t, protocol.ActuatorMin, out.lastThrottle(t), "brake forces minimum throttle")
	require.Equal(t, []bool{true, true, true, false}, out.interference)
}

func TestLinkLossFailsSafeAndRecovers(t *testing.T) {
	v, tx, out, mock := newTestVehicle(t)

	send(t, tx, proPacket())
	v.Tick()
	require.Equal(t, protocol.ModePro, v.Mode())

	mock.Add(3000 * time.Millisecond)
	v.Tick()
	require.Equal(t, protocol.ModePro, v.Mode(), "still alive at exactly the timeout")

	mock.Add(1 * time.Millisecond)
	v.Tick()
	require.Equal(t, protocol.ModeNotConnected, v.Mode())
	require.Equal(t, protocol.ActuatorCenter, out.lastSteer(t))
	require.Equal(t, protocol.ActuatorCenter, out.lastThrottle(t))

	// reconnection: the packet's mode is adopted and one more chime plays
	send(t, tx, proPacket())
	v.Tick()
	require.Equal(t, protocol.ModePro, v.Mode())
	require.Equal(t,
		[]int{ChimeLowFreqHz, ChimeHighFreqHz, ChimeLowFreqHz, ChimeHighFreqHz},
		out.tones)
}

func TestIdleStopsMotorKeepsSteer(t *testing.T) {
	v, tx, out, _ := newTestVehicle(t)

	p := proPacket()
	p.Mode = protocol.ModeIdle
	p.HeadLight = true
	p.Honk = true
	send(t, tx, p)
	v.Tick()

	require.Equal(t, protocol.ModeIdle, v.Mode())
	require.Empty(t, out.steer, "steering stays at its last commanded position")
	require.Equal(t, protocol.ActuatorCenter, out.lastThrottle(t))
	require.Equal(t, []bool{true}, out.headLight)
	require.Equal(t, []bool{false}, out.tailLight)
	// chime first, then the horn from the accessory update
	require.Equal(t, []int{ChimeLowFreqHz, ChimeHighFreqHz, HornFreqHz}, out.tones)
}

func TestEasyActuationMapping(t *testing.T) {
	v, tx, out, _ := newTestVehicle(t)

	p := proPacket()
	p.Mode = protocol.ModeEasy
	p.LeftX = protocol.AxisMax // full right, steer sensitivity 50
	p.RightY = protocol.AxisMin
	send(t, tx, p)
	v.Tick()

	require.Equal(t, 135, out.lastSteer(t))
	require.Equal(t, 54, out.lastThrottle(t)) // centre 90 - 90*40/100
}

func TestDebugAppliesNoOutputs(t *testing.T) {
	v, tx, out, _ := newTestVehicle(t)

	p := proPacket()
	p.Mode = protocol.ModeDebug
	p.HeadLight = true
	send(t, tx, p)
	v.Tick()

	require.Equal(t, protocol.ModeDebug, v.Mode())
	require.Empty(t, out.steer)
	require.Empty(t, out.throttle)
	require.Empty(t, out.headLight)
	require.True(t, v.State().HeadLight, "state is still tracked for diagnostics")
}
