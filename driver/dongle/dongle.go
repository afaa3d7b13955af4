// Package dongle drives an nRF24 radio attached over a serial line. The
// dongle firmware shovels records between the serial port and the radio
// pipes; this driver only handles the serial framing.
package dongle

import (
	"sync"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/ystepanoff/carlink/protocol"
	"github.com/ystepanoff/carlink/transport"
)

// Config describes how to reach the dongle.
type Config struct {
	Port string
	Baud int
}

// Dongle is a transport.Driver backed by a serial-attached radio. A
// reader goroutine parses inbound frames into a bounded queue so that
// TryReceive never blocks.
type Dongle struct {
	port   serial.Port
	logger *zap.SugaredLogger

	rx chan []byte

	mu     sync.Mutex
	closed bool
}

var _ transport.Driver = (*Dongle)(nil)

const rxQueueDepth = 16

// Open connects to the dongle and starts the reader.
func Open(cfg Config, logger *zap.SugaredLogger) (*Dongle, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.Port == "" {
		return nil, errors.New("dongle: serial port not configured")
	}

	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, errors.Wrapf(err, "dongle: open %s", cfg.Port)
	}

	d := &Dongle{
		port:   port,
		logger: logger.Named("dongle"),
		rx:     make(chan []byte, rxQueueDepth),
	}
	go d.readLoop()
	return d, nil
}

func (d *Dongle) TrySend(data []byte) error {
	if len(data) > protocol.MaxPayloadSize {
		return protocol.ErrPayloadTooLarge
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return protocol.ErrDriverClosed
	}
	if _, err := d.port.Write(encodeFrame(data)); err != nil {
		return errors.Wrap(err, "dongle: write")
	}
	return nil
}

func (d *Dongle) TryReceive() ([]byte, bool) {
	select {
	case record := <-d.rx:
		return record, true
	default:
		return nil, false
	}
}

func (d *Dongle) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.port.Close()
}

func (d *Dongle) readLoop() {
	var sc scanner
	buf := make([]byte, maxFrameSize)
	for {
		n, err := d.port.Read(buf)
		if err != nil {
			d.mu.Lock()
			closed := d.closed
			d.mu.Unlock()
			if !closed {
				d.logger.Warnw("serial read failed", "error", err)
			}
			return
		}
		sc.feed(buf[:n])
		for {
			record, ok := sc.next()
			if !ok {
				break
			}
			select {
			case d.rx <- record:
			default:
				// Queue full: the control loop is behind, and stale
				// control input is worse than none. Drop the oldest.
				select {
				case <-d.rx:
				default:
				}
				d.rx <- record
			}
		}
	}
}
