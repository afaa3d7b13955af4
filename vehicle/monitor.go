package vehicle

import (
	"time"

	"github.com/benbjohnson/clock"
)

// ConnectionMonitor tracks the recency of validated packets. It is
// stamped by the receiver on every successful validation and consulted
// once per tick.
type ConnectionMonitor struct {
	clock       clock.Clock
	timeout     time.Duration
	lastReceipt time.Time
	seen        bool
}

func NewConnectionMonitor(clk clock.Clock, timeout time.Duration) *ConnectionMonitor {
	if clk == nil {
		clk = clock.New()
	}
	return &ConnectionMonitor{clock: clk, timeout: timeout}
}

// RecordReceipt stamps the current time as the last validated receipt.
func (m *ConnectionMonitor) RecordReceipt() {
	m.lastReceipt = m.clock.Now()
	m.seen = true
}

// Alive reports whether a validated packet arrived within the timeout.
// The boundary is inclusive: at exactly the timeout the link still
// counts as up, it goes down strictly after.
func (m *ConnectionMonitor) Alive() bool {
	return m.seen && m.clock.Since(m.lastReceipt) <= m.timeout
}
