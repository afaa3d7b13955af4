// Package config loads the link configuration shared by the simulator
// binaries and the dongle driver.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ystepanoff/carlink/protocol"
)

// Config holds the node configuration, loaded from a YAML file. Every
// field has a default, so an empty file is a valid configuration.
type Config struct {
	// Radio pipe addresses (40-bit). The reverse pipe is reserved for
	// telemetry and currently unused.
	ForwardAddress uint64 `yaml:"forwardAddress"`
	ReverseAddress uint64 `yaml:"reverseAddress"`

	// Serial connection to the radio dongle. Empty port means the
	// in-process loopback link is used instead.
	SerialPort string `yaml:"serialPort"`
	SerialBaud int    `yaml:"serialBaud"`

	TickMillis int `yaml:"tickMillis"`

	LivenessTimeoutMillis   int `yaml:"livenessTimeoutMillis"`
	QuietSendIntervalMillis int `yaml:"quietSendIntervalMillis"`

	EasyThrottleSensitivity int `yaml:"easyThrottleSensitivity"`
	EasySteerSensitivity    int `yaml:"easySteerSensitivity"`
}

// Default returns the configuration matching the protocol constants.
func Default() Config {
	return Config{
		ForwardAddress:          protocol.ForwardAddress,
		ReverseAddress:          protocol.ReverseAddress,
		SerialBaud:              115200,
		TickMillis:              20,
		LivenessTimeoutMillis:   protocol.LivenessTimeout,
		QuietSendIntervalMillis: protocol.QuietSendInterval,
		EasyThrottleSensitivity: protocol.EasyThrottleSensitivity,
		EasySteerSensitivity:    protocol.EasySteerSensitivity,
	}
}

func (c *Config) Tick() time.Duration { return time.Duration(c.TickMillis) * time.Millisecond }

func (c *Config) LivenessTimeout() time.Duration {
	return time.Duration(c.LivenessTimeoutMillis) * time.Millisecond
}

func (c *Config) QuietSendInterval() time.Duration {
	return time.Duration(c.QuietSendIntervalMillis) * time.Millisecond
}

func (c *Config) validate() error {
	if c.ForwardAddress >= 1<<40 || c.ReverseAddress >= 1<<40 {
		return errors.New("pipe addresses must fit in 40 bits")
	}
	if c.ForwardAddress == c.ReverseAddress {
		return errors.New("forward and reverse addresses must differ")
	}
	if c.SerialBaud <= 0 {
		return errors.New("serialBaud must be positive")
	}
	if c.TickMillis <= 0 {
		return errors.New("tickMillis must be positive")
	}
	if c.LivenessTimeoutMillis <= 0 {
		return errors.New("livenessTimeoutMillis must be positive")
	}
	if c.QuietSendIntervalMillis < 0 {
		return errors.New("quietSendIntervalMillis cannot be negative")
	}
	for _, s := range []int{c.EasyThrottleSensitivity, c.EasySteerSensitivity} {
		if s < protocol.SensitivityMin || s > protocol.SensitivityMax {
			return errors.Errorf("easy sensitivities must lie in %d..%d", protocol.SensitivityMin, protocol.SensitivityMax)
		}
	}
	return nil
}

// Load reads the configuration at path, applies it over the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "unmarshal yaml from %s", path)
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}
