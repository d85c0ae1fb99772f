package sim

import (
	"fmt"
)

const (
	// DefaultDt matches a 60 Hz frame rate so playback has one sample per frame.
	DefaultDt = 1.0 / 60
	// DefaultMaxFlightTime stops flights that never come down.
	DefaultMaxFlightTime = 30.0
)

type Config struct {
	Dt            float64
	MaxFlightTime float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            DefaultDt,
		MaxFlightTime: DefaultMaxFlightTime,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if !(c.MaxFlightTime > 0) {
		return fmt.Errorf("max flight time must be positive, got %f", c.MaxFlightTime)
	}
	return nil
}

// MaxSamples bounds the length of any trajectory produced under c.
func (c Config) MaxSamples() int {
	return int(c.MaxFlightTime/c.Dt) + 2
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
