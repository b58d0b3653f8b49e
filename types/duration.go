package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DefaultTimeLock is the delay core deployments start with.
var DefaultTimeLock = NewDuration(48 * time.Hour)

// Duration wraps time.Duration with support for JSON/YAML encoding and the whole-second
// granularity of block timestamps.
type Duration struct {
	time.Duration
}

// NewDuration wraps a time.Duration with a Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// DurationFromSeconds converts an on-chain seconds value into a Duration.
func DurationFromSeconds(s uint64) (Duration, error) {
	if s > uint64(math.MaxInt64/int64(time.Second)) {
		return Duration{}, fmt.Errorf("duration of %d seconds overflows", s)
	}

	return NewDuration(time.Duration(s) * time.Second), nil
}

// ParseDuration parses a duration string in the time.Duration format.
func ParseDuration(s string) (Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, err
	}

	return NewDuration(d), nil
}

// MustParseDuration parses a duration string in the time.Duration format.
// Panics if the string is invalid.
//
// Useful for tests, but should be avoided in production code.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

// Uint64Seconds returns the duration truncated to whole seconds. Negative durations are 0.
func (d Duration) Uint64Seconds() uint64 {
	if d.Duration <= 0 {
		return 0
	}

	return uint64(d.Duration / time.Second)
}

// String returns a string representing the duration in the form "72h3m0.5s".
func (d Duration) String() string {
	return d.Duration.String()
}

// MarshalJSON marshals the duration into JSON bytes and implements the json.Marshaler interface.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either a duration string ("48h") or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		return d.UnmarshalText([]byte(value))
	case float64:
		if value < 0 || value != math.Trunc(value) {
			return fmt.Errorf("invalid duration seconds: %v", value)
		}
		parsed, err := DurationFromSeconds(uint64(value))
		if err != nil {
			return err
		}
		*d = parsed

		return nil
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so durations can be read from YAML and env.
func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = parsed

	return nil
}
