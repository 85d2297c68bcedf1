package pidloop

import (
	"fmt"

	"github.com/san-kum/ctrlsim/internal/control"
	"github.com/san-kum/ctrlsim/internal/dynamo"
)

// DerivativeSeed selects the error assumed one period before t=0.
type DerivativeSeed int

const (
	// SeedInitialError assumes the error before t=0 equaled target-start.
	SeedInitialError DerivativeSeed = iota
	// SeedZero assumes a zero error before t=0.
	SeedZero
)

func (s DerivativeSeed) String() string {
	switch s {
	case SeedInitialError:
		return "initial"
	case SeedZero:
		return "zero"
	default:
		return fmt.Sprintf("DerivativeSeed(%d)", int(s))
	}
}

func ParseSeed(name string) (DerivativeSeed, error) {
	switch name {
	case "", "initial":
		return SeedInitialError, nil
	case "zero":
		return SeedZero, nil
	default:
		return 0, fmt.Errorf("%w: derivative seed %q (want initial or zero)", dynamo.ErrConfiguration, name)
	}
}

type Config struct {
	Target float64
	Start  float64
	Gains  control.Gains
	Clock  dynamo.Clock
	Seed   DerivativeSeed

	// IntegralLimit clamps the integral accumulator; zero leaves it unbounded.
	IntegralLimit float64

	// Band is the tracking error tolerated by the stability metric. Zero
	// selects 2% of |target-start|.
	Band float64
}

// DefaultConfig walks 50 m from the origin with a gentle proportional gain.
func DefaultConfig() Config {
	return Config{
		Target: 50,
		Start:  0,
		Gains:  control.Gains{Kp: 0.1},
		Clock:  dynamo.Clock{Dt: 0.05, Duration: 40},
	}
}

func (c Config) Validate() error {
	err := dynamo.Combine(
		c.Clock.Validate(),
		c.Gains.Validate(),
		dynamo.Finite("target", c.Target),
		dynamo.Finite("start", c.Start),
		dynamo.NonNegative("integral_limit", c.IntegralLimit),
		dynamo.NonNegative("band", c.Band),
	)
	if c.Seed != SeedInitialError && c.Seed != SeedZero {
		err = dynamo.Combine(err, &dynamo.ConfigError{Field: "seed", Value: float64(c.Seed), Reason: "unknown derivative seed"})
	}
	return err
}

func (c Config) band() float64 {
	if c.Band > 0 {
		return c.Band
	}
	d := c.Target - c.Start
	if d < 0 {
		d = -d
	}
	if d == 0 {
		return 1e-9
	}
	return 0.02 * d
}
