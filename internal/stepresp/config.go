package stepresp

import (
	"fmt"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

type Params struct {
	Mass      float64
	Damping   float64
	Stiffness float64
}

func (p Params) Validate() error {
	return dynamo.Combine(
		dynamo.Positive("mass", p.Mass),
		dynamo.NonNegative("damping", p.Damping),
		dynamo.Finite("stiffness", p.Stiffness),
	)
}

type Method string

const (
	ZOH    Method = "zoh"
	Spring Method = "spring"
	RK4    Method = "rk4"
)

var Methods = []Method{ZOH, Spring, RK4}

func ParseMethod(name string) (Method, error) {
	if name == "" {
		return ZOH, nil
	}
	for _, m := range Methods {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %w %q (want one of %v)", dynamo.ErrConfiguration, dynamo.ErrUnknownMethod, name, Methods)
}

type Config struct {
	Params
	Samples int
	Span    float64
	Method  Method
}

// DefaultConfig is m=1 kg, b=5 N*s/m, k=20 N/m sampled 500 times over 5 s.
func DefaultConfig() Config {
	return Config{
		Params:  Params{Mass: 1, Damping: 5, Stiffness: 20},
		Samples: 500,
		Span:    5,
		Method:  ZOH,
	}
}

func (c Config) Validate() error {
	err := dynamo.Combine(
		c.Params.Validate(),
		dynamo.Positive("span", c.Span),
	)
	switch {
	case c.Samples <= 0:
		err = dynamo.Combine(err, &dynamo.ConfigError{Field: "samples", Value: float64(c.Samples), Reason: "must be positive"})
	case c.Samples > dynamo.MaxFrames:
		err = dynamo.Combine(err, &dynamo.ConfigError{Field: "samples", Value: float64(c.Samples), Reason: fmt.Sprintf("exceeds the limit of %d", dynamo.MaxFrames)})
	}
	if _, mErr := ParseMethod(string(c.Method)); mErr != nil {
		err = dynamo.Combine(err, mErr)
	}
	if c.Method == Spring && c.Stiffness <= 0 {
		err = dynamo.Combine(err, &dynamo.ConfigError{Field: "stiffness", Value: c.Stiffness, Reason: "spring method needs positive stiffness"})
	}
	return err
}

// Step is the sample spacing of the time grid.
func (c Config) Step() float64 {
	if c.Samples < 2 {
		return 0
	}
	return c.Span / float64(c.Samples-1)
}
