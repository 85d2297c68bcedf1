package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ctrlsim/internal/control"
	"github.com/san-kum/ctrlsim/internal/dynamo"
	"github.com/san-kum/ctrlsim/internal/pidloop"
	"github.com/san-kum/ctrlsim/internal/stepresp"
)

const (
	DefaultTarget   = 50.0
	DefaultStart    = 0.0
	DefaultKp       = 0.1
	DefaultDt       = 0.05
	DefaultDuration = 40.0

	DefaultMass      = 1.0
	DefaultDamping   = 5.0
	DefaultStiffness = 20.0
	DefaultSamples   = 500
	DefaultSpan      = 5.0
	DefaultMethod    = "zoh"
)

type Config struct {
	Walker WalkerConfig `yaml:"walker"`
	System SystemConfig `yaml:"system"`
}

// WalkerConfig parameterises the PID-driven walker.
type WalkerConfig struct {
	Target         float64 `yaml:"target"`
	Start          float64 `yaml:"start"`
	Kp             float64 `yaml:"kp"`
	Ki             float64 `yaml:"ki"`
	Kd             float64 `yaml:"kd"`
	Dt             float64 `yaml:"dt"`
	Duration       float64 `yaml:"duration"`
	DerivativeSeed string  `yaml:"derivative_seed,omitempty"`
	IntegralLimit  float64 `yaml:"integral_limit,omitempty"`
	Band           float64 `yaml:"band,omitempty"`
}

// SystemConfig parameterises the mass-spring-damper step response.
type SystemConfig struct {
	Mass      float64 `yaml:"mass"`
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	Samples   int     `yaml:"samples"`
	Span      float64 `yaml:"span"`
	Method    string  `yaml:"method"`
}

func DefaultConfig() *Config {
	return &Config{
		Walker: WalkerConfig{
			Target:   DefaultTarget,
			Start:    DefaultStart,
			Kp:       DefaultKp,
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
		System: SystemConfig{
			Mass:      DefaultMass,
			Damping:   DefaultDamping,
			Stiffness: DefaultStiffness,
			Samples:   DefaultSamples,
			Span:      DefaultSpan,
			Method:    DefaultMethod,
		},
	}
}

// Load reads a yaml file over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a yaml file over a copy of base; keys absent from the
// file keep base's values. base itself is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PIDLoop converts the walker section into an engine configuration.
func (c *Config) PIDLoop() (pidloop.Config, error) {
	seed, err := pidloop.ParseSeed(c.Walker.DerivativeSeed)
	if err != nil {
		return pidloop.Config{}, err
	}
	cfg := pidloop.Config{
		Target:        c.Walker.Target,
		Start:         c.Walker.Start,
		Gains:         control.Gains{Kp: c.Walker.Kp, Ki: c.Walker.Ki, Kd: c.Walker.Kd},
		Clock:         dynamo.Clock{Dt: c.Walker.Dt, Duration: c.Walker.Duration},
		Seed:          seed,
		IntegralLimit: c.Walker.IntegralLimit,
		Band:          c.Walker.Band,
	}
	return cfg, cfg.Validate()
}

// StepResp converts the system section into an engine configuration.
func (c *Config) StepResp() (stepresp.Config, error) {
	method, err := stepresp.ParseMethod(c.System.Method)
	if err != nil {
		return stepresp.Config{}, err
	}
	cfg := stepresp.Config{
		Params: stepresp.Params{
			Mass:      c.System.Mass,
			Damping:   c.System.Damping,
			Stiffness: c.System.Stiffness,
		},
		Samples: c.System.Samples,
		Span:    c.System.Span,
		Method:  method,
	}
	return cfg, cfg.Validate()
}

// Validate checks both sections and reports every violation.
func (c *Config) Validate() error {
	_, werr := c.PIDLoop()
	_, serr := c.StepResp()
	return dynamo.Combine(werr, serr)
}
