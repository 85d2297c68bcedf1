package stepresp

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

// closedForm is the textbook underdamped unit-step response.
func closedForm(p Params, t float64) float64 {
	wn := math.Sqrt(p.Stiffness / p.Mass)
	zeta := p.Damping / (2 * math.Sqrt(p.Mass*p.Stiffness))
	wd := wn * math.Sqrt(1-zeta*zeta)
	phi := math.Acos(zeta)
	return (1 / p.Stiffness) * (1 - math.Exp(-zeta*wn*t)*math.Sin(wd*t+phi)/math.Sqrt(1-zeta*zeta))
}

func practiceConfig(method Method) Config {
	return Config{
		Params:  Params{Mass: 1, Damping: 4, Stiffness: 20},
		Samples: 500,
		Span:    5,
		Method:  method,
	}
}

func TestRun_FinalValue(t *testing.T) {
	for _, method := range Methods {
		t.Run(string(method), func(t *testing.T) {
			g := NewWithT(t)

			res, err := Run(practiceConfig(method))
			g.Expect(err).NotTo(HaveOccurred())

			g.Expect(res.Frames()).To(Equal(500))
			g.Expect(res.Displacement.Value(0)).To(Equal(0.0))
			g.Expect(res.Displacement.Last()).To(BeNumerically("~", 1.0/20, 1e-3))

			ss, ok := res.SteadyState()
			g.Expect(ok).To(BeTrue())
			g.Expect(ss).To(BeNumerically("~", 0.05, 1e-12))
		})
	}
}

func TestRun_MatchesClosedForm(t *testing.T) {
	for _, method := range Methods {
		t.Run(string(method), func(t *testing.T) {
			g := NewWithT(t)

			cfg := practiceConfig(method)
			res, err := Run(cfg)
			g.Expect(err).NotTo(HaveOccurred())

			for i := 0; i < res.Frames(); i++ {
				f := res.Frame(i)
				g.Expect(f.Displacement).To(BeNumerically("~", closedForm(cfg.Params, f.Time), 1e-6))
			}
		})
	}
}

func TestRun_MethodsAgree(t *testing.T) {
	g := NewWithT(t)

	params := []Params{
		{Mass: 1, Damping: 5, Stiffness: 20},
		{Mass: 2, Damping: 0.5, Stiffness: 3},
		{Mass: 1, Damping: 20, Stiffness: 20},
		{Mass: 1, Damping: 2 * math.Sqrt(20), Stiffness: 20},
	}

	for _, p := range params {
		zoh, err := Run(Config{Params: p, Samples: 300, Span: 6, Method: ZOH})
		g.Expect(err).NotTo(HaveOccurred())

		for _, method := range []Method{Spring, RK4} {
			other, err := Run(Config{Params: p, Samples: 300, Span: 6, Method: method})
			g.Expect(err).NotTo(HaveOccurred())

			for i := 0; i < zoh.Frames(); i++ {
				g.Expect(other.Displacement.Value(i)).To(BeNumerically("~", zoh.Displacement.Value(i), 1e-5),
					"%s vs zoh for %+v at frame %d", method, p, i)
				g.Expect(other.Velocity.Value(i)).To(BeNumerically("~", zoh.Velocity.Value(i), 1e-4),
					"%s vs zoh velocity for %+v at frame %d", method, p, i)
			}
		}
	}
}

func TestRun_TimeGrid(t *testing.T) {
	g := NewWithT(t)

	res, err := Run(DefaultConfig())
	g.Expect(err).NotTo(HaveOccurred())

	times := res.Times()
	g.Expect(times).To(HaveLen(500))
	g.Expect(times[0]).To(Equal(0.0))
	g.Expect(times[len(times)-1]).To(BeNumerically("~", 5.0, 1e-12))

	h := DefaultConfig().Step()
	for i := 1; i < len(times); i++ {
		g.Expect(times[i] - times[i-1]).To(BeNumerically("~", h, 1e-9))
	}
}

func TestRun_SingleSample(t *testing.T) {
	g := NewWithT(t)

	for _, method := range Methods {
		cfg := DefaultConfig()
		cfg.Samples = 1
		cfg.Method = method

		res, err := Run(cfg)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(res.Frames()).To(Equal(1))
		g.Expect(res.Frame(0)).To(Equal(Frame{}))
	}
}

func TestRun_StepInfo(t *testing.T) {
	g := NewWithT(t)

	res, err := Run(practiceConfig(ZOH))
	g.Expect(err).NotTo(HaveOccurred())

	// zeta = 4/(2*sqrt(20)), wd = 4 rad/s.
	zeta := 4 / (2 * math.Sqrt(20))
	overshoot := 100 * math.Exp(-math.Pi*zeta/math.Sqrt(1-zeta*zeta))

	g.Expect(res.Info.PeakTime).To(BeNumerically("~", math.Pi/4, 0.02))
	g.Expect(res.Info.Overshoot).To(BeNumerically("~", overshoot, 0.5))
	g.Expect(res.Info.Rose).To(BeTrue())
	g.Expect(res.Info.Settled).To(BeTrue())
	g.Expect(res.Info.SettlingTime).To(BeNumerically("<", 2.5))
}

func TestRun_NonStandardStiffness(t *testing.T) {
	g := NewWithT(t)

	for _, k := range []float64{0, -4} {
		cfg := DefaultConfig()
		cfg.Stiffness = k

		res, err := Run(cfg)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(res.Modal.Defined).To(BeFalse())
		g.Expect(res.Modal.Class).To(Equal(Undefined))
		g.Expect(errors.Is(res.Modal.Err(), dynamo.ErrNumericDegeneracy)).To(BeTrue())

		_, ok := res.SteadyState()
		g.Expect(ok).To(BeFalse())
	}

	// k=0 leaves only the damper: x(t) = t/b - m/b^2*(1-exp(-b t/m)).
	cfg := DefaultConfig()
	cfg.Stiffness = 0
	res, err := Run(cfg)
	g.Expect(err).NotTo(HaveOccurred())
	last := res.Frame(res.Frames() - 1)
	want := last.Time/5 - (1.0/25)*(1-math.Exp(-5*last.Time))
	g.Expect(last.Displacement).To(BeNumerically("~", want, 1e-9))

	cfg.Method = RK4
	res, err = Run(cfg)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Displacement.Last()).To(BeNumerically("~", want, 1e-6))
}

func TestRun_Idempotent(t *testing.T) {
	g := NewWithT(t)

	for _, method := range Methods {
		cfg := DefaultConfig()
		cfg.Method = method

		a, err := Run(cfg)
		g.Expect(err).NotTo(HaveOccurred())
		b, err := Run(cfg)
		g.Expect(err).NotTo(HaveOccurred())

		g.Expect(a.Displacement.Values()).To(Equal(b.Displacement.Values()))
		g.Expect(a.Velocity.Values()).To(Equal(b.Velocity.Values()))
	}
}

func TestRun_DefaultMethod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = ""

	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Config.Method != ZOH {
		t.Errorf("expected empty method to select zoh, got %q", res.Config.Method)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"negative mass", func(c *Config) { c.Mass = -1 }},
		{"negative damping", func(c *Config) { c.Damping = -0.1 }},
		{"NaN stiffness", func(c *Config) { c.Stiffness = math.NaN() }},
		{"zero samples", func(c *Config) { c.Samples = 0 }},
		{"too many samples", func(c *Config) { c.Samples = dynamo.MaxFrames + 1 }},
		{"zero span", func(c *Config) { c.Span = 0 }},
		{"unknown method", func(c *Config) { c.Method = "bogus" }},
		{"spring without stiffness", func(c *Config) { c.Method = Spring; c.Stiffness = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			res, err := Run(cfg)
			if !errors.Is(err, dynamo.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if res != nil {
				t.Error("expected no result on configuration error")
			}
		})
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := Config{Params: Params{Mass: 0, Damping: -1, Stiffness: 1}, Samples: 0, Span: 0, Method: ZOH}
	if got := len(dynamo.Violations(cfg.Validate())); got != 4 {
		t.Errorf("expected 4 violations, got %d", got)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMethod("euler"); !errors.Is(err, dynamo.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}
