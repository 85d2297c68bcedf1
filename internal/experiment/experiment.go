package experiment

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ctrlsim/internal/pidloop"
	"github.com/san-kum/ctrlsim/internal/stepresp"
)

// Runner executes engine runs and logs their outcome. The engines
// themselves never log.
type Runner struct {
	log *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

func (r *Runner) Walk(ctx context.Context, cfg pidloop.Config) (*pidloop.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := r.log.With(
		zap.Float64("target", cfg.Target),
		zap.Float64("start", cfg.Start),
		zap.Stringer("gains", cfg.Gains),
	)
	log.Debug("walk started", zap.Float64("dt", cfg.Clock.Dt), zap.Float64("duration", cfg.Clock.Duration))

	start := time.Now()
	res, err := pidloop.Run(cfg)
	if err != nil {
		log.Warn("walk failed", zap.Error(err))
		return nil, fmt.Errorf("walk: %w", err)
	}

	log.Info("walk finished",
		zap.Int("frames", res.Frames),
		zap.Float64("final_position", res.Position.Last()),
		zap.Float64("final_error", res.Metrics["final_error"]),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (r *Runner) Step(ctx context.Context, cfg stepresp.Config) (*stepresp.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := r.log.With(
		zap.Float64("mass", cfg.Mass),
		zap.Float64("damping", cfg.Damping),
		zap.Float64("stiffness", cfg.Stiffness),
		zap.String("method", string(cfg.Method)),
	)
	log.Debug("step response started", zap.Int("samples", cfg.Samples), zap.Float64("span", cfg.Span))

	start := time.Now()
	res, err := stepresp.Run(cfg)
	if err != nil {
		log.Warn("step response failed", zap.Error(err))
		return nil, fmt.Errorf("step response: %w", err)
	}

	if err := res.Modal.Err(); err != nil {
		log.Warn("modal properties undefined", zap.Error(err))
	}
	log.Info("step response finished",
		zap.Int("frames", res.Frames()),
		zap.Stringer("modal", res.Modal),
		zap.Float64("peak", res.Info.Peak),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// Sweep runs every configuration concurrently. Results keep the order of
// cfgs; the first failure cancels the remaining runs.
func (r *Runner) Sweep(ctx context.Context, cfgs []stepresp.Config) ([]*stepresp.Result, error) {
	results := make([]*stepresp.Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := r.Step(ctx, cfg)
			if err != nil {
				return fmt.Errorf("sweep[%d]: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MethodSpread is the largest displacement difference between any
// response method and the zoh reference for one system. Err is set
// instead when the method cannot model the system.
type MethodSpread struct {
	Method stepresp.Method
	MaxAbs float64
	Err    error
}

func (s MethodSpread) Applicable() bool { return s.Err == nil }

// CompareMethods runs cfg under every response method and measures each
// against zoh. Only an invalid zoh reference fails the comparison; other
// methods that reject cfg are reported with Err set.
func (r *Runner) CompareMethods(ctx context.Context, cfg stepresp.Config) ([]MethodSpread, error) {
	ref := cfg
	ref.Method = stepresp.ZOH
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	cfgs := []stepresp.Config{ref}
	spreads := make([]MethodSpread, 0, len(stepresp.Methods)-1)
	for _, m := range stepresp.Methods {
		if m == stepresp.ZOH {
			continue
		}
		c := cfg
		c.Method = m
		if err := c.Validate(); err != nil {
			r.log.Debug("method not applicable", zap.String("method", string(m)), zap.Error(err))
			spreads = append(spreads, MethodSpread{Method: m, MaxAbs: math.NaN(), Err: err})
			continue
		}
		cfgs = append(cfgs, c)
	}

	results, err := r.Sweep(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	base := results[0].Displacement
	for _, res := range results[1:] {
		worst := 0.0
		for i := 0; i < base.Len(); i++ {
			worst = math.Max(worst, math.Abs(res.Displacement.Value(i)-base.Value(i)))
		}
		spreads = append(spreads, MethodSpread{Method: res.Config.Method, MaxAbs: worst})
	}
	slices.SortStableFunc(spreads, func(a, b MethodSpread) int {
		return slices.Index(stepresp.Methods, a.Method) - slices.Index(stepresp.Methods, b.Method)
	})
	return spreads, nil
}
