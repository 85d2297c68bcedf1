// Package pidloop drives a walker toward a target position under PID feedback.
//
// A run is a pure function of its [Config]: the walker starts at Start, the
// controller output is applied directly as velocity, and position advances
// with an explicit Euler step every Dt. Each frame records position,
// velocity and tracking error:
//
//	res, err := pidloop.Run(pidloop.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	f := res.Frame(res.Frames - 1)
//
// The derivative term differences against an error seeded to target-start
// by default, so the first frame carries no derivative kick. SeedZero starts
// from zero instead. The integral term has no anti-windup unless
// IntegralLimit is set.
package pidloop
