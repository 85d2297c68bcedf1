package analysis

import "math"

const (
	RiseLow      = 0.1
	RiseHigh     = 0.9
	SettlingBand = 0.02
)

// StepInfo summarises a step response against its steady-state value.
// Times are absolute sample times; Rose and Settled report whether the
// corresponding measurement happened inside the recorded window.
type StepInfo struct {
	SteadyState  float64
	Peak         float64
	PeakTime     float64
	Overshoot    float64
	RiseTime     float64
	Rose         bool
	SettlingTime float64
	Settled      bool
}

// StepResponseInfo measures y against final. With a zero or non-finite
// final value only the peak is reported.
func StepResponseInfo(times, y []float64, final float64) StepInfo {
	info := StepInfo{SteadyState: final}
	if len(y) == 0 || len(times) != len(y) {
		return info
	}

	peakIdx := 0
	for i, v := range y {
		if math.Abs(v) > math.Abs(y[peakIdx]) {
			peakIdx = i
		}
	}
	info.Peak = y[peakIdx]
	info.PeakTime = times[peakIdx]

	if final == 0 || math.IsNaN(final) || math.IsInf(final, 0) {
		return info
	}

	// Work on the normalised response so negative final values behave.
	ratio := func(i int) float64 { return y[i] / final }

	if r := ratio(peakIdx); r > 1 {
		info.Overshoot = (r - 1) * 100
	}

	lowIdx, highIdx := -1, -1
	for i := range y {
		r := ratio(i)
		if lowIdx < 0 && r >= RiseLow {
			lowIdx = i
		}
		if r >= RiseHigh {
			highIdx = i
			break
		}
	}
	if lowIdx >= 0 && highIdx >= 0 {
		info.RiseTime = times[highIdx] - times[lowIdx]
		info.Rose = true
	}

	lastOut := -1
	for i := range y {
		if math.Abs(ratio(i)-1) > SettlingBand {
			lastOut = i
		}
	}
	switch {
	case lastOut < 0:
		info.SettlingTime = times[0]
		info.Settled = true
	case lastOut < len(y)-1:
		info.SettlingTime = times[lastOut+1]
		info.Settled = true
	}

	return info
}
