// Package filter smooths raw pen input one axis at a time.
//
// OneEuro is a speed-adaptive low-pass filter used for position: slow
// motion is smoothed heavily to remove jitter, fast motion lightly to keep
// lag low. EMA is a fixed single-pole average used for pressure and tilt.
//
// Filters carry per-stroke state. Use one instance per axis per active
// stroke and call Reset between strokes; instances are not safe for
// concurrent use.
package filter

import "math"

// Default OneEuro parameters, tuned for world units and millisecond
// timestamps from a pen digitizer.
const (
	DefaultMinCutoff = 1.0   // Hz
	DefaultBeta      = 0.007 // cutoff increase per unit/s of speed
	DefaultDCutoff   = 1.0   // Hz, cutoff of the derivative estimate

	// DefaultEMAAlpha is the weight of each new sample in EMA.
	DefaultEMAAlpha = 0.5
)

// OneEuroConfig holds the OneEuro tuning parameters.
type OneEuroConfig struct {
	MinCutoff float64
	Beta      float64
	DCutoff   float64
}

// DefaultOneEuroConfig returns the default OneEuro parameters.
func DefaultOneEuroConfig() OneEuroConfig {
	return OneEuroConfig{
		MinCutoff: DefaultMinCutoff,
		Beta:      DefaultBeta,
		DCutoff:   DefaultDCutoff,
	}
}

// OneEuro is an adaptive low-pass filter. It keeps an exponential estimate
// of the signal and of its derivative; the smoothing coefficient is derived
// per sample from the sampling interval and a cutoff that rises with speed:
//
//	cutoff = MinCutoff + Beta*|speed|
type OneEuro struct {
	cfg OneEuroConfig

	initialized bool
	value       float64 // last smoothed value
	deriv       float64 // last smoothed derivative, units per second
	lastTime    int64   // ms
}

// NewOneEuro creates a OneEuro filter. Non-positive cutoffs are replaced
// by their defaults and a negative beta is treated as zero.
func NewOneEuro(cfg OneEuroConfig) *OneEuro {
	if cfg.MinCutoff <= 0 {
		cfg.MinCutoff = DefaultMinCutoff
	}
	if cfg.DCutoff <= 0 {
		cfg.DCutoff = DefaultDCutoff
	}
	if cfg.Beta < 0 {
		cfg.Beta = 0
	}
	return &OneEuro{cfg: cfg}
}

// Filter smooths x sampled at time t (milliseconds) and returns the new
// estimate. The first sample is returned unchanged. A sample whose time is
// not after the previous one returns the last estimate.
func (f *OneEuro) Filter(x float64, t int64) float64 {
	if !f.initialized {
		f.initialized = true
		f.value = x
		f.deriv = 0
		f.lastTime = t
		return x
	}

	elapsed := float64(t-f.lastTime) / 1000
	if elapsed <= 0 {
		return f.value
	}
	f.lastTime = t

	rawDeriv := (x - f.value) / elapsed
	f.deriv = lowPass(f.deriv, rawDeriv, smoothingFactor(elapsed, f.cfg.DCutoff))

	cutoff := f.cfg.MinCutoff + f.cfg.Beta*math.Abs(f.deriv)
	f.value = lowPass(f.value, x, smoothingFactor(elapsed, cutoff))
	return f.value
}

// Value returns the last smoothed value and whether any sample was seen.
func (f *OneEuro) Value() (float64, bool) {
	return f.value, f.initialized
}

// Reset clears all state. The next sample initializes the filter again.
func (f *OneEuro) Reset() {
	f.initialized = false
	f.value = 0
	f.deriv = 0
	f.lastTime = 0
}

// EMA is an exponential moving average with a fixed coefficient.
type EMA struct {
	alpha       float64
	initialized bool
	value       float64
}

// NewEMA creates an EMA. alpha is the weight of each new sample and is
// clamped to (0, 1]; zero or negative selects DefaultEMAAlpha.
func NewEMA(alpha float64) *EMA {
	if alpha <= 0 {
		alpha = DefaultEMAAlpha
	}
	return &EMA{alpha: math.Min(alpha, 1)}
}

// Filter returns the updated average. The first sample passes through.
func (e *EMA) Filter(x float64) float64 {
	if !e.initialized {
		e.initialized = true
		e.value = x
		return x
	}
	e.value = lowPass(e.value, x, e.alpha)
	return e.value
}

// Reset clears all state.
func (e *EMA) Reset() {
	e.initialized = false
	e.value = 0
}

// smoothingFactor returns the exponential smoothing coefficient for a
// first-order low-pass filter with the given cutoff frequency (Hz) sampled
// every elapsed seconds.
func smoothingFactor(elapsed, cutoff float64) float64 {
	tau := 1 / (2 * math.Pi * cutoff)
	return 1 / (1 + tau/elapsed)
}

func lowPass(prev, x, alpha float64) float64 {
	return prev + alpha*(x-prev)
}
