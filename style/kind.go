package style

import "math"

// DefaultNibPressure is used when neither a style nor its pen kind sets a
// nib pressure response.
const DefaultNibPressure = 0.5

// KindConfig holds the per-pen-kind parameters of the outline algorithm
// that are not part of a PenStyle.
type KindConfig struct {
	// Thinning is how strongly pressure changes the stroke width, -1..1.
	Thinning float64

	// Streamline is how much the input path is pulled toward its own
	// trailing average, 0..1.
	Streamline float64

	// TaperStart and TaperEnd are taper lengths in world units.
	TaperStart float64
	TaperEnd   float64

	// Nib defaults. A kind with both NibAngle and NibThickness set renders
	// with the italic strategy unless a style says otherwise.
	NibAngle       *float64
	NibThickness   *float64
	NibPressure    *float64
	BarrelRotation bool

	// Grain is the default texture amount.
	Grain float64

	// Scatter is the bounding box margin as a fraction of the pen width.
	Scatter float64
}

var kindConfigs = map[Kind]KindConfig{
	Ballpoint: {
		Thinning:   0.15,
		Streamline: 0.5,
	},
	FeltTip: {
		Thinning:   0.3,
		Streamline: 0.45,
		TaperStart: 4,
		TaperEnd:   4,
	},
	Pencil: {
		Thinning:   0.5,
		Streamline: 0.4,
		TaperStart: 10,
		TaperEnd:   10,
		Grain:      0.5,
		Scatter:    0.5,
	},
	Fountain: {
		Thinning:       0.6,
		Streamline:     0.5,
		TaperStart:     12,
		TaperEnd:       18,
		NibAngle:       Float(math.Pi / 6),
		NibThickness:   Float(0.25),
		NibPressure:    Float(0.6),
		BarrelRotation: true,
	},
	Brush: {
		Thinning:   0.7,
		Streamline: 0.35,
		TaperStart: 20,
		TaperEnd:   25,
		Scatter:    0.25,
	},
	Highlighter: {
		Thinning:   0,
		Streamline: 0.6,
	},
}

// ConfigFor returns the parameters of pen kind k. Unknown kinds get the
// ballpoint parameters.
func ConfigFor(k Kind) KindConfig {
	if cfg, ok := kindConfigs[k]; ok {
		return cfg
	}
	return kindConfigs[Ballpoint]
}
