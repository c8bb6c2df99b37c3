package timescale

import "math"

const (
	// MinZoom and MaxZoom bound the UI zoom value.
	MinZoom = 0.0
	MaxZoom = 100.0
)

// ZoomCurve maps a UI zoom value onto a scale in pixels per millisecond.
// The zoom value is first bent by Exponent and then interpolated in log
// space between MinScale and MaxScale, so equal zoom steps read as equal
// visual steps from years down to milliseconds.
type ZoomCurve struct {
	MinScale float64 `json:"minScale" yaml:"minScale"`
	MaxScale float64 `json:"maxScale" yaml:"maxScale"`
	Exponent float64 `json:"exponent" yaml:"exponent"`
}

// DefaultZoomCurve spans roughly three years to one second per thousand pixels.
func DefaultZoomCurve() ZoomCurve {
	return ZoomCurve{MinScale: 1e-8, MaxScale: 1, Exponent: 1.25}
}

// ClampZoom bounds zoom to [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	switch {
	case math.IsNaN(zoom), zoom < MinZoom:
		return MinZoom
	case zoom > MaxZoom:
		return MaxZoom
	}
	return zoom
}

// CalculateScale returns the scale for a zoom value.
func (c ZoomCurve) CalculateScale(zoom float64) float64 {
	t := ClampZoom(zoom) / MaxZoom
	t = math.Pow(t, c.exponent())
	lo, hi := math.Log(c.MinScale), math.Log(c.MaxScale)
	return math.Exp(lo + t*(hi-lo))
}

// CalculateZoom is the inverse of CalculateScale; scales outside the curve are clamped.
func (c ZoomCurve) CalculateZoom(scale float64) float64 {
	if scale <= c.MinScale {
		return MinZoom
	}
	if scale >= c.MaxScale {
		return MaxZoom
	}
	lo, hi := math.Log(c.MinScale), math.Log(c.MaxScale)
	t := (math.Log(scale) - lo) / (hi - lo)
	return ClampZoom(math.Pow(t, 1/c.exponent()) * MaxZoom)
}

// FitScale returns the scale that shows duration milliseconds across width
// pixels, leaving padding (a fraction of width) on each side.
func FitScale(duration int64, width, padding float64) float64 {
	usable := width * (1 - 2*padding)
	if usable <= 0 {
		usable = width
	}
	if duration <= 0 {
		duration = 1
	}
	return usable / float64(duration)
}

func (c ZoomCurve) exponent() float64 {
	if c.Exponent <= 0 {
		return 1
	}
	return c.Exponent
}
