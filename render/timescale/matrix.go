package timescale

import "math"

// Matrix maps epoch milliseconds onto horizontal pixels:
//
//	x = (t - BaseTime) * Scale + Translate
//
// Subtracting BaseTime before scaling keeps the product small so that
// sub-pixel precision survives at fine scales with timestamps decades apart.
type Matrix struct {
	// Scale in pixels per millisecond.
	Scale     float64 `json:"scale"`
	Translate float64 `json:"translate"`
	BaseTime  int64   `json:"baseTime"`
}

// NewMatrix creates a matrix
func NewMatrix(scale, translate float64, baseTime int64) *Matrix {
	return &Matrix{Scale: scale, Translate: translate, BaseTime: baseTime}
}

// FromVisibleStart builds a matrix whose left edge (x = 0) shows start.
// The integral part of start becomes the base time.
func FromVisibleStart(start float64, scale float64) *Matrix {
	base := math.Floor(start)
	return &Matrix{Scale: scale, Translate: -(start - base) * scale, BaseTime: int64(base)}
}

// TransformPoint returns the pixel offset of timestamp t.
func (m *Matrix) TransformPoint(t int64) float64 {
	return float64(t-m.BaseTime)*m.Scale + m.Translate
}

// TransformFloat returns the pixel offset of a fractional timestamp.
func (m *Matrix) TransformFloat(t float64) float64 {
	return (t-float64(m.BaseTime))*m.Scale + m.Translate
}

// InverseTransform returns the timestamp shown at pixel offset x.
func (m *Matrix) InverseTransform(x float64) float64 {
	return float64(m.BaseTime) + (x-m.Translate)/m.Scale
}

// Rebase returns an equivalent matrix anchored at baseTime.
func (m *Matrix) Rebase(baseTime int64) *Matrix {
	return &Matrix{
		Scale:     m.Scale,
		Translate: m.Translate + float64(baseTime-m.BaseTime)*m.Scale,
		BaseTime:  baseTime,
	}
}

// Pan returns the matrix shifted by dx pixels.
func (m *Matrix) Pan(dx float64) *Matrix {
	return &Matrix{Scale: m.Scale, Translate: m.Translate + dx, BaseTime: m.BaseTime}
}

// ZoomAt returns a matrix with the new scale that keeps the timestamp under
// pixel x in place. The result is re-anchored on that timestamp.
func (m *Matrix) ZoomAt(x, scale float64) *Matrix {
	anchor := m.InverseTransform(x)
	base := math.Floor(anchor)
	return &Matrix{
		Scale:     scale,
		Translate: x - (anchor-base)*scale,
		BaseTime:  int64(base),
	}
}

// VisibleRange returns the timestamps at both edges of a viewport of width pixels.
func (m *Matrix) VisibleRange(width float64) (start, end float64) {
	return m.InverseTransform(0), m.InverseTransform(width)
}
