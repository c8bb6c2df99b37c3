package timescale

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = int64(24 * time.Hour / time.Millisecond)

func TestMatrix_Invertible(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	scales := []float64{1e-8, 1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1}
	offsets := []int64{0, 1, 999, 86_400_000, -86_400_000 * 30, 31_536_000_000}
	for _, scale := range scales {
		m := FromVisibleStart(float64(base)-0.25, scale)
		for _, offset := range offsets {
			ts := base + offset
			x := m.TransformPoint(ts)
			assert.InDelta(t, float64(ts), m.InverseTransform(x), 1e-2, fmt.Sprintf("scale %v offset %v", scale, offset))
		}
	}
}

func TestMatrix_ZoomAt(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	testCases := []struct {
		description string
		from, to    float64
		pixel       float64
	}{
		{description: "zoom in", from: 1e-6, to: 1e-3, pixel: 300},
		{description: "zoom out", from: 1e-2, to: 1e-8, pixel: 800},
		{description: "left edge", from: 1e-5, to: 1e-4, pixel: 0},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			m := FromVisibleStart(float64(base), testCase.from)
			anchor := m.InverseTransform(testCase.pixel)
			zoomed := m.ZoomAt(testCase.pixel, testCase.to)
			assert.Equal(t, testCase.to, zoomed.Scale)
			assert.InDelta(t, anchor, zoomed.InverseTransform(testCase.pixel), 1e-2)
		})
	}
}

func TestMatrix_RebaseAndPan(t *testing.T) {
	m := NewMatrix(0.5, 10, 1_000)
	rebased := m.Rebase(5_000)
	for _, ts := range []int64{0, 1_000, 7_777} {
		assert.InDelta(t, m.TransformPoint(ts), rebased.TransformPoint(ts), 1e-9)
	}
	panned := m.Pan(25)
	assert.InDelta(t, m.TransformPoint(1_000)+25, panned.TransformPoint(1_000), 1e-9)
	start, end := m.VisibleRange(100)
	assert.InDelta(t, 980.0, start, 1e-9)
	assert.InDelta(t, 1180.0, end, 1e-9)
}

func TestZoomCurve(t *testing.T) {
	curve := DefaultZoomCurve()
	assert.InDelta(t, 1e-8, curve.CalculateScale(0), 1e-20)
	assert.InDelta(t, 1.0, curve.CalculateScale(100), 1e-12)
	assert.InDelta(t, 1.0, curve.CalculateScale(250), 1e-12)
	assert.InDelta(t, 1e-8, curve.CalculateScale(-5), 1e-20)

	previous := 0.0
	for zoom := 0.0; zoom <= 100; zoom += 5 {
		scale := curve.CalculateScale(zoom)
		assert.Greater(t, scale, previous)
		previous = scale
		assert.InDelta(t, zoom, curve.CalculateZoom(scale), 1e-6)
	}
	assert.Equal(t, MinZoom, curve.CalculateZoom(1e-12))
	assert.Equal(t, MaxZoom, curve.CalculateZoom(10))
	assert.Equal(t, MinZoom, ClampZoom(math.NaN()))
}

func TestFitScale(t *testing.T) {
	assert.InDelta(t, 0.96, FitScale(1000, 1200, 0.1), 1e-12)
	assert.InDelta(t, 1200.0, FitScale(0, 1200, 0), 1e-12)
}

func TestLevels(t *testing.T) {
	testCases := []struct {
		description string
		scale       float64
		major       Step
		minor       Step
	}{
		{description: "hundred pixels per second", scale: 0.1, major: Step{Second, 1}, minor: Step{Millisecond, 500}},
		{description: "hundred pixels per day", scale: 100 / float64(day), major: Step{Day, 1}, minor: Step{Hour, 3}},
		{description: "coarsest rung", scale: 1e-15, major: Step{Year, 100}, minor: Step{Year, 100}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			major, minor := Levels(testCase.scale)
			assert.Equal(t, testCase.major, major)
			assert.Equal(t, testCase.minor, minor)
		})
	}
}

func TestTicks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	t.Run("days", func(t *testing.T) {
		m := FromVisibleStart(float64(start), 100/float64(day))
		ticks := Ticks(m, 950, Step{Day, 1}, nil)
		require.Len(t, ticks, 10)
		assert.Equal(t, "Jan 1", ticks[0].Label)
		assert.Equal(t, "2024", ticks[0].Context)
		assert.InDelta(t, 0.0, ticks[0].X, 1e-6)
		assert.InDelta(t, 100.0, ticks[1].X, 1e-6)
		assert.Equal(t, "Jan 10", ticks[9].Label)
	})

	t.Run("months", func(t *testing.T) {
		m := FromVisibleStart(float64(start), 1000/float64(366*day))
		ticks := Ticks(m, 990, Step{Month, 1}, time.UTC)
		require.Len(t, ticks, 12)
		for i, tick := range ticks {
			assert.Equal(t, time.Month(i+1).String()[:3], tick.Label)
		}
	})

	t.Run("five years", func(t *testing.T) {
		from := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
		m := FromVisibleStart(float64(from), 1000/float64(20*366*day))
		ticks := Ticks(m, 1000, Step{Year, 5}, time.UTC)
		require.NotEmpty(t, ticks)
		assert.Equal(t, "2025", ticks[0].Label)
		assert.Equal(t, "", ticks[0].Context)
	})
}

func TestFormat(t *testing.T) {
	at := time.Date(2024, 7, 4, 13, 5, 9, 120*int(time.Millisecond), time.UTC)
	testCases := []struct {
		unit    Unit
		label   string
		context string
	}{
		{Millisecond, "13:05:09.120", "Jul 4, 2024"},
		{Second, "13:05:09", "Jul 4, 2024"},
		{Hour, "13:05", "Jul 4, 2024"},
		{Week, "Jul 4", "2024"},
		{Month, "Jul", "2024"},
		{Year, "2024", ""},
	}
	for _, testCase := range testCases {
		t.Run(string(testCase.unit), func(t *testing.T) {
			label, context := Format(at, testCase.unit)
			assert.Equal(t, testCase.label, label)
			assert.Equal(t, testCase.context, context)
		})
	}
}
