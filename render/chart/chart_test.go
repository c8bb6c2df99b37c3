package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render"
	"github.com/viant/flowline/render/canvas"
	"github.com/viant/flowline/render/canvas/record"
	"github.com/viant/flowline/render/timescale"
)

func recordFactory(width, height, pixelRatio float64) (canvas.Canvas, error) {
	return record.New(width, height, pixelRatio), nil
}

func testOptions() Options {
	options := DefaultOptions()
	options.Width = 1000
	options.Height = 600
	return options
}

func twoTasks() []gantt.Element {
	return []gantt.Element{
		&gantt.Task{Base: gantt.Base{ID: "A", Name: "Approve", Start: 1000}, End: 11000},
		&gantt.Task{Base: gantt.Base{ID: "B", Name: "Bill", Start: 11000}, End: 21000},
	}
}

func manyTasks(n int) []gantt.Element {
	var ret []gantt.Element
	for i := 0; i < n; i++ {
		start := int64(1000 + i*1000)
		ret = append(ret, &gantt.Task{Base: gantt.Base{ID: fmt.Sprintf("T%d", i), Start: start}, End: start + 500})
	}
	return ret
}

func newChart(t *testing.T, options Options, opts ...Option) *Chart {
	t.Helper()
	opts = append([]Option{WithOptions(options), WithCanvasFactory(recordFactory)}, opts...)
	ret, err := New(opts...)
	require.NoError(t, err)
	return ret
}

func TestNew_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(o *Options)
	}{
		{description: "height within ruler", mutate: func(o *Options) { o.Height = render.TimelineHeight }},
		{description: "zero width", mutate: func(o *Options) { o.Width = 0 }},
		{description: "zero pixel ratio", mutate: func(o *Options) { o.PixelRatio = 0 }},
		{description: "padding", mutate: func(o *Options) { o.AutoFitPadding = 0.5 }},
		{description: "curve", mutate: func(o *Options) { o.Curve.MaxScale = o.Curve.MinScale }},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			options := testOptions()
			testCase.mutate(&options)
			_, err := New(WithOptions(options), WithCanvasFactory(recordFactory))
			assert.Error(t, err)
		})
	}
}

func TestChart_SetDataAutoFit(t *testing.T) {
	var zooms []float64
	var views [][2]float64
	c := newChart(t, testOptions(),
		WithOnZoomChange(func(zoom float64) { zooms = append(zooms, zoom) }),
		WithOnViewChange(func(start, end float64) { views = append(views, [2]float64{start, end}) }),
	)
	require.NoError(t, c.SetData(twoTasks(), nil))
	assert.True(t, c.Flush(context.Background()))

	start, end := c.VisibleRange()
	assert.InDelta(t, -1500, start, 1)
	assert.InDelta(t, 23500, end, 1)
	require.Len(t, zooms, 1)
	require.Len(t, views, 1)
	assert.InDelta(t, -1500, views[0][0], 1)
	assert.Equal(t, timescale.Second, c.CurrentTimeUnit())

	stats := c.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Elements)
	content := c.Layers().Content.(*record.Canvas)
	assert.NotNil(t, content.FindText("Approve"))
	assert.NotNil(t, content.FindText("Bill"))

	assert.True(t, c.AutoFit())
	assert.Len(t, zooms, 1)
	assert.True(t, c.Flush(context.Background()))
	assert.Len(t, views, 1)
}

func TestChart_ClickAndHover(t *testing.T) {
	var clicked []string
	c := newChart(t, testOptions(), WithOnElementClick(func(element gantt.Element) {
		clicked = append(clicked, element.Common().ID)
	}))
	require.NoError(t, c.SetData(twoTasks(), nil))

	// A spans x 100..500 on row 0, B spans 500..900 on row 1.
	testCases := []struct {
		description string
		x, y        float64
		expect      string
	}{
		{description: "select A", x: 300, y: 15, expect: "A"},
		{description: "toggle A off", x: 300, y: 15, expect: ""},
		{description: "select B", x: 700, y: 45, expect: "B"},
		{description: "empty space clears", x: 300, y: 45, expect: ""},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, c.Click(testCase.x, testCase.y), testCase.description)
	}
	assert.Equal(t, []string{"A", "B"}, clicked)

	assert.Equal(t, "B", c.Hover(700, 45))
	assert.Equal(t, "", c.Hover(50, 15))

	c.Select("B")
	assert.Equal(t, "B", c.Selected())
	c.Select("missing")
	assert.Equal(t, "", c.Selected())
}

func TestChart_WheelZoomKeepsCursorTime(t *testing.T) {
	options := testOptions()
	options.AutoFit = false
	options.CurrentDate = 1_700_000_000_000
	c := newChart(t, options)

	at := func(x float64) float64 {
		start, end := c.VisibleRange()
		return start + x*(end-start)/options.Width
	}
	before := at(100)
	zoom := c.Zoom()
	c.Wheel(WheelEvent{X: 100, DeltaY: -100, Ctrl: true})
	assert.InDelta(t, zoom+options.ZoomStep, c.Zoom(), 1e-9)
	assert.InDelta(t, before, at(100), 1)

	c.SetZoom(150)
	assert.Equal(t, timescale.MaxZoom, c.Zoom())
	c.Wheel(WheelEvent{X: 100, DeltaY: -100, Ctrl: true})
	assert.Equal(t, timescale.MaxZoom, c.Zoom())
}

func TestChart_Pan(t *testing.T) {
	options := testOptions()
	options.AutoFit = false
	c := newChart(t, options)
	start, end := c.VisibleRange()
	scale := options.Width / (end - start)

	c.Pan(100)
	panned, _ := c.VisibleRange()
	assert.InDelta(t, start-100/scale, panned, 1e-3)

	c.Wheel(WheelEvent{DeltaX: 100})
	restored, _ := c.VisibleRange()
	assert.InDelta(t, start, restored, 1e-3)
}

func TestChart_MatrixAnchoredAtVisibleStart(t *testing.T) {
	c := newChart(t, testOptions())
	require.NoError(t, c.SetData(twoTasks(), nil))
	c.Pan(37.5)

	start, _ := c.VisibleRange()
	m := c.matrix()
	assert.Equal(t, int64(math.Floor(start)), m.BaseTime)
	assert.InDelta(t, 0, m.TransformFloat(start), 1e-6)
	assert.InDelta(t, c.options.Width/2, m.TransformFloat(c.center), 1e-6)
}

func TestChart_ScrollAndVirtualization(t *testing.T) {
	c := newChart(t, testOptions())
	require.NoError(t, c.SetData(manyTasks(100), nil))

	// 100 rows of 30px in a 550px viewport.
	c.Wheel(WheelEvent{DeltaY: 5000})
	assert.Equal(t, 2450.0, c.ScrollTop())
	c.Scroll(-5)
	assert.Equal(t, 0.0, c.ScrollTop())

	assert.False(t, c.ScrollToElement("missing"))
	assert.True(t, c.ScrollToElement("T50"))
	assert.Equal(t, 1240.0, c.ScrollTop())
	start, end := c.VisibleRange()
	assert.InDelta(t, 51250, (start+end)/2, 1e-3)

	require.True(t, c.Flush(context.Background()))
	stats := c.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, 40, stats.Rows)
	assert.Contains(t, stats.Visible, "T50")
	assert.NotContains(t, stats.Visible, "T0")
}

func TestChart_FramesCoalesce(t *testing.T) {
	c := newChart(t, testOptions())
	require.NoError(t, c.SetData(twoTasks(), nil))
	c.Scroll(10)
	c.Pan(5)
	assert.True(t, c.Flush(context.Background()))
	assert.False(t, c.Flush(context.Background()))
	stats := c.FrameStats()
	assert.Equal(t, 3, stats.Requested)
	assert.Equal(t, 2, stats.Coalesced)
	assert.Equal(t, 1, stats.Painted)
}

func TestChart_Resize(t *testing.T) {
	c := newChart(t, testOptions())
	require.NoError(t, c.Resize(800, 400, 2))
	layers := c.Layers()
	width, height := layers.Content.Size()
	assert.Equal(t, 800.0, width)
	assert.Equal(t, 350.0, height)
	assert.Equal(t, 2.0, layers.Content.PixelRatio())
	width, height = layers.Timeline.Size()
	assert.Equal(t, 800.0, width)
	assert.Equal(t, render.TimelineHeight, height)

	assert.Error(t, c.Resize(800, 40, 1))
}

func TestChart_Snapshot(t *testing.T) {
	options := testOptions()
	options.Width, options.Height = 200, 150
	c, err := New(WithOptions(options))
	require.NoError(t, err)
	require.NoError(t, c.SetData(twoTasks(), nil))

	buf := &bytes.Buffer{}
	require.NoError(t, c.Snapshot(context.Background(), buf))
	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	recorded := newChart(t, options)
	assert.ErrorIs(t, recorded.Snapshot(context.Background(), &bytes.Buffer{}), ErrNotRaster)
}

func TestChart_Close(t *testing.T) {
	c := newChart(t, testOptions())
	require.NoError(t, c.SetData(twoTasks(), nil))
	c.Close()
	assert.False(t, c.Flush(context.Background()))
	assert.ErrorIs(t, c.SetData(twoTasks(), nil), ErrClosed)
	assert.ErrorIs(t, c.Render(), ErrClosed)
	assert.ErrorIs(t, c.Resize(100, 100, 1), ErrClosed)
}
