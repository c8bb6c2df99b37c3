package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowline/render/canvas"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestCanvas_FillRect(t *testing.T) {
	testCases := []struct {
		description string
		ratio       float64
		inside      [2]int
		outside     [2]int
	}{
		{description: "ratio 1", ratio: 1, inside: [2]int{15, 15}, outside: [2]int{25, 25}},
		{description: "ratio 2", ratio: 2, inside: [2]int{39, 39}, outside: [2]int{41, 41}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			c, err := New(40, 30, testCase.ratio)
			require.NoError(t, err)
			assert.Equal(t, int(40*testCase.ratio), c.Image().Bounds().Dx())
			c.Clear(white)
			c.SetFillColor(red)
			c.FillRect(10, 10, 10, 10)
			assert.Equal(t, color.RGBA{R: 255, A: 255}, c.Image().RGBAAt(testCase.inside[0], testCase.inside[1]))
			assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c.Image().RGBAAt(testCase.outside[0], testCase.outside[1]))
		})
	}
}

func TestCanvas_ClipAndAlpha(t *testing.T) {
	c, err := New(40, 40, 1)
	require.NoError(t, err)
	c.Clear(white)
	c.Save()
	c.BeginPath()
	c.Rect(0, 0, 20, 40)
	c.Clip()
	c.SetFillColor(red)
	c.SetAlpha(0.5)
	c.FillRect(0, 0, 40, 40)
	c.Restore()

	clipped := c.Image().RGBAAt(30, 10)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, clipped)
	blended := c.Image().RGBAAt(10, 10)
	assert.Equal(t, uint8(255), blended.R)
	assert.InDelta(t, 128, int(blended.G), 2)
}

func TestCanvas_Stroke(t *testing.T) {
	c, err := New(40, 40, 1)
	require.NoError(t, err)
	c.Clear(white)
	c.SetStrokeColor(red)
	c.SetLineWidth(4)
	c.BeginPath()
	c.MoveTo(0, 20)
	c.LineTo(40, 20)
	c.Stroke()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.Image().RGBAAt(20, 20))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c.Image().RGBAAt(20, 30))
}

func TestCanvas_Text(t *testing.T) {
	c, err := New(200, 40, 1)
	require.NoError(t, err)
	c.Clear(white)
	c.SetFont(canvas.Font{Size: 12})
	c.SetFillColor(color.NRGBA{A: 255})
	c.SetTextBaseline(canvas.BaselineMiddle)
	c.FillText("Review order", 10, 20)

	width := c.MeasureText("Review order")
	assert.Greater(t, width, 40.0)
	c.SetFont(canvas.Font{Size: 12, Bold: true})
	assert.Greater(t, c.MeasureText("Review order"), width)

	painted := 0
	img := c.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y).R < 128 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 20)
}

func TestCanvas_EncodePNG(t *testing.T) {
	c, err := New(30, 20, 2)
	require.NoError(t, err)
	c.Clear(white)
	buf := new(bytes.Buffer)
	require.NoError(t, c.EncodePNG(buf))
	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
	assert.Equal(t, 30, c.Scaled(30, 20).Bounds().Dx())
}
