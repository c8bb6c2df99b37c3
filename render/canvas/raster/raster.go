package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/viant/flowline/render/canvas"
)

var (
	fontsOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

var _ canvas.Canvas = (*Canvas)(nil)

type faceKey struct {
	size float64
	bold bool
}

// Canvas paints onto an RGBA image whose size is the logical size times the
// pixel ratio.
type Canvas struct {
	canvas.Context
	img   *image.RGBA
	ratio float64
	faces map[faceKey]font.Face
}

// New creates a raster canvas of the given logical size.
func New(width, height, pixelRatio float64) (*Canvas, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	ret := &Canvas{faces: map[faceKey]font.Face{}}
	ret.Resize(width, height, pixelRatio)
	return ret, nil
}

func (c *Canvas) Size() (float64, float64) {
	return c.Bounds.Max.X, c.Bounds.Max.Y
}

func (c *Canvas) PixelRatio() float64 { return c.ratio }

// Resize reallocates the backing image; the previous content is discarded.
func (c *Canvas) Resize(width, height, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if c.ratio != pixelRatio {
		c.closeFaces()
	}
	c.ratio = pixelRatio
	c.Reset(width, height)
	w := int(math.Ceil(width * pixelRatio))
	h := int(math.Ceil(height * pixelRatio))
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA { return c.img }

// EncodePNG writes the backing image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Scaled returns the backing image resampled to width x height device pixels.
func (c *Canvas) Scaled(width, height int) *image.RGBA {
	ret := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(ret, ret.Bounds(), c.img, c.img.Bounds(), xdraw.Src, nil)
	return ret
}

func (c *Canvas) Clear(col color.Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

func (c *Canvas) Fill() {
	c.fill(c.Path(), c.FillColor)
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.RectPath(x, y, w, h)
	c.Fill()
}

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.RectPath(x, y, w, h)
	c.Stroke()
}

// Stroke outlines the current path with butt-capped segments.
func (c *Canvas) Stroke() {
	half := c.LineWidth / 2
	if half <= 0 {
		return
	}
	var quads []canvas.Subpath
	for _, sub := range c.Path() {
		for _, dash := range canvas.Dash(sub, c.LineDash) {
			points := dash.Points
			if dash.Closed && len(points) > 1 {
				points = append(points, points[0])
			}
			for i := 1; i < len(points); i++ {
				if quad, ok := segment(points[i-1], points[i], half); ok {
					quads = append(quads, quad)
				}
			}
		}
	}
	c.fill(quads, c.StrokeColor)
}

func segment(from, to canvas.Point, half float64) (canvas.Subpath, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return canvas.Subpath{}, false
	}
	nx, ny := -dy/length*half, dx/length*half
	return canvas.Subpath{Closed: true, Points: []canvas.Point{
		{X: from.X + nx, Y: from.Y + ny},
		{X: to.X + nx, Y: to.Y + ny},
		{X: to.X - nx, Y: to.Y - ny},
		{X: from.X - nx, Y: from.Y - ny},
	}}, true
}

// fill rasterizes subpaths inside the clip rectangle.
func (c *Canvas) fill(path []canvas.Subpath, col color.NRGBA) {
	clip := c.device(c.ClipRect).Intersect(c.img.Bounds())
	if clip.Empty() || len(path) == 0 {
		return
	}
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	drawn := false
	for _, sub := range path {
		if len(sub.Points) < 2 {
			continue
		}
		for i, p := range sub.Points {
			x, y := float32(p.X*c.ratio)-ox, float32(p.Y*c.ratio)-oy
			if i == 0 {
				z.MoveTo(x, y)
				continue
			}
			z.LineTo(x, y)
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	z.Draw(c.img, clip, image.NewUniform(canvas.WithAlpha(col, c.Alpha)), image.Point{})
}

func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	face := c.face()
	clip := c.device(c.ClipRect).Intersect(c.img.Bounds())
	if face == nil || clip.Empty() {
		return
	}
	origin := c.Origin(x, y)
	px, py := origin.X*c.ratio, origin.Y*c.ratio
	switch c.Align {
	case canvas.AlignCenter:
		px -= c.deviceWidth(face, text) / 2
	case canvas.AlignRight:
		px -= c.deviceWidth(face, text)
	}
	metrics := face.Metrics()
	ascent, descent := float64(metrics.Ascent)/64, float64(metrics.Descent)/64
	switch c.Baseline {
	case canvas.BaselineTop:
		py += ascent
	case canvas.BaselineMiddle:
		py += (ascent - descent) / 2
	case canvas.BaselineBottom:
		py -= descent
	}
	drawer := &font.Drawer{
		Dst:  c.img.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(canvas.WithAlpha(c.FillColor, c.Alpha)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(px * 64), Y: fixed.Int26_6(py * 64)},
	}
	drawer.DrawString(text)
}

// MeasureText returns the advance of text in logical pixels.
func (c *Canvas) MeasureText(text string) float64 {
	face := c.face()
	if face == nil {
		return 0
	}
	return c.deviceWidth(face, text) / c.ratio
}

func (c *Canvas) deviceWidth(face font.Face, text string) float64 {
	return float64(font.MeasureString(face, text)) / 64
}

func (c *Canvas) face() font.Face {
	key := faceKey{size: c.Font.Size, bold: c.Font.Bold}
	if face, ok := c.faces[key]; ok {
		return face
	}
	source := regular
	if key.bold {
		source = bold
	}
	size := key.size
	if size <= 0 {
		size = canvas.FontSize(c.ratio)
	}
	face, err := opentype.NewFace(source, &opentype.FaceOptions{Size: size * c.ratio, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil
	}
	c.faces[key] = face
	return face
}

func (c *Canvas) closeFaces() {
	for key, face := range c.faces {
		_ = face.Close()
		delete(c.faces, key)
	}
}

func (c *Canvas) device(r canvas.Rectangle) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X*c.ratio)), int(math.Floor(r.Min.Y*c.ratio)),
		int(math.Ceil(r.Max.X*c.ratio)), int(math.Ceil(r.Max.Y*c.ratio)),
	)
}
