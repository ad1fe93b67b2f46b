package presenter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"runtime"

	ico "github.com/sergeymakinen/go-ico"

	"github.com/easysurf/easysurf/internal/surf"
)

// IconSize is the edge length of the rendered tray icon in pixels.
const IconSize = 32

// Format is an icon container format.
type Format int

// Icon formats.
const (
	FormatPNG Format = iota
	FormatICO
)

// DefaultFormat is the format the host tray expects. Windows wants ICO,
// everything else takes PNG.
func DefaultFormat() Format {
	if runtime.GOOS == "windows" {
		return FormatICO
	}
	return FormatPNG
}

var palette = map[surf.Color]color.RGBA{
	surf.Green:  {R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
	surf.Yellow: {R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
	surf.Red:    {R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
	surf.Gray:   {R: 0x95, G: 0xa5, B: 0xa6, A: 0xff},
}

// RGBA returns the fill color used for a status color.
func RGBA(c surf.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[surf.Gray]
}

// RenderError reports a failure to draw or encode the tray icon.
type RenderError struct {
	Color surf.Color
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s icon: %v", e.Color, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// DrawIcon draws a filled disc in the status color on a transparent square.
func DrawIcon(c surf.Color, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := RGBA(c)

	center := float64(size) / 2
	radius := center - 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			d := dx*dx + dy*dy
			switch {
			case d <= (radius-1)*(radius-1):
				img.SetRGBA(x, y, fill)
			case d <= radius*radius:
				// Soft edge: half-alpha ring, premultiplied.
				img.SetRGBA(x, y, color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: fill.A / 2})
			}
		}
	}
	return img
}

// RenderIcon draws the status icon and encodes it in the given format.
func RenderIcon(c surf.Color, format Format) ([]byte, error) {
	img := DrawIcon(c, IconSize)

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatICO:
		err = ico.Encode(&buf, img)
	case FormatPNG:
		err = png.Encode(&buf, img)
	default:
		err = fmt.Errorf("unknown icon format %d", format)
	}
	if err != nil {
		return nil, &RenderError{Color: c, Err: err}
	}
	return buf.Bytes(), nil
}
