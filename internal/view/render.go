package view

import (
	"math"
	"strings"

	"github.com/qoiview/qoiview/qoi"
)

// Color is an opaque background color.
type Color struct {
	R, G, B uint8
}

// Frame is what the renderer draws: a (possibly still decoding) framebuffer
// plus the number of scanlines that are valid so far.
type Frame struct {
	Desc qoi.Desc
	Pix  []byte
	Rows int // decoded rows; rows beyond this show the background
}

// Render draws the frame into a cols×rows character grid using half-block
// cells, two image samples per cell, and returns the ANSI string.
//
// The mapping inverts the original screen transform: a cell's normalized
// device coordinate is divided by aspect*zoom and shifted by the pan offset
// to find the texture coordinate it samples.
func Render(f Frame, s State, cols, rows int, bg Color) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	gridH := rows * 2

	var b strings.Builder
	b.Grow(cols * rows * 40)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := f.sample(s, col, row*2, cols, gridH, bg)
			bot := f.sample(s, col, row*2+1, cols, gridH, bg)
			b.WriteString("\x1b[38;2;")
			writeRGB(&b, top)
			b.WriteString("m\x1b[48;2;")
			writeRGB(&b, bot)
			b.WriteString("m▀")
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}

// sample returns the color of grid pixel (gx, gy), blending alpha over bg.
func (f Frame) sample(s State, gx, gy, gridW, gridH int, bg Color) Color {
	// grid pixel center to NDC, y up
	sx := (float64(gx)+0.5)/float64(gridW)*2 - 1
	sy := 1 - (float64(gy)+0.5)/float64(gridH)*2

	// invert position transform, then map to texture space
	px := sx/(s.AspectX*s.Zoom) + s.OffsetX
	py := sy/(s.AspectY*s.Zoom) + s.OffsetY
	u := (px + 1) / 2
	v := (1 - py) / 2

	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return bg
	}

	fx := u * float64(f.Desc.Width)
	fy := v * float64(f.Desc.Height)

	if s.Filter == FilterNearest {
		return f.texel(int(fx), int(fy), bg)
	}

	// bilinear
	x0 := math.Floor(fx - 0.5)
	y0 := math.Floor(fy - 0.5)
	tx := fx - 0.5 - x0
	ty := fy - 0.5 - y0

	c00 := f.texel(int(x0), int(y0), bg)
	c10 := f.texel(int(x0)+1, int(y0), bg)
	c01 := f.texel(int(x0), int(y0)+1, bg)
	c11 := f.texel(int(x0)+1, int(y0)+1, bg)

	lerp := func(a, b uint8, t float64) float64 {
		return float64(a)*(1-t) + float64(b)*t
	}
	mix := func(a, b, c, d uint8) uint8 {
		top := lerp(a, b, tx)
		bot := lerp(c, d, tx)
		return uint8(top*(1-ty) + bot*ty + 0.5)
	}
	return Color{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
	}
}

// texel fetches image pixel (x, y) clamped to the image edges, blended over
// bg by its alpha. Rows not yet decoded return bg.
func (f Frame) texel(x, y int, bg Color) Color {
	w, h := int(f.Desc.Width), int(f.Desc.Height)
	if x < 0 {
		x = 0
	}
	if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	if y >= f.Rows {
		return bg
	}

	ch := int(f.Desc.Channels)
	off := (y*w + x) * ch
	r, g, b := f.Pix[off], f.Pix[off+1], f.Pix[off+2]
	if ch == 3 {
		return Color{r, g, b}
	}

	a := uint16(f.Pix[off+3])
	blend := func(c uint8, back uint8) uint8 {
		return uint8((uint16(c)*a + uint16(back)*(255-a)) / 255)
	}
	return Color{blend(r, bg.R), blend(g, bg.G), blend(b, bg.B)}
}

func writeRGB(b *strings.Builder, c Color) {
	writeUint(b, c.R)
	b.WriteByte(';')
	writeUint(b, c.G)
	b.WriteByte(';')
	writeUint(b, c.B)
}

func writeUint(b *strings.Builder, v uint8) {
	if v >= 100 {
		b.WriteByte('0' + v/100)
	}
	if v >= 10 {
		b.WriteByte('0' + v/10%10)
	}
	b.WriteByte('0' + v%10)
}
