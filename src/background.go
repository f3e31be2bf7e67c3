package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// The background renderers form a closed set of variants behind a single
// Render switch. Every variant fills the full width x height area and never
// assumes prior canvas content. Gradient variants validate their inputs at
// construction time, not at render time.

// PALETTE_BASE_COLOR is the dark base fill under palette-derived gradients.
const PALETTE_BASE_COLOR = "#1e1e1e"

type BackgroundKind int

const (
	bgSolid BackgroundKind = iota
	bgLinearGradient
	bgCustomGradient
	bgRadialGradient
	bgImage
	bgBlurredImage
	bgPaletteGradient
	bgCustom
)

type FitMode int

const (
	FitStretch FitMode = iota // ignore aspect ratio
	FitContain                // scale to fully contain, letterbox, centered
	FitCover                  // scale to fully cover, crop, centered
)

type GradientAxis int

const (
	AxisVertical GradientAxis = iota
	AxisHorizontal
	AxisDiagonal
)

// GradientStop pairs a position fraction in [0,1] with a color. Stops are
// handed to the gradient in caller-supplied order.
type GradientStop struct {
	Position float64
	Color    RGB
}

type PaletteStyle int

const (
	PaletteSmooth PaletteStyle = iota
	PaletteEmphasized
)

type PaletteDirection int

const (
	LightToDark PaletteDirection = iota
	DarkToLight
)

// Background is an immutable background renderer variant.
type Background struct {
	kind BackgroundKind

	color    RGB
	colors   []RGB
	bottomUp bool

	stops []GradientStop
	axis  GradientAxis

	centerX, centerY float64

	img        image.Image
	fit        FitMode
	blurRadius float64
	brightness float64

	palette   Palette
	style     PaletteStyle
	direction PaletteDirection

	renderFn func(dc *gg.Context, width, height int)
}

func NewSolidBackground(c RGB) *Background {
	return &Background{kind: bgSolid, color: c}
}

// NewLinearGradientBackground distributes colors evenly over a vertical
// gradient. bottomUp flips the gradient endpoints.
func NewLinearGradientBackground(colors []RGB, bottomUp bool) (*Background, error) {
	if len(colors) < 2 {
		return nil, errors.New("linear gradient needs at least 2 colors")
	}
	return &Background{kind: bgLinearGradient, colors: colors, bottomUp: bottomUp}, nil
}

// NewCustomGradientBackground uses explicit stops along the given axis. The
// stops are applied in the order given; the underlying gradient primitive
// expects non-decreasing positions, and that ordering is the caller's
// responsibility.
func NewCustomGradientBackground(stops []GradientStop, axis GradientAxis) (*Background, error) {
	if len(stops) < 2 {
		return nil, errors.New("custom gradient needs at least 2 stops")
	}
	for _, s := range stops {
		if s.Position < 0 || s.Position > 1 {
			return nil, fmt.Errorf("gradient stop position %v outside [0,1]", s.Position)
		}
	}
	return &Background{kind: bgCustomGradient, stops: stops, axis: axis}, nil
}

// NewRadialGradientBackground centers the gradient at the given width/height
// fractions. Negative fractions select the default center (0.5, 0.5). The
// outer radius is max(width, height) so the fill always covers the canvas.
func NewRadialGradientBackground(colors []RGB, centerX, centerY float64) (*Background, error) {
	if len(colors) < 2 {
		return nil, errors.New("radial gradient needs at least 2 colors")
	}
	if centerX < 0 {
		centerX = 0.5
	}
	if centerY < 0 {
		centerY = 0.5
	}
	return &Background{kind: bgRadialGradient, colors: colors, centerX: centerX, centerY: centerY}, nil
}

func NewImageBackground(img image.Image, fit FitMode) *Background {
	return &Background{kind: bgImage, img: img, fit: fit}
}

// NewBlurredImageBackground composites the image offscreen with the given fit
// policy, blurs it, and dims it by the brightness factor in (0,1].
func NewBlurredImageBackground(img image.Image, blurRadius, brightness float64, fit FitMode) *Background {
	if brightness <= 0 || brightness > 1 {
		brightness = 1
	}
	return &Background{kind: bgBlurredImage, img: img, blurRadius: blurRadius, brightness: brightness, fit: fit}
}

// NewPaletteGradientBackground overlays a semi-transparent gradient built
// from an extracted palette on a dark base. An empty palette degrades to a
// solid black fill; a single color becomes a solid fill of that color.
func NewPaletteGradientBackground(palette Palette, style PaletteStyle, direction PaletteDirection) *Background {
	return &Background{kind: bgPaletteGradient, palette: palette, style: style, direction: direction}
}

func NewCustomBackground(fn func(dc *gg.Context, width, height int)) *Background {
	return &Background{kind: bgCustom, renderFn: fn}
}

// Render paints the full width x height area of dc.
func (b *Background) Render(dc *gg.Context, width, height int) error {
	w := float64(width)
	h := float64(height)

	switch b.kind {
	case bgSolid:
		dc.SetHexColor(b.color.Hex())
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

	case bgLinearGradient:
		y0, y1 := 0.0, h-1
		if b.bottomUp {
			y0, y1 = h-1, 0
		}
		grad := gg.NewLinearGradient(0, y0, 0, y1)
		for i, c := range b.colors {
			grad.AddColorStop(float64(i)/float64(len(b.colors)-1), opaque(c))
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

	case bgCustomGradient:
		x1, y1 := 0.0, h-1
		switch b.axis {
		case AxisHorizontal:
			x1, y1 = w-1, 0
		case AxisDiagonal:
			x1, y1 = w-1, h-1
		}
		grad := gg.NewLinearGradient(0, 0, x1, y1)
		for _, s := range b.stops {
			grad.AddColorStop(s.Position, opaque(s.Color))
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

	case bgRadialGradient:
		cx := b.centerX * w
		cy := b.centerY * h
		radius := w
		if h > w {
			radius = h
		}
		grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
		for i, c := range b.colors {
			grad.AddColorStop(float64(i)/float64(len(b.colors)-1), opaque(c))
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

	case bgImage:
		if b.img == nil {
			return errors.New("image background has no image")
		}
		// Letterboxed fit leaves bars; paint them black so the full area is
		// always covered
		if b.fit == FitContain {
			dc.SetHexColor("#000000")
			dc.DrawRectangle(0, 0, w, h)
			dc.Fill()
		}
		drawFitted(dc, b.img, width, height, b.fit)

	case bgBlurredImage:
		if b.img == nil {
			return errors.New("blurred image background has no image")
		}
		off := gg.NewContext(width, height)
		if b.fit == FitContain {
			off.SetHexColor("#000000")
			off.DrawRectangle(0, 0, w, h)
			off.Fill()
		}
		drawFitted(off, b.img, width, height, b.fit)

		rgba, ok := off.Image().(*image.RGBA)
		if !ok {
			return errors.New("offscreen surface is not RGBA")
		}
		blurImage(rgba, b.blurRadius)
		dimPixels(rgba, b.brightness)
		dc.DrawImage(rgba, 0, 0)

	case bgPaletteGradient:
		b.renderPaletteGradient(dc, w, h)

	case bgCustom:
		if b.renderFn == nil {
			return errors.New("custom background has no render function")
		}
		b.renderFn(dc, width, height)

	default:
		return fmt.Errorf("unknown background kind %d", b.kind)
	}
	return nil
}

// Emphasized stop positions bias color transitions toward the canvas edges.
// The values are fixed per direction and only the first five palette colors
// get their own stop; extras collapse onto the final one.
var (
	emphasizedStopsLightToDark = [5]float64{0, 0.1, 0.3, 0.5, 1}
	emphasizedStopsDarkToLight = [5]float64{0, 0.5, 0.7, 0.9, 1}

	// The darkest end is rendered semi-transparent so the base fill bleeds
	// through; the lightest end stays fully opaque.
	emphasizedAlphasLightToDark = [5]uint8{255, 242, 217, 178, 140}
	emphasizedAlphasDarkToLight = [5]uint8{140, 178, 217, 242, 255}
)

func (b *Background) renderPaletteGradient(dc *gg.Context, w, h float64) {
	if len(b.palette) == 0 {
		dc.SetHexColor("#000000")
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
		return
	}

	dc.SetHexColor(PALETTE_BASE_COLOR)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	colors := make([]RGB, len(b.palette))
	for i := range b.palette {
		colors[i] = b.palette.rgb(i)
	}
	// Palette order is lightest-first; darkToLight flips it
	if b.direction == DarkToLight {
		for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
			colors[i], colors[j] = colors[j], colors[i]
		}
	}

	if len(colors) == 1 {
		dc.SetHexColor(colors[0].Hex())
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
		return
	}

	grad := gg.NewLinearGradient(0, 0, 0, h-1)
	switch b.style {
	case PaletteEmphasized:
		positions := emphasizedStopsLightToDark
		alphas := emphasizedAlphasLightToDark
		if b.direction == DarkToLight {
			positions = emphasizedStopsDarkToLight
			alphas = emphasizedAlphasDarkToLight
		}
		for i, c := range colors {
			slot := i
			if slot > 4 {
				slot = 4
			}
			grad.AddColorStop(positions[slot], color.NRGBA{c.R, c.G, c.B, alphas[slot]})
		}
	default:
		for i, c := range colors {
			grad.AddColorStop(float64(i)/float64(len(colors)-1), opaque(c))
		}
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// Describe returns a short human-readable summary of the variant.
func (b *Background) Describe() string {
	switch b.kind {
	case bgSolid:
		return "solid " + b.color.Hex()
	case bgLinearGradient:
		dir := "top-down"
		if b.bottomUp {
			dir = "bottom-up"
		}
		return fmt.Sprintf("linear gradient (%d colors, %s)", len(b.colors), dir)
	case bgCustomGradient:
		axis := map[GradientAxis]string{AxisVertical: "vertical", AxisHorizontal: "horizontal", AxisDiagonal: "diagonal"}[b.axis]
		return fmt.Sprintf("custom gradient (%d stops, %s)", len(b.stops), axis)
	case bgRadialGradient:
		return fmt.Sprintf("radial gradient (%d colors, center %.2f,%.2f)", len(b.colors), b.centerX, b.centerY)
	case bgImage:
		return "image (" + fitName(b.fit) + ")"
	case bgBlurredImage:
		return fmt.Sprintf("blurred image (radius %.0f, brightness %.2f, %s)", b.blurRadius, b.brightness, fitName(b.fit))
	case bgPaletteGradient:
		if len(b.palette) == 0 {
			return "palette gradient (empty palette, solid black)"
		}
		style := "smooth"
		if b.style == PaletteEmphasized {
			style = "emphasized"
		}
		dir := "light-to-dark"
		if b.direction == DarkToLight {
			dir = "dark-to-light"
		}
		return fmt.Sprintf("palette gradient (%d colors, %s, %s)", len(b.palette), style, dir)
	case bgCustom:
		return "custom"
	}
	return "unknown"
}

// drawFitted draws img onto dc scaled per the fit policy, centered for the
// aspect-preserving modes.
func drawFitted(dc *gg.Context, img image.Image, width, height int, fit FitMode) {
	switch fit {
	case FitStretch:
		dc.DrawImage(imaging.Resize(img, width, height, imaging.Lanczos), 0, 0)
	case FitContain:
		fitted := imaging.Fit(img, width, height, imaging.Lanczos)
		dc.DrawImage(fitted, (width-fitted.Bounds().Dx())/2, (height-fitted.Bounds().Dy())/2)
	case FitCover:
		dc.DrawImage(imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos), 0, 0)
	}
}

// dimPixels multiplies the RGB samples (not alpha) by a brightness factor.
func dimPixels(img *image.RGBA, brightness float64) {
	if brightness >= 1 {
		return
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := (y - bounds.Min.Y) * img.Stride
		for x := 0; x < bounds.Dx(); x++ {
			off := row + x*4
			img.Pix[off] = uint8(float64(img.Pix[off]) * brightness)
			img.Pix[off+1] = uint8(float64(img.Pix[off+1]) * brightness)
			img.Pix[off+2] = uint8(float64(img.Pix[off+2]) * brightness)
		}
	}
}

func opaque(c RGB) color.Color {
	return color.NRGBA{c.R, c.G, c.B, 255}
}

func fitName(fit FitMode) string {
	switch fit {
	case FitContain:
		return "fit"
	case FitCover:
		return "fill"
	}
	return "stretch"
}
