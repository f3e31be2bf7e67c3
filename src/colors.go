package main

import (
	"fmt"
	"image"
	"image/draw"
	"sort"
)

// RGB is an 8-bit-per-channel color without alpha.
type RGB struct {
	R, G, B uint8
}

// Hex returns the canonical "#rrggbb" form, lowercase, always 6 digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lightness is the channel mean on the 0-255 scale.
func (c RGB) Lightness() float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}

// Luminance is the standard relative luminance with channels normalized to [0,1].
func (c RGB) Luminance() float64 {
	return 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
}

// parseHex parses a "#rrggbb" string. Shorthand and alpha forms are rejected.
func parseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	return RGB{r, g, b}, nil
}

// Palette is an ordered list of hex colors, lightest first.
type Palette []string

// rgb converts the palette entry at i, returning black for malformed entries.
func (p Palette) rgb(i int) RGB {
	c, err := parseHex(p[i])
	if err != nil {
		return RGB{}
	}
	return c
}

type colorCount struct {
	color RGB
	count int
}

// ExtractPalette samples the image, quantizes and counts colors, selects a
// lightness-diverse subset and returns it ordered lightest to darkest.
// Images with no qualifying pixels yield an empty palette.
func ExtractPalette(img image.Image, count int) Palette {
	if img == nil || count <= 0 {
		return Palette{}
	}

	candidates := countQuantizedColors(img)
	if len(candidates) == 0 {
		return Palette{}
	}

	// Over-sample so the diversity filter has room to skip similar shades
	seedCount := count * PALETTE_OVERSAMPLE
	if seedCount > len(candidates) {
		seedCount = len(candidates)
	}
	candidates = candidates[:seedCount]

	// Greedy diversity pass: accept a candidate only if its lightness is far
	// enough from every color accepted so far
	selected := make([]RGB, 0, count)
	used := make([]bool, len(candidates))
	for i, cand := range candidates {
		if len(selected) >= count {
			break
		}
		diverse := true
		for _, s := range selected {
			if abs(cand.color.Lightness()-s.Lightness()) <= PALETTE_DIVERSITY_GAP {
				diverse = false
				break
			}
		}
		if diverse {
			selected = append(selected, cand.color)
			used[i] = true
		}
	}

	// Backfill with the most frequent remaining candidates, similarity ignored
	for i, cand := range candidates {
		if len(selected) >= count {
			break
		}
		if !used[i] {
			selected = append(selected, cand.color)
			used[i] = true
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Lightness() > selected[j].Lightness()
	})

	palette := make(Palette, len(selected))
	for i, c := range selected {
		palette[i] = c.Hex()
	}
	return palette
}

// countQuantizedColors samples every 10th pixel in row-major order, drops
// transparent/near-black/near-white samples, quantizes the rest to 32-level
// buckets and returns the tallies sorted by frequency. The tie-break on the
// packed RGB value keeps the ordering deterministic.
func countQuantizedColors(img image.Image) []colorCount {
	src := toNRGBA(img)
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	counts := make(map[RGB]int)
	total := width * height
	for i := 0; i < total; i += PALETTE_SAMPLE_STRIDE {
		off := (i/width)*src.Stride + (i%width)*4
		r := src.Pix[off]
		g := src.Pix[off+1]
		b := src.Pix[off+2]
		a := src.Pix[off+3]

		if a < PALETTE_ALPHA_MIN {
			continue
		}
		if r < PALETTE_BLACK_CUTOFF && g < PALETTE_BLACK_CUTOFF && b < PALETTE_BLACK_CUTOFF {
			continue
		}
		if r > PALETTE_WHITE_CUTOFF && g > PALETTE_WHITE_CUTOFF && b > PALETTE_WHITE_CUTOFF {
			continue
		}

		q := RGB{quantizeChannel(r), quantizeChannel(g), quantizeChannel(b)}
		counts[q]++
	}

	out := make([]colorCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, colorCount{color: c, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return packRGB(out[i].color) < packRGB(out[j].color)
	})
	return out
}

// quantizeChannel rounds to the nearest multiple of 32, clamped to 255
func quantizeChannel(v uint8) uint8 {
	q := (int(v) + PALETTE_QUANT_STEP/2) / PALETTE_QUANT_STEP * PALETTE_QUANT_STEP
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

func packRGB(c RGB) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// toNRGBA normalizes any decoded image to non-premultiplied RGBA so alpha
// filtering sees true channel values
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
