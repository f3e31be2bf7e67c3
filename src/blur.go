package main

import (
	"image"
	"math"
)

// Approximate Gaussian blur as three cascaded box blurs, each separable into
// a horizontal and a vertical sliding-window pass. Runs in O(width*height)
// per pass regardless of radius. Edges are clamped (repeated), never wrapped.

const BLUR_PASSES = 3

// blurImage blurs an RGBA image in place. radius approximates a Gaussian
// sigma; radius <= 0 is a no-op.
func blurImage(img *image.RGBA, radius float64) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 || radius <= 0 {
		return
	}

	if img.Stride == w*4 {
		blurPixels(img.Pix, w, h, radius)
		return
	}

	// Padded stride: blur a tight copy, then write the rows back
	tight := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		copy(tight[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	blurPixels(tight, w, h, radius)
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], tight[y*w*4:(y+1)*w*4])
	}
}

// blurPixels blurs a dense row-major RGBA buffer in place. All four channels
// are blurred identically and independently.
func blurPixels(pix []uint8, width, height int, radius float64) {
	if width <= 0 || height <= 0 || radius <= 0 {
		return
	}

	// Double-buffer ping-pong: each box pass reads one buffer and writes the
	// other, never both at once. The horizontal half writes into scratch, the
	// vertical half writes back into pix, so every pass ends with the result
	// in pix.
	scratch := make([]uint8, len(pix))
	for _, r := range gaussianBoxRadii(radius, BLUR_PASSES) {
		boxBlurHorizontal(pix, scratch, width, height, r)
		boxBlurVertical(scratch, pix, width, height, r)
	}
}

// gaussianBoxRadii computes the n box radii whose cascade approximates a
// Gaussian of the given sigma, using the closed-form ideal box width
// w = sqrt(12*sigma^2/n + 1).
func gaussianBoxRadii(sigma float64, n int) []int {
	wIdeal := math.Sqrt(12*sigma*sigma/float64(n) + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	mIdeal := (12*sigma*sigma - float64(n*wl*wl) - float64(4*n*wl) - float64(3*n)) / float64(-4*wl-4)
	m := int(math.Round(mIdeal))

	radii := make([]int, n)
	for i := range radii {
		size := wl
		if i >= m {
			size = wu
		}
		radii[i] = (size - 1) / 2
	}
	return radii
}

func boxBlurHorizontal(src, dst []uint8, width, height, r int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	if 2*r+1 >= width {
		boxBlurClamped(src, dst, width, height, r, true)
		return
	}

	div := 2*r + 1
	half := div / 2
	for y := 0; y < height; y++ {
		for c := 0; c < 4; c++ {
			base := y*width*4 + c
			first := int(src[base])
			last := int(src[base+(width-1)*4])

			sum := (r + 1) * first
			for x := 0; x < r; x++ {
				sum += int(src[base+x*4])
			}
			for x := 0; x <= r; x++ {
				sum += int(src[base+(x+r)*4]) - first
				dst[base+x*4] = uint8((sum + half) / div)
			}
			for x := r + 1; x < width-r; x++ {
				sum += int(src[base+(x+r)*4]) - int(src[base+(x-r-1)*4])
				dst[base+x*4] = uint8((sum + half) / div)
			}
			for x := width - r; x < width; x++ {
				sum += last - int(src[base+(x-r-1)*4])
				dst[base+x*4] = uint8((sum + half) / div)
			}
		}
	}
}

func boxBlurVertical(src, dst []uint8, width, height, r int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	if 2*r+1 >= height {
		boxBlurClamped(src, dst, width, height, r, false)
		return
	}

	div := 2*r + 1
	half := div / 2
	stride := width * 4
	for x := 0; x < width; x++ {
		for c := 0; c < 4; c++ {
			base := x*4 + c
			first := int(src[base])
			last := int(src[base+(height-1)*stride])

			sum := (r + 1) * first
			for y := 0; y < r; y++ {
				sum += int(src[base+y*stride])
			}
			for y := 0; y <= r; y++ {
				sum += int(src[base+(y+r)*stride]) - first
				dst[base+y*stride] = uint8((sum + half) / div)
			}
			for y := r + 1; y < height-r; y++ {
				sum += int(src[base+(y+r)*stride]) - int(src[base+(y-r-1)*stride])
				dst[base+y*stride] = uint8((sum + half) / div)
			}
			for y := height - r; y < height; y++ {
				sum += last - int(src[base+(y-r-1)*stride])
				dst[base+y*stride] = uint8((sum + half) / div)
			}
		}
	}
}

// boxBlurClamped is the slow path for windows wider than the axis being
// blurred; every tap is clamped individually.
func boxBlurClamped(src, dst []uint8, width, height, r int, horizontal bool) {
	div := 2*r + 1
	half := div / 2
	stride := width * 4
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < 4; c++ {
				sum := 0
				for k := -r; k <= r; k++ {
					sx, sy := x, y
					if horizontal {
						sx = clampInt(x+k, 0, width-1)
					} else {
						sy = clampInt(y+k, 0, height-1)
					}
					sum += int(src[sy*stride+sx*4+c])
				}
				dst[y*stride+x*4+c] = uint8((sum + half) / div)
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
