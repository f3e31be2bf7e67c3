package main

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Track listing layout constants
const (
	TRACK_COLUMN_GAP  = 50.0
	TRACKS_PER_COLUMN = 10
	TRACK_CAPACITY    = 20 // fixed two-column layout, extra tracks are dropped
)

// MeasureFunc returns the rendered pixel width of a string in the current
// font context.
type MeasureFunc func(string) float64

// faceMeasure builds a MeasureFunc from a font face using glyph advances and
// kerning, without touching any drawing context state.
func faceMeasure(face font.Face) MeasureFunc {
	return func(s string) float64 {
		width := fixed.Int26_6(0)
		prevRune := rune(-1)
		for _, r := range s {
			if prevRune >= 0 {
				width += face.Kern(prevRune, r)
			}
			adv, ok := face.GlyphAdvance(r)
			if !ok {
				continue
			}
			width += adv
			prevRune = r
		}
		return float64(width) / 64.0
	}
}

// truncateToWidth returns text unchanged if it fits within maxWidth,
// otherwise drops trailing runes until the remainder plus "..." fits (or the
// string is exhausted) and returns the truncated form with the "..." suffix.
func truncateToWidth(measure MeasureFunc, text string, maxWidth float64) string {
	if measure(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if measure(string(runes)+"...") <= maxWidth {
			break
		}
	}
	return string(runes) + "..."
}

// TrackLine is one placed track-listing entry.
type TrackLine struct {
	Text string
	X, Y float64
}

// layoutTrackColumns places up to 20 numbered track titles in two columns.
// The first column holds tracks 1-10; its actual rendered width (capped at
// the per-column maximum) plus the fixed gap determines where the second
// column starts. Tracks beyond 20 are dropped.
func layoutTrackColumns(measure MeasureFunc, tracks []string, startX, startY, sectionWidth, lineHeight float64) []TrackLine {
	maxColumnWidth := (sectionWidth - TRACK_COLUMN_GAP) / 2

	lines := make([]TrackLine, 0, TRACK_CAPACITY)
	firstColumnWidth := 0.0
	for i, title := range tracks {
		if i >= TRACKS_PER_COLUMN {
			break
		}
		text := truncateToWidth(measure, fmt.Sprintf("%d. %s", i+1, title), maxColumnWidth)
		if w := measure(text); w > firstColumnWidth {
			firstColumnWidth = w
		}
		lines = append(lines, TrackLine{
			Text: text,
			X:    startX,
			Y:    startY + float64(i)*lineHeight,
		})
	}

	if len(tracks) <= TRACKS_PER_COLUMN {
		return lines
	}

	secondX := startX + minFloat(firstColumnWidth, maxColumnWidth) + TRACK_COLUMN_GAP
	for i := TRACKS_PER_COLUMN; i < len(tracks) && i < TRACK_CAPACITY; i++ {
		text := truncateToWidth(measure, fmt.Sprintf("%d. %s", i+1, tracks[i]), maxColumnWidth)
		lines = append(lines, TrackLine{
			Text: text,
			X:    secondX,
			Y:    startY + float64(i-TRACKS_PER_COLUMN)*lineHeight,
		})
	}
	return lines
}

// trackColumnsExtent performs the same width measurements as
// layoutTrackColumns without placing anything, and returns the rightmost
// x-extent actually used. Sibling layout regions size themselves off this
// instead of the worst-case column width. Zero tracks returns startX.
func trackColumnsExtent(measure MeasureFunc, tracks []string, startX, sectionWidth float64) float64 {
	if len(tracks) == 0 {
		return startX
	}

	maxColumnWidth := (sectionWidth - TRACK_COLUMN_GAP) / 2

	firstColumnWidth := 0.0
	for i, title := range tracks {
		if i >= TRACKS_PER_COLUMN {
			break
		}
		text := truncateToWidth(measure, fmt.Sprintf("%d. %s", i+1, title), maxColumnWidth)
		if w := measure(text); w > firstColumnWidth {
			firstColumnWidth = w
		}
	}

	if len(tracks) <= TRACKS_PER_COLUMN {
		return startX + firstColumnWidth
	}

	secondX := startX + minFloat(firstColumnWidth, maxColumnWidth) + TRACK_COLUMN_GAP
	secondColumnWidth := 0.0
	for i := TRACKS_PER_COLUMN; i < len(tracks) && i < TRACK_CAPACITY; i++ {
		text := truncateToWidth(measure, fmt.Sprintf("%d. %s", i+1, tracks[i]), maxColumnWidth)
		if w := measure(text); w > secondColumnWidth {
			secondColumnWidth = w
		}
	}
	return secondX + secondColumnWidth
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
