package main

import (
	"fmt"
	"strings"
	"testing"
)

// monoMeasure measures 10 pixels per rune, enough to reason about layout
// without loading a real font.
func monoMeasure(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		text     string
		maxWidth float64
		want     string
	}{
		{"Short", 200, "Short"},
		{"The Quick Brown Fox", 120, "The Quick..."},
		{"The Quick Brown Fox", 190, "The Quick Brown Fox"},
		{"", 100, ""},
		{"Long Unfittable Title", 10, "..."},
	}
	for _, tt := range tests {
		if got := truncateToWidth(monoMeasure, tt.text, tt.maxWidth); got != tt.want {
			t.Errorf("truncateToWidth(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
		}
	}
}

func TestTruncateNeverGrows(t *testing.T) {
	text := "A moderately long track title"
	for w := 300.0; w >= 30; w -= 10 {
		got := truncateToWidth(monoMeasure, text, w)
		if monoMeasure(got) > w && got != "..." {
			t.Errorf("width %v: result %q measures %v, exceeds limit", w, got, monoMeasure(got))
		}
	}
}

func TestLayoutTrackColumnsSingleColumn(t *testing.T) {
	tracks := []string{"One", "Two", "Three"}
	lines := layoutTrackColumns(monoMeasure, tracks, 60, 1450, 500, 32)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if line.X != 60 {
			t.Errorf("line %d X = %v, want 60", i, line.X)
		}
		wantY := 1450 + float64(i)*32
		if line.Y != wantY {
			t.Errorf("line %d Y = %v, want %v", i, line.Y, wantY)
		}
		wantText := fmt.Sprintf("%d. %s", i+1, tracks[i])
		if line.Text != wantText {
			t.Errorf("line %d text = %q, want %q", i, line.Text, wantText)
		}
	}
}

func TestLayoutTrackColumnsTwoColumns(t *testing.T) {
	tracks := make([]string, 14)
	for i := range tracks {
		tracks[i] = fmt.Sprintf("Track %02d", i+1)
	}
	lines := layoutTrackColumns(monoMeasure, tracks, 60, 1450, 500, 32)
	if len(lines) != 14 {
		t.Fatalf("got %d lines, want 14", len(lines))
	}

	// Widest first-column entry is "10. Track 10", 12 runes = 120px
	wantSecondX := 60 + 120 + TRACK_COLUMN_GAP
	for i := 0; i < 10; i++ {
		if lines[i].X != 60 {
			t.Errorf("first column line %d X = %v, want 60", i, lines[i].X)
		}
	}
	for i := 10; i < 14; i++ {
		if lines[i].X != wantSecondX {
			t.Errorf("second column line %d X = %v, want %v", i, lines[i].X, wantSecondX)
		}
		wantY := 1450 + float64(i-10)*32
		if lines[i].Y != wantY {
			t.Errorf("second column line %d Y = %v, want %v", i, lines[i].Y, wantY)
		}
	}
	if lines[10].Text != "11. Track 11" {
		t.Errorf("second column starts with %q, want %q", lines[10].Text, "11. Track 11")
	}
}

func TestLayoutTrackColumnsCapacity(t *testing.T) {
	tracks := make([]string, 25)
	for i := range tracks {
		tracks[i] = fmt.Sprintf("Track %d", i+1)
	}
	lines := layoutTrackColumns(monoMeasure, tracks, 60, 1450, 500, 32)
	if len(lines) != TRACK_CAPACITY {
		t.Fatalf("got %d lines, want %d", len(lines), TRACK_CAPACITY)
	}
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last.Text, "20. ") {
		t.Errorf("last placed line = %q, want track 20", last.Text)
	}
}

func TestLayoutTrackColumnsTruncates(t *testing.T) {
	long := strings.Repeat("x", 60)
	lines := layoutTrackColumns(monoMeasure, []string{long}, 0, 0, 500, 32)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	maxColumnWidth := (500.0 - TRACK_COLUMN_GAP) / 2
	if monoMeasure(lines[0].Text) > maxColumnWidth {
		t.Errorf("line %q measures %v, exceeds column width %v",
			lines[0].Text, monoMeasure(lines[0].Text), maxColumnWidth)
	}
	if !strings.HasSuffix(lines[0].Text, "...") {
		t.Errorf("truncated line %q missing ellipsis", lines[0].Text)
	}
}

func TestTrackColumnsExtent(t *testing.T) {
	if got := trackColumnsExtent(monoMeasure, nil, 60, 500); got != 60 {
		t.Errorf("empty extent = %v, want 60", got)
	}

	// Single column: startX + widest entry ("2. Two" = 60px)
	if got := trackColumnsExtent(monoMeasure, []string{"One", "Two"}, 60, 500); got != 120 {
		t.Errorf("single column extent = %v, want 120", got)
	}

	// Two columns: the extent must cover the second column
	tracks := make([]string, 12)
	for i := range tracks {
		tracks[i] = fmt.Sprintf("Track %02d", i+1)
	}
	got := trackColumnsExtent(monoMeasure, tracks, 60, 500)
	// first column widest "10. Track 10" = 120, second widest "12. Track 12" = 120
	want := 60 + 120 + TRACK_COLUMN_GAP + 120
	if got != want {
		t.Errorf("two column extent = %v, want %v", got, want)
	}
}
