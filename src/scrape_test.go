package main

import (
	"strings"
	"testing"
)

const albumPageHTML = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="In Rainbows"/>
<meta property="og:description" content="Radiohead · Album · 2007 · 10 songs"/>
<meta property="og:image" content="https://images.example.com/cover.jpg"/>
<meta property="og:url" content="https://music.example.com/album/1"/>
<meta property="og:type" content="music.album"/>
<meta property="music:release_date" content="2007-10-10"/>
</head>
<body></body>
</html>`

const songPageHTML = `<html><head>
<meta name="description" content="Mild High Club · Skiptracing · 2016 · 11 songs">
<meta property="og:title" content="Homage">
<meta property="og:type" content="music.song">
</head><body><p>player</p></body></html>`

func TestParsePageMetaAlbum(t *testing.T) {
	meta, err := parsePageMeta(strings.NewReader(albumPageHTML))
	if err != nil {
		t.Fatal(err)
	}

	if meta.Title != "In Rainbows" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Artist != "Radiohead" {
		t.Errorf("Artist = %q", meta.Artist)
	}
	if meta.ImageURL != "https://images.example.com/cover.jpg" {
		t.Errorf("ImageURL = %q", meta.ImageURL)
	}
	if meta.URL != "https://music.example.com/album/1" {
		t.Errorf("URL = %q", meta.URL)
	}
	if meta.Kind != "album" {
		t.Errorf("Kind = %q, want album", meta.Kind)
	}
	if meta.ReleaseDate != "2007-10-10" {
		t.Errorf("ReleaseDate = %q", meta.ReleaseDate)
	}
	// The description's second field is the page-type word "Album"; the
	// album name must come from the page title instead
	if meta.Album != "In Rainbows" {
		t.Errorf("Album = %q, want the page title for an album page", meta.Album)
	}
}

func TestParsePageMetaSongDescriptionFallback(t *testing.T) {
	meta, err := parsePageMeta(strings.NewReader(songPageHTML))
	if err != nil {
		t.Fatal(err)
	}

	if meta.Title != "Homage" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Artist != "Mild High Club" {
		t.Errorf("Artist = %q, want artist from description", meta.Artist)
	}
	if meta.Album != "Skiptracing" {
		t.Errorf("Album = %q, want album from description", meta.Album)
	}
	if meta.ReleaseDate != "2016" {
		t.Errorf("ReleaseDate = %q, want year from description", meta.ReleaseDate)
	}
	if meta.Kind != "song" {
		t.Errorf("Kind = %q, want song", meta.Kind)
	}
}

func TestParsePageMetaEmptyDocument(t *testing.T) {
	meta, err := parsePageMeta(strings.NewReader("<html><head></head><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "" || meta.Artist != "" || meta.ImageURL != "" {
		t.Errorf("empty document produced metadata: %+v", meta)
	}
}

func TestFillFromDescriptionSkipsTypeWords(t *testing.T) {
	tests := []struct {
		description string
		wantAlbum   string
		wantDate    string
	}{
		{"Mild High Club · Skiptracing · 2016 · 11 songs", "Skiptracing", "2016"},
		{"Radiohead · Album · 2007 · 10 songs", "", "2007"},
		{"Some Artist · Single · 2020", "", "2020"},
		{"Some Artist · EP · 2021", "", "2021"},
		{"Some Artist · song · 2022", "", "2022"},
		{"Some Artist · 2019 · 8 songs", "", "2019"},
	}
	for _, tt := range tests {
		meta := &PageMeta{}
		fillFromDescription(meta, tt.description)
		if meta.Album != tt.wantAlbum {
			t.Errorf("description %q: Album = %q, want %q", tt.description, meta.Album, tt.wantAlbum)
		}
		if meta.ReleaseDate != tt.wantDate {
			t.Errorf("description %q: ReleaseDate = %q, want %q", tt.description, meta.ReleaseDate, tt.wantDate)
		}
	}
}

func TestLooksLikeYear(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2016", true},
		{"1989", true},
		{"0999", false},
		{"20x6", false},
		{"201", false},
		{"20166", false},
		{"Album", false},
	}
	for _, tt := range tests {
		if got := looksLikeYear(tt.in); got != tt.want {
			t.Errorf("looksLikeYear(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
