package main

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// App metadata
const (
	APP_VERSION = "0.1.0"
	APP_AUTHOR  = "Danilo Fragoso"
	USER_AGENT  = "TrackPoster/" + APP_VERSION + " (https://github.com/danfragoso/trackposter)"
)

// Poster dimensions (classic 2:3 print ratio)
const (
	POSTER_WIDTH  = 1200
	POSTER_HEIGHT = 1800
	SQUARE_SIZE   = 1080
)

// Classic design layout constants (at 1200x1800 native resolution)
const (
	POSTER_MARGIN     = 60
	COVER_SIZE        = 1080
	COVER_Y           = 60
	SWATCH_SIZE       = 50
	SWATCH_ROW_Y      = 1170
	TITLE_Y           = 1290
	ARTIST_Y          = 1360
	DIVIDER_Y         = 1400
	TRACKS_TOP_Y      = 1450
	TRACK_LINE_HEIGHT = 32
	INFO_PANEL_PAD    = 40
	SCAN_CODE_SIZE    = 110
	FOOTER_Y          = 1770
)

// Font sizes at native resolution
const (
	FONT_SIZE_TITLE  = 64.0
	FONT_SIZE_ARTIST = 36.0
	FONT_SIZE_TRACK  = 22.0
	FONT_SIZE_LABEL  = 20.0
	FONT_SIZE_SMALL  = 16.0
)

// Palette extraction tuning
const (
	PALETTE_SAMPLE_STRIDE = 10  // sample every 10th pixel
	PALETTE_ALPHA_MIN     = 128 // discard mostly transparent samples
	PALETTE_BLACK_CUTOFF  = 20  // all channels below: near-black, discard
	PALETTE_WHITE_CUTOFF  = 235 // all channels above: near-white, discard
	PALETTE_QUANT_STEP    = 32  // quantize channels to multiples of 32
	PALETTE_OVERSAMPLE    = 3   // candidate pool = count * 3
	PALETTE_SIZE          = 6   // default swatch count
)

// PALETTE_DIVERSITY_GAP is the minimum lightness distance between two
// accepted palette colors, on the 0-255 scale.
const PALETTE_DIVERSITY_GAP = 20.0

// --- Poster metadata ---

// Poster holds everything a design needs to render a finished image.
type Poster struct {
	Title       string
	Artist      string
	Album       string
	Tracks      []string
	ReleaseDate string
	Label       string
	CatalogNum  string
	SourceURL   string

	Cover      image.Image
	Palette    Palette
	Background *Background
}

// --- Main application ---

type App struct {
	DC *gg.Context

	// Fonts (pre-loaded; nil falls back to the gg default face)
	FontTitle  font.Face
	FontArtist font.Face
	FontTrack  font.Face
	FontLabel  font.Face
	FontSmall  font.Face

	Settings *Settings
	Designs  map[string]*Design
}
