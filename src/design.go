package main

import (
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/skip2/go-qrcode"
)

// A Design is a fixed-pixel-coordinate poster template. Designs are plain
// data in an explicit table; nothing self-registers at init time.
type Design struct {
	Name        string
	Description string
	Width       int
	Height      int
	Render      func(app *App, p *Poster) error

	// DefaultBackground overrides the app-wide palette gradient default
	// when the caller picked no background. Nil uses the app default.
	DefaultBackground func(app *App, p *Poster) *Background
}

// buildDesignTable constructs the design registry. Built once at startup and
// passed around by reference.
func buildDesignTable() map[string]*Design {
	return map[string]*Design{
		"classic": {
			Name:        "classic",
			Description: "large cover, palette swatches, two-column track listing",
			Width:       POSTER_WIDTH,
			Height:      POSTER_HEIGHT,
			Render:      renderClassicDesign,
		},
		"minimal": {
			Name:        "minimal",
			Description: "full-bleed blurred cover with centered typography",
			Width:       SQUARE_SIZE,
			Height:      SQUARE_SIZE,
			Render:      renderMinimalDesign,
			DefaultBackground: func(app *App, p *Poster) *Background {
				if p.Cover == nil {
					return app.autoBackground(p)
				}
				return NewBlurredImageBackground(p.Cover, 40, 0.6, FitCover)
			},
		},
	}
}

// renderClassicDesign draws the 1200x1800 poster: cover on top, swatch
// strip, title/artist block, divider, two-column track listing with an info
// panel sized off the actual track widths, and a scan code.
func renderClassicDesign(app *App, p *Poster) error {
	if p.Cover == nil {
		return errors.New("classic design requires a cover image")
	}

	dc := app.DC
	if err := p.Background.Render(dc, POSTER_WIDTH, POSTER_HEIGHT); err != nil {
		return fmt.Errorf("render background: %w", err)
	}

	// Cover artwork, cropped square
	cover := imaging.Fill(p.Cover, COVER_SIZE, COVER_SIZE, imaging.Center, imaging.Lanczos)
	dc.DrawImage(cover, POSTER_MARGIN, COVER_Y)

	// Palette swatch strip, right-aligned under the cover
	swatches := p.Palette
	if len(swatches) > PALETTE_SIZE {
		swatches = swatches[:PALETTE_SIZE]
	}
	swatchX := float64(POSTER_MARGIN+COVER_SIZE) - float64(len(swatches))*SWATCH_SIZE
	for i := range swatches {
		dc.SetHexColor(swatches[i])
		dc.DrawRectangle(swatchX+float64(i)*SWATCH_SIZE, SWATCH_ROW_Y, SWATCH_SIZE, SWATCH_SIZE)
		dc.Fill()
	}

	textColor := contrastColorAt(app, POSTER_MARGIN, TITLE_Y)
	maxTextWidth := float64(COVER_SIZE)

	// Title and artist
	app.setFace(app.FontTitle)
	dc.SetHexColor(textColor)
	title := truncateToWidth(app.measure(app.FontTitle), p.Title, maxTextWidth)
	dc.DrawStringAnchored(title, POSTER_MARGIN, TITLE_Y, 0, 0.5)

	app.setFace(app.FontArtist)
	dc.SetHexColor(textColor)
	artist := truncateToWidth(app.measure(app.FontArtist), p.Artist, maxTextWidth)
	dc.DrawStringAnchored(artist, POSTER_MARGIN, ARTIST_Y, 0, 0.5)

	// Accent divider
	dc.SetHexColor(accentHex(p.Palette))
	dc.SetLineWidth(3)
	dc.DrawLine(POSTER_MARGIN, DIVIDER_Y, POSTER_MARGIN+maxTextWidth, DIVIDER_Y)
	dc.Stroke()

	// Track listing, two columns; the info panel starts right of the space
	// the columns actually use
	trackMeasure := app.measure(app.FontTrack)
	sectionWidth := maxTextWidth * 0.65
	app.setFace(app.FontTrack)
	dc.SetHexColor(textColor)
	for _, line := range layoutTrackColumns(trackMeasure, p.Tracks, POSTER_MARGIN, TRACKS_TOP_Y, sectionWidth, TRACK_LINE_HEIGHT) {
		dc.DrawStringAnchored(line.Text, line.X, line.Y, 0, 0.5)
	}

	infoX := trackColumnsExtent(trackMeasure, p.Tracks, POSTER_MARGIN, sectionWidth) + INFO_PANEL_PAD
	drawInfoPanel(app, p, infoX, TRACKS_TOP_Y, textColor)

	// Scan code, bottom-right
	drawScanCode(app, p.SourceURL,
		POSTER_MARGIN+COVER_SIZE-SCAN_CODE_SIZE,
		POSTER_HEIGHT-POSTER_MARGIN-SCAN_CODE_SIZE)

	// Footer: album name when the poster is for a single track
	if p.Album != "" && p.Album != p.Title {
		app.setFace(app.FontSmall)
		dc.SetHexColor(textColor)
		footer := truncateToWidth(app.measure(app.FontSmall), "from "+p.Album, maxTextWidth)
		dc.DrawStringAnchored(footer, POSTER_MARGIN, FOOTER_Y, 0, 0.5)
	}

	return nil
}

// renderMinimalDesign draws a 1080x1080 card: blurred cover background,
// sharp centered cover, centered title and artist.
func renderMinimalDesign(app *App, p *Poster) error {
	if p.Cover == nil {
		return errors.New("minimal design requires a cover image")
	}

	dc := app.DC
	if err := p.Background.Render(dc, SQUARE_SIZE, SQUARE_SIZE); err != nil {
		return fmt.Errorf("render background: %w", err)
	}

	coverSize := 400
	cover := imaging.Fill(p.Cover, coverSize, coverSize, imaging.Center, imaging.Lanczos)
	dc.DrawImage(cover, (SQUARE_SIZE-coverSize)/2, 260)

	centerX := float64(SQUARE_SIZE) / 2
	maxTextWidth := float64(SQUARE_SIZE - 2*POSTER_MARGIN)

	app.setFace(app.FontTitle)
	dc.SetHexColor("#ffffff")
	title := truncateToWidth(app.measure(app.FontTitle), p.Title, maxTextWidth)
	dc.DrawStringAnchored(title, centerX, 770, 0.5, 0.5)

	app.setFace(app.FontArtist)
	dc.SetHexColor("#dddddd")
	artist := truncateToWidth(app.measure(app.FontArtist), p.Artist, maxTextWidth)
	dc.DrawStringAnchored(artist, centerX, 840, 0.5, 0.5)

	return nil
}

// drawInfoPanel draws label, catalog number and release date lines starting
// at x. Missing fields are skipped.
func drawInfoPanel(app *App, p *Poster, x, y float64, textColor string) {
	dc := app.DC
	app.setFace(app.FontLabel)
	dc.SetHexColor(textColor)

	lineY := y
	for _, line := range []string{p.Label, p.CatalogNum, p.ReleaseDate} {
		if line == "" {
			continue
		}
		dc.DrawStringAnchored(line, x, lineY, 0, 0.5)
		lineY += TRACK_LINE_HEIGHT
	}
}

// drawScanCode renders a QR code linking back to the source page. Failures
// are logged and skipped; the poster renders without the code.
func drawScanCode(app *App, url string, x, y int) {
	if url == "" {
		return
	}
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		logMsg(fmt.Sprintf("WARNING: Failed to generate scan code: %v", err))
		return
	}
	app.DC.DrawImage(qr.Image(SCAN_CODE_SIZE), x, y)
}

// contrastColorAt picks a light or dark text color from the luminance of the
// already-rendered background at the given point.
func contrastColorAt(app *App, x, y int) string {
	r, g, b, _ := app.DC.Image().At(x, y).RGBA()
	lum := RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}.Luminance()
	if lum > 0.5 {
		return "#111111"
	}
	return "#ffffff"
}

// accentHex derives a decorative accent from the lightest palette color by
// nudging its saturation and clamping its lightness into a usable band.
func accentHex(palette Palette) string {
	if len(palette) == 0 {
		return "#ffffff"
	}
	c, err := colorful.Hex(palette[0])
	if err != nil {
		return "#ffffff"
	}
	h, s, l := c.Hsl()
	s = s*1.2 + 0.05
	if s > 1 {
		s = 1
	}
	if l < 0.35 {
		l = 0.35
	} else if l > 0.85 {
		l = 0.85
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}
