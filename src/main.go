package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/google/uuid"
)

// renderMu serializes poster generation: the drawing surface is not safe for
// concurrent use and every render starts from a fresh context anyway.
var renderMu sync.Mutex

func main() {
	pageURL := flag.String("url", "", "streaming page URL to scrape metadata from")
	audioFile := flag.String("file", "", "local audio file with embedded tags")
	artistFlag := flag.String("artist", "", "artist name (with -album, skips scraping)")
	albumFlag := flag.String("album", "", "album name (with -artist, skips scraping)")
	designFlag := flag.String("design", "", "poster design (classic, minimal)")
	backgroundFlag := flag.String("background", "", "background spec: solid:<hex> | gradient:<hex>,<hex>[,...] | radial:<hex>,<hex> | image:<path>[:fit|fill|stretch] | blur[:radius[:brightness]] | palette")
	styleFlag := flag.String("style", "", "palette gradient style: smooth or emphasized")
	directionFlag := flag.String("direction", "", "palette gradient direction: lightToDark or darkToLight")
	tracklistPath := flag.String("tracklist", "", "file with one track title per line, overrides lookup")
	outPath := flag.String("out", "", "output PNG path")
	serveAddr := flag.String("serve", "", "run as HTTP service on this address instead")
	settingsPath := flag.String("settings", SETTINGS_PATH, "settings file path")
	logPath := flag.String("log", "", "also write logs to this file")
	flag.Parse()

	if *logPath != "" {
		if err := setLogFile(*logPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
	}

	settings, err := loadSettings(*settingsPath)
	if err != nil {
		logMsg(fmt.Sprintf("WARNING: Could not load settings: %v (using defaults)", err))
	}
	if *designFlag != "" {
		settings.Design = *designFlag
	}
	if *styleFlag != "" {
		settings.BackgroundStyle = *styleFlag
	}
	if *directionFlag != "" {
		settings.Direction = *directionFlag
	}

	app := &App{
		Settings: settings,
		Designs:  buildDesignTable(),
	}
	app.loadFonts(settings.FontDir)

	if *serveAddr != "" {
		if err := runServer(app, *serveAddr); err != nil {
			logMsg(fmt.Sprintf("ERROR: Server failed: %v", err))
			os.Exit(1)
		}
		return
	}

	poster, err := buildPoster(*pageURL, *audioFile, *artistFlag, *albumFlag, *tracklistPath)
	if err != nil {
		logMsg(fmt.Sprintf("ERROR: %v", err))
		os.Exit(1)
	}

	if *backgroundFlag != "" {
		background, err := parseBackgroundSpec(*backgroundFlag, poster, settings)
		if err != nil {
			logMsg(fmt.Sprintf("ERROR: Invalid background: %v", err))
			os.Exit(1)
		}
		poster.Background = background
	}

	img, err := app.generatePoster(poster, settings.Design)
	if err != nil {
		logMsg(fmt.Sprintf("ERROR: Failed to render poster: %v", err))
		os.Exit(1)
	}

	path := *outPath
	if path == "" {
		path = filepath.Join(settings.OutputDir, "poster-"+uuid.New().String()[:8]+".png")
	}
	if err := imaging.Save(img, path); err != nil {
		logMsg(fmt.Sprintf("ERROR: Failed to save poster: %v", err))
		os.Exit(1)
	}
	logMsg("Saved " + path)
	fmt.Println(path)
}

// buildPoster gathers metadata and cover art from whichever source the
// caller provided, then enriches it via MusicBrainz.
func buildPoster(pageURL, audioFile, artist, album, tracklistPath string) (*Poster, error) {
	var poster *Poster

	switch {
	case audioFile != "":
		p, err := posterFromAudioFile(audioFile)
		if err != nil {
			return nil, err
		}
		poster = p

	case pageURL != "":
		meta, err := fetchPageMeta(pageURL)
		if err != nil {
			return nil, fmt.Errorf("scrape %s: %w", pageURL, err)
		}
		poster = &Poster{
			Title:       meta.Title,
			Artist:      meta.Artist,
			Album:       meta.Album,
			ReleaseDate: meta.ReleaseDate,
			SourceURL:   meta.URL,
		}
		if meta.ImageURL != "" {
			data, err := fetchImage(meta.ImageURL)
			if err != nil {
				logMsg(fmt.Sprintf("WARNING: Page cover download failed: %v", err))
			} else if cover, _, err := image.Decode(bytes.NewReader(data)); err != nil {
				logMsg(fmt.Sprintf("WARNING: Page cover decode failed: %v", err))
			} else {
				poster.Cover = cover
			}
		}

	case artist != "" && album != "":
		poster = &Poster{Title: album, Artist: artist, Album: album}

	default:
		return nil, fmt.Errorf("one of -url, -file or -artist/-album is required")
	}

	if poster.Cover == nil {
		searchAlbum := poster.Album
		if searchAlbum == "" {
			searchAlbum = poster.Title
		}
		data, err := searchCoverArt(poster.Artist, searchAlbum)
		if err != nil {
			return nil, fmt.Errorf("no cover art available: %w", err)
		}
		cover, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode cover art: %w", err)
		}
		poster.Cover = cover
	}

	enrichFromMusicBrainz(poster)

	if tracklistPath != "" {
		tracks, err := readTracklist(tracklistPath)
		if err != nil {
			return nil, err
		}
		poster.Tracks = tracks
	}
	return poster, nil
}

// generatePoster runs the rendering pipeline for one poster on a fresh
// surface: palette extraction, background selection, design render.
func (app *App) generatePoster(p *Poster, designName string) (image.Image, error) {
	design, ok := app.Designs[designName]
	if !ok {
		return nil, fmt.Errorf("unknown design %q", designName)
	}

	renderMu.Lock()
	defer renderMu.Unlock()

	if p.Palette == nil {
		p.Palette = ExtractPalette(p.Cover, app.Settings.PaletteSize)
		logMsg(fmt.Sprintf("Extracted %d palette colors", len(p.Palette)))
	}
	if p.Background == nil {
		if design.DefaultBackground != nil {
			p.Background = design.DefaultBackground(app, p)
		} else {
			p.Background = app.autoBackground(p)
		}
	}
	logMsg("Background: " + p.Background.Describe())

	app.DC = gg.NewContext(design.Width, design.Height)
	if err := design.Render(app, p); err != nil {
		return nil, err
	}
	return app.DC.Image(), nil
}

// autoBackground picks the default background when the caller chose none: a
// palette-derived gradient, or solid black when extraction found nothing.
func (app *App) autoBackground(p *Poster) *Background {
	if len(p.Palette) == 0 {
		return NewSolidBackground(RGB{})
	}
	return NewPaletteGradientBackground(p.Palette, app.Settings.paletteStyle(), app.Settings.paletteDirection())
}

// parseBackgroundSpec turns the -background flag value into a Background.
// Only the first colon separates the kind; the remainder is parsed per
// variant, so image paths may themselves contain colons.
func parseBackgroundSpec(spec string, p *Poster, settings *Settings) (*Background, error) {
	kind, rest, _ := strings.Cut(spec, ":")
	switch kind {
	case "solid":
		if rest == "" {
			return NewSolidBackground(RGB{}), nil
		}
		c, err := parseHex(rest)
		if err != nil {
			return nil, err
		}
		return NewSolidBackground(c), nil

	case "gradient":
		if rest == "" {
			return nil, fmt.Errorf("gradient background needs colors")
		}
		colorsPart, tail, _ := strings.Cut(rest, ":")
		colors, err := parseHexList(colorsPart)
		if err != nil {
			return nil, err
		}
		return NewLinearGradientBackground(colors, tail == "bottomup")

	case "radial":
		if rest == "" {
			return nil, fmt.Errorf("radial background needs colors")
		}
		colors, err := parseHexList(rest)
		if err != nil {
			return nil, err
		}
		return NewRadialGradientBackground(colors, 0.5, 0.5)

	case "image":
		if rest == "" {
			return nil, fmt.Errorf("image background needs a path")
		}
		// A trailing fit mode is optional; anything else after the last
		// colon belongs to the path
		path := rest
		fit := FitCover
		if i := strings.LastIndex(rest, ":"); i >= 0 {
			switch rest[i+1:] {
			case "fit", "fill", "stretch":
				path = rest[:i]
				fit = parseFitMode(rest[i+1:])
			}
		}
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open background image: %w", err)
		}
		return NewImageBackground(img, fit), nil

	case "blur":
		if p.Cover == nil {
			return nil, fmt.Errorf("blur background needs a cover image")
		}
		radius := 40.0
		brightness := 0.6
		radiusPart, brightPart, _ := strings.Cut(rest, ":")
		if radiusPart != "" {
			if v, err := strconv.ParseFloat(radiusPart, 64); err == nil {
				radius = v
			}
		}
		if brightPart != "" {
			if v, err := strconv.ParseFloat(brightPart, 64); err == nil {
				brightness = v
			}
		}
		return NewBlurredImageBackground(p.Cover, radius, brightness, FitCover), nil

	case "palette":
		if p.Palette == nil {
			p.Palette = ExtractPalette(p.Cover, settings.PaletteSize)
		}
		return NewPaletteGradientBackground(p.Palette, settings.paletteStyle(), settings.paletteDirection()), nil
	}
	return nil, fmt.Errorf("unknown background spec %q", spec)
}

func parseHexList(s string) ([]RGB, error) {
	fields := strings.Split(s, ",")
	colors := make([]RGB, 0, len(fields))
	for _, f := range fields {
		c, err := parseHex(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func parseFitMode(s string) FitMode {
	switch s {
	case "fit":
		return FitContain
	case "stretch":
		return FitStretch
	}
	return FitCover
}

// readTracklist reads one track title per line, skipping blanks.
func readTracklist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tracklist: %w", err)
	}
	var tracks []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tracks = append(tracks, line)
		}
	}
	return tracks, nil
}
