package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Font file names looked up inside the configured font directory. Regular is
// used for everything except the title.
const (
	FONT_FILE_BOLD    = "bold.ttf"
	FONT_FILE_REGULAR = "regular.ttf"
)

// loadFonts loads all font faces used by the designs. Missing font files are
// logged as warnings; the affected faces stay nil and rendering falls back
// to the gg default face.
func (app *App) loadFonts(fontDir string) {
	load := func(file string, size float64) font.Face {
		path := filepath.Join(fontDir, file)
		if _, err := os.Stat(path); err != nil {
			logMsg(fmt.Sprintf("WARNING: Font %s not found, using built-in face", path))
			return nil
		}
		face, err := gg.LoadFontFace(path, size)
		if err != nil {
			logMsg(fmt.Sprintf("WARNING: Failed to load font %s: %v", path, err))
			return nil
		}
		return face
	}

	app.FontTitle = load(FONT_FILE_BOLD, FONT_SIZE_TITLE)
	app.FontArtist = load(FONT_FILE_REGULAR, FONT_SIZE_ARTIST)
	app.FontTrack = load(FONT_FILE_REGULAR, FONT_SIZE_TRACK)
	app.FontLabel = load(FONT_FILE_REGULAR, FONT_SIZE_LABEL)
	app.FontSmall = load(FONT_FILE_REGULAR, FONT_SIZE_SMALL)
}

// setFace applies a face to the drawing context, keeping the current default
// when the face failed to load.
func (app *App) setFace(face font.Face) {
	if face != nil {
		app.DC.SetFontFace(face)
	}
}

// measure builds a MeasureFunc for a face. A nil face measures through the
// drawing context's current font instead.
func (app *App) measure(face font.Face) MeasureFunc {
	if face == nil {
		return func(s string) float64 {
			w, _ := app.DC.MeasureString(s)
			return w
		}
	}
	return faceMeasure(face)
}
