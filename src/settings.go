package main

import (
	"encoding/json"
	"os"
)

const SETTINGS_PATH = ".trackposter.json"

type Settings struct {
	Design          string `json:"design,omitempty"`
	BackgroundStyle string `json:"background_style,omitempty"` // smooth or emphasized
	Direction       string `json:"direction,omitempty"`        // lightToDark or darkToLight
	OutputDir       string `json:"output_dir,omitempty"`
	FontDir         string `json:"font_dir,omitempty"`
	PaletteSize     int    `json:"palette_size,omitempty"`
}

// defaultSettings returns the settings used when no file exists.
func defaultSettings() *Settings {
	return &Settings{
		Design:          "classic",
		BackgroundStyle: "emphasized",
		Direction:       "lightToDark",
		OutputDir:       ".",
		FontDir:         "fonts",
		PaletteSize:     PALETTE_SIZE,
	}
}

// loadSettings reads the settings file, filling unset fields with defaults.
// A missing file is not an error.
func loadSettings(path string) (*Settings, error) {
	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return settings, err
	}

	if loaded.Design != "" {
		settings.Design = loaded.Design
	}
	if loaded.BackgroundStyle != "" {
		settings.BackgroundStyle = loaded.BackgroundStyle
	}
	if loaded.Direction != "" {
		settings.Direction = loaded.Direction
	}
	if loaded.OutputDir != "" {
		settings.OutputDir = loaded.OutputDir
	}
	if loaded.FontDir != "" {
		settings.FontDir = loaded.FontDir
	}
	if loaded.PaletteSize > 0 {
		settings.PaletteSize = loaded.PaletteSize
	}
	return settings, nil
}

// save writes the settings as indented JSON
func (s *Settings) save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// paletteStyle maps the settings string to a PaletteStyle
func (s *Settings) paletteStyle() PaletteStyle {
	if s.BackgroundStyle == "smooth" {
		return PaletteSmooth
	}
	return PaletteEmphasized
}

// paletteDirection maps the settings string to a PaletteDirection
func (s *Settings) paletteDirection() PaletteDirection {
	if s.Direction == "darkToLight" {
		return DarkToLight
	}
	return LightToDark
}
