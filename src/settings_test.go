package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := loadSettings(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if settings.Design != "classic" {
		t.Errorf("Design = %q, want classic default", settings.Design)
	}
	if settings.PaletteSize != PALETTE_SIZE {
		t.Errorf("PaletteSize = %d, want %d", settings.PaletteSize, PALETTE_SIZE)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	original := &Settings{
		Design:          "minimal",
		BackgroundStyle: "smooth",
		Direction:       "darkToLight",
		OutputDir:       "/tmp/posters",
		PaletteSize:     4,
	}
	if err := original.save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := loadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Design != "minimal" || loaded.BackgroundStyle != "smooth" ||
		loaded.Direction != "darkToLight" || loaded.PaletteSize != 4 {
		t.Errorf("loaded settings = %+v", loaded)
	}
	// Unset fields keep their defaults
	if loaded.FontDir != "fonts" {
		t.Errorf("FontDir = %q, want fonts default", loaded.FontDir)
	}
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	settings, err := loadSettings(path)
	if err == nil {
		t.Error("malformed settings file loaded without error")
	}
	if settings == nil || settings.Design != "classic" {
		t.Error("malformed settings file should still yield defaults")
	}
}

func TestSettingsMappers(t *testing.T) {
	s := &Settings{BackgroundStyle: "smooth", Direction: "darkToLight"}
	if s.paletteStyle() != PaletteSmooth {
		t.Error("smooth not mapped")
	}
	if s.paletteDirection() != DarkToLight {
		t.Error("darkToLight not mapped")
	}

	s = &Settings{BackgroundStyle: "emphasized", Direction: "lightToDark"}
	if s.paletteStyle() != PaletteEmphasized {
		t.Error("emphasized not mapped")
	}
	if s.paletteDirection() != LightToDark {
		t.Error("lightToDark not mapped")
	}

	// Unknown strings fall back to the defaults
	s = &Settings{}
	if s.paletteStyle() != PaletteEmphasized || s.paletteDirection() != LightToDark {
		t.Error("empty settings did not map to defaults")
	}
}
