package main

import (
	"image"
	"strings"
	"testing"

	"github.com/fogleman/gg"
)

// testCover builds a small cover image with enough mid-range color variety
// for palette extraction.
func testCover(size int) image.Image {
	return stripedImage(size, size, []RGB{
		{64, 96, 160},
		{200, 120, 60},
		{120, 180, 120},
	})
}

func testApp() *App {
	return &App{
		Settings: defaultSettings(),
		Designs:  buildDesignTable(),
	}
}

func TestBuildDesignTable(t *testing.T) {
	designs := buildDesignTable()

	classic, ok := designs["classic"]
	if !ok {
		t.Fatal("classic design missing")
	}
	if classic.Width != POSTER_WIDTH || classic.Height != POSTER_HEIGHT {
		t.Errorf("classic dimensions = %dx%d, want %dx%d",
			classic.Width, classic.Height, POSTER_WIDTH, POSTER_HEIGHT)
	}

	minimal, ok := designs["minimal"]
	if !ok {
		t.Fatal("minimal design missing")
	}
	if minimal.Width != SQUARE_SIZE || minimal.Height != SQUARE_SIZE {
		t.Errorf("minimal dimensions = %dx%d, want %dx%d",
			minimal.Width, minimal.Height, SQUARE_SIZE, SQUARE_SIZE)
	}

	for name, design := range designs {
		if design.Render == nil {
			t.Errorf("design %q has no render function", name)
		}
		if design.Name != name {
			t.Errorf("design key %q holds design named %q", name, design.Name)
		}
	}
}

func TestGeneratePosterUnknownDesign(t *testing.T) {
	app := testApp()
	p := &Poster{Title: "x", Cover: testCover(60)}
	if _, err := app.generatePoster(p, "nope"); err == nil {
		t.Error("unknown design accepted")
	}
}

func TestGeneratePosterMinimal(t *testing.T) {
	app := testApp()
	p := &Poster{
		Title:  "Homage",
		Artist: "Mild High Club",
		Cover:  testCover(120),
	}

	img, err := app.generatePoster(p, "minimal")
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != SQUARE_SIZE || bounds.Dy() != SQUARE_SIZE {
		t.Errorf("output is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), SQUARE_SIZE, SQUARE_SIZE)
	}
	if len(p.Palette) == 0 {
		t.Error("palette not extracted during generation")
	}
	if p.Background == nil {
		t.Fatal("background not selected during generation")
	}
	if got := p.Background.Describe(); !strings.Contains(got, "blurred image") {
		t.Errorf("minimal default background = %q, want blurred cover", got)
	}
}

func TestGeneratePosterClassic(t *testing.T) {
	app := testApp()
	p := &Poster{
		Title:       "Skiptracing",
		Artist:      "Mild High Club",
		Album:       "Skiptracing",
		Tracks:      []string{"Homage", "Tesselation", "Skiptracing", "Club Intro"},
		ReleaseDate: "2016-08-26",
		Label:       "Stones Throw",
		Cover:       testCover(200),
	}

	img, err := app.generatePoster(p, "classic")
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != POSTER_WIDTH || bounds.Dy() != POSTER_HEIGHT {
		t.Errorf("output is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), POSTER_WIDTH, POSTER_HEIGHT)
	}
}

func TestGeneratePosterClassicRequiresCover(t *testing.T) {
	app := testApp()
	p := &Poster{Title: "x", Palette: Palette{}}
	if _, err := app.generatePoster(p, "classic"); err == nil {
		t.Error("classic design rendered without a cover")
	}
}

func TestAutoBackground(t *testing.T) {
	app := testApp()

	p := &Poster{Palette: Palette{}}
	b := app.autoBackground(p)
	if got := b.Describe(); got != "solid #000000" {
		t.Errorf("empty palette auto background = %q, want solid black", got)
	}

	p = &Poster{Palette: Palette{"#e0e0e0", "#404040"}}
	b = app.autoBackground(p)
	if got := b.Describe(); !strings.Contains(got, "palette gradient") {
		t.Errorf("auto background = %q, want palette gradient", got)
	}
}

func TestContrastColorAt(t *testing.T) {
	app := testApp()

	app.DC = gg.NewContext(10, 10)
	app.DC.SetHexColor("#ffffff")
	app.DC.Clear()
	if got := contrastColorAt(app, 5, 5); got != "#111111" {
		t.Errorf("contrast on white = %q, want dark text", got)
	}

	app.DC = gg.NewContext(10, 10)
	app.DC.SetHexColor("#000000")
	app.DC.Clear()
	if got := contrastColorAt(app, 5, 5); got != "#ffffff" {
		t.Errorf("contrast on black = %q, want light text", got)
	}
}

func TestAccentHex(t *testing.T) {
	if got := accentHex(Palette{}); got != "#ffffff" {
		t.Errorf("empty palette accent = %q, want #ffffff", got)
	}
	if got := accentHex(Palette{"bogus"}); got != "#ffffff" {
		t.Errorf("malformed palette accent = %q, want #ffffff", got)
	}

	got := accentHex(Palette{"#e07040", "#404040"})
	if len(got) != 7 || got[0] != '#' {
		t.Fatalf("accent %q is not a hex color", got)
	}
	if _, err := parseHex(got); err != nil {
		t.Errorf("accent %q does not parse: %v", got, err)
	}
}
