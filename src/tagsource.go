package main

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/dhowden/tag"
)

// posterFromAudioFile builds poster metadata from a local audio file's
// embedded tags. The embedded picture, when present, becomes the cover.
func posterFromAudioFile(path string) (*Poster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("read tags from %s: %w", path, err)
	}

	poster := &Poster{
		Title:  meta.Title(),
		Artist: meta.Artist(),
		Album:  meta.Album(),
	}
	if poster.Title == "" {
		poster.Title = path
	}
	if year := meta.Year(); year > 0 {
		poster.ReleaseDate = fmt.Sprintf("%d", year)
	}

	if pic := meta.Picture(); pic != nil {
		cover, _, err := image.Decode(bytes.NewReader(pic.Data))
		if err != nil {
			logMsg(fmt.Sprintf("WARNING: Failed to decode embedded cover: %v", err))
		} else {
			poster.Cover = cover
		}
	}
	return poster, nil
}
