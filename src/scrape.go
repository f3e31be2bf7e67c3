package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PageMeta is the metadata scraped from a public streaming-platform page.
// Everything comes from <meta> tags in the document head; no authenticated
// API is involved.
type PageMeta struct {
	Title       string
	Artist      string
	Album       string
	ImageURL    string
	URL         string
	ReleaseDate string
	Kind        string // "song" or "album" when the page declares og:type
}

// fetchPageMeta downloads a streaming page and parses its meta tags.
func fetchPageMeta(pageURL string) (*PageMeta, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	meta, err := parsePageMeta(resp.Body)
	if err != nil {
		return nil, err
	}
	if meta.URL == "" {
		meta.URL = pageURL
	}
	return meta, nil
}

// parsePageMeta walks the HTML tree collecting og:* and music:* meta tags.
func parsePageMeta(r io.Reader) (*PageMeta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	meta := &PageMeta{}
	var description string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, name, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property":
					property = attr.Val
				case "name":
					name = attr.Val
				case "content":
					content = attr.Val
				}
			}
			key := property
			if key == "" {
				key = name
			}
			switch key {
			case "og:title":
				meta.Title = content
			case "og:description", "description":
				if description == "" {
					description = content
				}
			case "og:image":
				meta.ImageURL = content
			case "og:url":
				meta.URL = content
			case "og:type":
				if strings.HasPrefix(content, "music.") {
					meta.Kind = strings.TrimPrefix(content, "music.")
				}
			case "music:release_date":
				meta.ReleaseDate = content
			case "music:musician_description":
				if meta.Artist == "" {
					meta.Artist = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	fillFromDescription(meta, description)
	// Album pages carry the album name as the page title
	if meta.Album == "" && meta.Kind == "album" {
		meta.Album = meta.Title
	}
	return meta, nil
}

// fillFromDescription recovers artist/album from the dot-separated
// description line streaming pages use. Song pages put the album name in the
// second field ("Artist · Album · 2019 · 12 songs"); album pages put the
// page-type word there ("Artist · Album · 2007 · 10 songs" where "Album" is
// the literal type, not a title), so type words never become album names.
func fillFromDescription(meta *PageMeta, description string) {
	if description == "" {
		return
	}
	parts := strings.Split(description, "·")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if meta.Artist == "" && len(parts) > 0 && parts[0] != "" {
		meta.Artist = parts[0]
	}
	if meta.Album == "" && len(parts) > 1 &&
		!looksLikeYear(parts[1]) && !isPageTypeWord(parts[1]) {
		meta.Album = parts[1]
	}
	if meta.ReleaseDate == "" {
		for _, part := range parts[1:] {
			if looksLikeYear(part) {
				meta.ReleaseDate = part
				break
			}
		}
	}
}

// isPageTypeWord reports whether a description field is a page-type label
// rather than a title.
func isPageTypeWord(s string) bool {
	for _, word := range []string{"album", "single", "ep", "song", "compilation", "playlist"} {
		if strings.EqualFold(s, word) {
			return true
		}
	}
	return false
}

func looksLikeYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s[0] == '1' || s[0] == '2'
}

// fetchImage downloads an image by URL and returns the raw bytes.
func fetchImage(imageURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
