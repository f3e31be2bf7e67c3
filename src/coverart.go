package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MusicBrainz / Cover Art Archive constants
const (
	MUSICBRAINZ_API_URL       = "https://musicbrainz.org/ws/2/"
	COVERART_ARCHIVE_URL      = "https://coverartarchive.org/release/%s/front"
	MUSICBRAINZ_RATE_LIMIT_MS = 1000 // 1 request per second as per MusicBrainz guidelines
	MUSICBRAINZ_MAX_RELEASES  = 5
)

// musicBrainzMu guards lastMusicBrainzRequest; serve mode issues lookups from
// concurrent request handlers.
var (
	musicBrainzMu          sync.Mutex
	lastMusicBrainzRequest time.Time
)

// MusicBrainzRelease represents a simplified MusicBrainz release response
type MusicBrainzRelease struct {
	ID string `json:"id"`
}

type MusicBrainzReleaseSearch struct {
	Releases []MusicBrainzRelease `json:"releases"`
}

// searchMusicBrainzRelease searches for a release and returns up to 5 release IDs
func searchMusicBrainzRelease(artist, album string) ([]string, error) {
	rateLimitMusicBrainz()

	query := fmt.Sprintf("artist:%s AND release:%s",
		sanitizeSearchTerm(artist),
		sanitizeSearchTerm(album))

	searchURL := fmt.Sprintf("%srelease/?query=%s&fmt=json&limit=%d",
		MUSICBRAINZ_API_URL,
		url.QueryEscape(query),
		MUSICBRAINZ_MAX_RELEASES)

	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, err
	}
	// MusicBrainz requires an identifying user agent
	req.Header.Set("User-Agent", USER_AGENT)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MusicBrainz API returned status: %d", resp.StatusCode)
	}

	var result MusicBrainzReleaseSearch
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	releaseIDs := make([]string, len(result.Releases))
	for i, release := range result.Releases {
		releaseIDs[i] = release.ID
	}
	return releaseIDs, nil
}

// fetchCoverArt fetches the front cover from Cover Art Archive. A release
// without cover art returns nil bytes and no error.
func fetchCoverArt(releaseID string) ([]byte, string, error) {
	rateLimitMusicBrainz()

	coverURL := fmt.Sprintf(COVERART_ARCHIVE_URL, releaseID)

	req, err := http.NewRequest("GET", coverURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", nil // No cover art available
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("Cover Art Archive returned status: %d", resp.StatusCode)
	}

	mimeType := resp.Header.Get("Content-Type")
	artData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return artData, mimeType, nil
}

// searchCoverArt tries each matching release until one yields cover art.
func searchCoverArt(artist, album string) ([]byte, error) {
	releaseIDs, err := searchMusicBrainzRelease(artist, album)
	if err != nil {
		return nil, fmt.Errorf("release search: %w", err)
	}
	if len(releaseIDs) == 0 {
		return nil, fmt.Errorf("no release found for %s - %s", artist, album)
	}

	for i, releaseID := range releaseIDs {
		artData, _, err := fetchCoverArt(releaseID)
		if err != nil {
			logMsg(fmt.Sprintf("WARNING: Cover art fetch %d/%d failed: %v", i+1, len(releaseIDs), err))
			continue
		}
		if len(artData) == 0 {
			continue
		}
		logMsg(fmt.Sprintf("Fetched cover art from release %d/%d (%d bytes)", i+1, len(releaseIDs), len(artData)))
		return artData, nil
	}
	return nil, fmt.Errorf("no cover art found in %d releases", len(releaseIDs))
}

// rateLimitMusicBrainz ensures we don't exceed MusicBrainz rate limits.
// Callers are serialized; the sleep happens under the lock so concurrent
// lookups space out one full interval apart.
func rateLimitMusicBrainz() {
	musicBrainzMu.Lock()
	defer musicBrainzMu.Unlock()

	limit := time.Duration(MUSICBRAINZ_RATE_LIMIT_MS) * time.Millisecond
	if elapsed := time.Since(lastMusicBrainzRequest); elapsed < limit {
		time.Sleep(limit - elapsed)
	}
	lastMusicBrainzRequest = time.Now()
}

// sanitizeSearchTerm cleans up search terms for MusicBrainz queries
func sanitizeSearchTerm(term string) string {
	term = strings.TrimSpace(term)
	term = strings.ReplaceAll(term, `"`, `\"`)
	if strings.Contains(term, " ") {
		term = `"` + term + `"`
	}
	return term
}
