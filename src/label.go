package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ReleaseDetails is the subset of a MusicBrainz release lookup the posters
// use: the issuing label, catalog number, release date and track titles.
type ReleaseDetails struct {
	Label      string
	CatalogNum string
	Date       string
	Tracks     []string
}

type mbLabelInfo struct {
	CatalogNumber string `json:"catalog-number"`
	Label         struct {
		Name string `json:"name"`
	} `json:"label"`
}

type mbTrack struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
}

type mbMedia struct {
	Tracks []mbTrack `json:"tracks"`
}

type mbReleaseLookup struct {
	Date      string        `json:"date"`
	LabelInfo []mbLabelInfo `json:"label-info"`
	Media     []mbMedia     `json:"media"`
}

// lookupReleaseDetails fetches label info and the track listing for a
// release. Best effort: missing fields stay empty.
func lookupReleaseDetails(releaseID string) (*ReleaseDetails, error) {
	rateLimitMusicBrainz()

	lookupURL := fmt.Sprintf("%srelease/%s?inc=labels+recordings&fmt=json",
		MUSICBRAINZ_API_URL, releaseID)

	req, err := http.NewRequest("GET", lookupURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MusicBrainz lookup returned status: %d", resp.StatusCode)
	}

	var lookup mbReleaseLookup
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, err
	}

	details := &ReleaseDetails{Date: lookup.Date}
	if len(lookup.LabelInfo) > 0 {
		details.Label = lookup.LabelInfo[0].Label.Name
		details.CatalogNum = lookup.LabelInfo[0].CatalogNumber
	}
	for _, media := range lookup.Media {
		for _, track := range media.Tracks {
			details.Tracks = append(details.Tracks, track.Title)
		}
	}
	return details, nil
}

// enrichFromMusicBrainz fills the poster's label, catalog number, release
// date and track listing from the first matching release that has data.
// Lookup failures are non-fatal; the poster just renders without the lines.
func enrichFromMusicBrainz(p *Poster) {
	album := p.Album
	if album == "" {
		album = p.Title
	}
	releaseIDs, err := searchMusicBrainzRelease(p.Artist, album)
	if err != nil || len(releaseIDs) == 0 {
		logMsg(fmt.Sprintf("WARNING: Label lookup found no release for %s - %s", p.Artist, album))
		return
	}

	details, err := lookupReleaseDetails(releaseIDs[0])
	if err != nil {
		logMsg(fmt.Sprintf("WARNING: Release lookup failed: %v", err))
		return
	}

	if p.Label == "" {
		p.Label = details.Label
	}
	if p.CatalogNum == "" {
		p.CatalogNum = details.CatalogNum
	}
	if p.ReleaseDate == "" {
		p.ReleaseDate = details.Date
	}
	if len(p.Tracks) == 0 {
		p.Tracks = details.Tracks
	}
}
