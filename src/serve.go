package main

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
)

// runServer exposes poster generation over HTTP. One endpoint does the whole
// pipeline per request; MusicBrainz rate limiting still applies, so this is
// meant for personal use, not public traffic.
func runServer(app *App, addr string) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": APP_VERSION})
	})

	router.GET("/designs", func(c *gin.Context) {
		designs := gin.H{}
		for name, design := range app.Designs {
			designs[name] = gin.H{
				"description": design.Description,
				"width":       design.Width,
				"height":      design.Height,
			}
		}
		c.JSON(http.StatusOK, designs)
	})

	router.GET("/poster", func(c *gin.Context) {
		pageURL := c.Query("url")
		artist := c.Query("artist")
		album := c.Query("album")
		if pageURL == "" && (artist == "" || album == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url or artist+album query parameters are required"})
			return
		}

		poster, err := buildPoster(pageURL, "", artist, album, "")
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if spec := c.Query("background"); spec != "" {
			background, err := parseBackgroundSpec(spec, poster, app.Settings)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			poster.Background = background
		}

		designName := c.DefaultQuery("design", app.Settings.Design)
		img, err := app.generatePoster(poster, designName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	})

	logMsg(fmt.Sprintf("Listening on %s", addr))
	return router.Run(addr)
}
