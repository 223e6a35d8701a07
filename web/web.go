package web

import (
	"embed"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var staticFS embed.FS

// Index serves the embedded single-page UI.
func Index(c *gin.Context) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		log.Printf("[ERROR] Failed to read embedded index.html: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "UI unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
