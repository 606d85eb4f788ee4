package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seo-auditor/backend/analyzer"
	"github.com/seo-auditor/backend/fetch"
	"github.com/seo-auditor/backend/robots"
	"github.com/seo-auditor/backend/schema"
	"github.com/seo-auditor/backend/vitals"
)

// handlers holds the outbound collaborators shared by all audit endpoints.
// Requests are stateless; nothing here is mutated after startup.
type handlers struct {
	pages       *fetch.Client
	schemaPages *fetch.Client
	vitals      *vitals.Client
}

// detail converts any failure into the uniform client-facing error shape.
func detail(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

func (h *handlers) fetchPage(c *gin.Context) {
	targetURL := c.Query("url")
	if targetURL == "" {
		detail(c, errors.New("url query parameter is required"))
		return
	}

	html, err := h.pages.Get(c.Request.Context(), targetURL)
	if err != nil {
		detail(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type analyzeBody struct {
	HTML           string `json:"html" binding:"required"`
	URL            string `json:"url" binding:"required"`
	PrimaryKeyword string `json:"primary_keyword" binding:"required"`
}

func (h *handlers) analyzeSEO(c *gin.Context) {
	var body analyzeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, err)
		return
	}

	report := analyzer.AnalyzeHTML(body.HTML, body.URL, body.PrimaryKeyword)
	c.JSON(http.StatusOK, report)
}

type analyzeURLBody struct {
	URL            string `json:"url" binding:"required,url"`
	PrimaryKeyword string `json:"primary_keyword" binding:"required"`
}

// analyzeSEOURL fetches the page server-side and produces the same report as
// analyzeSEO, so callers never need to transmit full HTML.
func (h *handlers) analyzeSEOURL(c *gin.Context) {
	var body analyzeURLBody
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, err)
		return
	}

	html, err := h.pages.Get(c.Request.Context(), body.URL)
	if err != nil {
		detail(c, err)
		return
	}

	report := analyzer.AnalyzeHTML(html, body.URL, body.PrimaryKeyword)
	c.JSON(http.StatusOK, report)
}

func (h *handlers) robotsCheck(c *gin.Context) {
	targetURL := c.Query("url")
	if targetURL == "" {
		detail(c, errors.New("url query parameter is required"))
		return
	}

	text, targetPath, err := h.pages.RobotsTxt(c.Request.Context(), targetURL)
	if err != nil {
		detail(c, err)
		return
	}

	c.JSON(http.StatusOK, robots.Parse(text, targetPath))
}

type urlBody struct {
	URL string `json:"url" binding:"required,url"`
}

func (h *handlers) webVitals(c *gin.Context) {
	// Configuration failure is reported before any outbound call.
	if h.vitals.APIKey == "" {
		detail(c, errors.New("PSI_API_KEY is not configured"))
		return
	}

	var body urlBody
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, err)
		return
	}

	metrics, err := h.vitals.Measure(c.Request.Context(), body.URL)
	if err != nil {
		log.Printf("Web vitals lookup failed for %s: %v\n", body.URL, err)
		detail(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *handlers) schemaAudit(c *gin.Context) {
	var body urlBody
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, err)
		return
	}

	html, err := h.schemaPages.Get(c.Request.Context(), body.URL)
	if err != nil {
		detail(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.Extract(html, body.URL))
}
