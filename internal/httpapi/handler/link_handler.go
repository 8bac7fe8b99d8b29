package handler

import (
	"errors"
	"net/http"

	"iftarmap/internal/linkresolver"

	"github.com/gin-gonic/gin"
)

type LinkHandler struct {
	resolver linkresolver.Resolver
}

func NewLinkHandler(resolver linkresolver.Resolver) *LinkHandler {
	return &LinkHandler{
		resolver: resolver,
	}
}

// RegisterRoutes registers the link-resolution route behind the per-client
// rate limiter.
func (h *LinkHandler) RegisterRoutes(api *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	api.GET("/resolve-link", rateLimit, h.Resolve)
}

// Resolve expands a shortened map URL
// GET /api/resolve-link?url=https://maps.app.goo.gl/abc
func (h *LinkHandler) Resolve(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), rawURL)
	if err != nil {
		switch {
		case errors.Is(err, linkresolver.ErrHostNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "url host not allowed"})
		case errors.Is(err, linkresolver.ErrTooManyRedirects):
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve link"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve link"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolved_url": resolved})
}
