package handlers

import (
	"net/http"

	"guestbook/internal/db"
	"guestbook/internal/logging"
	"guestbook/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) Index(c *gin.Context) {
	Render(c, http.StatusOK, "home.html", gin.H{"Title": "Home"})
}

func (h *HomeHandler) NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found.")
}

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), h.db); err != nil {
		middleware.Logger(c).Error("health check failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
