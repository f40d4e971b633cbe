package handlers

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/dto"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger checks that storage answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health godoc
// @Summary      Storage health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      500  {object}  dto.HealthResponse
// @Router       /health [get]
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, dto.HealthResponse{OK: false, Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponse{OK: true})
	}
}

// Version godoc
// @Summary      Build version
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func Version(version, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": version, "env": env})
	}
}
