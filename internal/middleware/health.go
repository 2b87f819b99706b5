package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

var (
	healthMutex   sync.RWMutex
	healthVersion = "1.0.0"
	startTime     = time.Now()
)

// HealthCheckHandler reports process liveness and uptime.
func HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		healthMutex.RLock()
		version := healthVersion
		healthMutex.RUnlock()

		c.JSON(http.StatusOK, HealthStatus{
			Status:      "ok",
			LastChecked: time.Now(),
			Uptime:      time.Since(startTime).String(),
			Version:     version,
		})
	}
}

func SetVersion(version string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()
	healthVersion = version
}
