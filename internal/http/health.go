package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehonlab/ehon-server/internal/database"
)

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status reports service health, including database reachability.
// GET /health
func (hc *HealthController) Status(c *gin.Context) {
	dbStatus := "ok"
	if hc.db != nil {
		sqlDB, err := hc.db.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "unavailable"
		}
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbStatus,
		"version":  hc.version,
		"database": dbStatus,
	})
}
