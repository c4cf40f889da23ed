package handler

import (
	"net/http"
	"time"

	"billtrack/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports liveness of the process and its dependencies.
type HealthHandler struct {
	db     *gorm.DB
	rdb    *redis.Client
	mailer *infra.Mailer
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, mailer: mailer}
}

// Health returns 200 when the database is reachable. Redis and SMTP state
// are reported but do not fail the check since both are degradable.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "up"
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
	}

	c.JSON(status, gin.H{
		"status":   dbStatus == "up",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"database": dbStatus,
		"redis":    redisStatus,
		"smtp":     h.mailer.Breaker().State().String(),
	})
}
