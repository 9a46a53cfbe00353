package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health probes the two backing stores. The ledger cannot operate without
// Postgres, so a failed database probe is a 503; the stock cache is
// best-effort and a failed Redis probe only marks the service degraded.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ledgerDB := "up"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			ledgerDB = "down"
		}

		stockCache := "up"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			stockCache = "down"
		}

		state := "ok"
		status := http.StatusOK
		switch {
		case ledgerDB == "down":
			state = "unavailable"
			status = http.StatusServiceUnavailable
		case stockCache == "down":
			state = "degraded"
		}

		c.JSON(status, gin.H{
			"status":      state,
			"ledger_db":   ledgerDB,
			"stock_cache": stockCache,
		})
	}
}
