package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/NguyenHongSon4/app-02/database"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// RegisterHealthRoutes reports store status and record counts
func RegisterHealthRoutes(router *gin.Engine, db *database.Database) {
	router.GET("/health", func(c *gin.Context) {
		var notes, accounts int
		err := db.View(func(tx *database.Tx) error {
			notes = database.Notes.Count(tx)
			accounts = database.Accounts.Count(tx)
			return nil
		})
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			err = db.Ping(ctx)
			cancel()
		}
		if err != nil {
			log.Printf("Health check failed for %s backend: %v", db.Driver(), err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"driver":  db.Driver(),
				"message": err.Error(),
				"time":    time.Now().UTC(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"driver":   db.Driver(),
			"notes":    notes,
			"accounts": accounts,
			"time":     time.Now().UTC(),
		})
	})
}
