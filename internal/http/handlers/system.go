package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "ourbus backend running"})
}

// StoreCheck verifies the key-value store answers reads.
func StoreCheck(c *gin.Context) {
	d := getDeps()
	if d.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store not configured"})
		return
	}
	bookings, err := d.Ledger.All()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store connection OK", "bookings_in_store": len(bookings)})
}
