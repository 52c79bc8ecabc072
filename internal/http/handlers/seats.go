package handlers

import (
	"net/http"
	"strings"

	"ourbus/internal/http/middleware"
	"ourbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/seats?date=YYYY-MM-DD&from=City&to=City
func GetSeats(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if date == "" || from == "" || to == "" {
		RespondError(c, http.StatusBadRequest, "date, from and to are required", nil)
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	seats, err := getDeps().Inventory.GetOrInitSeats(date, from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seats": seats})
}

// DELETE /api/seats — administrative wipe of every partition and the ledger.
func ResetSeats(c *gin.Context) {
	if err := getDeps().Booking.ResetAll(); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "inventory", "reset_all", "store wiped")
	c.JSON(http.StatusOK, gin.H{"message": "All seats reset"})
}
