package handlers

import (
	"net/http"
	"strings"
	"time"

	"ourbus/internal/http/middleware"
	"ourbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/boarding?date=YYYY-MM-DD — operator view, defaults to today.
func GetBoardingSequence(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = utils.FormatDate(time.Now())
	} else if _, err := utils.ParseDate(date); err != nil {
		RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	sequence, err := getDeps().Boarding.SequenceForDate(date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "sequence": sequence})
}

type boardedRequest struct {
	Boarded *bool `json:"boarded"`
}

// PUT /api/bookings/:id/boarded
func SetBoardedStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req boardedRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Boarded == nil {
		RespondError(c, http.StatusBadRequest, "boarded is required", nil)
		return
	}

	if err := getDeps().Boarding.SetBoarded(id, *req.Boarded); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "boarding", "set_boarded", "booking_id="+id)
	c.JSON(http.StatusOK, gin.H{"message": "Boarding status updated", "bookingId": id, "boarded": *req.Boarded})
}
