package handlers

import (
	"net/http"
	"strings"

	"ourbus/internal/domain/models"
	"ourbus/internal/http/middleware"
	"ourbus/internal/services"
	"ourbus/internal/utils"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	Date       string             `json:"date"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Mobile     string             `json:"mobile"`
	Seats      []string           `json:"seats"`
	Passengers []models.Passenger `json:"passengers"`
	Coupon     string             `json:"coupon"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	mobile := strings.TrimSpace(req.Mobile)
	if mobile == "" {
		mobile = middleware.GuestPhone(c)
	}

	booking, updatedSeats, err := getDeps().Booking.CreateBooking(services.CreateBookingInput{
		Date:       req.Date,
		From:       req.From,
		To:         req.To,
		Mobile:     mobile,
		SeatIDs:    req.Seats,
		Passengers: req.Passengers,
		Coupon:     req.Coupon,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "booking", "create", "booking_id="+booking.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Booking Successful",
		"bookingId":    booking.ID,
		"booking":      booking,
		"updatedSeats": updatedSeats,
	})
}

// GET /api/bookings?mobile=...
func ListBookings(c *gin.Context) {
	mobile := strings.TrimSpace(c.Query("mobile"))
	if mobile == "" {
		mobile = middleware.GuestPhone(c)
	}
	if mobile == "" {
		RespondError(c, http.StatusBadRequest, "mobile is required", nil)
		return
	}

	bookings, err := getDeps().Ledger.FindByPhone(mobile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := getDeps().Booking.CancelBooking(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "booking", "cancel", "booking_id="+id)
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "bookingId": id})
}

type quoteRequest struct {
	SeatCount int    `json:"seatCount"`
	Coupon    string `json:"coupon"`
	Mobile    string `json:"mobile"`
}

// POST /api/quote — pricing preview before the passenger form is confirmed.
func GetQuote(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.SeatCount <= 0 {
		RespondError(c, http.StatusBadRequest, "seatCount must be positive", nil)
		return
	}

	mobile := strings.TrimSpace(req.Mobile)
	if mobile == "" {
		mobile = middleware.GuestPhone(c)
	}

	quote, err := getDeps().Pricing.Quote(req.SeatCount, req.Coupon, mobile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	svc := services.TicketService{
		Ledger:    getDeps().Ledger,
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
