package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxSeatsPerUser = 6
	TicketPrice     = 2000

	BookingStatusBooked    = "BOOKED"
	BookingStatusCancelled = "CANCELLED"
)

// Passenger lives only embedded inside a Booking, one per seat.
type Passenger struct {
	SeatID string `json:"seatId"`
	Name   string `json:"name"`
	Age    string `json:"age"`
}

// Booking is a ledger row. ID, route, date, mobile, seats and passengers are
// immutable after creation; only Status and Boarded flip afterwards.
type Booking struct {
	ID          string      `json:"id"`
	Mobile      string      `json:"mobile"`
	Date        string      `json:"date"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Seats       []string    `json:"seats"`
	Passengers  []Passenger `json:"passengers"`
	TotalAmount int64       `json:"totalAmount"`
	Timestamp   int64       `json:"timestamp"`
	Status      string      `json:"status"`
	Boarded     bool        `json:"boarded"`
}

// IsActive reports whether the booking still holds its seats.
func (b Booking) IsActive() bool {
	return b.Status == BookingStatusBooked
}

// NewBookingID returns a collision-resistant booking reference. The legacy
// format was "BID-" plus six random digits, which collides at scale.
func NewBookingID() string {
	return "BID-" + strings.ToUpper(uuid.NewString())
}

// ValidPassenger checks the per-passenger required fields: a non-empty name
// and an age parseable as a positive integer.
func ValidPassenger(p Passenger) bool {
	if strings.TrimSpace(p.Name) == "" {
		return false
	}
	age, err := strconv.Atoi(strings.TrimSpace(p.Age))
	if err != nil || age <= 0 {
		return false
	}
	return true
}
