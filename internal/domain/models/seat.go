package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TotalRows   = 15
	SeatsPerRow = 4

	SeatAvailable = "available"
	SeatBooked    = "booked"

	SeatTypeWindow = "window"
	SeatTypeAisle  = "aisle"
)

var seatColumns = []string{"A", "B", "C", "D"}

// Seat is the static layout cell of the bus. Identical across all routes
// and dates; only SeatRecord carries per-partition state.
type Seat struct {
	ID      string `json:"id"`
	Row     int    `json:"row"`
	Col     string `json:"col"`
	IsAisle bool   `json:"isAisle"`
	Type    string `json:"type"`
}

// SeatRecord is a Seat plus booking state within one route-date partition.
type SeatRecord struct {
	Seat
	Status        string `json:"status"`
	PassengerName string `json:"passengerName,omitempty"`
	PassengerAge  string `json:"passengerAge,omitempty"`
	BookingID     string `json:"bookingId,omitempty"`
}

// GenerateLayout produces the 60-seat grid (15 rows x columns A-D).
// Column index 1 is flagged as the aisle gap; outer columns are window seats.
func GenerateLayout() []Seat {
	layout := make([]Seat, 0, TotalRows*SeatsPerRow)
	for r := 1; r <= TotalRows; r++ {
		for c, col := range seatColumns {
			seatType := SeatTypeAisle
			if c == 0 || c == len(seatColumns)-1 {
				seatType = SeatTypeWindow
			}
			layout = append(layout, Seat{
				ID:      fmt.Sprintf("%s%d", col, r),
				Row:     r,
				Col:     col,
				IsAisle: c == 1,
				Type:    seatType,
			})
		}
	}
	return layout
}

// NewSeatRecords returns a freshly initialized partition, every seat available.
func NewSeatRecords() []SeatRecord {
	layout := GenerateLayout()
	records := make([]SeatRecord, 0, len(layout))
	for _, s := range layout {
		records = append(records, SeatRecord{Seat: s, Status: SeatAvailable})
	}
	return records
}

// SeatRow extracts the numeric row from a seat id like "A12" by stripping
// leading letters. Returns an error for ids that do not end in digits.
func SeatRow(seatID string) (int, error) {
	s := strings.TrimSpace(seatID)
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	if i == len(s) {
		return 0, fmt.Errorf("seat id %q has no row number", seatID)
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, fmt.Errorf("seat id %q has invalid row: %w", seatID, err)
	}
	return row, nil
}
