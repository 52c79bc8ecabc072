package services

import (
	"log"
	"sort"

	"ourbus/internal/domain/models"
	"ourbus/internal/repositories"
)

// BoardingEntry is one booking's slot in the operator's boarding sequence.
type BoardingEntry struct {
	Position int            `json:"position"`
	Booking  models.Booking `json:"booking"`
	MinRow   int            `json:"minRow"`
	MaxRow   int            `json:"maxRow"`
}

// BoardingService derives the back-to-front boarding order for one travel
// date. Pure derivation: nothing in the ledger changes except through
// SetBoarded.
type BoardingService struct {
	Ledger repositories.LedgerRepository
}

// SequenceForDate orders the date's active bookings descending by the
// group's minimum occupied row, so rear groups board first and empty the bus
// back to front. Ties keep ledger insertion order. Positions are 1-based.
func (s BoardingService) SequenceForDate(date string) ([]BoardingEntry, error) {
	bookings, err := s.Ledger.ActiveByDate(date)
	if err != nil {
		return nil, err
	}

	entries := make([]BoardingEntry, 0, len(bookings))
	for _, b := range bookings {
		minRow, maxRow := rowSpan(b)
		entries = append(entries, BoardingEntry{Booking: b, MinRow: minRow, MaxRow: maxRow})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MinRow > entries[j].MinRow
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

// SetBoarded toggles a booking's boarded flag. Unknown ids surface as
// not-found rather than silently succeeding.
func (s BoardingService) SetBoarded(id string, boarded bool) error {
	return s.Ledger.SetBoarded(id, boarded)
}

func rowSpan(b models.Booking) (int, int) {
	minRow, maxRow := 0, 0
	for _, seatID := range b.Seats {
		row, err := models.SeatRow(seatID)
		if err != nil {
			log.Printf("[BOARDING] warning: booking %s has malformed seat id %q", b.ID, seatID)
			continue
		}
		if minRow == 0 || row < minRow {
			minRow = row
		}
		if row > maxRow {
			maxRow = row
		}
	}
	return minRow, maxRow
}
