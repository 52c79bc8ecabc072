package repositories

import (
	"encoding/json"
	"sort"
	"strings"

	"ourbus/internal/domain"
	"ourbus/internal/domain/models"
	"ourbus/internal/kv"
)

const ledgerKey = "ourbus_bookings"

// LedgerRepository holds the single booking collection across all routes and
// dates. Cancellation is a status flip, never a delete; only WipeAll destroys
// bookings.
type LedgerRepository struct {
	Store kv.Store
}

// All returns every booking in insertion order, initializing an empty ledger
// on first access.
func (r LedgerRepository) All() ([]models.Booking, error) {
	raw, found, err := r.Store.Get(ledgerKey)
	if err != nil {
		return nil, domain.StorageError{Op: "read bookings", Err: err}
	}
	if !found {
		if err := r.save([]models.Booking{}); err != nil {
			return nil, err
		}
		return []models.Booking{}, nil
	}

	var bookings []models.Booking
	if err := json.Unmarshal([]byte(raw), &bookings); err != nil {
		return nil, domain.StorageError{Op: "decode bookings", Err: err}
	}
	return bookings, nil
}

// GetByID looks a booking up by its reference.
func (r LedgerRepository) GetByID(id string) (models.Booking, error) {
	bookings, err := r.All()
	if err != nil {
		return models.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

// Append adds a booking to the ledger.
func (r LedgerRepository) Append(b models.Booking) error {
	bookings, err := r.All()
	if err != nil {
		return err
	}
	return r.save(append(bookings, b))
}

// SetStatus flips a booking's status in place. Unknown ids are reported,
// not swallowed.
func (r LedgerRepository) SetStatus(id, status string) error {
	return r.update(id, func(b *models.Booking) { b.Status = status })
}

// SetBoarded toggles the operator-facing boarded flag. Unknown ids are
// reported, not swallowed.
func (r LedgerRepository) SetBoarded(id string, boarded bool) error {
	return r.update(id, func(b *models.Booking) { b.Boarded = boarded })
}

func (r LedgerRepository) update(id string, mutate func(*models.Booking)) error {
	bookings, err := r.All()
	if err != nil {
		return err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			mutate(&bookings[i])
			return r.save(bookings)
		}
	}
	return domain.NotFoundError{Resource: "booking"}
}

// FindByPhone returns the phone number's bookings, most recent first,
// cancelled ones included.
func (r LedgerRepository) FindByPhone(mobile string) ([]models.Booking, error) {
	bookings, err := r.All()
	if err != nil {
		return nil, err
	}

	out := []models.Booking{}
	for _, b := range bookings {
		if b.Mobile == strings.TrimSpace(mobile) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// CountActiveSeats sums seat counts over the user's BOOKED bookings for one
// travel date. Feeds the per-user per-date quota.
func (r LedgerRepository) CountActiveSeats(mobile, date string) (int, error) {
	bookings, err := r.All()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, b := range bookings {
		if b.Mobile == strings.TrimSpace(mobile) && b.Date == strings.TrimSpace(date) && b.IsActive() {
			count += len(b.Seats)
		}
	}
	return count, nil
}

// ActiveByDate returns BOOKED bookings for a travel date in insertion order.
// The boarding sequence depends on that order for its tie-break.
func (r LedgerRepository) ActiveByDate(date string) ([]models.Booking, error) {
	bookings, err := r.All()
	if err != nil {
		return nil, err
	}

	out := []models.Booking{}
	for _, b := range bookings {
		if b.Date == strings.TrimSpace(date) && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

// WipeAll is the administrative reset: clears the ledger and every seat
// partition in one stroke.
func (r LedgerRepository) WipeAll() error {
	if err := r.Store.Clear(); err != nil {
		return domain.StorageError{Op: "wipe store", Err: err}
	}
	return nil
}

func (r LedgerRepository) save(bookings []models.Booking) error {
	raw, err := json.Marshal(bookings)
	if err != nil {
		return domain.StorageError{Op: "encode bookings", Err: err}
	}
	if err := r.Store.Set(ledgerKey, string(raw)); err != nil {
		return domain.StorageError{Op: "write bookings", Err: err}
	}
	return nil
}
