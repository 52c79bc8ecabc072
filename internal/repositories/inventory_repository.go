package repositories

import (
	"encoding/json"
	"log"
	"strings"

	"ourbus/internal/domain"
	"ourbus/internal/domain/models"
	"ourbus/internal/kv"
	"ourbus/internal/utils"
)

const seatsKeyPrefix = "ourbus_seats_"

// PartitionKey builds the inventory key for one route-date partition.
// Origin and destination are trimmed and lower-cased so "Delhi " and
// "delhi" land on the same partition.
func PartitionKey(date, from, to string) string {
	return seatsKeyPrefix + strings.TrimSpace(date) + "_" + utils.NormalizeCity(from) + "_" + utils.NormalizeCity(to)
}

// InventoryRepository owns per route-date seat availability. It never
// re-checks availability itself; the booking service performs the check
// against the same read it hands back here.
type InventoryRepository struct {
	Store kv.Store
}

// GetOrInitSeats returns the partition's seat records, initializing all 60
// seats to available (and persisting) on first access. Idempotent: existing
// state is never re-initialized.
func (r InventoryRepository) GetOrInitSeats(date, from, to string) ([]models.SeatRecord, error) {
	key := PartitionKey(date, from, to)

	raw, found, err := r.Store.Get(key)
	if err != nil {
		return nil, domain.StorageError{Op: "read seats", Err: err}
	}
	if !found {
		records := models.NewSeatRecords()
		if err := r.save(key, records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var records []models.SeatRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, domain.StorageError{Op: "decode seats", Err: err}
	}
	return records, nil
}

// ApplyBooking marks the given seats booked with occupant info. A seat with
// no matching passenger gets "Unknown"/empty occupant fields; that means the
// caller sent misaligned data, so it is logged rather than silently accepted.
func (r InventoryRepository) ApplyBooking(date, from, to string, seatIDs []string, passengers []models.Passenger, bookingID string) ([]models.SeatRecord, error) {
	records, err := r.GetOrInitSeats(date, from, to)
	if err != nil {
		return nil, err
	}

	wanted := seatIDSet(seatIDs)
	bySeat := map[string]models.Passenger{}
	for _, p := range passengers {
		bySeat[strings.ToUpper(strings.TrimSpace(p.SeatID))] = p
	}

	for i := range records {
		if !wanted[records[i].ID] {
			continue
		}
		p, ok := bySeat[records[i].ID]
		if !ok {
			log.Printf("[INVENTORY] warning: no passenger matched seat %s for booking %s", records[i].ID, bookingID)
			p = models.Passenger{Name: "Unknown"}
		}
		records[i].Status = models.SeatBooked
		records[i].PassengerName = p.Name
		records[i].PassengerAge = p.Age
		records[i].BookingID = bookingID
	}

	if err := r.save(PartitionKey(date, from, to), records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReleaseBooking reverts the given seats to available and clears occupant fields.
func (r InventoryRepository) ReleaseBooking(date, from, to string, seatIDs []string) ([]models.SeatRecord, error) {
	records, err := r.GetOrInitSeats(date, from, to)
	if err != nil {
		return nil, err
	}

	wanted := seatIDSet(seatIDs)
	for i := range records {
		if !wanted[records[i].ID] {
			continue
		}
		records[i].Status = models.SeatAvailable
		records[i].PassengerName = ""
		records[i].PassengerAge = ""
		records[i].BookingID = ""
	}

	if err := r.save(PartitionKey(date, from, to), records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r InventoryRepository) save(key string, records []models.SeatRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return domain.StorageError{Op: "encode seats", Err: err}
	}
	if err := r.Store.Set(key, string(raw)); err != nil {
		return domain.StorageError{Op: "write seats", Err: err}
	}
	return nil
}

func seatIDSet(seatIDs []string) map[string]bool {
	set := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		set[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	return set
}
