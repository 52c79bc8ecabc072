package repositories

import (
	"testing"

	"ourbus/internal/domain"
	"ourbus/internal/domain/models"
	"ourbus/internal/kv"
)

func ledgerBooking(id, mobile, date string, ts int64, seats ...string) models.Booking {
	passengers := make([]models.Passenger, 0, len(seats))
	for _, s := range seats {
		passengers = append(passengers, models.Passenger{SeatID: s, Name: "P", Age: "20"})
	}
	return models.Booking{
		ID:          id,
		Mobile:      mobile,
		Date:        date,
		From:        "Delhi",
		To:          "Pune",
		Seats:       seats,
		Passengers:  passengers,
		TotalAmount: int64(len(seats)) * models.TicketPrice,
		Timestamp:   ts,
		Status:      models.BookingStatusBooked,
	}
}

func TestFindByPhoneDescendingIncludesCancelled(t *testing.T) {
	repo := LedgerRepository{Store: kv.NewMemoryStore()}

	older := ledgerBooking("BID-1", "9000", "2026-10-01", 100, "A1")
	newer := ledgerBooking("BID-2", "9000", "2026-10-02", 200, "B1")
	other := ledgerBooking("BID-3", "9111", "2026-10-01", 150, "C1")

	for _, b := range []models.Booking{older, newer, other} {
		if err := repo.Append(b); err != nil {
			t.Fatalf("append error: %v", err)
		}
	}
	if err := repo.SetStatus("BID-1", models.BookingStatusCancelled); err != nil {
		t.Fatalf("set status error: %v", err)
	}

	got, err := repo.FindByPhone("9000")
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("found %d bookings, want 2", len(got))
	}
	if got[0].ID != "BID-2" || got[1].ID != "BID-1" {
		t.Fatalf("order wrong: %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Status != models.BookingStatusCancelled {
		t.Fatalf("cancelled booking missing from history")
	}
}

func TestSetStatusUnknownIDReported(t *testing.T) {
	repo := LedgerRepository{Store: kv.NewMemoryStore()}
	if err := repo.SetStatus("BID-NOPE", models.BookingStatusCancelled); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := repo.SetBoarded("BID-NOPE", true); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCountActiveSeats(t *testing.T) {
	repo := LedgerRepository{Store: kv.NewMemoryStore()}

	if err := repo.Append(ledgerBooking("BID-1", "9000", "2026-10-01", 100, "A1", "A2")); err != nil {
		t.Fatalf("append error: %v", err)
	}
	if err := repo.Append(ledgerBooking("BID-2", "9000", "2026-10-01", 200, "B1")); err != nil {
		t.Fatalf("append error: %v", err)
	}
	// Different date and different phone must not count.
	if err := repo.Append(ledgerBooking("BID-3", "9000", "2026-10-02", 300, "C1")); err != nil {
		t.Fatalf("append error: %v", err)
	}
	if err := repo.Append(ledgerBooking("BID-4", "9111", "2026-10-01", 400, "D1")); err != nil {
		t.Fatalf("append error: %v", err)
	}

	count, err := repo.CountActiveSeats("9000", "2026-10-01")
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	// Cancelled seats stop counting toward the quota.
	if err := repo.SetStatus("BID-1", models.BookingStatusCancelled); err != nil {
		t.Fatalf("set status error: %v", err)
	}
	count, err = repo.CountActiveSeats("9000", "2026-10-01")
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after cancel = %d, want 1", count)
	}
}

func TestActiveByDateKeepsInsertionOrder(t *testing.T) {
	repo := LedgerRepository{Store: kv.NewMemoryStore()}

	for _, b := range []models.Booking{
		ledgerBooking("BID-1", "9000", "2026-10-01", 300, "A1"),
		ledgerBooking("BID-2", "9111", "2026-10-01", 100, "B1"),
		ledgerBooking("BID-3", "9222", "2026-10-02", 200, "C1"),
	} {
		if err := repo.Append(b); err != nil {
			t.Fatalf("append error: %v", err)
		}
	}

	got, err := repo.ActiveByDate("2026-10-01")
	if err != nil {
		t.Fatalf("active error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "BID-1" || got[1].ID != "BID-2" {
		t.Fatalf("insertion order not preserved: %+v", got)
	}
}

func TestSetBoardedFlag(t *testing.T) {
	repo := LedgerRepository{Store: kv.NewMemoryStore()}
	if err := repo.Append(ledgerBooking("BID-1", "9000", "2026-10-01", 100, "A1")); err != nil {
		t.Fatalf("append error: %v", err)
	}

	if err := repo.SetBoarded("BID-1", true); err != nil {
		t.Fatalf("set boarded error: %v", err)
	}
	b, err := repo.GetByID("BID-1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !b.Boarded {
		t.Fatalf("boarded flag not set")
	}
	if b.Status != models.BookingStatusBooked {
		t.Fatalf("boarding must not change status, got %s", b.Status)
	}
}

func TestWipeAllClearsStore(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := LedgerRepository{Store: store}
	inv := InventoryRepository{Store: store}

	if err := repo.Append(ledgerBooking("BID-1", "9000", "2026-10-01", 100, "A1")); err != nil {
		t.Fatalf("append error: %v", err)
	}
	if _, err := inv.GetOrInitSeats("2026-10-01", "Delhi", "Pune"); err != nil {
		t.Fatalf("init error: %v", err)
	}

	if err := repo.WipeAll(); err != nil {
		t.Fatalf("wipe error: %v", err)
	}

	bookings, err := repo.All()
	if err != nil {
		t.Fatalf("all error: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("ledger survived wipe: %d rows", len(bookings))
	}
	seats, err := inv.GetOrInitSeats("2026-10-01", "Delhi", "Pune")
	if err != nil {
		t.Fatalf("re-init error: %v", err)
	}
	for _, s := range seats {
		if s.Status != models.SeatAvailable {
			t.Fatalf("seat %s not reset", s.ID)
		}
	}
}
