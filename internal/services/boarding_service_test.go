package services

import (
	"testing"

	"ourbus/internal/domain"
	"ourbus/internal/domain/models"
	"ourbus/internal/kv"
	"ourbus/internal/repositories"
)

func newBoarding() (BoardingService, repositories.LedgerRepository) {
	ledger := repositories.LedgerRepository{Store: kv.NewMemoryStore()}
	return BoardingService{Ledger: ledger}, ledger
}

func boardingBooking(id string, seats ...string) models.Booking {
	return models.Booking{
		ID: id, Mobile: "9000", Date: "2026-10-01", From: "Delhi", To: "Pune",
		Seats: seats, Timestamp: 100, Status: models.BookingStatusBooked,
	}
}

func TestSequenceBackToFrontStableTies(t *testing.T) {
	svc, ledger := newBoarding()

	// minRows: 12, 3, 12, 7 — expect [12(first), 12(second), 7, 3].
	for _, b := range []models.Booking{
		boardingBooking("BID-1", "A12", "B14"),
		boardingBooking("BID-2", "C3"),
		boardingBooking("BID-3", "D12"),
		boardingBooking("BID-4", "A7", "A8"),
	} {
		if err := ledger.Append(b); err != nil {
			t.Fatalf("append error: %v", err)
		}
	}

	seq, err := svc.SequenceForDate("2026-10-01")
	if err != nil {
		t.Fatalf("sequence error: %v", err)
	}

	wantOrder := []string{"BID-1", "BID-3", "BID-4", "BID-2"}
	if len(seq) != len(wantOrder) {
		t.Fatalf("sequence length = %d", len(seq))
	}
	for i, want := range wantOrder {
		if seq[i].Booking.ID != want {
			t.Fatalf("position %d = %s, want %s", i+1, seq[i].Booking.ID, want)
		}
		if seq[i].Position != i+1 {
			t.Fatalf("position field = %d, want %d", seq[i].Position, i+1)
		}
	}

	if seq[0].MinRow != 12 || seq[0].MaxRow != 14 {
		t.Fatalf("row span wrong: min=%d max=%d", seq[0].MinRow, seq[0].MaxRow)
	}
}

func TestSequenceSkipsCancelledAndOtherDates(t *testing.T) {
	svc, ledger := newBoarding()

	active := boardingBooking("BID-1", "A5")
	cancelled := boardingBooking("BID-2", "B10")
	cancelled.Status = models.BookingStatusCancelled
	otherDate := boardingBooking("BID-3", "C12")
	otherDate.Date = "2026-10-02"

	for _, b := range []models.Booking{active, cancelled, otherDate} {
		if err := ledger.Append(b); err != nil {
			t.Fatalf("append error: %v", err)
		}
	}

	seq, err := svc.SequenceForDate("2026-10-01")
	if err != nil {
		t.Fatalf("sequence error: %v", err)
	}
	if len(seq) != 1 || seq[0].Booking.ID != "BID-1" {
		t.Fatalf("filtering wrong: %+v", seq)
	}
}

func TestSequenceDoesNotMutateLedger(t *testing.T) {
	svc, ledger := newBoarding()

	if err := ledger.Append(boardingBooking("BID-1", "A5")); err != nil {
		t.Fatalf("append error: %v", err)
	}
	if _, err := svc.SequenceForDate("2026-10-01"); err != nil {
		t.Fatalf("sequence error: %v", err)
	}

	b, err := ledger.GetByID("BID-1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if b.Boarded || b.Status != models.BookingStatusBooked {
		t.Fatalf("sequence derivation mutated booking: %+v", b)
	}
}

func TestSetBoarded(t *testing.T) {
	svc, ledger := newBoarding()

	if err := ledger.Append(boardingBooking("BID-1", "A5")); err != nil {
		t.Fatalf("append error: %v", err)
	}

	if err := svc.SetBoarded("BID-1", true); err != nil {
		t.Fatalf("set boarded error: %v", err)
	}
	b, _ := ledger.GetByID("BID-1")
	if !b.Boarded {
		t.Fatalf("boarded not set")
	}

	if err := svc.SetBoarded("BID-1", false); err != nil {
		t.Fatalf("unset boarded error: %v", err)
	}
	b, _ = ledger.GetByID("BID-1")
	if b.Boarded {
		t.Fatalf("boarded not cleared")
	}

	if err := svc.SetBoarded("BID-NOPE", true); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
