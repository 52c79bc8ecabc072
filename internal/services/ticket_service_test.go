package services

import (
	"testing"

	"ourbus/internal/domain"
	"ourbus/internal/domain/models"
	"ourbus/internal/kv"
	"ourbus/internal/repositories"
)

func TestTicketServiceGenerate(t *testing.T) {
	loader := func(id string) (models.Booking, error) {
		return models.Booking{
			ID: id, Mobile: "9000", Date: "2026-10-01",
			From: "Hyderabad", To: "Bangalore",
			Seats: []string{"A1", "A2"},
			Passengers: []models.Passenger{
				{SeatID: "A1", Name: "Asha", Age: "28"},
				{SeatID: "A2", Name: "Vikram", Age: "31"},
			},
			TotalAmount: 4000,
			Status:      models.BookingStatusBooked,
		}, nil
	}

	svc := TicketService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket("BID-TEST")
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}
}

func TestTicketServiceUnknownBooking(t *testing.T) {
	svc := TicketService{Ledger: repositories.LedgerRepository{Store: kv.NewMemoryStore()}}

	if _, _, err := svc.GenerateETicket("BID-NOPE"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
