package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"ourbus/internal/domain"
	"ourbus/internal/domain/models"
	"ourbus/internal/repositories"
)

// partitionLocks hands out one mutex per inventory partition so the
// availability check and the seat write run as a single serialized
// check-and-set per (date, from, to).
type partitionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *partitionLocks) get(key string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	p.locks[key] = l
	return l
}

// CreateBookingInput is the orchestrator's request payload.
type CreateBookingInput struct {
	Date       string
	From       string
	To         string
	Mobile     string
	SeatIDs    []string
	Passengers []models.Passenger
	Coupon     string
}

// BookingService composes the seat inventory and the booking ledger. All
// read-modify-write sequences go through it; lock order is always the
// inventory partition first, then the ledger.
type BookingService struct {
	Inventory repositories.InventoryRepository
	Ledger    repositories.LedgerRepository
	Pricing   PricingService

	partitions *partitionLocks
	ledgerMu   sync.Mutex
}

func NewBookingService(inventory repositories.InventoryRepository, ledger repositories.LedgerRepository, pricing PricingService) *BookingService {
	return &BookingService{
		Inventory:  inventory,
		Ledger:     ledger,
		Pricing:    pricing,
		partitions: &partitionLocks{locks: map[string]*sync.Mutex{}},
	}
}

// CreateBooking validates the request, prices it and commits both writes.
// The availability check runs against the same read used to build the seat
// update, under the partition lock, so at most one booking ever owns a seat.
// Returns the booking and the partition's updated seat records.
func (s *BookingService) CreateBooking(in CreateBookingInput) (models.Booking, []models.SeatRecord, error) {
	seatIDs := cleanSeatIDs(in.SeatIDs)
	if len(seatIDs) == 0 {
		return models.Booking{}, nil, domain.ValidationError{Field: "seats", Msg: "no seats selected"}
	}
	if strings.TrimSpace(in.Mobile) == "" || strings.TrimSpace(in.Date) == "" {
		return models.Booking{}, nil, domain.ValidationError{Field: "booking", Msg: "mobile number and date are required"}
	}
	if err := validatePassengers(seatIDs, in.Passengers); err != nil {
		return models.Booking{}, nil, err
	}

	lock := s.partitions.get(repositories.PartitionKey(in.Date, in.From, in.To))
	lock.Lock()
	defer lock.Unlock()

	records, err := s.Inventory.GetOrInitSeats(in.Date, in.From, in.To)
	if err != nil {
		return models.Booking{}, nil, err
	}
	unknown, taken := splitSeatProblems(records, seatIDs)
	if len(unknown) > 0 {
		return models.Booking{}, nil, domain.ValidationError{
			Field: "seats",
			Msg:   "unknown seat id: " + strings.Join(unknown, ", "),
		}
	}
	if len(taken) > 0 {
		return models.Booking{}, nil, domain.ConflictError{
			Resource: "seats",
			Msg:      "already taken: " + strings.Join(taken, ", "),
		}
	}

	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	current, err := s.Ledger.CountActiveSeats(in.Mobile, in.Date)
	if err != nil {
		return models.Booking{}, nil, err
	}
	if current+len(seatIDs) > models.MaxSeatsPerUser {
		return models.Booking{}, nil, domain.QuotaError{Remaining: models.MaxSeatsPerUser - current}
	}

	quote, err := s.Pricing.Quote(len(seatIDs), in.Coupon, in.Mobile)
	if err != nil {
		return models.Booking{}, nil, err
	}

	booking := models.Booking{
		ID:          models.NewBookingID(),
		Mobile:      strings.TrimSpace(in.Mobile),
		Date:        strings.TrimSpace(in.Date),
		From:        strings.TrimSpace(in.From),
		To:          strings.TrimSpace(in.To),
		Seats:       seatIDs,
		Passengers:  in.Passengers,
		TotalAmount: quote.Total,
		Timestamp:   time.Now().UnixMilli(),
		Status:      models.BookingStatusBooked,
		Boarded:     false,
	}

	updated, err := s.Inventory.ApplyBooking(in.Date, in.From, in.To, seatIDs, in.Passengers, booking.ID)
	if err != nil {
		return models.Booking{}, nil, err
	}
	if err := s.Ledger.Append(booking); err != nil {
		// Roll the seat write back so neither collection commits alone.
		if _, relErr := s.Inventory.ReleaseBooking(in.Date, in.From, in.To, seatIDs); relErr != nil {
			log.Printf("[BOOKING] compensation failed for %s: %v", booking.ID, relErr)
		}
		return models.Booking{}, nil, err
	}

	return booking, updated, nil
}

// CancelBooking flips the ledger row to CANCELLED first, then releases the
// seats. A retry after a crash between the two steps sees the booking as
// already cancelled and never re-frees seats a later booking may own.
func (s *BookingService) CancelBooking(id string) error {
	booking, err := s.Ledger.GetByID(id)
	if err != nil {
		return err
	}

	lock := s.partitions.get(repositories.PartitionKey(booking.Date, booking.From, booking.To))
	lock.Lock()
	defer lock.Unlock()

	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	booking, err = s.Ledger.GetByID(id)
	if err != nil {
		return err
	}
	if !booking.IsActive() {
		return domain.ConflictError{Resource: "booking", Msg: "already cancelled"}
	}

	if err := s.Ledger.SetStatus(id, models.BookingStatusCancelled); err != nil {
		return err
	}
	if _, err := s.Inventory.ReleaseBooking(booking.Date, booking.From, booking.To, booking.Seats); err != nil {
		return err
	}
	return nil
}

// ResetAll is the administrative wipe: every partition and the ledger.
func (s *BookingService) ResetAll() error {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	return s.Ledger.WipeAll()
}

func cleanSeatIDs(seatIDs []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, id := range seatIDs {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func validatePassengers(seatIDs []string, passengers []models.Passenger) error {
	if len(passengers) != len(seatIDs) {
		return domain.ValidationError{Field: "passengers", Msg: "one passenger per seat is required"}
	}
	seats := map[string]bool{}
	for _, id := range seatIDs {
		seats[id] = true
	}
	for _, p := range passengers {
		if !models.ValidPassenger(p) {
			return domain.ValidationError{Field: "passengers", Msg: "name and age are required for seat " + p.SeatID}
		}
		if !seats[strings.ToUpper(strings.TrimSpace(p.SeatID))] {
			return domain.ValidationError{Field: "passengers", Msg: "passenger seat " + p.SeatID + " is not in the selection"}
		}
	}
	return nil
}

func splitSeatProblems(records []models.SeatRecord, seatIDs []string) (unknown, taken []string) {
	status := map[string]string{}
	for _, rec := range records {
		status[rec.ID] = rec.Status
	}

	for _, id := range seatIDs {
		st, ok := status[id]
		switch {
		case !ok:
			unknown = append(unknown, id)
		case st == models.SeatBooked:
			taken = append(taken, id)
		}
	}
	return unknown, taken
}
