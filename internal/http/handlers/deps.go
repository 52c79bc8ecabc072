package handlers

import (
	"sync"

	"ourbus/internal/kv"
	"ourbus/internal/repositories"
	"ourbus/internal/services"
)

// Deps is the handler package's wiring: one store, one booking service
// (which owns the serialization locks), and the stateless services around it.
type Deps struct {
	Store     kv.Store
	Booking   *services.BookingService
	Pricing   services.PricingService
	Boarding  services.BoardingService
	Ledger    repositories.LedgerRepository
	Inventory repositories.InventoryRepository
	JWTSecret []byte
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

// Configure builds the handler wiring for the given store. Called once by
// the router; tests call it with their own in-memory store.
func Configure(store kv.Store, jwtSecret string) {
	inventory := repositories.InventoryRepository{Store: store}
	ledger := repositories.LedgerRepository{Store: store}
	pricing := services.PricingService{Ledger: ledger}

	depsMu.Lock()
	defer depsMu.Unlock()
	deps = Deps{
		Store:     store,
		Booking:   services.NewBookingService(inventory, ledger, pricing),
		Pricing:   pricing,
		Boarding:  services.BoardingService{Ledger: ledger},
		Ledger:    ledger,
		Inventory: inventory,
		JWTSecret: []byte(jwtSecret),
	}
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}
