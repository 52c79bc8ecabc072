package config

import (
	"fmt"
	"log"
	"sync"

	"ourbus/internal/kv"
)

var (
	store   kv.Store
	storeMu sync.Mutex
)

// OpenStore initializes the shared store for the configured driver
// (idempotent). Handlers receive the store through their services; this
// shared instance only exists for process wiring, tests build their own.
func OpenStore(env Env) (kv.Store, error) {
	storeMu.Lock()
	defer storeMu.Unlock()

	if store != nil {
		return store, nil
	}

	var (
		s   kv.Store
		err error
	)
	switch env.StoreDriver {
	case "memory":
		s = kv.NewMemoryStore()
	case "mysql":
		s, err = kv.OpenMySQL(env.MySQLDSN)
	case "redis":
		s, err = kv.OpenRedis(env.RedisAddr)
	default:
		err = fmt.Errorf("unknown store driver %q", env.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	store = s
	log.Printf("store ready driver=%s", env.StoreDriver)
	return store, nil
}

func CloseStore() {
	storeMu.Lock()
	defer storeMu.Unlock()

	if store != nil {
		_ = store.Close()
		store = nil
	}
}
