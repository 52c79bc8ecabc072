package kv

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const kvTable = "ourbus_kv"

// MySQLStore persists keys in a single two-column table. The table is
// created on open so a fresh database works without migrations.
type MySQLStore struct {
	db *sql.DB
}

// OpenMySQL dials the DSN, verifies connectivity and ensures the kv table.
func OpenMySQL(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &MySQLStore{db: db}
	if err := s.ensureTable(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewMySQLStore wraps an existing connection (used by tests with sqlmock).
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) ensureTable() error {
	ddl := `
CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
	k VARCHAR(191) NOT NULL PRIMARY KEY,
	v LONGTEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *MySQLStore) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT v FROM `+kvTable+` WHERE k = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *MySQLStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO `+kvTable+` (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
		key, value,
	)
	return err
}

func (s *MySQLStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM ` + kvTable)
	return err
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
