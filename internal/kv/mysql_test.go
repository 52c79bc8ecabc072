package kv

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMySQLStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	s := NewMySQLStore(db)

	mock.ExpectQuery("SELECT v FROM ourbus_kv").WithArgs("ourbus_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(`[]`))

	v, found, err := s.Get("ourbus_bookings")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !found || v != `[]` {
		t.Fatalf("got (%q, %v)", v, found)
	}

	mock.ExpectQuery("SELECT v FROM ourbus_kv").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	if _, found, err = s.Get("missing"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStoreSetAndClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	s := NewMySQLStore(db)

	mock.ExpectExec("INSERT INTO ourbus_kv").WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("set error: %v", err)
	}

	mock.ExpectExec("DELETE FROM ourbus_kv").
		WillReturnResult(sqlmock.NewResult(0, 3))
	if err := s.Clear(); err != nil {
		t.Fatalf("clear error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
