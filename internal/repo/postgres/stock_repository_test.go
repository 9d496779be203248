package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestWithRollback(t *testing.T) {
	upsert := errors.New("upsert stock: boom")
	rb := errors.New("conn closed")

	if err := withRollback(nil, nil); err != nil {
		t.Fatalf("no errors: got %v", err)
	}
	if err := withRollback(nil, pgx.ErrTxClosed); err != nil {
		t.Fatalf("rollback after commit must be ignored, got %v", err)
	}
	if err := withRollback(upsert, pgx.ErrTxClosed); !errors.Is(err, upsert) || errors.Is(err, pgx.ErrTxClosed) {
		t.Fatalf("want only the upsert error, got %v", err)
	}

	err := withRollback(upsert, rb)
	if !errors.Is(err, upsert) || !errors.Is(err, rb) {
		t.Fatalf("want both upsert and rollback errors, got %v", err)
	}
	if err := withRollback(nil, rb); !errors.Is(err, rb) {
		t.Fatalf("rollback failure must surface on its own, got %v", err)
	}
}
