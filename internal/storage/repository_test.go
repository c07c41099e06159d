package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/storage"
	"spendwise/internal/storage/storagetest"
)

func newRepo(t *testing.T) storage.Store {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "expenses.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	return repo
}

func TestSQLiteRepository(t *testing.T) {
	storagetest.Run(t, newRepo)
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.db")

	repo, err := storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	created, err := repo.CreateExpense(ctx, core.Expense{
		Date:          core.NewDate(2024, time.March, 9),
		Amount:        core.Money{Cents: 7500},
		Category:      "Health",
		PaymentMethod: "Card",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// migrations are idempotent on an existing file
	repo, err = storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()
	got, err := repo.GetExpense(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if got.Date.String() != "2024-03-09" || got.Amount.Cents != 7500 || got.Notes != "" {
		t.Errorf("GetExpense = %+v", got)
	}
}
