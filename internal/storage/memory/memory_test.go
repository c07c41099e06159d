package memory

import (
	"testing"

	"spendwise/internal/storage"
	"spendwise/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, func(*testing.T) storage.Store { return New() })
}
