// Package backend builds the record store and services selected by configuration.
package backend

import (
	"fmt"

	"spendwise/internal/config"
	"spendwise/internal/core"
	"spendwise/internal/log"
	"spendwise/internal/services"
	"spendwise/internal/storage"
	"spendwise/internal/storage/memory"
)

// BackendType represents the type of record store
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation
type Config struct {
	Type             BackendType
	SQLiteDBPath     string
	Taxonomy         core.Taxonomy
	DefaultThreshold float64
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	c := Config{
		Type:             BackendType(appConfig.DataBackend),
		SQLiteDBPath:     appConfig.SQLiteDBPath,
		Taxonomy:         appConfig.Taxonomy,
		DefaultThreshold: appConfig.DefaultAlertThreshold,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}

// Backend bundles the store with the services built on it.
type Backend struct {
	Store     storage.Store
	Expenses  *services.ExpenseService
	Budgets   *services.BudgetService
	Dashboard *services.DashboardService
}

// Close releases the record store.
func (b *Backend) Close() error {
	return b.Store.Close()
}

// New opens the configured record store and wires the services over it.
func New(c Config, logger *log.Logger) (*Backend, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentBackend)

	var store storage.Store
	switch c.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(c.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
		logger.Info("Initialized SQLite backend", "db_path", c.SQLiteDBPath)
	case MemoryBackend:
		store = memory.New()
		logger.Info("Initialized memory backend")
	}

	expenses := services.NewExpenseService(store, c.Taxonomy, logger)
	budgets := services.NewBudgetService(store, c.DefaultThreshold, logger)
	return &Backend{
		Store:     store,
		Expenses:  expenses,
		Budgets:   budgets,
		Dashboard: services.NewDashboardService(expenses, budgets),
	}, nil
}
