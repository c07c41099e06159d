package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/backend"
	"spendwise/internal/log"
)

const (
	// writeLimit is the number of mutating requests a client may send per window.
	writeLimit  = 60
	writeWindow = time.Minute
)

// ExportPublisher queues asynchronous export jobs.
type ExportPublisher interface {
	PublishExportRequest(ctx context.Context, trigger, fileName string) (*amqp.ExportRequestMessage, error)
}

// Server exposes the expense, budget and analytics operations as a JSON API.
type Server struct {
	http.Server

	backend     *backend.Backend
	publisher   ExportPublisher // nil when no queue is configured
	logger      *log.Logger
	rateLimiter *rateLimiter
	now         func() time.Time
	started     time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
// publisher may be nil, in which case export jobs answer 503.
func NewServer(addr string, b *backend.Backend, publisher ExportPublisher, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		backend:     b,
		publisher:   publisher,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(writeLimit, writeWindow),
		now:         time.Now,
		started:     time.Now(),
	}
	go s.rateLimiter.startCleanup(5 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/taxonomy", s.handleTaxonomy)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/latest", s.handleLatestExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/trend", s.handleTrend)
	mux.HandleFunc("GET /api/distribution", s.handleDistribution)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("GET /api/budgets/{month}", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budgets/{month}", s.handleSetBudget)
	mux.HandleFunc("GET /api/budgets/{month}/progress", s.handleBudgetProgress)
	mux.HandleFunc("GET /api/budgets/{month}/suggestion", s.handleBudgetSuggestion)

	mux.HandleFunc("GET /api/settings/{key}", s.handleGetSetting)
	mux.HandleFunc("PUT /api/settings/{key}", s.handleSetSetting)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/dashboard/charts", s.handleCharts)

	mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	mux.HandleFunc("POST /api/export/jobs", s.handleExportJob)

	s.Handler = log.Middleware(s.logger)(s.withSecurity(mux))
	return s
}

// withSecurity adds security headers, flags probing requests and rate limits
// mutating requests per client IP.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientIP := extractClientIP(r)
		setSecurityHeaders(w.Header())

		if isSuspiciousRequest(r) {
			log.FromContext(ctx).WarnContext(ctx, "Suspicious request",
				log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead && !s.rateLimiter.allow(clientIP) {
			log.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").
				Header("Retry-After", "60").
				Write(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and the limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
