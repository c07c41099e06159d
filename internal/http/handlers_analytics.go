package http

import (
	"net/http"
	"strconv"

	"spendwise/internal/analytics"
	"spendwise/internal/core"
)

// filtered loads the expenses matching the request's filter parameters.
func (s *Server) filtered(r *http.Request) ([]core.Expense, error) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return s.backend.Expenses.Query(r.Context(), filter, analytics.OldestFirst)
}

// handleSummary groups the filtered expenses by dimension. With reindex=true
// every enumerated value of the dimension appears, zero filled.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dim, err := analytics.ParseDimension(query.Get("dimension"))
	if err != nil {
		writeError(w, r, invalid("dimension", err))
		return
	}
	reindex := false
	if v := query.Get("reindex"); v != "" {
		if reindex, err = strconv.ParseBool(v); err != nil {
			writeError(w, r, invalid("reindex", err))
			return
		}
	}

	expenses, err := s.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary := analytics.GroupSummary(expenses, dim)
	rows := analytics.Rows(summary)
	if reindex {
		rows = analytics.Reindex(summary, dim.Values(s.backend.Expenses.Taxonomy()))
	}
	NewJSONResponse().Body(summaryView{Dimension: string(dim), Groups: newGroupViews(rows)}).Write(w)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	bucket, err := analytics.ParseBucket(r.URL.Query().Get("bucket"))
	if err != nil {
		writeError(w, r, invalid("bucket", err))
		return
	}
	expenses, err := s.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	points := analytics.Trend(expenses, bucket)
	NewJSONResponse().Body(trendView{Bucket: bucket.String(), Points: newTrendViews(points, bucket)}).Write(w)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newShareViews(analytics.Distribution(expenses))).Write(w)
}

// handleDashboard builds the overview of ?month=YYYY-MM, the current month by default.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month := core.DateOf(s.now()).Month()
	if v := r.URL.Query().Get("month"); v != "" {
		var err error
		if month, err = core.ParseMonth(v); err != nil {
			writeError(w, r, err)
			return
		}
	}
	d, err := s.backend.Dashboard.Month(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newDashboardView(d)).Write(w)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dim, err := analytics.ParseDimension(query.Get("dimension"))
	if err != nil {
		writeError(w, r, invalid("dimension", err))
		return
	}
	bucket, err := analytics.ParseBucket(query.Get("bucket"))
	if err != nil {
		writeError(w, r, invalid("bucket", err))
		return
	}
	preset := analytics.RangePreset(query.Get("range"))

	charts, err := s.backend.Dashboard.Charts(r.Context(), preset, dim, bucket, core.DateOf(s.now()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newChartsView(charts)).Write(w)
}
