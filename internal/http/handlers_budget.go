package http

import (
	"net/http"
	"strconv"

	"spendwise/internal/budget"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	plans, err := s.backend.Budgets.ListBudgets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]budgetView, 0, len(plans))
	for _, p := range plans {
		views = append(views, newBudgetView(p))
	}
	NewJSONResponse().Body(views).Write(w)
}

// handleGetBudget answers 404 for a month without a plan.
func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	month, err := ParseMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	plan, ok, err := s.backend.Budgets.GetBudget(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		NotFoundError("no budget for " + month.String()).Write(w)
		return
	}
	NewJSONResponse().Body(newBudgetView(plan)).Write(w)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	month, err := ParseMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	plan, err := req.Plan(month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.backend.Budgets.SetBudget(r.Context(), plan); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newBudgetView(plan)).Write(w)
}

// handleBudgetProgress reports spend against the plan, with the alert message
// when the threshold is reached.
func (s *Server) handleBudgetProgress(w http.ResponseWriter, r *http.Request) {
	month, err := ParseMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	progress, err := s.backend.Budgets.Progress(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	alert, _, err := s.backend.Budgets.Alert(r.Context(), progress)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newProgressView(progress, alert)).Write(w)
}

func (s *Server) handleBudgetSuggestion(w http.ResponseWriter, r *http.Request) {
	month, err := ParseMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	suggestion, err := s.backend.Budgets.Suggest(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newSuggestionView(month, suggestion)).Write(w)
}

// handleGetSetting returns a stored setting. The alert threshold always
// answers with its effective value.
func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == budget.AlertThresholdKey {
		v, err := s.backend.Budgets.AlertThreshold(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		NewJSONResponse().Body(settingView{Key: key, Value: formatRatio(v)}).Write(w)
		return
	}

	v, ok, err := s.backend.Budgets.LookupSetting(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		NotFoundError("setting " + key + " not set").Write(w)
		return
	}
	NewJSONResponse().Body(settingView{Key: key, Value: v}).Write(w)
}

func (s *Server) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var req settingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	value := sanitizeInput(req.Value)
	if err := s.backend.Budgets.SaveSetting(r.Context(), key, value); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(settingView{Key: key, Value: value}).Write(w)
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
