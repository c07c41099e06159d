package http

import (
	"net/http"
	"strconv"

	"spendwise/internal/analytics"
)

// handleListExpenses lists expenses matching the query filter in the requested order.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := ParseFilter(query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := ParseOrder(query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expenses, err := s.backend.Expenses.Query(r.Context(), filter, order)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(expenseListView{
		Count:    len(expenses),
		Total:    analytics.Total(expenses).String(),
		Sort:     order.String(),
		Expenses: newExpenseViews(expenses),
	}).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.Expense()
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.backend.Expenses.Add(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = id
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+strconv.FormatInt(id, 10)).
		Body(newExpenseView(e)).
		Write(w)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := s.backend.Expenses.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(newExpenseView(e)).Write(w)
}

// handleLatestExpense returns the most recent expense, used to prefill entry forms.
func (s *Server) handleLatestExpense(w http.ResponseWriter, r *http.Request) {
	e, ok, err := s.backend.Expenses.Latest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		NotFoundError("no expenses recorded").Write(w)
		return
	}
	NewJSONResponse().Body(newExpenseView(e)).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.Expense()
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.backend.Expenses.Update(r.Context(), id, e); err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = id
	NewJSONResponse().Body(newExpenseView(e)).Write(w)
}

// handleDeleteExpense answers 204 whether or not the expense existed.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.backend.Expenses.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
