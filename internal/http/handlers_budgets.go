package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type budgetRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Spent      float64 `json:"spent"`
	CategoryID *string `json:"categoryId"`
	Period     string  `json:"period"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

type budgetPatchRequest struct {
	Name       *string  `json:"name"`
	Amount     *float64 `json:"amount"`
	Spent      *float64 `json:"spent"`
	CategoryID *string  `json:"categoryId"`
	Period     *string  `json:"period"`
	StartDate  *string  `json:"startDate"`
	EndDate    *string  `json:"endDate"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	budgets, err := s.store.Budgets().ListByUser(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "budgets")
		return
	}
	out := make([]budgetJSON, len(budgets))
	for i, b := range budgets {
		out[i] = toBudgetJSON(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid startDate, expected YYYY-MM-DD")
		return
	}
	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid endDate, expected YYYY-MM-DD")
			return
		}
	}

	b := core.Budget{
		Name:       req.Name,
		Amount:     core.Money{Cents: dollarsToCents(req.Amount)},
		Spent:      core.Money{Cents: dollarsToCents(req.Spent)},
		CategoryID: req.CategoryID,
		Period:     core.BudgetPeriod(req.Period),
		StartDate:  startDate,
		EndDate:    endDate,
		UserID:     uid,
	}
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.Budgets().Create(r.Context(), b)
	if err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetJSON(created))
}

// handleUpdateBudget applies a partial update. Spent is an independently
// tracked field and can be set on its own.
func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req budgetPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var patch storage.BudgetPatch
	patch.Name = req.Name
	patch.CategoryID = req.CategoryID
	if req.Amount != nil {
		cents := dollarsToCents(*req.Amount)
		if cents < 0 {
			writeError(w, http.StatusUnprocessableEntity, "amount must not be negative")
			return
		}
		patch.Amount = &core.Money{Cents: cents}
	}
	if req.Spent != nil {
		patch.Spent = &core.Money{Cents: dollarsToCents(*req.Spent)}
	}
	if req.Period != nil {
		p := core.BudgetPeriod(*req.Period)
		if !p.IsValid() {
			writeError(w, http.StatusUnprocessableEntity, "period must be monthly or yearly")
			return
		}
		patch.Period = &p
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid startDate, expected YYYY-MM-DD")
			return
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid endDate, expected YYYY-MM-DD")
			return
		}
		patch.EndDate = &endDate
	}

	updated, err := s.store.Budgets().Update(r.Context(), uid, r.PathValue("id"), patch)
	if err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}
	writeJSON(w, http.StatusOK, toBudgetJSON(updated))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := s.store.Budgets().Delete(r.Context(), uid, r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
