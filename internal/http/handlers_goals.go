package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type goalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate"`
}

type goalPatchRequest struct {
	Name          *string  `json:"name"`
	TargetAmount  *float64 `json:"targetAmount"`
	CurrentAmount *float64 `json:"currentAmount"`
	TargetDate    *string  `json:"targetDate"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	goals, err := s.store.Goals().ListByUser(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "goals")
		return
	}
	out := make([]goalJSON, len(goals))
	for i, g := range goals {
		out[i] = toGoalJSON(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g := core.SavingsGoal{
		Name:          req.Name,
		TargetAmount:  core.Money{Cents: dollarsToCents(req.TargetAmount)},
		CurrentAmount: core.Money{Cents: dollarsToCents(req.CurrentAmount)},
		UserID:        uid,
	}
	if req.TargetDate != "" {
		targetDate, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid targetDate, expected YYYY-MM-DD")
			return
		}
		g.TargetDate = &targetDate
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.Goals().Create(r.Context(), g)
	if err != nil {
		s.writeStoreError(w, r, err, "goal")
		return
	}
	writeJSON(w, http.StatusCreated, toGoalJSON(created))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req goalPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var patch storage.SavingsGoalPatch
	patch.Name = req.Name
	if req.TargetAmount != nil {
		cents := dollarsToCents(*req.TargetAmount)
		if cents < 0 {
			writeError(w, http.StatusUnprocessableEntity, "targetAmount must not be negative")
			return
		}
		patch.TargetAmount = &core.Money{Cents: cents}
	}
	if req.CurrentAmount != nil {
		cents := dollarsToCents(*req.CurrentAmount)
		if cents < 0 {
			writeError(w, http.StatusUnprocessableEntity, "currentAmount must not be negative")
			return
		}
		patch.CurrentAmount = &core.Money{Cents: cents}
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid targetDate, expected YYYY-MM-DD")
			return
		}
		patch.TargetDate = &targetDate
	}

	updated, err := s.store.Goals().Update(r.Context(), uid, r.PathValue("id"), patch)
	if err != nil {
		s.writeStoreError(w, r, err, "goal")
		return
	}
	writeJSON(w, http.StatusOK, toGoalJSON(updated))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := s.store.Goals().Delete(r.Context(), uid, r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err, "goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
