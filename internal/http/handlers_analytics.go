package http

import (
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	summary, err := s.analytics.Summary(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "summary")
		return
	}
	writeJSON(w, http.StatusOK, toSummaryJSON(summary))
}

func (s *Server) handleSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	spending, err := s.analytics.SpendingByCategory(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "spending")
		return
	}
	writeJSON(w, http.StatusOK, toCategorySpendingJSON(spending))
}

func (s *Server) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	trend, err := s.analytics.MonthlyTrend(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "trend")
		return
	}
	writeJSON(w, http.StatusOK, toMonthlyTrendJSON(trend))
}

// handleBreakdown serves the windowed category breakdown. The months query
// parameter defaults to 3 and is capped at 24.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	months := 3
	if v := strings.TrimSpace(r.URL.Query().Get("months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			writeError(w, http.StatusBadRequest, "months must be an integer between 1 and 24")
			return
		}
		months = n
	}

	breakdown, err := s.analytics.Breakdown(r.Context(), uid, months)
	if err != nil {
		s.writeStoreError(w, r, err, "breakdown")
		return
	}
	writeJSON(w, http.StatusOK, toCategorySpendingJSON(breakdown))
}
