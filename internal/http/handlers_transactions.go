package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type transactionRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	CategoryID  *string `json:"categoryId"`
}

type transactionPatchRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Type        *string  `json:"type"`
	CategoryID  *string  `json:"categoryId"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	txs, err := s.store.Transactions().ListByUser(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "transactions")
		return
	}
	writeJSON(w, http.StatusOK, toTransactionsJSON(txs))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tx, err := s.store.Transactions().Get(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, r, err, "transaction")
		return
	}
	writeJSON(w, http.StatusOK, toTransactionJSON(tx))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	tx := core.Transaction{
		Description: req.Description,
		Amount:      core.Money{Cents: dollarsToCents(req.Amount)},
		Date:        date,
		Type:        core.TransactionType(req.Type),
		CategoryID:  req.CategoryID,
		UserID:      uid,
		CreatedAt:   time.Now(),
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.Transactions().Create(r.Context(), tx)
	if err != nil {
		s.writeStoreError(w, r, err, "transaction")
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionJSON(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req transactionPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var patch storage.TransactionPatch
	patch.Description = req.Description
	patch.CategoryID = req.CategoryID
	if req.Amount != nil {
		cents := dollarsToCents(*req.Amount)
		if cents < 0 {
			writeError(w, http.StatusUnprocessableEntity, "amount must not be negative")
			return
		}
		patch.Amount = &core.Money{Cents: cents}
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		if !t.IsValid() {
			writeError(w, http.StatusUnprocessableEntity, "type must be income or expense")
			return
		}
		patch.Type = &t
	}

	updated, err := s.store.Transactions().Update(r.Context(), uid, r.PathValue("id"), patch)
	if err != nil {
		s.writeStoreError(w, r, err, "transaction")
		return
	}
	writeJSON(w, http.StatusOK, toTransactionJSON(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := s.store.Transactions().Delete(r.Context(), uid, r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err, "transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
