package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type categoryPatchRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// handleListCategories seeds the starter categories on first access so a
// fresh user always sees a usable set.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := s.store.Categories().EnsureSeed(r.Context(), uid); err != nil {
		s.writeStoreError(w, r, err, "categories")
		return
	}
	cats, err := s.store.Categories().ListByUser(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, r, err, "categories")
		return
	}
	out := make([]categoryJSON, len(cats))
	for i, c := range cats {
		out[i] = toCategoryJSON(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c := core.Category{
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
		UserID: uid,
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.Categories().Create(r.Context(), c)
	if err != nil {
		s.writeStoreError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryJSON(created))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req categoryPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := storage.CategoryPatch{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	}
	updated, err := s.store.Categories().Update(r.Context(), uid, r.PathValue("id"), patch)
	if err != nil {
		s.writeStoreError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryJSON(updated))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := s.store.Categories().Delete(r.Context(), uid, r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
