package http

import (
	"io"
	"net/http"
	"strings"
)

const maxUploadBytes = 10 << 20 // 10 MiB for CSV uploads

// handleUploadCSV accepts a CSV either as a multipart "file" field or as the
// raw request body. Row problems come back inside the result; only a
// persistence failure produces an error status.
func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	raw, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := s.importer.ImportCSV(r.Context(), uid, raw, 0)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "CSV import failed", "error", err, "user_id", uid)
		writeError(w, http.StatusInternalServerError, "failed to import transactions")
		return
	}

	writeJSON(w, http.StatusOK, toImportResultJSON(res))
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return "", false
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file field")
			return "", false
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return "", false
		}
		return string(data), true
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return "", false
	}
	return string(data), true
}
