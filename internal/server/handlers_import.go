package server

import (
	"fmt"
	"net/http"

	"github.com/skander-fourati/zawali/internal/models"
)

// --- Import handlers ---

// parseFormat validates the statement format string.
func parseFormat(raw string) (models.StatementFormat, error) {
	format := models.StatementFormat(raw)
	switch format {
	case models.FormatPersonalCapital, models.FormatMoneyhub:
		return format, nil
	default:
		return "", fmt.Errorf("unknown statement format '%s'", raw)
	}
}

// handleImportPreview handles POST /api/import/preview.
// The CSV content is submitted as text in the JSON body; the response carries
// parsed rows, blocking validation errors, and advisory suspicious flags.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req struct {
		Format  string `json:"format"`
		Content string `json:"content"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	format, err := parseFormat(req.Format)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Content == "" {
		WriteError(w, http.StatusBadRequest, "content is required")
		return
	}

	preview, err := s.app.ImportService.Preview(r.Context(), req.Content, format)
	if err != nil {
		s.logger.Error().Err(err).Str("format", req.Format).Msg("Import preview failed")
		WriteError(w, http.StatusInternalServerError, "import preview failed")
		return
	}

	WriteJSON(w, http.StatusOK, preview)
}

// handleImportCommit handles POST /api/import/commit.
// Rows are the (possibly edited) output of a prior preview. Per-row failures
// are reported in the bulk result, not as a request-level error.
func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req struct {
		Transactions []*models.ParsedTransaction `json:"transactions"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Transactions) == 0 {
		WriteError(w, http.StatusBadRequest, "transactions are required")
		return
	}

	result, err := s.app.ImportService.Commit(r.Context(), userID, req.Transactions)
	if err != nil {
		s.logger.Error().Err(err).Msg("Import commit failed")
		WriteError(w, http.StatusInternalServerError, "import commit failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
