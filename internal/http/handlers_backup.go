package http

import (
	"io"
	"log/slog"
	"net/http"

	"cruscotto/internal/backup"
	applog "cruscotto/internal/log"
)

func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := backup.Export(r.Context(), s.col)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cruscotto-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleImportBackup restores collections from an uploaded backup
// document. A payload that does not parse reports 400 and writes
// nothing.
func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := backup.Import(r.Context(), s.col.KV(), payload); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDashboard()
	slog.InfoContext(r.Context(), "Backup imported", applog.FieldCount, len(payload))
	w.WriteHeader(http.StatusNoContent)
}
