package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/isha-gupta80/loomaproject2222/internal/directory"
	"github.com/isha-gupta80/loomaproject2222/internal/importer"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

func (s *Server) handleListSchools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	schools, err := s.directory.Search(r.Context(), q.Get("search"), q.Get("status"), q.Get("province"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schools": schools,
		"total":   len(schools),
	})
}

func (s *Server) handleSchoolStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.directory.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCreateSchool(w http.ResponseWriter, r *http.Request) {
	var school model.School
	if err := decodeJSON(r, &school); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	created, err := s.directory.Create(r.Context(), school)
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSchool(w http.ResponseWriter, r *http.Request) {
	school, err := s.directory.GetByID(r.Context(), chi.URLParam(r, "schoolID"))
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (s *Server) handlePatchSchool(w http.ResponseWriter, r *http.Request) {
	var update directory.Update
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	school, err := s.directory.Patch(r.Context(), chi.URLParam(r, "schoolID"), update)
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (s *Server) handleDeleteSchool(w http.ResponseWriter, r *http.Request) {
	ok, err := s.directory.Delete(r.Context(), chi.URLParam(r, "schoolID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.Status `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	id := chi.URLParam(r, "schoolID")
	ok, err := s.directory.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	school, err := s.directory.GetByID(r.Context(), id)
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	result, err := s.importer.Run(r.Context(), string(body))
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "empty_import")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	importRows.WithLabelValues("imported").Add(float64(result.Imported))
	importRows.WithLabelValues("failed").Add(float64(result.Failed))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImportTemplate(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="school_import_template.csv"`)
	_, _ = io.WriteString(w, importer.Template())
}

func (s *Server) handleExportSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := s.directory.Search(r.Context(), "", "all", "all")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schools.csv"`)
	_, _ = io.WriteString(w, importer.Export(schools))
}

func (s *Server) handleListQRScans(w http.ResponseWriter, r *http.Request) {
	scans, err := s.directory.QRScans(r.Context(), chi.URLParam(r, "schoolID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scans": scans})
}

func (s *Server) handleAddQRScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffName string `json:"staffName"`
		Notes     string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	scan, err := s.directory.AddQRScan(r.Context(), chi.URLParam(r, "schoolID"), req.StaffName, req.Notes)
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scan)
}

func (s *Server) handleListAccessLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.directory.AccessLogs(r.Context(), chi.URLParam(r, "schoolID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

func (s *Server) handleAddAccessLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action  string `json:"action"`
		Details string `json:"details"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	user := userFromContext(r.Context())
	entry, err := s.directory.AddAccessLog(r.Context(), chi.URLParam(r, "schoolID"), user.ID, user.Username, req.Action, req.Details)
	if err != nil {
		s.writeDirectoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func limitParam(r *http.Request) int64 {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil {
		return 0
	}
	return limit
}

func (s *Server) handleRecentQRScans(w http.ResponseWriter, r *http.Request) {
	scans, err := s.directory.RecentQRScans(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scans": scans})
}

func (s *Server) handleRecentAccessLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.directory.RecentAccessLogs(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

func (s *Server) writeDirectoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error")
	case errors.Is(err, model.ErrDuplicateLoomaID):
		writeError(w, http.StatusConflict, "duplicate_looma_id")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
