package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

type createUserRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.identity.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	user, err := s.identity.CreateUser(r.Context(), req.Username, req.Email, req.Password, req.Role)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, user)
	case errors.Is(err, model.ErrDuplicateIdentity):
		writeError(w, http.StatusConflict, "duplicate_identity")
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ok, err := s.identity.DeleteUser(r.Context(), chi.URLParam(r, "userID"))
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

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role model.Role `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	ok, err := s.identity.UpdateRole(r.Context(), chi.URLParam(r, "userID"), req.Role)
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server_error")
	case !ok:
		writeError(w, http.StatusNotFound, "not_found")
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
