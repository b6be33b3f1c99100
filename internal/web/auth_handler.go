package web

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/session"
)

// AuthHandler exposes the session store over the same paths the backend
// uses, so the SPA's existing fetch calls work against this process.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type credentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionDTO struct {
	Status string       `json:"status"`
	User   *domain.User `json:"user,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func sessionResponse(snap session.Snapshot) sessionDTO {
	return sessionDTO{
		Status: string(snap.Status),
		User:   snap.User,
		Error:  snap.LastError,
	}
}

// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "username and password are required")
		return
	}

	if _, err := v.Session.Login(r.Context(), req.Username, req.Password); err != nil {
		snap := v.Session.Snapshot()
		respondJSON(w, http.StatusUnauthorized, sessionResponse(snap))
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(v.Session.Snapshot()))
}

// GET /check_session
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	// A missing server-side session is not an error; the visitor simply
	// stays anonymous.
	_, _ = v.Session.CheckSession(r.Context())

	respondJSON(w, http.StatusOK, sessionResponse(v.Session.Snapshot()))
}

// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	v.Session.Logout(r.Context())

	respondJSON(w, http.StatusOK, sessionResponse(v.Session.Snapshot()))
}

type registerDTO struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validate enforces the form-layer preconditions; the session store itself
// trusts its input.
func (req registerDTO) validate() string {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return "username is required"
	case !emailRe.MatchString(req.Email):
		return "a valid email is required"
	case len(req.Password) < 6:
		return "password must be at least 6 characters"
	case req.Password != req.ConfirmPassword:
		return "passwords do not match"
	}
	return ""
}

// POST /user_auth
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req registerDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, "invalid_registration", msg)
		return
	}

	user, err := v.Session.Register(r.Context(), domain.Registration{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		handleBackendError(w, err)
		return
	}

	resp := sessionResponse(v.Session.Snapshot())
	if resp.User == nil {
		// Auto-login disabled: report the created profile without a session.
		resp.User = &user
	}
	respondJSON(w, http.StatusCreated, resp)
}

type updatePasswordDTO struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// PATCH /user_auth
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req updatePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(w, http.StatusUnprocessableEntity, "invalid_password", "new password must be at least 6 characters")
		return
	}

	if err := v.Session.UpdatePassword(r.Context(), req.Username, req.Password, req.NewPassword); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(v.Session.Snapshot()))
}

// DELETE /user_auth
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := v.Session.DeleteAccount(r.Context(), req.Username, req.Password); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(v.Session.Snapshot()))
}
