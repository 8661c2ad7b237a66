package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ksaito/taskboard/internal/model"
	"github.com/ksaito/taskboard/internal/service"
)

// AuthHandler exposes the authentication workflow over HTTP.
//
// ROUTES:
//   - POST /api/auth/signup  → create an account (signed in immediately)
//   - POST /api/auth/signin  → verify credentials, set the session flag
//   - POST /api/auth/signout → clear the session flag
//   - GET  /api/auth/users   → list accounts sharing an email
//
// REQUEST STRUCTS:
// Each mutation gets its own statically typed request struct with explicit
// required-field checks BEFORE the workflow is invoked. The checks live
// here (not in the service) because they are about the wire format — a
// missing JSON field — rather than about business rules.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// userResponse is the public projection of a user account.
//
// The workflow returns full records — digest and salt included — and leaves
// redaction to the transport. This struct IS that redaction. Email is
// optional on the wire (omitempty), matching clients that hide it.
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup creates a new account.
//
// HTTP: POST /api/auth/signup
// BODY: {"name": "Alice", "email": "a@x.com", "password": "pw1"}
//
// NO DUPLICATE-EMAIL GUARD:
// Signup does not refuse a known email. A client that wants to prevent
// collisions calls GET /api/auth/users?email=... first and decides for
// itself — the check is a composable pre-condition, not a built-in rule.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid signup JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "request body must be valid JSON",
		})
		return
	}

	if msg := requireFields(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); msg != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: msg,
		})
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("signup failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignin verifies credentials.
//
// HTTP: POST /api/auth/signin
// BODY: {"email": "a@x.com", "password": "pw1"}
//
// The workflow reports its outcome as {code, message} — 200 Success,
// 401 Failed, 404 user not found. The HTTP status mirrors the result code,
// and the body carries it verbatim so non-HTTP clients of the same
// workflow see identical shapes.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid signin JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "request body must be valid JSON",
		})
		return
	}

	if msg := requireFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); msg != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: msg,
		})
		return
	}

	res, err := h.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("signin failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, res.Code, res)
}

type signoutRequest struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// signoutResponse mirrors the workflow's {code, targetUser} result.
// TargetUser is a pointer so an unknown email serialises as null.
type signoutResponse struct {
	Code       int           `json:"code"`
	TargetUser *userResponse `json:"targetUser"`
}

// HandleSignout clears the session flag.
//
// HTTP: POST /api/auth/signout
// BODY: {"id": 1, "email": "a@x.com"}
//
// Email is the discriminating key; id rides along. Only email is required —
// a zero id is accepted and ignored for matching.
func (h *AuthHandler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	var req signoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid signout JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "request body must be valid JSON",
		})
		return
	}

	if msg := requireFields(map[string]string{"email": req.Email}); msg != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: msg,
		})
		return
	}

	res, err := h.auth.Signout(r.Context(), req.ID, req.Email)
	if err != nil {
		h.logger.Error("signout failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	body := signoutResponse{Code: res.Code}
	if res.TargetUser != nil {
		u := toUserResponse(res.TargetUser)
		body.TargetUser = &u
	}

	writeJSON(w, res.Code, body)
}

// HandleSearchSameEmailUser lists every account registered under an email.
//
// HTTP: GET /api/auth/users?email=a@x.com
//
// Read-only; the client-side half of duplicate detection. Always returns a
// JSON array — empty when the email is unused.
func (h *AuthHandler) HandleSearchSameEmailUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "email query parameter is required",
		})
		return
	}

	users, err := h.auth.SearchSameEmailUser(r.Context(), email)
	if err != nil {
		h.logger.Error("email search failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// requireFields returns a message naming a missing field, or "" when all
// are present. Map iteration order varies between runs; any missing field
// is an equally valid answer.
func requireFields(fields map[string]string) string {
	for name, value := range fields {
		if value == "" {
			return name + " is required"
		}
	}
	return ""
}
