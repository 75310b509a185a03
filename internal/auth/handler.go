package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vkportfolio/service-core-go/internal/user"
	"github.com/vkportfolio/service-core-go/internal/user/entity"
)

// UserDirectory is the slice of the user service the auth handlers need.
type UserDirectory interface {
	AuthenticatePassword(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Handler exposes the auth HTTP endpoints (login / refresh / me / logout).
type Handler struct {
	issuer   *Issuer
	verifier *Verifier
	users    UserDirectory
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewHandler(issuer *Issuer, verifier *Verifier, users UserDirectory, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		issuer:   issuer,
		verifier: verifier,
		users:    users,
		validate: validator.New(),
		logger:   logger,
	}
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.users.AuthenticatePassword(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debugw("login failed", "err", err)
		switch {
		case errors.Is(err, user.ErrBadCredentials), errors.Is(err, user.ErrDisabled):
			h.fail(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.fail(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	pair, err := h.issuer.Issue(u)
	if err != nil {
		h.logger.Errorw("token issuance failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.ok(w, http.StatusOK, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         u,
	})
}

// RefreshRequest refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	claims, err := h.verifier.VerifyRefresh(req.RefreshToken)
	if err != nil {
		h.fail(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	// claims were sealed at issuance; re-issue without a database lookup
	pair, err := h.issuer.IssueFromClaims(claims)
	if err != nil {
		h.logger.Errorw("token rotation failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	h.ok(w, http.StatusOK, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Me returns the fresh profile of the authenticated user. Unlike the
// token claims, this is looked up from the store on every call.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		h.fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	u, err := h.users.GetByID(r.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.fail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		h.logger.Errorw("profile lookup failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}
	h.ok(w, http.StatusOK, map[string]any{"user": u})
}

// Logout acknowledges a client-side logout. Tokens are self-contained and
// there is no server-side revocation list; discarding the token is the
// whole operation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, map[string]any{"message": "logged out"})
}

func (h *Handler) ok(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
