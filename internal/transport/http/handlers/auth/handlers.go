package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"paydesk/internal/auth"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
)

type Handler struct {
	DB       *pgxpool.Pool
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(db *pgxpool.Pool, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{DB: db, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	var id, hash, role, employeeID string
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, password_hash, role, COALESCE(employee_id, '')
    FROM users
    WHERE email = $1
  `, payload.Email).Scan(&id, &hash, &role, &employeeID)
	if err != nil {
		api.Fail(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: id, EmployeeID: employeeID, Role: role}, h.TokenTTL)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "token_error", "failed to issue token")
		return
	}

	if _, err := h.DB.Exec(r.Context(), "UPDATE users SET last_login = now() WHERE id = $1", id); err != nil {
		slog.Warn("update last_login failed", "userId", id, "err", err)
	}

	api.Success(w, r, map[string]any{
		"token": token,
		"user":  map[string]string{"id": id, "role": role, "employeeId": employeeID},
	})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, r, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	api.Success(w, r, map[string]string{
		"id":         user.UserID,
		"role":       user.Role,
		"employeeId": user.EmployeeID,
	})
}
