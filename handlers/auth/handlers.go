package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"csrconnect/backend/handlers/respond"
	"csrconnect/backend/models"
	"csrconnect/backend/store"
)

// RegisterRequest is the signup payload. Role is fixed at registration and
// never changes afterwards.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token     string      `json:"access_token"`
	TokenType string      `json:"token_type"`
	User      models.User `json:"user"`
}

// RegisterHandler handles user registration
// Used by: /api/auth/register
func RegisterHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
			respond.Error(w, models.Validationf("email, password and name are required"))
			return
		}
		if !models.ValidRole(req.Role) {
			respond.Error(w, models.Validationf("invalid role %q", req.Role))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respond.Error(w, err)
			return
		}

		u := models.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			Name:         req.Name,
			Role:         req.Role,
			Organization: req.Organization,
			Phone:        req.Phone,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.CreateUser(r.Context(), u); err != nil {
			respond.Error(w, err)
			return
		}

		token, err := GenerateToken(u.ID)
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, AuthResponse{Token: token, TokenType: "bearer", User: u})
	}
}

// LoginHandler handles user authentication
// Used by: /api/auth/login
func LoginHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		u, err := s.GetUserByEmail(r.Context(), req.Email)
		if models.IsNotFound(err) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			respond.Error(w, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := GenerateToken(u.ID)
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, AuthResponse{Token: token, TokenType: "bearer", User: u})
	}
}

// MeHandler returns the authenticated user's record
// Used by: /api/me
func MeHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		respond.JSON(w, http.StatusOK, u)
	}
}
