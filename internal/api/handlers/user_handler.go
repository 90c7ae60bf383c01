package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/services"
)

// validate checks payload struct tags across all handlers.
var validate = validator.New()

// UserHandler handles HTTP requests for registration and login.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(payload.Name, payload.Email, payload.Password)
	if err != nil {
		var policyErr *auth.PolicyError
		switch {
		case errors.As(err, &policyErr):
			http.Error(w, policyErr.Message, http.StatusBadRequest)
		case errors.Is(err, auth.ErrDuplicateEmail):
			http.Error(w, "Email already registered", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Login handles user authentication and token issuance. Unknown email
// and wrong password produce the same response.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"name":         user.Name,
		"email":        user.Email,
	})
}

// GetMe returns the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve principal from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	// sanitize
	user.PasswordHash = ""

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
