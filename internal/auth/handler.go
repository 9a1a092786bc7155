package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
)

// LoginRequest login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse login response body
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expires_in"`
}

// Handler authentication HTTP handlers
type Handler struct {
	config  *config.AuthConfig
	jwtAuth *JWTAuth
}

// NewHandler creates the auth handler
func NewHandler(cfg *config.AuthConfig, jwtAuth *JWTAuth) *Handler {
	return &Handler{
		config:  cfg,
		jwtAuth: jwtAuth,
	}
}

// Login verifies credentials and issues a token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username != h.config.Username || !CheckPassword(req.Password, h.config.PasswordHash) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtAuth.GenerateToken(req.Username)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.jwtAuth.SetTokenCookie(w, token)

	response := LoginResponse{
		Token:     token,
		Username:  req.Username,
		ExpiresIn: int64(h.config.TokenExpiry.Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Logout clears the token cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.jwtAuth.ClearTokenCookie(w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"})
}

// Profile returns the authenticated user
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	username, ok := GetUsername(r.Context())
	if !ok {
		if h.config.Enabled {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		username = h.config.Username
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"username": username})
}

// RegisterRoutes registers the auth routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", h.Logout).Methods(http.MethodPost)
	r.Handle("/api/auth/profile", h.jwtAuth.Middleware(http.HandlerFunc(h.Profile))).Methods(http.MethodGet)
}
