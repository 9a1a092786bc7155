package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
)

// Claims JWT claims carried by dashboard tokens
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTAuth token issuing and validation for the dashboard API
type JWTAuth struct {
	config *config.AuthConfig
	secret []byte
}

// NewJWTAuth creates the JWT authenticator.
// An empty secret is replaced with a random one, which invalidates
// all tokens on restart.
func NewJWTAuth(cfg *config.AuthConfig) *JWTAuth {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = generateSecureSecret()
	}
	return &JWTAuth{
		config: cfg,
		secret: []byte(secret),
	}
}

// generateSecureSecret generates a random base64 secret
func generateSecureSecret() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword verifies a password against a bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues a signed token for a user
func (j *JWTAuth) GenerateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateToken parses and validates a token string
func (j *JWTAuth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// SetTokenCookie sets the token cookie
func (j *JWTAuth) SetTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.config.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: j.config.CookieHTTPOnly,
		Secure:   j.config.CookieSecure,
		MaxAge:   int(j.config.TokenExpiry.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie clears the token cookie
func (j *JWTAuth) ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.config.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: j.config.CookieHTTPOnly,
		Secure:   j.config.CookieSecure,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware rejects requests without a valid token.
// When auth is disabled the middleware passes everything through.
func (j *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !j.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := j.extractToken(r)
		if tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := j.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), claims.Username)))
	})
}

// extractToken looks for the token in the cookie, the Authorization
// header and the query string, in that order
func (j *JWTAuth) extractToken(r *http.Request) string {
	cookie, err := r.Cookie(j.config.CookieName)
	if err == nil {
		return cookie.Value
	}

	bearerToken := r.Header.Get("Authorization")
	if len(bearerToken) > 7 && strings.ToUpper(bearerToken[0:7]) == "BEARER " {
		return bearerToken[7:]
	}

	return r.URL.Query().Get("token")
}
