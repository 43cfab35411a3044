package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flashcard-tracker/flashcard-tracker/config"
	"github.com/flashcard-tracker/flashcard-tracker/logger"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	CookieName = "auth_token"

	tokenIssuer   = "flashcard-tracker"
	tokenAudience = "flashcard-tracker-api"
)

// Issuer signs session tokens for users and validates them on the way back in.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	env    config.Environment
}

func NewIssuer(secret string, ttl time.Duration, env config.Environment) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret key not set")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, env: env}, nil
}

// CreateToken returns an HS256 token whose subject is the user ID.
func (i *Issuer) CreateToken(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// EnsureValidToken returns middleware rejecting requests without a valid
// token. The auth cookie is preferred; a bearer token in the Authorization
// header is used when there is no cookie or the cookie does not validate.
func (i *Issuer) EnsureValidToken() (func(http.Handler) http.Handler, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return i.secret, nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		tokenIssuer,
		[]string{tokenAudience},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.FromContext(r.Context()).Debug("Rejected token", zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Failed to validate JWT."})
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithTokenExtractor(tokenExtractor(jwtValidator)),
	)

	return func(next http.Handler) http.Handler {
		return middleware.CheckJWT(next)
	}, nil
}

func tokenExtractor(v *validator.Validator) jwtmiddleware.TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return jwtmiddleware.AuthHeaderTokenExtractor(r)
		}

		bearer, err := jwtmiddleware.AuthHeaderTokenExtractor(r)
		if err != nil || bearer == "" {
			return cookie.Value, nil
		}
		// Both present: a stale cookie must not shadow a good header.
		if _, err := v.ValidateToken(r.Context(), cookie.Value); err != nil {
			return bearer, nil
		}
		return cookie.Value, nil
	}
}

// SetCookie stores token in the auth cookie for the lifetime of the token.
func (i *Issuer) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, i.cookie(token, int(i.ttl.Seconds())))
}

// ClearCookie expires the auth cookie.
func (i *Issuer) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, i.cookie("", -1))
}

func (i *Issuer) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   i.env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if !i.env.IsDevelopment {
		c.Domain = i.env.Domain
	}
	return c
}
