package utils

import (
	"net/http"
	"strconv"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// GetSubject returns the subject of the validated token attached to the request.
func GetSubject(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims == nil {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

// GetUserID parses the token subject as a user ID.
func GetUserID(r *http.Request) (uint, bool) {
	sub, ok := GetSubject(r)
	if !ok || sub == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
