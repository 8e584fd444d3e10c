package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired peeks at the token's exp claim without verifying the
// signature; verification is the backend's job. A token that cannot be
// decoded locally is handed to the backend for the final say.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
