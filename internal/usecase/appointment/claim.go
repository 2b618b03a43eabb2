package appointment

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
)

// ClaimSigner issues the tracking token returned with a public booking.
// The client keeps it to look its appointment up (and later cancel it)
// without an account.
type ClaimSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewClaimSigner(secret string) *ClaimSigner {
	return &ClaimSigner{
		secret: []byte(secret),
		ttl:    90 * 24 * time.Hour,
	}
}

func (s *ClaimSigner) Sign(appointmentID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   appointmentID,
		"scope": "booking_claim",
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Parse returns the appointment id held by a claim token.
func (s *ClaimSigner) Parse(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, httperr.ErrBusiness("invalid_claim_token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, httperr.ErrBusiness("invalid_claim_token")
	}
	if scope, _ := claims["scope"].(string); scope != "booking_claim" {
		return 0, httperr.ErrBusiness("invalid_claim_token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, httperr.ErrBusiness("invalid_claim_token")
	}

	return uint(sub), nil
}
