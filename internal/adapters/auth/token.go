package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"freebusy/internal/domain"
)

type participantClaims struct {
	jwt.RegisteredClaims
	EventID string `json:"event_id"`
}

type jwtManager struct {
	secret []byte
}

// NewJWTManager returns a TokenIssuer/TokenVerifier pair that signs
// participant tokens with HS256 using the given secret. The subject is the
// participant ID; the event scope travels in the event_id claim.
func NewJWTManager(secret string) *jwtManager {
	return &jwtManager{secret: []byte(secret)}
}

func (m *jwtManager) Issue(participantID, eventID string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := participantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		EventID: eventID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *jwtManager) Verify(tokenString string) (participantID, eventID string, err error) {
	claims := &participantClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" || claims.EventID == "" {
		return "", "", fmt.Errorf("token missing participant or event scope")
	}
	return claims.Subject, claims.EventID, nil
}

var (
	_ domain.TokenIssuer   = (*jwtManager)(nil)
	_ domain.TokenVerifier = (*jwtManager)(nil)
)
