package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/config"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
)

// Claims is the session token payload: one authenticated user, time-bounded.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

func Issue(cfg config.JWT, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpiredIn) * time.Second)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "token.Issue.SignedString", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the user the token
// identifies. Every failure mode is Unauthenticated; callers never need to
// distinguish a forged token from an expired one.
func Verify(cfg config.JWT, tokenStr string) (uuid.UUID, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !t.Valid {
		return uuid.Nil, apperrors.Unauthorized("invalid or expired session token")
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, apperrors.Unauthorized("session token carries no user")
	}
	return claims.UserID, nil
}
