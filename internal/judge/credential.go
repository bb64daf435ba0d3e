package judge

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vytor/codedrill/internal/errors"
)

// Claims mirrors what the auth backend puts in its tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Credential is a bearer token plus the identity read from it.
type Credential struct {
	Token   string
	Subject string
	Expires time.Time
}

// InspectCredential verifies a bearer token against the HS256 secret shared
// with the auth backend and extracts the caller's identity. Missing, forged,
// malformed or expired tokens fail with AUTHENTICATION_REQUIRED.
func InspectCredential(token string, secret []byte, now time.Time) (Credential, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Credential{}, errors.NewAuthenticationRequiredError("missing credential")
	}
	if len(secret) == 0 {
		return Credential{}, errors.NewAuthenticationRequiredError("credential verification is not configured")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	switch {
	case err == nil:
	case stderrors.Is(err, jwt.ErrTokenExpired):
		return Credential{}, errors.NewAuthenticationRequiredError("credential expired")
	default:
		return Credential{}, errors.NewAuthenticationRequiredError("invalid credential")
	}

	cred := Credential{Token: token, Subject: claims.UserID, Expires: claims.ExpiresAt.Time}
	if cred.Subject == "" {
		cred.Subject = claims.Subject
	}
	if cred.Subject == "" {
		return Credential{}, errors.NewAuthenticationRequiredError("credential carries no subject")
	}
	return cred, nil
}
