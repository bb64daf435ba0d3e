package judge_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/judge"
)

var secret = []byte("secret")

func signWith(t *testing.T, key []byte, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func sign(t *testing.T, claims jwt.Claims) string {
	return signWith(t, secret, claims)
}

func expiring(at time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(at)}
}

func TestInspectCredential_Valid(t *testing.T) {
	now := time.Now()
	tok := sign(t, judge.Claims{UserID: "u-1", RegisteredClaims: expiring(now.Add(time.Hour))})

	cred, err := judge.InspectCredential("Bearer "+tok, secret, now)
	require.NoError(t, err)
	assert.Equal(t, "u-1", cred.Subject)
	assert.Equal(t, tok, cred.Token)
	assert.False(t, cred.Expires.IsZero())
}

func TestInspectCredential_FallsBackToSubject(t *testing.T) {
	now := time.Now()
	claims := expiring(now.Add(time.Hour))
	claims.Subject = "alice"
	tok := sign(t, claims)

	cred, err := judge.InspectCredential(tok, secret, now)
	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Subject)
}

func TestInspectCredential_Rejections(t *testing.T) {
	now := time.Now()
	valid := judge.Claims{UserID: "alice", RegisteredClaims: expiring(now.Add(time.Hour))}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, valid).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, valid).SignedString(secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"bearer only", "Bearer "},
		{"malformed", "not.a.jwt"},
		{"wrong key", signWith(t, []byte("attacker-key"), valid)},
		{"alg none", unsigned},
		{"other hmac", hs512},
		{"no expiry", sign(t, judge.Claims{UserID: "alice"})},
		{"expired", sign(t, judge.Claims{UserID: "u", RegisteredClaims: expiring(now.Add(-time.Minute))})},
		{"no subject", sign(t, expiring(now.Add(time.Hour)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := judge.InspectCredential(tt.token, secret, now)
			assert.True(t, errors.HasCode(err, errors.ErrCodeAuthRequired), "got %v", err)
		})
	}
}

func TestInspectCredential_NoSecretRejectsEverything(t *testing.T) {
	now := time.Now()
	tok := sign(t, judge.Claims{UserID: "alice", RegisteredClaims: expiring(now.Add(time.Hour))})

	_, err := judge.InspectCredential(tok, nil, now)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAuthRequired))
}
