package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackadmin/internal/domain"
	"hackadmin/pkg/errors"
)

func sign(t *testing.T, secret string, claims AdminClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestParse_Verified(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := sign(t, "s3cret", AdminClaims{
		Email: "root@example.com",
		Role:  domain.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	sess, err := Parse(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", sess.Subject)
	assert.True(t, sess.IsSuperAdmin())
	assert.True(t, sess.ExpiresAt.Equal(exp))
	assert.False(t, sess.Expired(time.Now()))
	assert.True(t, sess.Verified)
}

func TestParse_Failures(t *testing.T) {
	tok := sign(t, "right", AdminClaims{Role: domain.RoleDepartmentAdmin})
	expired := sign(t, "right", AdminClaims{
		Role: domain.RoleDepartmentAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	tests := []struct {
		name     string
		token    string
		secret   string
		wantType errors.ErrorType
	}{
		{"missing", "  ", "right", errors.ErrorTypeMissingAuth},
		{"wrong secret", tok, "wrong", errors.ErrorTypeMissingAuth},
		{"expired", expired, "right", errors.ErrorTypeMissingAuth},
		{"garbage unverified", "not-a-jwt", "", errors.ErrorTypeMissingAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, tt.secret)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType))
		})
	}

	_, err := Parse("", "")
	assert.Equal(t, errors.MissingTokenMessage, errors.MessageOf(err, ""))
}

func TestParse_Unverified(t *testing.T) {
	tok := sign(t, "backend-only", AdminClaims{ID: 12, Role: domain.RoleDepartmentAdmin, Department: "CSE"})

	sess, err := Parse(tok, "")
	require.NoError(t, err)
	assert.Equal(t, "12", sess.Subject)
	assert.Equal(t, "CSE", sess.Department)
	assert.False(t, sess.IsSuperAdmin())
	assert.Equal(t, tok, sess.Token)
	assert.False(t, sess.Verified)
	assert.Equal(t, "12 (unverified)", sess.Actor())
}

func TestKey(t *testing.T) {
	victim := Context{Token: "victim-token", Subject: "root@example.com"}
	forged := Context{Token: "forged-token", Subject: "root@example.com"}
	assert.NotEqual(t, victim.Key(), forged.Key())
	assert.Equal(t, victim.Key(), Context{Token: "victim-token", Subject: "root@example.com"}.Key())

	victim.Verified, forged.Verified = true, true
	assert.Equal(t, "root@example.com", victim.Key())
	assert.Equal(t, victim.Key(), forged.Key())
	assert.Equal(t, "root@example.com", victim.Actor())
}

func TestFromHeader(t *testing.T) {
	tok, ok := FromHeader("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = FromHeader("bearer  xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	_, ok = FromHeader("Basic abc")
	assert.False(t, ok)
	_, ok = FromHeader("Bearer ")
	assert.False(t, ok)
}

func TestContextRoundTrip(t *testing.T) {
	_, err := MustFromContext(context.Background())
	assert.True(t, errors.IsType(err, errors.ErrorTypeMissingAuth))

	ctx := With(context.Background(), Context{Token: "t", Role: domain.RoleSuperAdmin})
	sess, err := MustFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", sess.Token)
	assert.NoError(t, sess.Require())
	assert.Error(t, Context{}.Require())
}
