package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleDriver)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.SubjectID)
	require.Equal(t, domain.RoleDriver, claims.Role)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken("user-1", domain.RoleOperator)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestPassword_HashAndCompare(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)

	require.NoError(t, ComparePassword(hash, "hunter2"))
	require.Error(t, ComparePassword(hash, "wrong"))
}
