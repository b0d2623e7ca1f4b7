package keycloak_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mademanik/minjeminapp/util/keycloak"
)

func TestHMACVerifier_RoundTrip(t *testing.T) {
	tok, err := keycloak.Issue("s3cret", "u1", "alice", []string{"admin-role", "user-role"}, time.Minute)
	require.NoError(t, err)

	v := keycloak.NewHMACVerifier("s3cret")
	sess, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	require.Equal(t, "u1", sess.Subject)
	require.Equal(t, "alice", sess.Username)
	require.Equal(t, tok, sess.Token)
	require.True(t, sess.HasRole("admin-role"))
	require.False(t, sess.HasRole("super-role"))
}

func TestHMACVerifier_RejectsWrongSecret(t *testing.T) {
	tok, err := keycloak.Issue("s3cret", "u1", "alice", nil, time.Minute)
	require.NoError(t, err)

	v := keycloak.NewHMACVerifier("other")
	_, err = v.Verify(context.Background(), tok)
	require.Error(t, err)
}

func TestHMACVerifier_RejectsExpired(t *testing.T) {
	tok, err := keycloak.Issue("s3cret", "u1", "alice", nil, -time.Minute)
	require.NoError(t, err)

	v := keycloak.NewHMACVerifier("s3cret")
	_, err = v.Verify(context.Background(), tok)
	require.Error(t, err)
}

func TestHMACVerifier_RejectsEmpty(t *testing.T) {
	v := keycloak.NewHMACVerifier("s3cret")
	_, err := v.Verify(context.Background(), "   ")
	require.ErrorIs(t, err, keycloak.ErrMissingToken)
}
