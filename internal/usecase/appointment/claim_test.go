package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimSignParseRoundTrip(t *testing.T) {
	signer := NewClaimSigner("test-secret")

	token, err := signer.Sign(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestClaimParseRejectsWrongSecret(t *testing.T) {
	token, err := NewClaimSigner("secret-a").Sign(42)
	require.NoError(t, err)

	_, err = NewClaimSigner("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestClaimParseRejectsGarbage(t *testing.T) {
	_, err := NewClaimSigner("secret").Parse("not-a-token")
	assert.Error(t, err)
}

func TestClaimTokensAreUnique(t *testing.T) {
	signer := NewClaimSigner("secret")

	a, err := signer.Sign(1)
	require.NoError(t, err)
	b, err := signer.Sign(1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "jti must differ between issues")
}
