package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordServiceImpl(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, svc.Verify(hash, "s3cret-pass"))
	assert.False(t, svc.Verify(hash, "wrong-pass"))
	assert.False(t, svc.Verify("not-a-hash", "s3cret-pass"))
}
