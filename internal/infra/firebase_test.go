package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTokenVerifier(t *testing.T) {
	v := NewStaticTokenVerifier("s3cret")

	id, err := v.VerifyToken(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "static", id.Subject)

	_, err = v.VerifyToken(context.Background(), "s3cre")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewStaticTokenVerifier("").VerifyToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
