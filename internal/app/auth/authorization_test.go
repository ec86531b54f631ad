package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/academictwin/internal/pkg/apperrors"
)

func TestAuthorizeStudent(t *testing.T) {
	anonymous := context.Background()
	assert.NoError(t, AuthorizeStudent(anonymous, 9), "no principal means the guard is off")

	ctx := WithStudent(anonymous, 3)
	id, ok := StudentFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	assert.NoError(t, AuthorizeStudent(ctx, 3))
	assert.ErrorIs(t, AuthorizeStudent(ctx, 4), apperrors.ErrPermissionDenied)
}
