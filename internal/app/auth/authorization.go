package auth

import (
	"context"
	"fmt"

	"github.com/yigit/academictwin/internal/pkg/apperrors"
)

type principalKey struct{}

// WithStudent returns a context carrying the authenticated student id.
func WithStudent(ctx context.Context, studentID int64) context.Context {
	return context.WithValue(ctx, principalKey{}, studentID)
}

// StudentFromContext returns the authenticated student id, if any.
func StudentFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(principalKey{}).(int64)
	return id, ok
}

// AuthorizeStudent allows the request when no principal is attached (the
// bearer-token guard is disabled) or when the principal owns studentID.
func AuthorizeStudent(ctx context.Context, studentID int64) error {
	principal, ok := StudentFromContext(ctx)
	if !ok || principal == studentID {
		return nil
	}
	return apperrors.NewForbiddenError(fmt.Sprintf("student %d cannot access data of student %d", principal, studentID))
}
