package utils

import (
	"context"

	"gearguard/pkg/apperrors"
	"gearguard/pkg/contextkeys"
)

// ActingUser is the slice of the authenticated user the services need:
// identity for createdBy/updatedBy, role and department for gates.
type ActingUser struct {
	ID         uint64
	Role       string
	Department string
}

func GetActingUserFromCtx(ctx context.Context) (ActingUser, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return ActingUser{}, apperrors.ErrUserNotFoundInContext
	}
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	department, _ := ctx.Value(contextkeys.UserDepartmentKey).(string)
	return ActingUser{ID: id, Role: role, Department: department}, nil
}

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	user, err := GetActingUserFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func WithActingUser(ctx context.Context, user ActingUser) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, user.ID)
	ctx = context.WithValue(ctx, contextkeys.UserRoleKey, user.Role)
	return context.WithValue(ctx, contextkeys.UserDepartmentKey, user.Department)
}
