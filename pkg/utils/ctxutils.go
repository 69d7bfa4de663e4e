package utils

import (
	"context"
	"net/http"

	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || id == "" {
		return "", apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUserNotFoundInContext.Error(), nil, nil)
	}
	return id, nil
}

func GetRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.RoleKey).(string)
	return role
}
