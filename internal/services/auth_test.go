package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	"repair-system/internal/sheetdb"
	"repair-system/internal/store"
	"repair-system/pkg/contextkeys"
	"repair-system/pkg/service"
)

func newAuthFixture(t *testing.T) (AuthServiceInterface, *store.Store, *repositories.MemorySessionRepository) {
	t.Helper()
	st, _ := newTestStore(t)
	sessions := repositories.NewMemorySessionRepository()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	svc := NewAuthService(st, sessions, jwtSvc, "Admin", "123", zap.NewNop())
	return svc, st, sessions
}

func asUser(userID string) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
}

func TestLoginDefaultAdminWithoutRemoteData(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, entities.RoleAdmin, res.User.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "wrong"})
	assert.Error(t, err)
}

func TestLoginRejectsPendingUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{Login: "pieter", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginDTO{Login: "pieter", Password: "secret"})
	assert.Error(t, err, "unapproved accounts cannot log in")
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{Login: "pieter", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterDTO{Login: "pieter", Password: "other"})
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterDTO{Login: "Admin", Password: "x"})
	assert.Error(t, err, "the built-in admin name is reserved")
}

func TestApproveUserUnlocksLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), dto.RegisterDTO{Login: "pieter", Password: "secret"})
	require.NoError(t, err)

	approved, err := svc.ApproveUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.UserStatusActive, approved.Status)

	res, err := svc.Login(context.Background(), dto.LoginDTO{Login: "pieter", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "pieter", res.User.ID)
}

func TestRememberPersistsSessionAndPlainLoginClearsIt(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "123", Remember: true})
	require.NoError(t, err)

	saved, err := sessions.Get(context.Background(), "Admin")
	require.NoError(t, err)
	require.NotNil(t, saved)

	_, err = svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "123"})
	require.NoError(t, err)

	saved, err = sessions.Get(context.Background(), "Admin")
	require.NoError(t, err)
	assert.Nil(t, saved, "a login without remember drops the stored session")
}

func TestChangePasswordRefreshesRememberedSession(t *testing.T) {
	svc, st, sessions := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "123", Remember: true})
	require.NoError(t, err)

	ctx := asUser("Admin")
	require.NoError(t, svc.ChangePassword(ctx, dto.ChangePasswordDTO{OldPassword: "123", NewPassword: "stronger"}))

	// The old password stops working, the new one logs in.
	_, err = svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "123"})
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginDTO{Login: "Admin", Password: "stronger"})
	assert.NoError(t, err)

	// The built-in admin materialized on the Users sheet with a hash.
	users := st.Snapshot().Users
	require.Len(t, users, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("stronger")))

	saved, err := sessions.Get(context.Background(), "Admin")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("stronger")))
}

func TestChangePasswordRejectsWrongCurrentPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.ChangePassword(asUser("Admin"), dto.ChangePasswordDTO{OldPassword: "nope", NewPassword: "x"})
	assert.Error(t, err)
}

func TestLegacyPlaintextPasswordStillLogsIn(t *testing.T) {
	svc, st, _ := newAuthFixture(t)

	require.NoError(t, st.Create(context.Background(), sheetdb.SheetUsers, entities.User{
		ID: "legacy", Password: "oldpass", Role: entities.RoleUser, Status: entities.UserStatusActive,
	}))

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "legacy", Password: "oldpass"})
	assert.NoError(t, err)
}

func TestDeleteUserRefusesAdminsAndDropsSession(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	assert.Error(t, svc.DeleteUser(context.Background(), "Admin"))

	user, err := svc.Register(context.Background(), dto.RegisterDTO{Login: "pieter", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.ApproveUser(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), dto.LoginDTO{Login: "pieter", Password: "secret", Remember: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), "pieter"))

	saved, err := sessions.Get(context.Background(), "pieter")
	require.NoError(t, err)
	assert.Nil(t, saved)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Admin", users[0].ID)
}
