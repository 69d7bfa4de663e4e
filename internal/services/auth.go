package services

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	"repair-system/internal/sheetdb"
	"repair-system/internal/store"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/service"
	"repair-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error
	Me(ctx context.Context) (*dto.UserDTO, error)
	ListUsers(ctx context.Context) ([]dto.UserDTO, error)
	ApproveUser(ctx context.Context, userID string) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, userID string) error
}

type AuthService struct {
	store       *store.Store
	sessionRepo repositories.SessionRepositoryInterface
	jwtService  service.JWTService
	logger      *zap.Logger

	defaultAdmin entities.User
}

func NewAuthService(
	st *store.Store,
	sessionRepo repositories.SessionRepositoryInterface,
	jwtSvc service.JWTService,
	adminID, adminPassword string,
	logger *zap.Logger,
) AuthServiceInterface {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on oversized input; a misconfigured default
		// admin password must not boot a server nobody can log in to.
		panic("hashing default admin password: " + err.Error())
	}

	return &AuthService{
		store:       st,
		sessionRepo: sessionRepo,
		jwtService:  jwtSvc,
		logger:      logger,
		defaultAdmin: entities.User{
			ID:       adminID,
			Password: string(hash),
			Role:     entities.RoleAdmin,
			Status:   entities.UserStatusActive,
		},
	}
}

// roster is the known user set: the remote Users sheet merged with the
// built-in admin, which is guaranteed present regardless of remote data.
func (s *AuthService) roster() []entities.User {
	users := s.store.Snapshot().Users
	for _, u := range users {
		if u.ID == s.defaultAdmin.ID && u.Role == entities.RoleAdmin {
			return users
		}
	}
	return append([]entities.User{s.defaultAdmin}, users...)
}

func (s *AuthService) findUser(id string) *entities.User {
	for _, u := range s.roster() {
		if u.ID == id {
			user := u
			return &user
		}
	}
	return nil
}

// passwordMatches compares against a bcrypt hash, falling back to a
// constant-time literal compare for rows that predate hashing.
func passwordMatches(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user := s.findUser(payload.Login)
	if user == nil || !passwordMatches(user.Password, payload.Password) {
		s.logger.Warn("login failed", zap.String("login", payload.Login))
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), nil, nil)
	}

	if user.Status == entities.UserStatusPending {
		return nil, apperrors.NewHttpError(http.StatusForbidden, "account is pending approval from an administrator", nil, nil)
	}

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "failed to issue token", err, nil)
	}

	if payload.Remember {
		if err := s.sessionRepo.Save(ctx, *user); err != nil {
			s.logger.Warn("failed to persist remembered session", zap.String("user", user.ID), zap.Error(err))
		}
	} else {
		// An unchecked login clears any previously remembered session.
		if err := s.sessionRepo.Delete(ctx, user.ID); err != nil {
			s.logger.Warn("failed to clear remembered session", zap.String("user", user.ID), zap.Error(err))
		}
	}

	s.logger.Info("user logged in", zap.String("user", user.ID), zap.String("role", string(user.Role)))
	return &dto.LoginResponseDTO{Token: token, User: dto.NewUserDTO(*user)}, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, userID)
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserDTO, error) {
	if s.findUser(payload.Login) != nil {
		return nil, apperrors.NewConflictError("username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "failed to hash password", err, nil)
	}

	user := entities.User{
		ID:       payload.Login,
		Password: string(hash),
		Role:     entities.RoleUser,
		Status:   entities.UserStatusPending,
	}

	if err := s.store.Create(ctx, sheetdb.SheetUsers, user); err != nil {
		return nil, apperrors.NewRemoteError("failed to save new user", err)
	}

	s.logger.Info("user registered, pending approval", zap.String("user", user.ID))
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	user := s.findUser(userID)
	if user == nil {
		return apperrors.NewNotFoundError("user not found")
	}

	if !passwordMatches(user.Password, payload.OldPassword) {
		return apperrors.NewHttpError(http.StatusForbidden, "current password is incorrect", nil, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewHttpError(http.StatusInternalServerError, "failed to hash password", err, nil)
	}
	user.Password = string(hash)

	// The built-in admin may exist only in memory until its first change;
	// that change materializes it on the Users sheet.
	if s.existsOnSheet(userID) {
		err = s.store.Update(ctx, sheetdb.SheetUsers, *user)
	} else {
		err = s.store.Create(ctx, sheetdb.SheetUsers, *user)
	}
	if err != nil {
		return apperrors.NewRemoteError("failed to save new password", err)
	}

	// Keep a remembered session in step with the new credentials.
	if saved, err := s.sessionRepo.Get(ctx, userID); err == nil && saved != nil {
		if err := s.sessionRepo.Save(ctx, *user); err != nil {
			s.logger.Warn("failed to refresh remembered session", zap.String("user", userID), zap.Error(err))
		}
	}

	s.logger.Info("password changed", zap.String("user", userID))
	return nil
}

func (s *AuthService) existsOnSheet(userID string) bool {
	for _, u := range s.store.Snapshot().Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user := s.findUser(userID)
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	out := dto.NewUserDTO(*user)
	return &out, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]dto.UserDTO, error) {
	roster := s.roster()
	out := make([]dto.UserDTO, 0, len(roster))
	for _, u := range roster {
		out = append(out, dto.NewUserDTO(u))
	}
	return out, nil
}

func (s *AuthService) ApproveUser(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user := s.findUser(userID)
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if user.Status == entities.UserStatusActive {
		return nil, apperrors.NewBadRequestError("user is already active", nil)
	}

	user.Status = entities.UserStatusActive
	if err := s.store.Update(ctx, sheetdb.SheetUsers, *user); err != nil {
		return nil, apperrors.NewRemoteError("failed to approve user", err)
	}

	s.logger.Info("user approved", zap.String("user", userID))
	out := dto.NewUserDTO(*user)
	return &out, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	user := s.findUser(userID)
	if user == nil {
		return apperrors.NewNotFoundError("user not found")
	}
	if user.Role == entities.RoleAdmin {
		return apperrors.NewHttpError(http.StatusForbidden, "admin accounts cannot be deleted", nil, nil)
	}

	if err := s.store.Delete(ctx, sheetdb.SheetUsers, userID); err != nil {
		return apperrors.NewRemoteError("failed to delete user", err)
	}

	if err := s.sessionRepo.Delete(ctx, userID); err != nil {
		s.logger.Warn("failed to drop remembered session of deleted user", zap.String("user", userID), zap.Error(err))
	}

	s.logger.Info("user deleted", zap.String("user", userID))
	return nil
}
