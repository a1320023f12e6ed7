// Package auth handles registration and credential login against the remote
// users collection. Passwords are stored and compared as bcrypt hashes.
package auth

import (
	"context"
	"errors"

	"github.com/dnminh/vshop/internal/api"
	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/pkg/logger"
	"github.com/dnminh/vshop/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Directory is the slice of the resource client the auth service needs
type Directory interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Phone    string
	Password string
}

type authService struct {
	users Directory
}

func NewService(users Directory) Service {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	logger.Info("Registering user", map[string]interface{}{
		"email":    input.Email,
		"username": input.Username,
	})

	if _, err := s.users.FindUserByEmail(ctx, input.Email); err == nil {
		logger.Warn("Registration rejected: email exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailTaken
	} else if !errors.Is(err, api.ErrNotFound) {
		return nil, err
	}

	if _, err := s.users.FindUserByUsername(ctx, input.Username); err == nil {
		logger.Warn("Registration rejected: username exists", map[string]interface{}{
			"username": input.Username,
		})
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, api.ErrNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Phone:    input.Phone,
		Password: hash,
		Role:     model.RoleUser,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		logger.Error("Failed to create user", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": created.ID,
	})
	return created, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	if !util.VerifyPassword(user.Password, password) {
		logger.Warn("Login rejected: bad credentials", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	logger.Info("Login succeeded", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error {
	if !util.VerifyPassword(user.Password, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash

	if _, err := s.users.UpdateUser(ctx, user); err != nil {
		logger.Error("Failed to update password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}
