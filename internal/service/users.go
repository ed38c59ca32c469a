package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventboard/backend/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRepo interface {
	ListUsers(ctx context.Context, username string) ([]model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

type UserService struct {
	repo userRepo
}

func NewUserService(repo userRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, username string) ([]model.User, error) {
	return s.repo.ListUsers(ctx, strings.TrimSpace(username))
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User", id)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if err := validateCredentials(username, req.Password); err != nil {
		return nil, fmt.Errorf("%w: username must be 3-64 and password 8-72 characters", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         req.Name,
		Image:        req.Image,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, repoError(err, "User", user.ID)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User", id)
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len(username) < minUsernameLength || len(username) > 64 {
			return nil, fmt.Errorf("%w: username must be 3-64 characters", ErrInvalidInput)
		}
		user.Username = username
	}
	if req.Password != nil {
		if err := validateCredentials(user.Username, *req.Password); err != nil {
			return nil, fmt.Errorf("%w: password must be 8-72 characters", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Image != nil {
		user.Image = *req.Image
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, repoError(err, "User", id)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return repoError(s.repo.DeleteUser(ctx, id), "User", id)
}
