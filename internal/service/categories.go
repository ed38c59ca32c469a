package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventboard/backend/internal/model"
	"github.com/google/uuid"
)

type categoryRepo interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryService struct {
	repo categoryRepo
}

func NewCategoryService(repo categoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Category", id)
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	category := &model.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, repoError(err, "Category", category.ID)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req model.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	category := &model.Category{ID: id, Name: name}
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, repoError(err, "Category", id)
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return repoError(s.repo.DeleteCategory(ctx, id), "Category", id)
}
