package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
)

// DTOs for request validation
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DepartmentID string `json:"department_id" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryService defines the interface for business logic related to Category
type CategoryService interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	deptRepo repository.DepartmentRepository
}

// NewCategoryService returns a new instance of CategoryService
func NewCategoryService(repo repository.CategoryRepository, deptRepo repository.DepartmentRepository) CategoryService {
	return &categoryService{repo: repo, deptRepo: deptRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	if _, err := s.deptRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, errors.New("department not found")
	}

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, errors.New("invalid department_id")
	}

	category := &model.Category{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: departmentID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("category not found")
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("category not found")
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	category.Department = nil
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.New("category not found")
	}
	return s.repo.Delete(ctx, id)
}
