package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for request validation
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Name         string `json:"name"`
	Role         string `json:"role" binding:"required"`
	DepartmentID string `json:"department_id"`
}

type UpdateUserRequest struct {
	Email        string `json:"email" binding:"omitempty,email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
}

// UserResponse returns a User without exposing the password hash.
type UserResponse struct {
	ID           uuid.UUID         `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	DepartmentID *uuid.UUID        `json:"department_id"`
	Department   *model.Department `json:"department,omitempty"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo     repository.UserRepository
	deptRepo repository.DepartmentRepository
	txMgr    repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, deptRepo repository.DepartmentRepository, txMgr repository.TransactionManager) UserService {
	return &userService{repo: repo, deptRepo: deptRepo, txMgr: txMgr}
}

// Helper: parse model to standard json API response
func mapUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		Department:   user.Department,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// Name defaults to the local part of the email, matching the account
	// provisioning behaviour of the UI.
	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	var user *model.User

	// The email-uniqueness and single-head checks share a transaction with
	// the insert so concurrent creates cannot both pass the pre-check.
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByEmail(txCtx, req.Email); err == nil {
			return ErrEmailTaken
		}

		var departmentID *uuid.UUID
		if req.Role != model.RoleAdmin {
			if req.DepartmentID == "" {
				return errors.New("department_id is required for non-admin users")
			}
			if _, err := s.deptRepo.GetByID(txCtx, req.DepartmentID); err != nil {
				return errors.New("department not found")
			}
			parsed, err := uuid.Parse(req.DepartmentID)
			if err != nil {
				return errors.New("invalid department_id")
			}
			departmentID = &parsed

			if req.Role == model.RoleDepartmentHead {
				if _, err := s.repo.GetDepartmentHead(txCtx, req.DepartmentID, ""); err == nil {
					return ErrDepartmentHasHead
				}
			}
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.New("failed to hash password")
		}

		user = &model.User{
			Email:        req.Email,
			Name:         name,
			Password:     string(hashed),
			Role:         req.Role,
			DepartmentID: departmentID, // nil for ADMIN
		}
		return s.repo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	return mapUserResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserResponse(&users[i]))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	var user *model.User

	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.repo.GetByID(txCtx, id)
		if err != nil {
			return errors.New("user not found")
		}

		if req.Role != "" {
			if !model.ValidRole(req.Role) {
				return ErrInvalidRole
			}
			user.Role = req.Role
		}

		if req.Email != "" && req.Email != user.Email {
			if _, err := s.repo.GetByEmail(txCtx, req.Email); err == nil {
				return ErrEmailTaken
			}
			user.Email = req.Email
		}

		if req.Name != "" {
			user.Name = req.Name
		}

		if user.Role == model.RoleAdmin {
			// Admins are cross-department.
			user.DepartmentID = nil
		} else if req.DepartmentID != "" {
			if _, err := s.deptRepo.GetByID(txCtx, req.DepartmentID); err != nil {
				return errors.New("department not found")
			}
			parsed, err := uuid.Parse(req.DepartmentID)
			if err != nil {
				return errors.New("invalid department_id")
			}
			user.DepartmentID = &parsed
		}

		// Re-check the single-head invariant against the resulting state.
		if user.Role == model.RoleDepartmentHead && user.DepartmentID != nil {
			if _, err := s.repo.GetDepartmentHead(txCtx, user.DepartmentID.String(), user.ID.String()); err == nil {
				return ErrDepartmentHasHead
			}
		}

		// Strip the preloaded association so Save only touches the user row.
		user.Department = nil
		return s.repo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	return mapUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return errors.New("user not found")
	}
	return s.repo.Delete(ctx, id)
}
