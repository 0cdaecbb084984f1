package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// DTOs for request validation
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

// AuthService issues and backs the bearer tokens the API is authenticated with.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
}

type authService struct {
	repo        repository.UserRepository
	userService UserService
	secret      []byte
}

// NewAuthService returns a new instance of AuthService
func NewAuthService(repo repository.UserRepository, userService UserService, secret []byte) AuthService {
	return &authService{repo: repo, userService: userService, secret: secret}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	if user.DepartmentID != nil {
		claims["department_id"] = user.DepartmentID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{
		AccessToken: signed,
		User:        mapUserResponse(user),
	}, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}

	name := req.FirstName
	if req.LastName != "" {
		if name != "" {
			name += " "
		}
		name += req.LastName
	}

	return s.userService.CreateUser(ctx, CreateUserRequest{
		Email:        req.Email,
		Password:     req.Password,
		Name:         name,
		Role:         role,
		DepartmentID: req.DepartmentID,
	})
}
