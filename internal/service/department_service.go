package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DTOs for request validation
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name"`
}

type CreatePeriodRequest struct {
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// DepartmentService defines the interface for business logic related to
// Department and its owned sub-resources.
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*model.Department, error)
	GetDepartmentByID(ctx context.Context, id string) (*model.Department, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
	UpdateDepartment(ctx context.Context, id string, req UpdateDepartmentRequest) (*model.Department, error)
	DeleteDepartment(ctx context.Context, id string) error

	ListStaff(ctx context.Context, id string) ([]model.User, error)
	ListCategories(ctx context.Context, id string) ([]model.Category, error)
	ListPeriods(ctx context.Context, id string) ([]model.SubmissionPeriod, error)
	ListSubmissions(ctx context.Context, id string) ([]model.Submission, error)

	// CreatePeriod opens a new collection period for the department.
	// Fails with ErrOpenPeriodExists when one is already open.
	CreatePeriod(ctx context.Context, id string, req CreatePeriodRequest) (*model.SubmissionPeriod, error)
	// CurrentPeriod returns the most recently created OPEN period, falling
	// back to the latest period by end date when none is open.
	CurrentPeriod(ctx context.Context, id string) (*model.SubmissionPeriod, error)
}

type departmentService struct {
	repo           repository.DepartmentRepository
	userRepo       repository.UserRepository
	categoryRepo   repository.CategoryRepository
	periodRepo     repository.PeriodRepository
	submissionRepo repository.SubmissionRepository
	txMgr          repository.TransactionManager
}

// NewDepartmentService returns a new instance of DepartmentService
func NewDepartmentService(
	repo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	periodRepo repository.PeriodRepository,
	submissionRepo repository.SubmissionRepository,
	txMgr repository.TransactionManager,
) DepartmentService {
	return &departmentService{
		repo:           repo,
		userRepo:       userRepo,
		categoryRepo:   categoryRepo,
		periodRepo:     periodRepo,
		submissionRepo: submissionRepo,
		txMgr:          txMgr,
	}
}

func (s *departmentService) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*model.Department, error) {
	department := &model.Department{Name: req.Name}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, id string) (*model.Department, error) {
	department, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("department not found")
	}
	return department, nil
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.repo.List(ctx)
}

func (s *departmentService) UpdateDepartment(ctx context.Context, id string, req UpdateDepartmentRequest) (*model.Department, error) {
	department, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("department not found")
	}

	if req.Name != "" {
		department.Name = req.Name
	}

	// Drop the preloaded users so Save only writes the department row.
	department.Users = nil
	if err := s.repo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.New("department not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *departmentService) ListStaff(ctx context.Context, id string) ([]model.User, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.New("department not found")
	}
	return s.userRepo.ListByDepartment(ctx, id)
}

func (s *departmentService) ListCategories(ctx context.Context, id string) ([]model.Category, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.New("department not found")
	}
	return s.categoryRepo.ListByDepartment(ctx, id)
}

func (s *departmentService) ListPeriods(ctx context.Context, id string) ([]model.SubmissionPeriod, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.New("department not found")
	}
	return s.periodRepo.ListByDepartment(ctx, id)
}

func (s *departmentService) ListSubmissions(ctx context.Context, id string) ([]model.Submission, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.New("department not found")
	}
	return s.submissionRepo.ListByDepartment(ctx, id)
}

func (s *departmentService) CreatePeriod(ctx context.Context, id string, req CreatePeriodRequest) (*model.SubmissionPeriod, error) {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("department not found")
	}

	year := req.Year
	if year == 0 {
		year = req.StartDate.Year()
	}

	var period *model.SubmissionPeriod

	// Check-then-insert runs in one transaction so two concurrent creates
	// cannot both open a period for the same department.
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, id); err != nil {
			return errors.New("department not found")
		}

		if _, err := s.periodRepo.GetOpenByDepartment(txCtx, id); err == nil {
			return ErrOpenPeriodExists
		}

		period = &model.SubmissionPeriod{
			Year:         year,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Status:       model.PeriodOpen,
			DepartmentID: departmentID,
		}
		return s.periodRepo.Create(txCtx, period)
	})
	if err != nil {
		return nil, err
	}

	return period, nil
}

func (s *departmentService) CurrentPeriod(ctx context.Context, id string) (*model.SubmissionPeriod, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.New("department not found")
	}

	period, err := s.periodRepo.GetOpenByDepartment(ctx, id)
	if err == nil {
		return period, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	// No open period: fall back to the most recent one so clients can show
	// why the collection is closed.
	period, err = s.periodRepo.GetLatestByDepartment(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNoPeriodConfigured
		}
		return nil, err
	}
	return period, nil
}
