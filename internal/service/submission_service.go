package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Broadcaster pushes review events to connected dashboard clients.
// Satisfied by the websocket hub; a nil-safe no-op is fine in tests.
type Broadcaster interface {
	BroadcastJSON(event string, data interface{})
}

// DTOs for request validation
type CreateSubmissionRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	Reference     string          `json:"reference"`
	Justification string          `json:"justification"`
	CategoryID    string          `json:"category_id" binding:"required"`
	PeriodID      string          `json:"period_id"`
}

type UpdateSubmissionStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Feedback string `json:"feedback"`
}

// SubmissionService defines the interface for business logic related to Submission
type SubmissionService interface {
	// CreateSubmission files a new need for the authenticated user. The
	// department comes from the user, never the payload, and creation is
	// gated on the department's current period being OPEN.
	CreateSubmission(ctx context.Context, userID string, req CreateSubmissionRequest) (*model.Submission, error)
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, page, limit int) ([]model.Submission, int64, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]model.Submission, error)
	// UpdateStatus sets status and feedback atomically. Any of the four
	// review states may be targeted, including the current one (no-op).
	UpdateStatus(ctx context.Context, id string, actorID string, req UpdateSubmissionStatusRequest) (*model.Submission, error)
	DeleteSubmission(ctx context.Context, id string, actorID string) error
}

type submissionService struct {
	repo         repository.SubmissionRepository
	userRepo     repository.UserRepository
	periodRepo   repository.PeriodRepository
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
	hub          Broadcaster
	log          zerolog.Logger
}

// NewSubmissionService returns a new instance of SubmissionService
func NewSubmissionService(
	repo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	periodRepo repository.PeriodRepository,
	categoryRepo repository.CategoryRepository,
	auditRepo repository.AuditRepository,
	hub Broadcaster,
	log zerolog.Logger,
) SubmissionService {
	return &submissionService{
		repo:         repo,
		userRepo:     userRepo,
		periodRepo:   periodRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		hub:          hub,
		log:          log,
	}
}

func (s *submissionService) CreateSubmission(ctx context.Context, userID string, req CreateSubmissionRequest) (*model.Submission, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if user.DepartmentID == nil {
		return nil, ErrUserWithoutDepartment
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, errors.New("category not found")
	}
	if category.DepartmentID != *user.DepartmentID {
		return nil, errors.New("category does not belong to the user's department")
	}

	period, err := s.resolvePeriod(ctx, user, req.PeriodID)
	if err != nil {
		return nil, err
	}
	switch period.Status {
	case model.PeriodOpen:
		// allowed
	case model.PeriodClosed:
		return nil, ErrPeriodClosed
	case model.PeriodArchived:
		return nil, ErrPeriodArchived
	default:
		return nil, ErrInvalidStatus
	}

	submission := &model.Submission{
		Title:         req.Title,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Reference:     req.Reference,
		Justification: req.Justification,
		Status:        model.SubmissionPending,
		UserID:        user.ID,
		DepartmentID:  *user.DepartmentID,
		CategoryID:    category.ID,
		PeriodID:      period.ID,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, submission.ID.String())
}

// resolvePeriod picks the period a submission lands in: the explicit one
// when the client names it (and it belongs to the user's department), the
// department's current period otherwise.
func (s *submissionService) resolvePeriod(ctx context.Context, user *model.User, periodID string) (*model.SubmissionPeriod, error) {
	if periodID != "" {
		period, err := s.periodRepo.GetByID(ctx, periodID)
		if err != nil {
			return nil, errors.New("submission period not found")
		}
		if period.DepartmentID != *user.DepartmentID {
			return nil, ErrPeriodDepartmentMismatch
		}
		return period, nil
	}

	period, err := s.periodRepo.GetOpenByDepartment(ctx, user.DepartmentID.String())
	if err == nil {
		return period, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	period, err = s.periodRepo.GetLatestByDepartment(ctx, user.DepartmentID.String())
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNoPeriodConfigured
		}
		return nil, err
	}
	return period, nil
}

func (s *submissionService) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("submission not found")
	}
	return submission, nil
}

func (s *submissionService) ListSubmissions(ctx context.Context, page, limit int) ([]model.Submission, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *submissionService) ListByDepartment(ctx context.Context, departmentID string) ([]model.Submission, error) {
	return s.repo.ListByDepartment(ctx, departmentID)
}

func (s *submissionService) ListByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *submissionService) UpdateStatus(ctx context.Context, id string, actorID string, req UpdateSubmissionStatusRequest) (*model.Submission, error) {
	if !model.ValidSubmissionStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("submission not found")
	}

	from := submission.Status
	submission.Status = req.Status
	submission.Feedback = req.Feedback

	// Detach preloaded associations so Save only writes the submission row.
	submission.User = nil
	submission.Department = nil
	submission.Category = nil
	submission.Period = nil

	if err := s.repo.Update(ctx, submission); err != nil {
		return nil, err
	}

	s.auditReview(ctx, actorID, submission, from)

	if s.hub != nil {
		s.hub.BroadcastJSON("submission.reviewed", map[string]interface{}{
			"submission_id": submission.ID.String(),
			"department_id": submission.DepartmentID.String(),
			"status":        submission.Status,
			"feedback":      submission.Feedback,
		})
	}

	return s.repo.GetByID(ctx, id)
}

func (s *submissionService) auditReview(ctx context.Context, actorID string, submission *model.Submission, from string) {
	var userID *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		userID = &parsed
	}

	details, _ := json.Marshal(map[string]interface{}{
		"from":     from,
		"to":       submission.Status,
		"feedback": submission.Feedback,
	})
	entry := &model.AuditLog{
		UserID:     userID,
		Action:     model.ActionReviewSubmission,
		EntityID:   submission.ID.String(),
		EntityName: submission.Title,
		Details:    string(details),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("submission_id", submission.ID.String()).Msg("failed to write review audit entry")
	}
}

func (s *submissionService) DeleteSubmission(ctx context.Context, id string, actorID string) error {
	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("submission not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	var userID *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		userID = &parsed
	}
	entry := &model.AuditLog{
		UserID:     userID,
		Action:     model.ActionDeleteSubmission,
		EntityID:   submission.ID.String(),
		EntityName: submission.Title,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("submission_id", id).Msg("failed to write delete audit entry")
	}

	return nil
}
