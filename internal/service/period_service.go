package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DTOs for request validation
type UpdatePeriodRequest struct {
	Year      int        `json:"year"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type UpdatePeriodStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PeriodService defines the interface for business logic related to
// SubmissionPeriod. Status changes are strictly monotonic:
// OPEN → CLOSED → ARCHIVED.
type PeriodService interface {
	GetPeriodByID(ctx context.Context, id string) (*model.SubmissionPeriod, error)
	ListPeriods(ctx context.Context) ([]model.SubmissionPeriod, error)
	UpdatePeriod(ctx context.Context, id string, req UpdatePeriodRequest) (*model.SubmissionPeriod, error)
	UpdatePeriodStatus(ctx context.Context, id string, actorID string, req UpdatePeriodStatusRequest) (*model.SubmissionPeriod, error)
	DeletePeriod(ctx context.Context, id string) error
}

type periodService struct {
	repo      repository.PeriodRepository
	auditRepo repository.AuditRepository
	log       zerolog.Logger
}

// NewPeriodService returns a new instance of PeriodService
func NewPeriodService(repo repository.PeriodRepository, auditRepo repository.AuditRepository, log zerolog.Logger) PeriodService {
	return &periodService{repo: repo, auditRepo: auditRepo, log: log}
}

func (s *periodService) GetPeriodByID(ctx context.Context, id string) (*model.SubmissionPeriod, error) {
	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("submission period not found")
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]model.SubmissionPeriod, error) {
	return s.repo.List(ctx)
}

func (s *periodService) UpdatePeriod(ctx context.Context, id string, req UpdatePeriodRequest) (*model.SubmissionPeriod, error) {
	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("submission period not found")
	}

	if req.Year != 0 {
		period.Year = req.Year
	}
	if req.StartDate != nil {
		period.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		period.EndDate = *req.EndDate
	}

	period.Department = nil
	if err := s.repo.Update(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *periodService) UpdatePeriodStatus(ctx context.Context, id string, actorID string, req UpdatePeriodStatusRequest) (*model.SubmissionPeriod, error) {
	if !model.ValidPeriodStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("submission period not found")
	}

	if !model.ValidPeriodTransition(period.Status, req.Status) {
		return nil, ErrInvalidPeriodTransition
	}

	from := period.Status
	period.Status = req.Status
	period.Department = nil
	if err := s.repo.Update(ctx, period); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, period, from)

	return period, nil
}

// audit records the transition; a failed audit write never fails the
// transition itself.
func (s *periodService) audit(ctx context.Context, actorID string, period *model.SubmissionPeriod, from string) {
	var userID *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		userID = &parsed
	}

	details, _ := json.Marshal(map[string]interface{}{
		"from":          from,
		"to":            period.Status,
		"department_id": period.DepartmentID.String(),
		"year":          period.Year,
	})
	entry := &model.AuditLog{
		UserID:   userID,
		Action:   model.ActionPeriodTransition,
		EntityID: period.ID.String(),
		Details:  string(details),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("period_id", period.ID.String()).Msg("failed to write period audit entry")
	}
}

func (s *periodService) DeletePeriod(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.New("submission period not found")
	}
	return s.repo.Delete(ctx, id)
}
