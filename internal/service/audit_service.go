package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
)

// AuditService exposes the audit trail to administrators.
type AuditService interface {
	ListEntries(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService returns a new instance of AuditService
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListEntries(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	return s.repo.List(ctx, action, page, limit)
}
