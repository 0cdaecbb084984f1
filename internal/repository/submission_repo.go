package repository

import (
	"backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// SubmissionRepository defines the interface for data access of Submission entities.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, page, limit int) ([]model.Submission, int64, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]model.Submission, error)
	// ListApproved returns APPROVED submissions for a department and period,
	// with user and category preloaded for reporting.
	ListApproved(ctx context.Context, departmentID, periodID string) ([]model.Submission, error)
	Update(ctx context.Context, submission *model.Submission) error
	Delete(ctx context.Context, id string) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository returns a new instance of SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) withRelations(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Preload("User").
		Preload("Department").
		Preload("Category").
		Preload("Period")
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return GetDB(ctx, r.db).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	if err := r.withRelations(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) List(ctx context.Context, page, limit int) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Submission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.withRelations(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) ListByDepartment(ctx context.Context, departmentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.withRelations(ctx).
		Where("department_id = ?", departmentID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) ListApproved(ctx context.Context, departmentID, periodID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := GetDB(ctx, r.db).
		Preload("User").
		Preload("Category").
		Where("department_id = ? AND period_id = ? AND status = ?",
			departmentID, periodID, model.SubmissionApproved).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) Update(ctx context.Context, submission *model.Submission) error {
	return GetDB(ctx, r.db).Save(submission).Error
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Submission{}).Error
}
