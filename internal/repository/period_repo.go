package repository

import (
	"backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// PeriodRepository defines the interface for data access of SubmissionPeriod entities.
type PeriodRepository interface {
	Create(ctx context.Context, period *model.SubmissionPeriod) error
	GetByID(ctx context.Context, id string) (*model.SubmissionPeriod, error)
	List(ctx context.Context) ([]model.SubmissionPeriod, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.SubmissionPeriod, error)
	// GetOpenByDepartment returns the most recently created OPEN period,
	// or gorm.ErrRecordNotFound when the department has none.
	GetOpenByDepartment(ctx context.Context, departmentID string) (*model.SubmissionPeriod, error)
	// GetLatestByDepartment returns the period with the latest end date.
	GetLatestByDepartment(ctx context.Context, departmentID string) (*model.SubmissionPeriod, error)
	Update(ctx context.Context, period *model.SubmissionPeriod) error
	Delete(ctx context.Context, id string) error
}

type periodRepository struct {
	db *gorm.DB
}

// NewPeriodRepository returns a new instance of PeriodRepository
func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) Create(ctx context.Context, period *model.SubmissionPeriod) error {
	return GetDB(ctx, r.db).Create(period).Error
}

func (r *periodRepository) GetByID(ctx context.Context, id string) (*model.SubmissionPeriod, error) {
	var period model.SubmissionPeriod
	if err := GetDB(ctx, r.db).Preload("Department").First(&period, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepository) List(ctx context.Context) ([]model.SubmissionPeriod, error) {
	var periods []model.SubmissionPeriod
	if err := GetDB(ctx, r.db).Preload("Department").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *periodRepository) ListByDepartment(ctx context.Context, departmentID string) ([]model.SubmissionPeriod, error) {
	var periods []model.SubmissionPeriod
	err := GetDB(ctx, r.db).Where("department_id = ?", departmentID).Order("created_at DESC").Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *periodRepository) GetOpenByDepartment(ctx context.Context, departmentID string) (*model.SubmissionPeriod, error) {
	var period model.SubmissionPeriod
	err := GetDB(ctx, r.db).Preload("Department").
		Where("department_id = ? AND status = ?", departmentID, model.PeriodOpen).
		Order("created_at DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepository) GetLatestByDepartment(ctx context.Context, departmentID string) (*model.SubmissionPeriod, error) {
	var period model.SubmissionPeriod
	err := GetDB(ctx, r.db).Preload("Department").
		Where("department_id = ?", departmentID).
		Order("end_date DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepository) Update(ctx context.Context, period *model.SubmissionPeriod) error {
	return GetDB(ctx, r.db).Save(period).Error
}

func (r *periodRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.SubmissionPeriod{}).Error
}

// IsNotFound reports whether err is the record-not-found error, so services
// can distinguish "no period" from a real failure.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
