package service

import (
	"backend/internal/model"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	r.add(user)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	u, ok := r.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetDepartmentHead(_ context.Context, departmentID string, excludeID string) (*model.User, error) {
	for _, u := range r.users {
		if u.Role != model.RoleDepartmentHead || u.DepartmentID == nil {
			continue
		}
		if u.DepartmentID.String() != departmentID {
			continue
		}
		if excludeID != "" && u.ID.String() == excludeID {
			continue
		}
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, int64(len(r.users)), nil
}

func (r *stubUserRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		if u.DepartmentID != nil && u.DepartmentID.String() == departmentID {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	delete(r.users, parsed)
	return nil
}

type stubDepartmentRepo struct {
	departments map[uuid.UUID]*model.Department
}

func newStubDepartmentRepo() *stubDepartmentRepo {
	return &stubDepartmentRepo{departments: make(map[uuid.UUID]*model.Department)}
}

func (r *stubDepartmentRepo) add(name string) *model.Department {
	d := &model.Department{ID: uuid.New(), Name: name}
	r.departments[d.ID] = d
	return d
}

func (r *stubDepartmentRepo) Create(_ context.Context, department *model.Department) error {
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	r.departments[department.ID] = department
	return nil
}

func (r *stubDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	d, ok := r.departments[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var departments []model.Department
	for _, d := range r.departments {
		departments = append(departments, *d)
	}
	return departments, nil
}

func (r *stubDepartmentRepo) Update(_ context.Context, department *model.Department) error {
	r.departments[department.ID] = department
	return nil
}

func (r *stubDepartmentRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	delete(r.departments, parsed)
	return nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) add(name string, departmentID uuid.UUID) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name, DepartmentID: departmentID}
	r.categories[c.ID] = c
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	c, ok := r.categories[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var categories []model.Category
	for _, c := range r.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}

func (r *stubCategoryRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Category, error) {
	var categories []model.Category
	for _, c := range r.categories {
		if c.DepartmentID.String() == departmentID {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *model.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	delete(r.categories, parsed)
	return nil
}

type stubPeriodRepo struct {
	periods map[uuid.UUID]*model.SubmissionPeriod
}

func newStubPeriodRepo() *stubPeriodRepo {
	return &stubPeriodRepo{periods: make(map[uuid.UUID]*model.SubmissionPeriod)}
}

func (r *stubPeriodRepo) add(departmentID uuid.UUID, status string, endDate time.Time) *model.SubmissionPeriod {
	p := &model.SubmissionPeriod{
		ID:           uuid.New(),
		Year:         endDate.Year(),
		StartDate:    endDate.AddDate(0, -3, 0),
		EndDate:      endDate,
		Status:       status,
		DepartmentID: departmentID,
		CreatedAt:    time.Now(),
	}
	r.periods[p.ID] = p
	return p
}

func (r *stubPeriodRepo) Create(_ context.Context, period *model.SubmissionPeriod) error {
	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}
	period.CreatedAt = time.Now()
	r.periods[period.ID] = period
	return nil
}

func (r *stubPeriodRepo) GetByID(_ context.Context, id string) (*model.SubmissionPeriod, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	p, ok := r.periods[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPeriodRepo) List(_ context.Context) ([]model.SubmissionPeriod, error) {
	var periods []model.SubmissionPeriod
	for _, p := range r.periods {
		periods = append(periods, *p)
	}
	return periods, nil
}

func (r *stubPeriodRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.SubmissionPeriod, error) {
	var periods []model.SubmissionPeriod
	for _, p := range r.periods {
		if p.DepartmentID.String() == departmentID {
			periods = append(periods, *p)
		}
	}
	return periods, nil
}

func (r *stubPeriodRepo) GetOpenByDepartment(_ context.Context, departmentID string) (*model.SubmissionPeriod, error) {
	var matched []*model.SubmissionPeriod
	for _, p := range r.periods {
		if p.DepartmentID.String() == departmentID && p.Status == model.PeriodOpen {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	clone := *matched[0]
	return &clone, nil
}

func (r *stubPeriodRepo) GetLatestByDepartment(_ context.Context, departmentID string) (*model.SubmissionPeriod, error) {
	var matched []*model.SubmissionPeriod
	for _, p := range r.periods {
		if p.DepartmentID.String() == departmentID {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EndDate.After(matched[j].EndDate)
	})
	clone := *matched[0]
	return &clone, nil
}

func (r *stubPeriodRepo) Update(_ context.Context, period *model.SubmissionPeriod) error {
	r.periods[period.ID] = period
	return nil
}

func (r *stubPeriodRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	delete(r.periods, parsed)
	return nil
}

type stubSubmissionRepo struct {
	submissions map[uuid.UUID]*model.Submission
	// insertion order, so list results are stable even when timestamps tie
	seq map[uuid.UUID]int
	n   int
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{
		submissions: make(map[uuid.UUID]*model.Submission),
		seq:         make(map[uuid.UUID]int),
	}
}

func (r *stubSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	submission.CreatedAt = time.Now()
	r.submissions[submission.ID] = submission
	r.n++
	r.seq[submission.ID] = r.n
	return nil
}

func (r *stubSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	s, ok := r.submissions[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSubmissionRepo) List(_ context.Context, page, limit int) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	for _, s := range r.submissions {
		submissions = append(submissions, *s)
	}
	return submissions, int64(len(submissions)), nil
}

func (r *stubSubmissionRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	for _, s := range r.submissions {
		if s.DepartmentID.String() == departmentID {
			submissions = append(submissions, *s)
		}
	}
	return submissions, nil
}

func (r *stubSubmissionRepo) ListByUser(_ context.Context, userID string) ([]model.Submission, error) {
	var submissions []model.Submission
	for _, s := range r.submissions {
		if s.UserID.String() == userID {
			submissions = append(submissions, *s)
		}
	}
	return submissions, nil
}

func (r *stubSubmissionRepo) ListApproved(_ context.Context, departmentID, periodID string) ([]model.Submission, error) {
	var submissions []model.Submission
	for _, s := range r.submissions {
		if s.DepartmentID.String() == departmentID &&
			s.PeriodID.String() == periodID &&
			s.Status == model.SubmissionApproved {
			submissions = append(submissions, *s)
		}
	}
	sort.Slice(submissions, func(i, j int) bool {
		return r.seq[submissions[i].ID] < r.seq[submissions[j].ID]
	})
	return submissions, nil
}

func (r *stubSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	r.submissions[submission.ID] = submission
	return nil
}

func (r *stubSubmissionRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	delete(r.submissions, parsed)
	return nil
}

type stubAuditRepo struct {
	entries []*model.AuditLog
}

func (r *stubAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	var entries []model.AuditLog
	for _, e := range r.entries {
		if action != "" && e.Action != action {
			continue
		}
		entries = append(entries, *e)
	}
	return entries, int64(len(entries)), nil
}

type stubBroadcaster struct {
	events []string
	data   []interface{}
}

func (b *stubBroadcaster) BroadcastJSON(event string, data interface{}) {
	b.events = append(b.events, event)
	b.data = append(b.data, data)
}
