package service

import (
	"backend/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type submissionFixture struct {
	svc         SubmissionService
	users       *stubUserRepo
	periods     *stubPeriodRepo
	categories  *stubCategoryRepo
	submissions *stubSubmissionRepo
	audit       *stubAuditRepo
	hub         *stubBroadcaster

	department *model.Department
	staff      *model.User
	category   *model.Category
}

func newSubmissionFixture() *submissionFixture {
	users := newStubUserRepo()
	periods := newStubPeriodRepo()
	categories := newStubCategoryRepo()
	submissions := newStubSubmissionRepo()
	audit := &stubAuditRepo{}
	hub := &stubBroadcaster{}

	depts := newStubDepartmentRepo()
	department := depts.add("Finance")

	deptID := department.ID
	staff := users.add(&model.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         model.RoleStaff,
		DepartmentID: &deptID,
	})
	category := categories.add("IT equipment", department.ID)

	return &submissionFixture{
		svc:         NewSubmissionService(submissions, users, periods, categories, audit, hub, zerolog.Nop()),
		users:       users,
		periods:     periods,
		categories:  categories,
		submissions: submissions,
		audit:       audit,
		hub:         hub,
		department:  department,
		staff:       staff,
		category:    category,
	}
}

func (f *submissionFixture) createRequest() CreateSubmissionRequest {
	return CreateSubmissionRequest{
		Title:       "Laptops",
		Description: "Replacement laptops for the team",
		Quantity:    3,
		UnitPrice:   decimal.NewFromInt(1500),
		CategoryID:  f.category.ID.String(),
	}
}

func TestCreateSubmission_OpenPeriod(t *testing.T) {
	f := newSubmissionFixture()
	period := f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	sub, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.Status != model.SubmissionPending {
		t.Fatalf("expected PENDING, got %s", sub.Status)
	}
	if sub.DepartmentID != f.department.ID {
		t.Fatalf("department not taken from user")
	}
	if sub.PeriodID != period.ID {
		t.Fatalf("submission not attached to the open period")
	}
	if got := sub.LineTotal(); !got.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("expected line total 4500, got %s", got)
	}
}

func TestCreateSubmission_ClosedPeriod(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodClosed, time.Now().AddDate(0, -1, 0))

	_, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if !errors.Is(err, ErrPeriodClosed) {
		t.Fatalf("expected ErrPeriodClosed, got %v", err)
	}
	if err.Error() != "collection period closed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateSubmission_ArchivedPeriod(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodArchived, time.Now().AddDate(-1, 0, 0))

	_, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if !errors.Is(err, ErrPeriodArchived) {
		t.Fatalf("expected ErrPeriodArchived, got %v", err)
	}
	if err.Error() != "collection period archived" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateSubmission_NoPeriodConfigured(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if !errors.Is(err, ErrNoPeriodConfigured) {
		t.Fatalf("expected ErrNoPeriodConfigured, got %v", err)
	}
}

func TestCreateSubmission_PrefersOpenOverNewerClosed(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodClosed, time.Now().AddDate(0, 2, 0))
	open := f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	sub, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.PeriodID != open.ID {
		t.Fatalf("expected the open period to win over a newer closed one")
	}
}

func TestCreateSubmission_ExplicitPeriodWrongDepartment(t *testing.T) {
	f := newSubmissionFixture()
	other := f.periods.add(uuid.New(), model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	req := f.createRequest()
	req.PeriodID = other.ID.String()

	_, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), req)
	if !errors.Is(err, ErrPeriodDepartmentMismatch) {
		t.Fatalf("expected ErrPeriodDepartmentMismatch, got %v", err)
	}
}

func TestCreateSubmission_UserWithoutDepartment(t *testing.T) {
	f := newSubmissionFixture()
	admin := f.users.add(&model.User{
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	})
	f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	_, err := f.svc.CreateSubmission(context.Background(), admin.ID.String(), f.createRequest())
	if !errors.Is(err, ErrUserWithoutDepartment) {
		t.Fatalf("expected ErrUserWithoutDepartment, got %v", err)
	}
}

func TestCreateSubmission_CategoryFromAnotherDepartment(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))
	foreign := f.categories.add("Foreign", uuid.New())

	req := f.createRequest()
	req.CategoryID = foreign.ID.String()

	_, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), req)
	if err == nil {
		t.Fatalf("expected error for cross-department category")
	}
}

func TestUpdateStatus_ApproveWithFeedback(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	sub, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reviewed, err := f.svc.UpdateStatus(context.Background(), sub.ID.String(), f.staff.ID.String(), UpdateSubmissionStatusRequest{
		Status:   model.SubmissionApproved,
		Feedback: "approved within budget",
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if reviewed.Status != model.SubmissionApproved {
		t.Fatalf("expected APPROVED, got %s", reviewed.Status)
	}
	if reviewed.Feedback != "approved within budget" {
		t.Fatalf("feedback not stored")
	}

	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != model.ActionReviewSubmission {
		t.Fatalf("expected one review audit entry, got %+v", f.audit.entries)
	}
	if len(f.hub.events) != 1 || f.hub.events[0] != "submission.reviewed" {
		t.Fatalf("expected a submission.reviewed broadcast, got %v", f.hub.events)
	}
}

func TestUpdateStatus_SameStatusIsIdempotent(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	sub, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reviewed, err := f.svc.UpdateStatus(context.Background(), sub.ID.String(), f.staff.ID.String(), UpdateSubmissionStatusRequest{
		Status: model.SubmissionPending,
	})
	if err != nil {
		t.Fatalf("same-status update should succeed, got %v", err)
	}
	if reviewed.Status != model.SubmissionPending {
		t.Fatalf("status changed unexpectedly")
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	sub, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.UpdateStatus(context.Background(), sub.ID.String(), f.staff.ID.String(), UpdateSubmissionStatusRequest{
		Status: "MAYBE",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDeleteSubmission_WritesAudit(t *testing.T) {
	f := newSubmissionFixture()
	f.periods.add(f.department.ID, model.PeriodOpen, time.Now().AddDate(0, 1, 0))

	sub, err := f.svc.CreateSubmission(context.Background(), f.staff.ID.String(), f.createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.DeleteSubmission(context.Background(), sub.ID.String(), f.staff.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.GetSubmissionByID(context.Background(), sub.ID.String()); err == nil {
		t.Fatalf("submission still retrievable after delete")
	}
	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != model.ActionDeleteSubmission {
		t.Fatalf("expected a delete audit entry, got %+v", f.audit.entries)
	}
}
