package service

import (
	"backend/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newPeriodFixture() (PeriodService, DepartmentService, *stubPeriodRepo, *stubDepartmentRepo, *stubAuditRepo) {
	periods := newStubPeriodRepo()
	depts := newStubDepartmentRepo()
	audit := &stubAuditRepo{}

	periodSvc := NewPeriodService(periods, audit, zerolog.Nop())
	deptSvc := NewDepartmentService(depts, newStubUserRepo(), newStubCategoryRepo(), periods, newStubSubmissionRepo(), stubTxManager{})
	return periodSvc, deptSvc, periods, depts, audit
}

func TestCreatePeriod_SecondOpenRejected(t *testing.T) {
	_, deptSvc, _, depts, _ := newPeriodFixture()
	dept := depts.add("Finance")

	req := CreatePeriodRequest{
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 3, 0),
	}
	if _, err := deptSvc.CreatePeriod(context.Background(), dept.ID.String(), req); err != nil {
		t.Fatalf("first period: %v", err)
	}

	_, err := deptSvc.CreatePeriod(context.Background(), dept.ID.String(), req)
	if !errors.Is(err, ErrOpenPeriodExists) {
		t.Fatalf("expected ErrOpenPeriodExists, got %v", err)
	}
}

func TestCreatePeriod_YearDefaultsToStartDate(t *testing.T) {
	_, deptSvc, _, depts, _ := newPeriodFixture()
	dept := depts.add("Finance")

	start := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	period, err := deptSvc.CreatePeriod(context.Background(), dept.ID.String(), CreatePeriodRequest{
		StartDate: start,
		EndDate:   start.AddDate(0, 3, 0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if period.Year != 2027 {
		t.Fatalf("expected year 2027, got %d", period.Year)
	}
	if period.Status != model.PeriodOpen {
		t.Fatalf("new period should be OPEN, got %s", period.Status)
	}
}

func TestCreatePeriod_AllowedAfterClose(t *testing.T) {
	periodSvc, deptSvc, _, depts, _ := newPeriodFixture()
	dept := depts.add("Finance")

	first, err := deptSvc.CreatePeriod(context.Background(), dept.ID.String(), CreatePeriodRequest{
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 3, 0),
	})
	if err != nil {
		t.Fatalf("first period: %v", err)
	}

	if _, err := periodSvc.UpdatePeriodStatus(context.Background(), first.ID.String(), uuid.New().String(), UpdatePeriodStatusRequest{
		Status: model.PeriodClosed,
	}); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := deptSvc.CreatePeriod(context.Background(), dept.ID.String(), CreatePeriodRequest{
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 6, 0),
	}); err != nil {
		t.Fatalf("second period after close should be allowed: %v", err)
	}
}

func TestUpdatePeriodStatus_MonotonicTransitions(t *testing.T) {
	periodSvc, _, periods, depts, audit := newPeriodFixture()
	dept := depts.add("Finance")
	period := periods.add(dept.ID, model.PeriodOpen, time.Now().AddDate(0, 3, 0))
	actor := uuid.New().String()

	closed, err := periodSvc.UpdatePeriodStatus(context.Background(), period.ID.String(), actor, UpdatePeriodStatusRequest{
		Status: model.PeriodClosed,
	})
	if err != nil {
		t.Fatalf("OPEN to CLOSED: %v", err)
	}
	if closed.Status != model.PeriodClosed {
		t.Fatalf("expected CLOSED, got %s", closed.Status)
	}

	// Re-opening is not part of the lifecycle.
	if _, err := periodSvc.UpdatePeriodStatus(context.Background(), period.ID.String(), actor, UpdatePeriodStatusRequest{
		Status: model.PeriodOpen,
	}); !errors.Is(err, ErrInvalidPeriodTransition) {
		t.Fatalf("expected ErrInvalidPeriodTransition for CLOSED to OPEN, got %v", err)
	}

	archived, err := periodSvc.UpdatePeriodStatus(context.Background(), period.ID.String(), actor, UpdatePeriodStatusRequest{
		Status: model.PeriodArchived,
	})
	if err != nil {
		t.Fatalf("CLOSED to ARCHIVED: %v", err)
	}
	if archived.Status != model.PeriodArchived {
		t.Fatalf("expected ARCHIVED, got %s", archived.Status)
	}

	// Archived is terminal.
	if _, err := periodSvc.UpdatePeriodStatus(context.Background(), period.ID.String(), actor, UpdatePeriodStatusRequest{
		Status: model.PeriodClosed,
	}); !errors.Is(err, ErrInvalidPeriodTransition) {
		t.Fatalf("expected ErrInvalidPeriodTransition for ARCHIVED to CLOSED, got %v", err)
	}

	if len(audit.entries) != 2 {
		t.Fatalf("expected 2 audit entries for the 2 transitions, got %d", len(audit.entries))
	}
	for _, entry := range audit.entries {
		if entry.Action != model.ActionPeriodTransition {
			t.Fatalf("unexpected audit action %s", entry.Action)
		}
	}
}

func TestUpdatePeriodStatus_UnknownStatus(t *testing.T) {
	periodSvc, _, periods, depts, _ := newPeriodFixture()
	dept := depts.add("Finance")
	period := periods.add(dept.ID, model.PeriodOpen, time.Now().AddDate(0, 3, 0))

	_, err := periodSvc.UpdatePeriodStatus(context.Background(), period.ID.String(), uuid.New().String(), UpdatePeriodStatusRequest{
		Status: "PAUSED",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCurrentPeriod_FallbackChain(t *testing.T) {
	_, deptSvc, periods, depts, _ := newPeriodFixture()
	dept := depts.add("Finance")

	// No periods at all.
	if _, err := deptSvc.CurrentPeriod(context.Background(), dept.ID.String()); !errors.Is(err, ErrNoPeriodConfigured) {
		t.Fatalf("expected ErrNoPeriodConfigured, got %v", err)
	}

	// Only closed periods: the latest by end date wins.
	older := periods.add(dept.ID, model.PeriodClosed, time.Now().AddDate(0, -6, 0))
	newer := periods.add(dept.ID, model.PeriodClosed, time.Now().AddDate(0, -1, 0))
	_ = older

	current, err := deptSvc.CurrentPeriod(context.Background(), dept.ID.String())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != newer.ID {
		t.Fatalf("expected the most recent closed period")
	}

	// An open period takes priority over everything.
	open := periods.add(dept.ID, model.PeriodOpen, time.Now().AddDate(0, -3, 0))
	current, err = deptSvc.CurrentPeriod(context.Background(), dept.ID.String())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != open.ID {
		t.Fatalf("expected the open period to win")
	}
}
