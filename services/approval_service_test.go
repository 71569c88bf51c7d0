package services

import (
	"context"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/utils/xerrors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func pendingRequest() models.ApprovalRequest {
	return models.ApprovalRequest{
		ID:            101,
		SubmittedBy:   "Alice (Employee)",
		SubmittedByID: 1,
		ApproverID:    2,
		Details:       "Request for 2 days leave.",
		Status:        models.StatusPending,
	}
}

func TestDecideRequest_WrongUserIsUnauthorized(t *testing.T) {
	req := pendingRequest()

	_, err := DecideRequest(req, 5, models.StatusApproved)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
	assert.Equal(t, models.StatusPending, req.Status)
}

func TestDecideRequest_ApproverApproves(t *testing.T) {
	req := pendingRequest()

	got, err := DecideRequest(req, 2, models.StatusApproved)
	require.NoError(t, err)

	want := pendingRequest()
	want.Status = models.StatusApproved
	assert.Equal(t, want, got)
	assert.Equal(t, models.StatusPending, req.Status, "input is not modified")
}

func TestDecideRequest_Reject(t *testing.T) {
	got, err := DecideRequest(pendingRequest(), 2, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
}

func TestDecideRequest_TerminalIsAlreadyDecided(t *testing.T) {
	req := pendingRequest()
	req.Status = models.StatusApproved

	_, err := DecideRequest(req, 2, models.StatusRejected)
	assert.ErrorIs(t, err, xerrors.ErrAlreadyDecided)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestDecideRequest_UnauthorizedCheckedBeforeTerminal(t *testing.T) {
	req := pendingRequest()
	req.Status = models.StatusRejected

	_, err := DecideRequest(req, 5, models.StatusApproved)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestDecideRequest_InvalidDecision(t *testing.T) {
	for _, d := range []models.ApprovalStatus{models.StatusPending, "", "Maybe"} {
		_, err := DecideRequest(pendingRequest(), 5, d)
		assert.ErrorIs(t, err, xerrors.ErrInvalidDecision, "decision %q", d)
		assert.ErrorIs(t, err, xerrors.ErrValidation)
	}
}

type approvalFixture struct {
	db       *gorm.DB
	svc      *ApprovalService
	repo     repositories.ApprovalRepository
	notes    *NotificationService
	mail     *fakeMailer
	fixedNow time.Time
}

func newApprovalFixture(t *testing.T) approvalFixture {
	db := setupTestDB(t)
	seedPeople(t, db)

	repo := repositories.NewApprovalRepository(db)
	notes := NewNotificationService(repositories.NewNotificationRepository(db), zap.NewNop())
	mail := &fakeMailer{}
	svc := NewApprovalService(repo, repositories.NewUserRepository(db), notes, mail, zap.NewNop())
	svc.defaultApprover = 2
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	req := pendingRequest()
	require.NoError(t, repo.Create(context.Background(), &req))

	return approvalFixture{db: db, svc: svc, repo: repo, notes: notes, mail: mail, fixedNow: fixed}
}

func TestApplyDecision_UnauthorizedLeavesRequestUnchanged(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyDecision(ctx, 101, 5, models.StatusApproved)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)

	stored, err := f.repo.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.DecidedAt)

	count, err := f.notes.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestApplyDecision_ApproverApproves(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	got, err := f.svc.ApplyDecision(ctx, 101, 2, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, "Request for 2 days leave.", got.Details)
	assert.Equal(t, uint(1), got.SubmittedByID)
	require.NotNil(t, got.DecidedAt)
	assert.True(t, got.DecidedAt.Equal(f.fixedNow))

	stored, err := f.repo.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)

	items, err := f.notes.List(ctx, 1, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotifyApprove, items[0].Type)
	assert.Equal(t, "/requests/101", items[0].Link)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, f.mail.sent[0].To)
}

func TestApplyDecision_SecondDecisionIsAlreadyDecided(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyDecision(ctx, 101, 2, models.StatusRejected)
	require.NoError(t, err)

	_, err = f.svc.ApplyDecision(ctx, 101, 2, models.StatusApproved)
	assert.ErrorIs(t, err, xerrors.ErrAlreadyDecided)

	stored, err := f.repo.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status)
}

func TestApplyDecision_NotFoundAndInvalid(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyDecision(ctx, 999, 2, models.StatusApproved)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = f.svc.ApplyDecision(ctx, 999, 2, "Maybe")
	assert.ErrorIs(t, err, xerrors.ErrInvalidDecision, "decision is validated before lookup")
}

func TestApplyDecision_ConcurrentDecisionsOnlyOneWins(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, d := range []models.ApprovalStatus{models.StatusApproved, models.StatusRejected} {
		wg.Add(1)
		go func(i int, d models.ApprovalStatus) {
			defer wg.Done()
			_, errs[i] = f.svc.ApplyDecision(ctx, 101, 2, d)
		}(i, d)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, xerrors.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestSubmit_DefaultApproverAndNotification(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, 1, SubmitApprovalInput{Details: "  Half-day off  "})
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, uint(2), req.ApproverID)
	assert.Equal(t, "Alice (Employee)", req.SubmittedBy)
	assert.Equal(t, "Half-day off", req.Details)
	assert.Equal(t, models.StatusPending, req.Status)

	items, err := f.notes.List(ctx, 2, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotifyTask, items[0].Type)
}

func TestSubmit_Validation(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, 1, SubmitApprovalInput{Details: "   "})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.Submit(ctx, 1, SubmitApprovalInput{Details: "x", ApproverID: 5})
	assert.ErrorIs(t, err, xerrors.ErrValidation, "approver must be a manager")

	_, err = f.svc.Submit(ctx, 1, SubmitApprovalInput{Details: "x", ApproverID: 42})
	assert.ErrorIs(t, err, xerrors.ErrValidation, "approver must exist")

	_, err = f.svc.Submit(ctx, 2, SubmitApprovalInput{Details: "x"})
	assert.ErrorIs(t, err, xerrors.ErrValidation, "cannot approve own request")
}

func TestList_Scopes(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	mine, err := f.svc.List(ctx, 1, ScopeMine, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := f.svc.List(ctx, 2, ScopeAssigned, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	none, err := f.svc.List(ctx, 5, ScopeAll, "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.svc.List(ctx, 1, "everyone", "")
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.List(ctx, 1, ScopeMine, "Done")
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestGet_OnlyInvolvedUsers(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, 1, 101)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, 2, 101)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, 5, 101)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}
