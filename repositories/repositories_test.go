package repositories

import (
	"context"
	"fiber-admin/migration"
	"fiber-admin/models"
	"fiber-admin/types"
	"fiber-admin/utils/xerrors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// satu koneksi saja, setiap koneksi :memory: adalah database baru
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.Migrate(db))
	return db
}

func TestApprovalRepository_UpdateStatusOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	repo := NewApprovalRepository(setupTestDB(t))

	req := &models.ApprovalRequest{ID: 101, SubmittedByID: 1, ApproverID: 2, Details: "leave"}
	require.NoError(t, repo.Create(ctx, req))

	saved, err := repo.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, saved.Status)

	decidedAt := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, 101, models.StatusApproved, decidedAt))

	err = repo.UpdateStatus(ctx, 101, models.StatusRejected, decidedAt)
	assert.ErrorIs(t, err, xerrors.ErrAlreadyDecided)

	saved, err = repo.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, saved.Status)
	require.NotNil(t, saved.DecidedAt)
}

func TestApprovalRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewApprovalRepository(setupTestDB(t))

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	err = repo.UpdateStatus(ctx, 999, models.StatusApproved, time.Now())
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestApprovalRepository_CreateAssignsSnowflakeID(t *testing.T) {
	ctx := context.Background()
	repo := NewApprovalRepository(setupTestDB(t))

	req := &models.ApprovalRequest{SubmittedByID: 1, ApproverID: 2, Details: "dentist"}
	require.NoError(t, repo.Create(ctx, req))
	assert.NotEqual(t, types.SnowflakeID(0), req.ID)
	assert.Equal(t, models.StatusPending, req.Status)
}

func TestApprovalRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewApprovalRepository(setupTestDB(t))

	for _, r := range []models.ApprovalRequest{
		{ID: 1, SubmittedByID: 1, ApproverID: 2, Status: models.StatusPending},
		{ID: 2, SubmittedByID: 1, ApproverID: 2, Status: models.StatusApproved},
		{ID: 3, SubmittedByID: 3, ApproverID: 2, Status: models.StatusPending},
		{ID: 4, SubmittedByID: 2, ApproverID: 4, Status: models.StatusPending},
	} {
		r := r
		require.NoError(t, repo.Create(ctx, &r))
	}

	mine, err := repo.List(ctx, ApprovalFilter{SubmittedByID: 1})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	assigned, err := repo.List(ctx, ApprovalFilter{ApproverID: 2, Status: models.StatusPending})
	require.NoError(t, err)
	assert.Len(t, assigned, 2)

	involving, err := repo.List(ctx, ApprovalFilter{InvolvingUserID: 2})
	require.NoError(t, err)
	assert.Len(t, involving, 4)
}

func TestApprovalRepository_Summary(t *testing.T) {
	ctx := context.Background()
	repo := NewApprovalRepository(setupTestDB(t))

	for _, r := range []models.ApprovalRequest{
		{ID: 1, SubmittedByID: 1, ApproverID: 2, Status: models.StatusPending},
		{ID: 2, SubmittedByID: 1, ApproverID: 2, Status: models.StatusApproved},
		{ID: 3, SubmittedByID: 3, ApproverID: 2, Status: models.StatusPending},
		{ID: 4, SubmittedByID: 2, ApproverID: 4, Status: models.StatusRejected},
	} {
		r := r
		require.NoError(t, repo.Create(ctx, &r))
	}

	rows, err := repo.Summary(ctx, 2)
	require.NoError(t, err)

	got := map[string]int64{}
	for _, r := range rows {
		got[r.Scope+"/"+string(r.Status)] = r.Total
	}
	assert.Equal(t, map[string]int64{
		"assigned/Pending":   2,
		"assigned/Approved":  1,
		"submitted/Rejected": 1,
	}, got)

	rows, err = repo.Summary(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMenuRepository_ReplaceSystemKeepsOtherSystems(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.Menu{Name: "Other", System: "WMS", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.Menu{Name: "Old", System: "PORTAL", IsActive: true}))

	parent := uint(10)
	err := repo.ReplaceSystem(ctx, "PORTAL", []models.Menu{
		{Model: gorm.Model{ID: 10}, Name: "Dashboard", Sequence: 1, System: "PORTAL", IsActive: true},
		{Model: gorm.Model{ID: 11}, Name: "Users", Sequence: 1, ParentID: &parent, System: "PORTAL", IsActive: true},
		{Model: gorm.Model{ID: 12}, Name: "Hidden", Sequence: 2, System: "PORTAL", IsActive: false},
	})
	require.NoError(t, err)

	portal, err := repo.GetActive(ctx, "PORTAL")
	require.NoError(t, err)
	require.Len(t, portal, 2)
	assert.Equal(t, "Dashboard", portal[0].Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestNotificationRepository_ReadFlow(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(setupTestDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []models.Notification{
		{UserID: 1, Type: models.NotifyTask, Text: "a", Unread: true},
		{UserID: 1, Type: models.NotifyInfo, Text: "b", Unread: true},
		{UserID: 2, Type: models.NotifyInfo, Text: "c", Unread: true},
	}))

	count, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	items, err := repo.ListByUser(ctx, 1, true, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.ErrorIs(t, repo.MarkRead(ctx, 2, items[0].ID), xerrors.ErrNotFound, "cannot read someone else's notification")
	require.NoError(t, repo.MarkRead(ctx, 1, items[0].ID))
	require.NoError(t, repo.MarkRead(ctx, 1, items[0].ID), "marking twice is a no-op")

	n, err := repo.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err = repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserRepository_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	now := time.Now()

	user := &models.User{Username: "alice", Email: "alice@example.com", Role: models.RoleEmployee, IsActive: true}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, repo.CreateSession(ctx, &models.UserSession{
		SessionID: "s-1", UserID: user.ID, IsActive: true, LastActivityAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	_, err = repo.GetActiveSession(ctx, "s-1", now)
	require.NoError(t, err)
	_, err = repo.GetActiveSession(ctx, "s-1", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, xerrors.ErrNotFound, "expired session")

	require.NoError(t, repo.DeactivateSession(ctx, "s-1", now))
	assert.ErrorIs(t, repo.DeactivateSession(ctx, "s-1", now), xerrors.ErrInvalidSession)

	require.NoError(t, repo.Delete(ctx, user.ID, 99))
	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 12345, 99), xerrors.ErrNotFound)
}

func TestSyncSequenceIsNoopOutsidePostgres(t *testing.T) {
	assert.NoError(t, SyncSequence(setupTestDB(t), "users"))
}

func TestWorkflowRepository_ListActiveOnly(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, db.Create(&[]models.Workflow{
		{Name: "Leave Request", Active: true},
		{Name: "Retired Flow", Active: false},
	}).Error)

	repo := NewWorkflowRepository(db)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Leave Request", active[0].Name)
}
