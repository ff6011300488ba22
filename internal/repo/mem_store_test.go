package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge/internal/domain"
)

func strptr(s string) *string { return &s }

func TestMemStore_CreateUserAssignsIDsAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	u1 := domain.User{Username: "amina", Email: "amina@example.com", Role: domain.RoleWorker}
	require.NoError(t, s.CreateUser(ctx, &u1))
	assert.Equal(t, uint(1), u1.ID)

	dup := domain.User{Username: "amina", Email: "other@example.com"}
	assert.ErrorIs(t, s.CreateUser(ctx, &dup), domain.ErrDuplicate)

	// The failed create must not leave a row behind.
	_, total, err := s.ListUsers(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMemStore_LookupsReturnNilNilWhenAbsent(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	u, err := s.GetUser(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, u)

	j, err := s.GetJob(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, j)

	a, err := s.GetApplication(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, a)

	p, err := s.GetWorkerProfile(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMemStore_UpdateApplicationPartial(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	app := domain.Application{JobID: 1, WorkerID: 2}
	require.NoError(t, s.CreateApplication(ctx, &app))
	assert.Equal(t, domain.StatusPending, app.Status)

	updated, err := s.UpdateApplication(ctx, app.ID, domain.ApplicationUpdate{
		Status:        strptr(domain.StatusAccepted),
		EmployerNotes: strptr("Bring ID"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	require.NotNil(t, updated.EmployerNotes)
	assert.Equal(t, "Bring ID", *updated.EmployerNotes)
	assert.Nil(t, updated.Resume, "untouched fields stay nil")

	missing, err := s.UpdateApplication(ctx, 999, domain.ApplicationUpdate{Status: strptr("accepted")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemStore_DuplicateApplicationsAllowed(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	a1 := domain.Application{JobID: 1, WorkerID: 2}
	a2 := domain.Application{JobID: 1, WorkerID: 2}
	require.NoError(t, s.CreateApplication(ctx, &a1))
	require.NoError(t, s.CreateApplication(ctx, &a2))
	assert.NotEqual(t, a1.ID, a2.ID)
}

func TestMemStore_ListApplicationsByEmployerJoinsJobs(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	job := domain.Job{EmployerID: 10, Title: "Mason"}
	other := domain.Job{EmployerID: 11, Title: "Welder"}
	require.NoError(t, s.CreateJob(ctx, &job))
	require.NoError(t, s.CreateJob(ctx, &other))

	require.NoError(t, s.CreateApplication(ctx, &domain.Application{JobID: job.ID, WorkerID: 20}))
	require.NoError(t, s.CreateApplication(ctx, &domain.Application{JobID: other.ID, WorkerID: 20}))

	apps, err := s.ListApplicationsByEmployer(ctx, 10)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Job)
	assert.Equal(t, "Mason", apps[0].Job.Title)

	byWorker, err := s.ListApplicationsByWorker(ctx, 20)
	require.NoError(t, err)
	assert.Len(t, byWorker, 2)
}

func TestMemStore_ListJobsByEmployer(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	older := domain.Job{EmployerID: 10, Title: "Mason"}
	newer := domain.Job{EmployerID: 10, Title: "Welder"}
	other := domain.Job{EmployerID: 11, Title: "Painter"}
	require.NoError(t, s.CreateJob(ctx, &older))
	require.NoError(t, s.CreateJob(ctx, &newer))
	require.NoError(t, s.CreateJob(ctx, &other))

	jobs, err := s.ListJobsByEmployer(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Welder", jobs[0].Title, "newest first")
	assert.Equal(t, "Mason", jobs[1].Title)

	none, err := s.ListJobsByEmployer(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemStore_ApplicationListsNewestFirst(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	job := domain.Job{EmployerID: 10, Title: "Mason"}
	require.NoError(t, s.CreateJob(ctx, &job))

	first := domain.Application{JobID: job.ID, WorkerID: 20}
	second := domain.Application{JobID: job.ID, WorkerID: 20}
	require.NoError(t, s.CreateApplication(ctx, &first))
	require.NoError(t, s.CreateApplication(ctx, &second))

	byWorker, err := s.ListApplicationsByWorker(ctx, 20)
	require.NoError(t, err)
	require.Len(t, byWorker, 2)
	assert.Equal(t, second.ID, byWorker[0].ID)
	assert.Equal(t, first.ID, byWorker[1].ID)

	byEmployer, err := s.ListApplicationsByEmployer(ctx, 10)
	require.NoError(t, err)
	require.Len(t, byEmployer, 2)
	assert.Equal(t, second.ID, byEmployer[0].ID)
	assert.Equal(t, first.ID, byEmployer[1].ID)
}

func TestMemStore_NotificationsNewestFirstAndIdempotentRead(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	ctx := context.Background()

	n1 := domain.Notification{UserID: 5, Message: "first", Type: "t"}
	n2 := domain.Notification{UserID: 5, Message: "second", Type: "t"}
	n3 := domain.Notification{UserID: 6, Message: "other user", Type: "t"}
	require.NoError(t, s.CreateNotification(ctx, &n1))
	require.NoError(t, s.CreateNotification(ctx, &n2))
	require.NoError(t, s.CreateNotification(ctx, &n3))

	ns, err := s.ListNotificationsByUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, "second", ns[0].Message)
	assert.Equal(t, "first", ns[1].Message)

	require.NoError(t, s.MarkNotificationRead(ctx, n1.ID))
	require.NoError(t, s.MarkNotificationRead(ctx, n1.ID), "already read is fine")
	require.NoError(t, s.MarkNotificationRead(ctx, 12345), "unknown id is fine")

	ns, err = s.ListNotificationsByUser(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ns[1].IsRead)
	assert.False(t, ns[0].IsRead, "other records unchanged")
}
