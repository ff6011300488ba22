package domain

import (
	"context"
	"errors"
)

// ErrDuplicate reports a unique-constraint violation (username, email).
var ErrDuplicate = errors.New("duplicate record")

// Storage is the persistence contract for the whole marketplace. Lookups for
// absent records return (nil, nil) so handlers decide the wire status.
// Implementations: repo.GormStore (postgres/mysql) and repo.MemStore,
// selected at startup from config.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	ListUsers(ctx context.Context, offset, limit int) ([]User, int64, error)

	// Profiles
	CreateWorkerProfile(ctx context.Context, p *WorkerProfile) error
	GetWorkerProfile(ctx context.Context, userID uint) (*WorkerProfile, error)
	CreateEmployerProfile(ctx context.Context, p *EmployerProfile) error
	GetEmployerProfile(ctx context.Context, userID uint) (*EmployerProfile, error)

	// Jobs
	CreateJob(ctx context.Context, j *Job) error
	GetJob(ctx context.Context, id uint) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	ListJobsByEmployer(ctx context.Context, employerID uint) ([]Job, error)

	// Applications
	CreateApplication(ctx context.Context, a *Application) error
	GetApplication(ctx context.Context, id uint) (*Application, error)
	UpdateApplication(ctx context.Context, id uint, upd ApplicationUpdate) (*Application, error)
	ListApplicationsByWorker(ctx context.Context, workerID uint) ([]ApplicationWithJob, error)
	ListApplicationsByEmployer(ctx context.Context, employerID uint) ([]ApplicationWithJob, error)

	// Notifications
	CreateNotification(ctx context.Context, n *Notification) error
	ListNotificationsByUser(ctx context.Context, userID uint) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id uint) error
}
