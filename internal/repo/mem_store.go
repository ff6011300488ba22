package repo

import (
	"context"
	"sync"
	"time"

	"workbridge/internal/domain"
)

// MemStore is the in-memory implementation of domain.Storage. It keeps the
// same contract as GormStore (counter ids, (nil, nil) lookups) and backs the
// "memory" storage driver and the test suite.
type MemStore struct {
	mu sync.Mutex

	users            map[uint]domain.User
	workerProfiles   map[uint]domain.WorkerProfile
	employerProfiles map[uint]domain.EmployerProfile
	jobs             map[uint]domain.Job
	applications     map[uint]domain.Application
	notifications    map[uint]domain.Notification

	userID         uint
	profileID      uint
	jobID          uint
	applicationID  uint
	notificationID uint
}

var _ domain.Storage = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		users:            map[uint]domain.User{},
		workerProfiles:   map[uint]domain.WorkerProfile{},
		employerProfiles: map[uint]domain.EmployerProfile{},
		jobs:             map[uint]domain.Job{},
		applications:     map[uint]domain.Application{},
		notifications:    map[uint]domain.Notification{},
	}
}

func (s *MemStore) GetUser(_ context.Context, id uint) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	s.userID++
	u.ID = s.userID
	if u.Role == "" {
		u.Role = domain.RoleWorker
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemStore) ListUsers(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.User, 0, len(s.users))
	for id := uint(1); id <= s.userID; id++ {
		if u, ok := s.users[id]; ok {
			all = append(all, u)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *MemStore) CreateWorkerProfile(_ context.Context, p *domain.WorkerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileID++
	p.ID = s.profileID
	s.workerProfiles[p.ID] = *p
	return nil
}

func (s *MemStore) GetWorkerProfile(_ context.Context, userID uint) (*domain.WorkerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.workerProfiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateEmployerProfile(_ context.Context, p *domain.EmployerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileID++
	p.ID = s.profileID
	s.employerProfiles[p.ID] = *p
	return nil
}

func (s *MemStore) GetEmployerProfile(_ context.Context, userID uint) (*domain.EmployerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.employerProfiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateJob(_ context.Context, j *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobID++
	j.ID = s.jobID
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	s.jobs[j.ID] = *j
	return nil
}

func (s *MemStore) GetJob(_ context.Context, id uint) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		return &j, nil
	}
	return nil, nil
}

func (s *MemStore) ListJobs(_ context.Context) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]domain.Job, 0, len(s.jobs))
	for id := s.jobID; id >= 1; id-- {
		if j, ok := s.jobs[id]; ok {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (s *MemStore) ListJobsByEmployer(_ context.Context, employerID uint) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []domain.Job
	for id := s.jobID; id >= 1; id-- {
		if j, ok := s.jobs[id]; ok && j.EmployerID == employerID {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (s *MemStore) CreateApplication(_ context.Context, a *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicationID++
	a.ID = s.applicationID
	if a.Status == "" {
		a.Status = domain.StatusPending
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now()
	}
	s.applications[a.ID] = *a
	return nil
}

func (s *MemStore) GetApplication(_ context.Context, id uint) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.applications[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *MemStore) UpdateApplication(_ context.Context, id uint, upd domain.ApplicationUpdate) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.EmployerNotes != nil {
		a.EmployerNotes = upd.EmployerNotes
	}
	if upd.RequestedDocuments != nil {
		a.RequestedDocuments = upd.RequestedDocuments
	}
	if upd.Resume != nil {
		a.Resume = upd.Resume
	}
	if upd.CoverLetter != nil {
		a.CoverLetter = upd.CoverLetter
	}
	s.applications[id] = a
	return &a, nil
}

func (s *MemStore) ListApplicationsByWorker(_ context.Context, workerID uint) ([]domain.ApplicationWithJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ApplicationWithJob{}
	for id := s.applicationID; id >= 1; id-- {
		a, ok := s.applications[id]
		if !ok || a.WorkerID != workerID {
			continue
		}
		out = append(out, s.withJob(a))
	}
	return out, nil
}

func (s *MemStore) ListApplicationsByEmployer(_ context.Context, employerID uint) ([]domain.ApplicationWithJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ApplicationWithJob{}
	for id := s.applicationID; id >= 1; id-- {
		a, ok := s.applications[id]
		if !ok {
			continue
		}
		if j, ok := s.jobs[a.JobID]; ok && j.EmployerID == employerID {
			out = append(out, s.withJob(a))
		}
	}
	return out, nil
}

// withJob expects s.mu held.
func (s *MemStore) withJob(a domain.Application) domain.ApplicationWithJob {
	awj := domain.ApplicationWithJob{Application: a}
	if j, ok := s.jobs[a.JobID]; ok {
		awj.Job = &j
	}
	return awj
}

func (s *MemStore) CreateNotification(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationID++
	n.ID = s.notificationID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notifications[n.ID] = *n
	return nil
}

func (s *MemStore) ListNotificationsByUser(_ context.Context, userID uint) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Notification{}
	// Ids are monotonic, so descending id order is newest-first even when
	// CreatedAt timestamps collide within a test run.
	for id := s.notificationID; id >= 1; id-- {
		if n, ok := s.notifications[id]; ok && n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *MemStore) MarkNotificationRead(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.notifications[id]; ok {
		n.IsRead = true
		s.notifications[id] = n
	}
	return nil
}
