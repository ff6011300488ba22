package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"workbridge/internal/domain"
)

// GormStore implements domain.Storage over a relational database.
type GormStore struct{ db *gorm.DB }

var _ domain.Storage = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// AutoMigrate creates/updates the marketplace tables.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&domain.User{},
		&domain.WorkerProfile{},
		&domain.EmployerProfile{},
		&domain.Job{},
		&domain.Application{},
		&domain.Notification{},
	)
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (s *GormStore) CreateUser(ctx context.Context, u *domain.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *GormStore) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	tx := s.db.WithContext(ctx).Model(&domain.User{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := tx.Offset(offset).Limit(limit).Order("id asc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *GormStore) CreateWorkerProfile(ctx context.Context, p *domain.WorkerProfile) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormStore) GetWorkerProfile(ctx context.Context, userID uint) (*domain.WorkerProfile, error) {
	var p domain.WorkerProfile
	err := s.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (s *GormStore) CreateEmployerProfile(ctx context.Context, p *domain.EmployerProfile) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormStore) GetEmployerProfile(ctx context.Context, userID uint) (*domain.EmployerProfile, error) {
	var p domain.EmployerProfile
	err := s.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (s *GormStore) CreateJob(ctx context.Context, j *domain.Job) error {
	return s.db.WithContext(ctx).Create(j).Error
}

func (s *GormStore) GetJob(ctx context.Context, id uint) (*domain.Job, error) {
	var j domain.Job
	err := s.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &j, err
}

func (s *GormStore) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (s *GormStore) ListJobsByEmployer(ctx context.Context, employerID uint) ([]domain.Job, error) {
	var jobs []domain.Job
	err := s.db.WithContext(ctx).Where("employer_id = ?", employerID).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (s *GormStore) CreateApplication(ctx context.Context, a *domain.Application) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *GormStore) GetApplication(ctx context.Context, id uint) (*domain.Application, error) {
	var a domain.Application
	err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

/// UpdateApplication decides existence with a read, not with RowsAffected:
// MySQL reports changed rows rather than matched rows, so a value-identical
// repeat of an update would otherwise look like a missing record.
func (s *GormStore) UpdateApplication(ctx context.Context, id uint, upd domain.ApplicationUpdate) (*domain.Application, error) {
	existing, err := s.GetApplication(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	cols := updateColumns(upd)
	if len(cols) == 0 {
		return existing, nil
	}
	if err := s.db.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return nil, err
	}
	return s.GetApplication(ctx, id)
}

func updateColumns(upd domain.ApplicationUpdate) map[string]any {
	cols := map[string]any{}
	if upd.Status != nil {
		cols["status"] = *upd.Status
	}
	if upd.EmployerNotes != nil {
		cols["employer_notes"] = *upd.EmployerNotes
	}
	if upd.RequestedDocuments != nil {
		cols["requested_documents"] = *upd.RequestedDocuments
	}
	if upd.Resume != nil {
		cols["resume"] = *upd.Resume
	}
	if upd.CoverLetter != nil {
		cols["cover_letter"] = *upd.CoverLetter
	}
	return cols
}

func (s *GormStore) ListApplicationsByWorker(ctx context.Context, workerID uint) ([]domain.ApplicationWithJob, error) {
	var apps []domain.Application
	if err := s.db.WithContext(ctx).Where("worker_id = ?", workerID).Order("applied_at desc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return s.attachJobs(ctx, apps)
}

func (s *GormStore) ListApplicationsByEmployer(ctx context.Context, employerID uint) ([]domain.ApplicationWithJob, error) {
	jobs, err := s.ListJobsByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []domain.ApplicationWithJob{}, nil
	}
	ids := make([]uint, 0, len(jobs))
	byID := make(map[uint]*domain.Job, len(jobs))
	for i := range jobs {
		ids = append(ids, jobs[i].ID)
		byID[jobs[i].ID] = &jobs[i]
	}
	var apps []domain.Application
	if err := s.db.WithContext(ctx).Where("job_id IN ?", ids).Order("applied_at desc").Find(&apps).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ApplicationWithJob, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.ApplicationWithJob{Application: a, Job: byID[a.JobID]})
	}
	return out, nil
}

func (s *GormStore) attachJobs(ctx context.Context, apps []domain.Application) ([]domain.ApplicationWithJob, error) {
	out := make([]domain.ApplicationWithJob, 0, len(apps))
	for _, a := range apps {
		job, err := s.GetJob(ctx, a.JobID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ApplicationWithJob{Application: a, Job: job})
	}
	return out, nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *GormStore) ListNotificationsByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	var ns []domain.Notification
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&ns).Error
	return ns, err
}

// MarkNotificationRead is a no-op for unknown or already-read ids.
func (s *GormStore) MarkNotificationRead(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&domain.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// isDupKey avoids depending on driver-specific error types; both mysql and
// postgres mention the violated constraint in the message.
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
