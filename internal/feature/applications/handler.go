package applications

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workbridge/internal/domain"
	"workbridge/internal/transport/http/ez"
)

const unknown = "Unknown"

// Module owns the application lifecycle: submission, the two dashboards,
// employer status updates and worker detail updates, each with its
// notification fan-out.
type Module struct {
	store domain.Storage
	log   *zap.Logger
}

func NewModule(store domain.Storage, log *zap.Logger) *Module {
	return &Module{store: store, log: log}
}

type applicationIn struct {
	JobID       uint    `json:"jobId" binding:"required"`
	Resume      *string `json:"resume"`
	CoverLetter *string `json:"coverLetter"`
}

type statusUpdateIn struct {
	Status             *string `json:"status"`
	EmployerNotes      *string `json:"employerNotes"`
	RequestedDocuments *string `json:"requestedDocuments"`
}

type detailsUpdateIn struct {
	Resume      *string `json:"resume"`
	CoverLetter *string `json:"coverLetter"`
}

// ApplicantSnapshot is the profile view an employer sees next to an
// application.
type ApplicantSnapshot struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Skills string `json:"skills"`
}

type EmployerApplication struct {
	domain.ApplicationWithJob
	Applicant ApplicantSnapshot `json:"applicant"`
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.Register(g, ez.Action[applicationIn, *domain.Application]{
		Method: http.MethodPost,
		Path:   "/applications",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: m.submit,
	})

	ez.Register(g, ez.Action[struct{}, []domain.ApplicationWithJob]{
		Method: http.MethodGet,
		Path:   "/applications/worker/:workerId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.ApplicationWithJob, error) {
			workerID, err := ez.UintParam(c, "workerId", "Worker ID is required")
			if err != nil {
				return nil, err
			}
			apps, err := m.store.ListApplicationsByWorker(c.Request.Context(), workerID)
			if err != nil {
				return nil, ez.Internal("Failed to list applications", err)
			}
			return apps, nil
		},
	})

	ez.Register(g, ez.Action[struct{}, []EmployerApplication]{
		Method: http.MethodGet,
		Path:   "/applications/employer/:employerId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]EmployerApplication, error) {
			employerID, err := ez.UintParam(c, "employerId", "Employer ID is required")
			if err != nil {
				return nil, err
			}
			apps, err := m.store.ListApplicationsByEmployer(c.Request.Context(), employerID)
			if err != nil {
				return nil, ez.Internal("Failed to list applications", err)
			}
			out := make([]EmployerApplication, 0, len(apps))
			for _, a := range apps {
				out = append(out, EmployerApplication{
					ApplicationWithJob: a,
					Applicant:          m.applicant(c.Request.Context(), a.WorkerID),
				})
			}
			return out, nil
		},
	})

	ez.Register(g, ez.Action[statusUpdateIn, *domain.Application]{
		Method: http.MethodPatch,
		Path:   "/applications/:id",
		Binder: ez.BindJSON,
		Handler: m.updateStatus,
	})

	ez.Register(g, ez.Action[detailsUpdateIn, *domain.Application]{
		Method: http.MethodPatch,
		Path:   "/applications/:id/details",
		Binder: ez.BindJSON,
		Handler: m.updateDetails,
	})
}

// submit creates the application and fans out one notification to each side.
// The two notification writes are deliberately not atomic with the insert.
func (m *Module) submit(c *gin.Context, in *applicationIn) (*domain.Application, error) {
	workerID, err := ez.UintQuery(c, "workerId", "Worker ID is required")
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()

	app := domain.Application{
		JobID:       in.JobID,
		WorkerID:    workerID,
		Status:      domain.StatusPending,
		Resume:      in.Resume,
		CoverLetter: in.CoverLetter,
	}
	if err := m.store.CreateApplication(ctx, &app); err != nil {
		return nil, ez.Internal("Failed to create application", err)
	}

	job, err := m.store.GetJob(ctx, in.JobID)
	if err != nil || job == nil {
		m.notifySkipped(app.ID, err)
		return &app, nil
	}

	m.notify(ctx, job.EmployerID, SubmittedEmployerMessage(job.Title), domain.NotifJobApplication, app.ID)
	m.notify(ctx, workerID, SubmittedWorkerMessage(job.Title), domain.NotifApplicationSubmitted, app.ID)
	return &app, nil
}

// updateStatus is the employer-side PATCH. Any status string is stored; only
// the composed message decides whether the worker hears about it.
func (m *Module) updateStatus(c *gin.Context, in *statusUpdateIn) (*domain.Application, error) {
	id, err := ez.UintParam(c, "id", "Application ID is required")
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()

	app, err := m.store.UpdateApplication(ctx, id, domain.ApplicationUpdate{
		Status:             in.Status,
		EmployerNotes:      in.EmployerNotes,
		RequestedDocuments: in.RequestedDocuments,
	})
	if err != nil {
		return nil, ez.Internal("Failed to update application", err)
	}
	if app == nil {
		return nil, ez.NotFound("Application not found")
	}

	job, err := m.store.GetJob(ctx, app.JobID)
	if err != nil || job == nil {
		m.notifySkipped(app.ID, err)
		return app, nil
	}

	if msg := StatusChangeMessage(job.Title, in.Status, in.EmployerNotes, in.RequestedDocuments); msg != "" {
		m.notify(ctx, app.WorkerID, msg, domain.NotifApplicationUpdate, app.ID)
	}
	return app, nil
}

// updateDetails is the worker-side PATCH; only the owning worker may touch
// the record, and the employer is always told about the edit.
func (m *Module) updateDetails(c *gin.Context, in *detailsUpdateIn) (*domain.Application, error) {
	id, err := ez.UintParam(c, "id", "Application ID is required")
	if err != nil {
		return nil, err
	}
	workerID, err := ez.UintQuery(c, "workerId", "Worker ID is required")
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()

	app, err := m.store.GetApplication(ctx, id)
	if err != nil {
		return nil, ez.Internal("Failed to look up application", err)
	}
	if app == nil {
		return nil, ez.NotFound("Application not found")
	}
	if app.WorkerID != workerID {
		return nil, ez.Forbidden("Not authorized")
	}

	updated, err := m.store.UpdateApplication(ctx, id, domain.ApplicationUpdate{
		Resume:      in.Resume,
		CoverLetter: in.CoverLetter,
	})
	if err != nil {
		return nil, ez.Internal("Failed to update application", err)
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		return nil, ez.NotFound("Application not found")
	}

	job, err := m.store.GetJob(ctx, app.JobID)
	if err != nil || job == nil {
		m.notifySkipped(app.ID, err)
		return updated, nil
	}

	withDetails := in.CoverLetter != nil && *in.CoverLetter != ""
	m.notify(ctx, job.EmployerID, DetailsUpdateMessage(job.Title, withDetails), domain.NotifApplicationDetails, app.ID)
	return updated, nil
}

// notify stores a notification; failures are logged, never surfaced, since
// the primary write already succeeded.
func (m *Module) notify(ctx context.Context, userID uint, message, typ string, relatedID uint) {
	n := domain.Notification{
		UserID:    userID,
		Message:   message,
		Type:      typ,
		RelatedID: &relatedID,
	}
	if err := m.store.CreateNotification(ctx, &n); err != nil {
		m.log.Error("notification write failed",
			zap.Uint("user_id", userID),
			zap.String("type", typ),
			zap.Error(err),
		)
	}
}

func (m *Module) notifySkipped(applicationID uint, err error) {
	m.log.Warn("notification skipped, job missing",
		zap.Uint("application_id", applicationID),
		zap.Error(err),
	)
}

func (m *Module) applicant(ctx context.Context, workerID uint) ApplicantSnapshot {
	snap := ApplicantSnapshot{ID: workerID, Name: unknown, Phone: unknown, Email: unknown, Skills: unknown}
	if u, err := m.store.GetUser(ctx, workerID); err == nil && u != nil {
		snap.Name = u.DisplayName()
		snap.Phone = u.Phone
		snap.Email = u.Email
	}
	if p, err := m.store.GetWorkerProfile(ctx, workerID); err == nil && p != nil {
		snap.Skills = p.Skills
	}
	return snap
}
