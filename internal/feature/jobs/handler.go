package jobs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workbridge/internal/domain"
	"workbridge/internal/transport/http/ez"
)

// Sentinel for employer display fields that cannot be resolved. The listing
// never fails on missing profile data.
const unknown = "Unknown"

type Module struct {
	store domain.Storage
	log   *zap.Logger
}

func NewModule(store domain.Storage, log *zap.Logger) *Module {
	return &Module{store: store, log: log}
}

type jobIn struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Salary      string `json:"salary" binding:"required"`
}

// EnrichedJob is a job plus the posting employer's public identity.
type EnrichedJob struct {
	domain.Job
	EmployerName string `json:"employerName"`
	CompanyName  string `json:"companyName"`
	Designation  string `json:"designation"`
	Industry     string `json:"industry"`
}

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.Register(g, ez.Action[struct{}, []EnrichedJob]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]EnrichedJob, error) {
			jobs, err := m.store.ListJobs(c.Request.Context())
			if err != nil {
				return nil, ez.Internal("Failed to list jobs", err)
			}
			out := make([]EnrichedJob, 0, len(jobs))
			for _, j := range jobs {
				out = append(out, m.enrich(c, j))
			}
			return out, nil
		},
	})

	ez.Register(g, ez.Action[jobIn, *domain.Job]{
		Method: http.MethodPost,
		Path:   "/jobs",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *jobIn) (*domain.Job, error) {
			employerID, err := ez.UintQuery(c, "employerId", "Employer ID is required")
			if err != nil {
				return nil, err
			}
			job := domain.Job{
				EmployerID:  employerID,
				Title:       in.Title,
				Description: in.Description,
				Location:    in.Location,
				Salary:      in.Salary,
			}
			if err := m.store.CreateJob(c.Request.Context(), &job); err != nil {
				return nil, ez.Internal("Failed to create job", err)
			}
			m.log.Info("job posted", zap.Uint("job_id", job.ID), zap.Uint("employer_id", employerID))
			return &job, nil
		},
	})
}

// enrich resolves the employer per job; lookups that miss (or fail) fall back
// to sentinels so one bad row cannot break the listing.
func (m *Module) enrich(c *gin.Context, j domain.Job) EnrichedJob {
	ctx := c.Request.Context()
	out := EnrichedJob{
		Job:          j,
		EmployerName: unknown,
		CompanyName:  unknown,
		Designation:  unknown,
		Industry:     unknown,
	}
	if u, err := m.store.GetUser(ctx, j.EmployerID); err == nil && u != nil {
		out.EmployerName = u.DisplayName()
	}
	if p, err := m.store.GetEmployerProfile(ctx, j.EmployerID); err == nil && p != nil {
		out.CompanyName = p.CompanyName
		out.Designation = p.Designation
		out.Industry = p.Industry
	}
	return out
}
