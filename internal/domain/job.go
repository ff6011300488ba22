package domain

import "time"

type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployerID  uint      `gorm:"index;not null" json:"employerId"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"size:191;not null" json:"location"`
	Salary      string    `gorm:"size:64;not null" json:"salary"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Job) TableName() string { return "jobs" }

// Application statuses. The stored status is whatever the employer sends;
// only these two trigger a status notification.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type Application struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	JobID              uint      `gorm:"index;not null" json:"jobId"`
	WorkerID           uint      `gorm:"index;not null" json:"workerId"`
	Status             string    `gorm:"size:16;not null;default:pending" json:"status"`
	AppliedAt          time.Time `gorm:"autoCreateTime" json:"appliedAt"`
	Resume             *string   `gorm:"type:text" json:"resume"`
	CoverLetter        *string   `gorm:"type:text" json:"coverLetter"`
	EmployerNotes      *string   `gorm:"type:text" json:"employerNotes"`
	RequestedDocuments *string   `gorm:"type:text" json:"requestedDocuments"`
}

func (Application) TableName() string { return "applications" }

// ApplicationUpdate is a partial update; nil fields are left untouched.
// The employer side touches Status/EmployerNotes/RequestedDocuments, the
// worker side Resume/CoverLetter.
type ApplicationUpdate struct {
	Status             *string
	EmployerNotes      *string
	RequestedDocuments *string
	Resume             *string
	CoverLetter        *string
}

// ApplicationWithJob is the read-side shape both dashboards consume.
type ApplicationWithJob struct {
	Application
	Job *Job `json:"job"`
}
