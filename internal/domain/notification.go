package domain

import "time"

// Notification types, one per lifecycle event that fans out.
const (
	NotifJobApplication       = "job_application"
	NotifApplicationSubmitted = "application_submitted"
	NotifApplicationUpdate    = "application_update"
	NotifApplicationDetails   = "application_details_update"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"size:48;not null" json:"type"`
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	RelatedID *uint     `json:"relatedId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }
