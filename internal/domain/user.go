package domain

// Account roles. Every registered user is exactly one of these.
const (
	RoleWorker   = "worker"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string `gorm:"size:191;not null" json:"-"`
	Role      string `gorm:"size:16;not null;default:worker" json:"role"`
	FirstName string `gorm:"size:64;not null" json:"firstName"`
	LastName  string `gorm:"size:64;not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Phone     string `gorm:"size:32;not null" json:"phone"`
}

func (User) TableName() string { return "users" }

// DisplayName is the label both sides of the marketplace see for a user.
func (u User) DisplayName() string { return u.FirstName + " " + u.LastName }

type WorkerProfile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index;not null" json:"userId"`
	Skills string `gorm:"type:text;not null" json:"skills"`
}

func (WorkerProfile) TableName() string { return "worker_profiles" }

type EmployerProfile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index;not null" json:"userId"`
	CompanyName string `gorm:"size:191;not null" json:"companyName"`
	Designation string `gorm:"size:128;not null" json:"designation"`
	Industry    string `gorm:"size:128;not null" json:"industry"`
}

func (EmployerProfile) TableName() string { return "employer_profiles" }
