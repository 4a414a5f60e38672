package jobs

import (
	"time"

	"gorm.io/gorm"
	"skillforge-backend/models/users"
)

// Статусы отклика на вакансию
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusRejected = "rejected"
	StatusAccepted = "accepted"
)

type Job struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Company     string     `json:"company" gorm:"not null"`
	Location    string     `json:"location"`
	Type        string     `json:"type"` // full-time, part-time, contract, remote
	SalaryMin   int        `json:"salaryMin"`
	SalaryMax   int        `json:"salaryMax"`
	Description string     `json:"description" gorm:"type:text"`
	Tags        string     `json:"tags"` // навыки через запятую, как в исходных данных
	Match       int        `json:"match" gorm:"default:0"` // процент соответствия из сидов
	PostedByID  uint       `json:"postedById"`
	PostedBy    users.User `json:"-" gorm:"foreignKey:PostedByID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Application - отклик на вакансию. Пара (user_id, job_id) уникальна,
// повторный отклик отклоняется на уровне базы.
type Application struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:idx_application_user_job"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	JobID     uint       `json:"jobId" gorm:"not null;uniqueIndex:idx_application_user_job"`
	Job       Job        `json:"job" gorm:"constraint:OnDelete:CASCADE"`
	Status    string     `json:"status" gorm:"not null;default:pending"`
	CreatedAt time.Time  `json:"appliedAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SavedJob - закладка вакансии, переключается повторным запросом.
type SavedJob struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:idx_saved_user_job"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	JobID     uint       `json:"jobId" gorm:"not null;uniqueIndex:idx_saved_user_job"`
	Job       Job        `json:"job" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"savedAt"`
}
