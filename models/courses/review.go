package courses

import (
	"time"

	"skillforge-backend/models/users"
)

// Review - отзыв о курсе с оценкой 1-5. Один отзыв на пару (user, course).
type Review struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CourseID  uint       `json:"courseId" gorm:"not null;uniqueIndex:idx_review_user_course"`
	Course    Course     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:idx_review_user_course"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Rating    int        `json:"rating" gorm:"not null"`
	Comment   string     `json:"comment" gorm:"type:text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
