package courses

import (
	"time"

	"skillforge-backend/models/users"
)

// Enrollment - запись пользователя на курс. Пара (user_id, course_id) уникальна.
type Enrollment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CourseID  uint       `json:"courseId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Course    Course     `json:"course" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"enrolledAt"`
}

// LessonProgress - прогресс пользователя по уроку.
// Пара (user_id, lesson_id) уникальна, повторное завершение не создает дубликата.
type LessonProgress struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	User        users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	LessonID    uint       `json:"lessonId" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	Lesson      Lesson     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
