package courses

import (
	"time"

	"gorm.io/gorm"
	"skillforge-backend/models/users"
)

type Course struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	Category     string     `json:"category" gorm:"index"`
	Price        int        `json:"price" gorm:"default:0"`
	InstructorID uint       `json:"instructorId" gorm:"not null"`
	Instructor   users.User `json:"-" gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE"`
	Modules      []CourseModule `json:"modules" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// CourseModule - раздел курса. Позиция уникальна внутри курса.
type CourseModule struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	CourseID  uint     `json:"courseId" gorm:"not null;uniqueIndex:idx_module_position"`
	Title     string   `json:"title" gorm:"size:255;not null"`
	Position  int      `json:"position" gorm:"not null;uniqueIndex:idx_module_position"`
	Lessons   []Lesson `json:"lessons" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Lesson - урок внутри раздела. Позиция уникальна внутри раздела.
type Lesson struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ModuleID  uint   `json:"moduleId" gorm:"not null;uniqueIndex:idx_lesson_position"`
	Title     string `json:"title" gorm:"size:255;not null"`
	Content   string `json:"content" gorm:"type:text"`
	VideoURL  string `json:"videoUrl" gorm:"size:500"`
	Duration  int    `json:"duration"` // длительность урока в минутах
	Position  int    `json:"position" gorm:"not null;uniqueIndex:idx_lesson_position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
