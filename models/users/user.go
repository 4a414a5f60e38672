package users

import (
	"time"

	"gorm.io/gorm"
)

// Роли пользователей. Роль меняется только администратором.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Уровни владения навыком
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	Role      string `json:"role" gorm:"not null;default:student"`
	Headline  string `json:"headline"`
	City      string `json:"city"`
	AvatarURL string `json:"avatarUrl"`
	ResumeURL string `json:"resumeUrl"`
	Provider  string `json:"provider" gorm:"default:local"` // local или google
	Skills    []UserSkill `json:"skills" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Skill struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`
}

// UserSkill привязывает навык к пользователю с уровнем владения.
// Пара (user_id, skill_id) уникальна.
type UserSkill struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"-" gorm:"not null;uniqueIndex:idx_user_skill"`
	SkillID uint   `json:"-" gorm:"not null;uniqueIndex:idx_user_skill"`
	Skill   Skill  `json:"skill" gorm:"constraint:OnDelete:CASCADE"`
	Level   string `json:"level" gorm:"not null;default:beginner"`
}
