package community

import (
	"time"

	"gorm.io/gorm"
	"skillforge-backend/models/users"
)

type Post struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	AuthorID  uint       `json:"authorId" gorm:"not null;index"`
	Author    users.User `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	Title     string     `json:"title" gorm:"not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	Category  string     `json:"category" gorm:"index"`
	Tags      []Tag      `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	Comments  []Comment  `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes     []Like     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Shares    []Share    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PostID    uint       `json:"postId" gorm:"not null;index"`
	AuthorID  uint       `json:"authorId" gorm:"not null"`
	Author    users.User `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Like - лайк поста. Пара (post_id, user_id) уникальна,
// переключение не создает дубликатов.
type Like struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PostID    uint       `json:"postId" gorm:"not null;uniqueIndex:idx_like_post_user"`
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:idx_like_post_user"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Share struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PostID    uint       `json:"postId" gorm:"not null;index"`
	UserID    uint       `json:"userId" gorm:"not null"`
	User      users.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`
}
