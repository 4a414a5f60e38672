package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillforge-backend/models/community"
	"skillforge-backend/models/courses"
	"skillforge-backend/models/users"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{}, &users.Skill{}, &users.UserSkill{},
		&courses.Course{}, &courses.CourseModule{}, &courses.Lesson{},
		&courses.Enrollment{}, &courses.LessonProgress{}, &courses.Review{},
		&community.Post{}, &community.Comment{}, &community.Like{},
		&community.Share{}, &community.Tag{},
	))
	return db
}

func TestATSScore(t *testing.T) {
	tests := []struct {
		name       string
		skillCount int
		want       int
	}{
		{"no skills uses fallback", 0, 70},
		{"one skill", 1, 70},
		{"three skills", 3, 80},
		{"six skills hits ceiling", 6, 95},
		{"many skills stay capped", 50, 95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ATSScore(tt.skillCount))
		})
	}
}

func TestATSScoreBounds(t *testing.T) {
	// при наличии навыков оценка всегда в [65, 95]
	for n := 1; n <= 100; n++ {
		score := ATSScore(n)
		assert.GreaterOrEqual(t, score, 65)
		assert.LessOrEqual(t, score, 95)
	}
}

func TestAverageMatch(t *testing.T) {
	tests := []struct {
		name    string
		matches []int
		want    int
	}{
		{"empty set gives zero", nil, 0},
		{"single value", []int{80}, 80},
		{"exact mean", []int{70, 90}, 80},
		{"rounds half up", []int{70, 75}, 73}, // 72.5 -> 73
		{"rounds down below half", []int{70, 70, 71}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageMatch(tt.matches))
		})
	}
}

func TestSkillGaps(t *testing.T) {
	beginner := func(name string) users.UserSkill {
		return users.UserSkill{Level: users.LevelBeginner, Skill: users.Skill{Name: name}}
	}
	advanced := func(name string) users.UserSkill {
		return users.UserSkill{Level: users.LevelAdvanced, Skill: users.Skill{Name: name}}
	}

	t.Run("returns first three beginner skills", func(t *testing.T) {
		skills := []users.UserSkill{
			beginner("Go"), advanced("SQL"), beginner("Docker"),
			beginner("Kubernetes"), beginner("Terraform"),
		}
		assert.Equal(t, []string{"Go", "Docker", "Kubernetes"}, SkillGaps(skills))
	})

	t.Run("falls back when no beginner skills", func(t *testing.T) {
		skills := []users.UserSkill{advanced("Go"), advanced("SQL")}
		assert.Equal(t, defaultSkillGaps, SkillGaps(skills))
	})

	t.Run("falls back on empty set", func(t *testing.T) {
		assert.Equal(t, defaultSkillGaps, SkillGaps(nil))
	})

	t.Run("fewer than three beginners returned as-is", func(t *testing.T) {
		skills := []users.UserSkill{beginner("Go"), advanced("SQL")}
		assert.Equal(t, []string{"Go"}, SkillGaps(skills))
	})
}

func TestPostEngagement(t *testing.T) {
	db := setupTestDB(t)

	author := users.User{Name: "Author", Email: "author@test.dev", Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	reader := users.User{Name: "Reader", Email: "reader@test.dev", Password: "x"}
	require.NoError(t, db.Create(&reader).Error)

	post := community.Post{AuthorID: author.ID, Title: "Hello", Content: "World"}
	require.NoError(t, db.Create(&post).Error)
	quiet := community.Post{AuthorID: author.ID, Title: "Quiet", Content: "No engagement"}
	require.NoError(t, db.Create(&quiet).Error)

	require.NoError(t, db.Create(&community.Like{PostID: post.ID, UserID: author.ID}).Error)
	require.NoError(t, db.Create(&community.Like{PostID: post.ID, UserID: reader.ID}).Error)
	require.NoError(t, db.Create(&community.Comment{PostID: post.ID, AuthorID: reader.ID, Content: "Nice"}).Error)
	require.NoError(t, db.Create(&community.Share{PostID: post.ID, UserID: reader.ID}).Error)
	require.NoError(t, db.Create(&community.Share{PostID: post.ID, UserID: reader.ID}).Error)

	counts, err := PostEngagement(db, []uint{post.ID, quiet.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts[post.ID].Likes)
	assert.Equal(t, int64(1), counts[post.ID].Comments)
	assert.Equal(t, int64(2), counts[post.ID].Shares)
	assert.Equal(t, EngagementCounts{}, counts[quiet.ID])
}

func TestPostEngagementEmptyInput(t *testing.T) {
	db := setupTestDB(t)
	counts, err := PostEngagement(db, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestComputeInstructorStats(t *testing.T) {
	db := setupTestDB(t)

	instructor := users.User{Name: "Teacher", Email: "teacher@test.dev", Password: "x", Role: users.RoleInstructor}
	require.NoError(t, db.Create(&instructor).Error)
	s1 := users.User{Name: "S1", Email: "s1@test.dev", Password: "x"}
	require.NoError(t, db.Create(&s1).Error)
	s2 := users.User{Name: "S2", Email: "s2@test.dev", Password: "x"}
	require.NoError(t, db.Create(&s2).Error)

	c1 := courses.Course{Title: "Go Basics", InstructorID: instructor.ID}
	require.NoError(t, db.Create(&c1).Error)
	c2 := courses.Course{Title: "Go Advanced", InstructorID: instructor.ID}
	require.NoError(t, db.Create(&c2).Error)

	// один студент на обоих курсах, второй только на первом
	require.NoError(t, db.Create(&courses.Enrollment{UserID: s1.ID, CourseID: c1.ID}).Error)
	require.NoError(t, db.Create(&courses.Enrollment{UserID: s1.ID, CourseID: c2.ID}).Error)
	require.NoError(t, db.Create(&courses.Enrollment{UserID: s2.ID, CourseID: c1.ID}).Error)

	require.NoError(t, db.Create(&courses.Review{CourseID: c1.ID, UserID: s1.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&courses.Review{CourseID: c1.ID, UserID: s2.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&courses.Review{CourseID: c2.ID, UserID: s1.ID, Rating: 4}).Error)

	stats, err := ComputeInstructorStats(db, instructor.ID)
	require.NoError(t, err)

	assert.InDelta(t, 4.3, stats.AverageRating, 0.001) // (5+4+4)/3 = 4.33 -> 4.3
	assert.Equal(t, int64(2), stats.TotalStudents)     // студенты считаются без дублей
	assert.Equal(t, int64(3), stats.TotalReviews)
}

func TestComputeInstructorStatsEmpty(t *testing.T) {
	db := setupTestDB(t)

	instructor := users.User{Name: "New", Email: "new@test.dev", Password: "x", Role: users.RoleInstructor}
	require.NoError(t, db.Create(&instructor).Error)

	stats, err := ComputeInstructorStats(db, instructor.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.TotalStudents)
	assert.Zero(t, stats.TotalReviews)
}
