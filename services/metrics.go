package services

import (
	"math"

	"gorm.io/gorm"
	"skillforge-backend/models/community"
	"skillforge-backend/models/users"
)

// Все производные метрики считаются на каждый запрос и нигде не сохраняются.
// Числовая политика: округление half-up через math.Round, затем срез в [0, 100].

// Запасной список пробелов в навыках, когда нет ни одного навыка уровня beginner
var defaultSkillGaps = []string{"System Design", "Cloud Architecture", "CI/CD Pipelines"}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ATSScore считает оценку резюме по числу навыков: 65 + 5 за навык,
// потолок 95. Без навыков - константа 70.
func ATSScore(skillCount int) int {
	if skillCount <= 0 {
		return 70
	}
	score := 65 + skillCount*5
	if score > 95 {
		score = 95
	}
	return clampScore(score)
}

// AverageMatch - среднее статических процентов соответствия по вакансиям.
// Пустой список дает 0, деления на ноль нет.
func AverageMatch(matches []int) int {
	if len(matches) == 0 {
		return 0
	}
	sum := 0
	for _, m := range matches {
		sum += m
	}
	avg := math.Round(float64(sum) / float64(len(matches)))
	return clampScore(int(avg))
}

// SkillGaps возвращает до трех навыков уровня beginner как пробелы.
// Если таких нет, возвращается фиксированный список.
func SkillGaps(skills []users.UserSkill) []string {
	var gaps []string
	for _, s := range skills {
		if s.Level == users.LevelBeginner {
			gaps = append(gaps, s.Skill.Name)
			if len(gaps) == 3 {
				return gaps
			}
		}
	}
	if len(gaps) == 0 {
		return defaultSkillGaps
	}
	return gaps
}

// EngagementCounts - счетчики вовлеченности одного поста
type EngagementCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

type postCount struct {
	PostID uint
	Total  int64
}

// PostEngagement считает лайки, комментарии и репосты для набора постов
// одним сгруппированным запросом на таблицу.
func PostEngagement(db *gorm.DB, postIDs []uint) (map[uint]EngagementCounts, error) {
	result := make(map[uint]EngagementCounts, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var likeCounts []postCount
	if err := db.Model(&community.Like{}).
		Select("post_id, COUNT(DISTINCT user_id) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeCounts).Error; err != nil {
		return nil, err
	}
	for _, c := range likeCounts {
		entry := result[c.PostID]
		entry.Likes = c.Total
		result[c.PostID] = entry
	}

	var commentCounts []postCount
	if err := db.Model(&community.Comment{}).
		Select("post_id, COUNT(id) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentCounts).Error; err != nil {
		return nil, err
	}
	for _, c := range commentCounts {
		entry := result[c.PostID]
		entry.Comments = c.Total
		result[c.PostID] = entry
	}

	var shareCounts []postCount
	if err := db.Model(&community.Share{}).
		Select("post_id, COUNT(id) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&shareCounts).Error; err != nil {
		return nil, err
	}
	for _, c := range shareCounts {
		entry := result[c.PostID]
		entry.Shares = c.Total
		result[c.PostID] = entry
	}

	return result, nil
}

// InstructorStats - сводка преподавателя по всем его курсам
type InstructorStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalStudents int64   `json:"totalStudents"`
	TotalReviews  int64   `json:"totalReviews"`
}

// ComputeInstructorStats агрегирует отзывы и записи по курсам преподавателя.
// Без курсов или отзывов возвращаются нули.
func ComputeInstructorStats(db *gorm.DB, instructorID uint) (InstructorStats, error) {
	var stats InstructorStats

	row := struct {
		Avg   float64
		Total int64
	}{}
	err := db.Table("reviews").
		Select("COALESCE(AVG(reviews.rating), 0) AS avg, COUNT(reviews.id) AS total").
		Joins("JOIN courses ON courses.id = reviews.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", instructorID).
		Scan(&row).Error
	if err != nil {
		return stats, err
	}
	// средний рейтинг с одним знаком после запятой, half-up
	stats.AverageRating = math.Round(row.Avg*10) / 10
	stats.TotalReviews = row.Total

	err = db.Table("enrollments").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", instructorID).
		Distinct("enrollments.user_id").
		Count(&stats.TotalStudents).Error
	if err != nil {
		return stats, err
	}

	return stats, nil
}
