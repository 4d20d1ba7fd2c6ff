package controllers

import (
	"time"

	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadCourseTree loads the ordered chapter/lesson tree for a course in the
// shape the progression engine consumes.
func loadCourseTree(db *gorm.DB, courseID uint) ([]progression.Chapter, error) {
	var chapters []courseModels.Chapter
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("position asc").Find(&chapters).Error; err != nil {
		return nil, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("position asc").Find(&lessons).Error; err != nil {
		return nil, err
	}

	byChapter := make(map[uint][]progression.Lesson)
	for _, l := range lessons {
		byChapter[l.ChapterID] = append(byChapter[l.ChapterID], progression.Lesson{
			ID:       l.ID,
			Position: l.Position,
		})
	}

	tree := make([]progression.Chapter, len(chapters))
	for i, ch := range chapters {
		tree[i] = progression.Chapter{
			ID:       ch.ID,
			Position: ch.Position,
			Lessons:  byChapter[ch.ID],
		}
	}
	return tree, nil
}

// completedLessonSet returns the IDs of lessons the user has completed in the
// course, as a set for the progression engine.
func completedLessonSet(db *gorm.DB, userID, courseID uint) (map[uint]bool, error) {
	var rows []courseModels.LessonProgress
	if err := db.Where("user_id = ? AND course_id = ? AND completed = ? AND is_deleted = ?",
		userID, courseID, true, false).Find(&rows).Error; err != nil {
		return nil, err
	}
	completed := make(map[uint]bool, len(rows))
	for _, r := range rows {
		completed[r.LessonID] = true
	}
	return completed, nil
}

// hasCourseAccess reports whether the user is entitled to the course content:
// a completed purchase row exists (free enrollments are zero-amount purchases).
func hasCourseAccess(db *gorm.DB, userID, courseID uint) bool {
	var purchase courseModels.Purchase
	err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.PurchaseCompleted, false).First(&purchase).Error
	return err == nil
}

// markLessonComplete records the per-(user, lesson) completion fact. Calling
// it for an already-completed lesson is a no-op success; the unique index on
// (user_id, lesson_id) absorbs concurrent duplicates.
func markLessonComplete(db *gorm.DB, userID, courseID, lessonID uint) (alreadyComplete bool, err error) {
	var existing courseModels.LessonProgress
	err = db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		First(&existing).Error
	if err == nil {
		if existing.Completed {
			return true, nil
		}
		// Row created earlier by watch-time tracking; flip it to completed.
		now := time.Now()
		existing.Completed = true
		existing.CompletedAt = &now
		return false, db.Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	now := time.Now()
	row := courseModels.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    courseID,
		Completed:   true,
		CompletedAt: &now,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&row).Error
	return false, err
}

// courseSummary aggregates completion stats for the user in a course
func courseSummary(db *gorm.DB, userID, courseID uint) (progression.Summary, error) {
	var totalLessons int64
	if err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons).Error; err != nil {
		return progression.Summary{}, err
	}

	var completedLessons int64
	if err := db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ? AND is_deleted = ?", userID, courseID, true, false).
		Count(&completedLessons).Error; err != nil {
		return progression.Summary{}, err
	}

	var watchTime int64
	if err := db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Select("COALESCE(SUM(watch_time_seconds), 0)").
		Scan(&watchTime).Error; err != nil {
		return progression.Summary{}, err
	}

	return progression.Summarize(int(totalLessons), int(completedLessons), int(watchTime)), nil
}
