package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func AdminCreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*courseValidator.ChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	position := reqData.Position
	if position == 0 {
		// Append to the end by default
		var maxPos int64
		database.Database.Db.Model(&courseModels.Chapter{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
		position = int(maxPos) + 1
	}

	chapter := courseModels.Chapter{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    position,
	}

	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

func AdminUpdateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		chapterID, courseID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*courseValidator.ChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter.Title = reqData.Title
	chapter.Description = reqData.Description
	if reqData.Position > 0 {
		chapter.Position = reqData.Position
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

func AdminDeleteChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	db := database.Database.Db

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		chapterID, courseID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var lessonCount int64
	db.Model(&courseModels.Lesson{}).Where("chapter_id = ? AND is_deleted = ?", chapterID, false).Count(&lessonCount)
	if lessonCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Delete or move the chapter's lessons first!", nil)
	}

	chapter.IsDeleted = true
	if err := db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}

// AdminReorderChapters rewrites chapter positions from the given ID order
func AdminReorderChapters(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var count int64
	db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND id IN ? AND is_deleted = ?", courseID, reqData.OrderedIDs, false).
		Count(&count)
	if int(count) != len(reqData.OrderedIDs) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ordered IDs do not match the course's chapters!", nil)
	}

	tx := db.Begin()
	for i, id := range reqData.OrderedIDs {
		if err := tx.Model(&courseModels.Chapter{}).Where("id = ?", id).
			Update("position", i+1).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder chapters!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters reordered successfully!", nil)
}
