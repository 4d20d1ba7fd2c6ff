package controllers

import (
	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	db := database.Database.Db

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		chapterID, courseID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	position := reqData.Position
	if position == 0 {
		var maxPos int64
		db.Model(&courseModels.Lesson{}).
			Where("chapter_id = ? AND is_deleted = ?", chapterID, false).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
		position = int(maxPos) + 1
	}

	contentType := reqData.ContentType
	if contentType == "" {
		contentType = "TEXT"
	}

	lesson := courseModels.Lesson{
		ChapterID:       uint(chapterID),
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		ContentType:     contentType,
		TextContent:     reqData.TextContent,
		VideoURL:        reqData.VideoURL,
		DurationSeconds: reqData.DurationSeconds,
		Position:        position,
	}

	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func AdminUpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Description = reqData.Description
	lesson.TextContent = reqData.TextContent
	lesson.VideoURL = reqData.VideoURL
	lesson.DurationSeconds = reqData.DurationSeconds
	if reqData.ContentType != "" {
		lesson.ContentType = reqData.ContentType
	}
	if reqData.Position > 0 {
		lesson.Position = reqData.Position
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func AdminDeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminReorderLessons rewrites lesson positions within a chapter
func AdminReorderLessons(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(int)

	reqData, ok := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var count int64
	db.Model(&courseModels.Lesson{}).
		Where("chapter_id = ? AND id IN ? AND is_deleted = ?", chapterID, reqData.OrderedIDs, false).
		Count(&count)
	if int(count) != len(reqData.OrderedIDs) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ordered IDs do not match the chapter's lessons!", nil)
	}

	tx := db.Begin()
	for i, id := range reqData.OrderedIDs {
		if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", id).
			Update("position", i+1).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}

// AdminAddAttachment stores an uploaded file and attaches it to a lesson
func AdminAddAttachment(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	name := c.FormValue("name")
	if name == "" {
		name = file.Filename
	}

	attachment := courseModels.Attachment{
		LessonID: uint(lessonID),
		Name:     name,
		FileURL:  utils.GetFileURL(savedPath),
	}

	if err := database.Database.Db.Create(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attachment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attachment added successfully!", attachment)
}

func AdminDeleteAttachment(c *fiber.Ctx) error {
	attachmentID, err := c.ParamsInt("attachment_id")
	if err != nil || attachmentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attachment_id!", nil)
	}

	var attachment courseModels.Attachment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", attachmentID, false).First(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attachment not found!", nil)
	}

	attachment.IsDeleted = true
	if err := database.Database.Db.Save(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete attachment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attachment deleted successfully!", nil)
}
