package courseValidator

import (
	"strconv"
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// Pagination is the shared list query shape
type Pagination struct {
	Page  *int `json:"page"`
	Limit *int `json:"limit"`
}

// parseIDParam converts a positive integer route parameter, storing it in
// Locals under key. Returns false after writing the error response.
func parseIDParam(c *fiber.Ctx, param, key string) bool {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, param+" is required in the URL!", nil)
		return false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		return false
	}
	c.Locals(key, id)
	return true
}

func paginationDefaults(reqData *Pagination) {
	defaultPage := 1
	defaultLimit := 10
	if reqData.Page == nil || *reqData.Page < 1 {
		reqData.Page = &defaultPage
	}
	if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
		reqData.Limit = &defaultLimit
	}
}

// CourseList validates the published-course listing query
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(Pagination)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		paginationDefaults(reqData)

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// GetCourseDetail validates the course detail route
func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

// EnrollCourse validates the free-enrollment route
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

// CheckoutCourse validates the paid-checkout route
func CheckoutCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

// CourseProgress validates the progress route
func CourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}
