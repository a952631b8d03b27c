// handlers/activity_routes.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/middleware"
	"github.com/BenjaminRolf85/SACADEMY-sub000/models"
	"github.com/BenjaminRolf85/SACADEMY-sub000/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupActivityRoutes(app *fiber.App, activityService *services.ActivityService) {
	// 🔐 Secured routes — require user context from the gateway
	securedGroup := app.Group("/s", middleware.UserContextMiddleware())

	securedGroup.Post("/activities", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Type    models.ActivityType `json:"type"`
			Payload string              `json:"payload"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		event, err := activityService.SubmitActivity(userID, req.Type, req.Payload)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownActivityType):
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error": "unknown activity type",
					"cause": err.Error(),
				})
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "user not found",
					"cause": err.Error(),
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "submission failed",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	securedGroup.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var user models.AcademyUser
		if err := activityService.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "DB error fetching user",
				"cause": err.Error(),
			})
		}

		weekly, err := activityService.WeeklyProgress(userID, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to evaluate weekly progress",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"id":               user.ID,
			"points":           user.Points,
			"level":            user.Level,
			"next_level_at":    user.Level * services.PointsPerLevel,
			"weekly_points":    weekly.WeeklyPoints,
			"weekly_max":       models.MaxWeeklyPoints,
			"completion_rate":  weekly.CompletionRate,
			"last_level_up_at": user.LastLevelUpAt,
		})
	})

	securedGroup.Get("/user/progress/weekly", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		weekly, err := activityService.WeeklyProgress(userID, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to evaluate weekly progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(weekly)
	})

	securedGroup.Get("/user/activities", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		days, _ := strconv.Atoi(c.Query("days", "7"))
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))

		events, total, err := activityService.RecentEvents(userID, days, page, size)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"activities": events,
			"total":      total,
			"page":       page,
			"size":       size,
		})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Post("/users/:id/recompute", func(c *fiber.Ctx) error {
		targetID := c.Params("id")

		prog, err := activityService.RecomputeUser(targetID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "recompute failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message":      "recomputed",
			"user_id":      targetID,
			"total_points": prog.TotalPoints,
			"level":        prog.Level,
		})
	})
}
