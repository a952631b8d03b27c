// handlers/group_routes.go
package handlers

import (
	"errors"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/middleware"
	"github.com/BenjaminRolf85/SACADEMY-sub000/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGroupRoutes(app *fiber.App, groupService *services.GroupService, leaderboardService *services.LeaderboardService) {
	securedGroup := app.Group("/s", middleware.UserContextMiddleware())

	securedGroup.Get("/groups", groupService.ListGroups)
	securedGroup.Get("/users/search", groupService.SearchUsers)

	securedGroup.Get("/groups/:id/standings", func(c *fiber.Ctx) error {
		entries, err := leaderboardService.GroupStandings(c.Params("id"), time.Now().UTC())
		if err != nil {
			if errors.Is(err, services.ErrGroupNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "group not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute standings",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())
	adminGroup.Post("/groups", groupService.CreateGroup)
	adminGroup.Post("/groups/:id/assign", groupService.AssignUserToGroup)
}
