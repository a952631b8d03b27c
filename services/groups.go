package services

import (
	"strconv"
	"strings"

	"github.com/BenjaminRolf85/SACADEMY-sub000/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GroupService struct {
	DB *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{DB: db}
}

// CreateGroup creates a learner group (admin only).
func (s *GroupService) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name      string  `json:"name"`
		TrainerID *string `json:"trainer_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	group := models.Group{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Slug:      slug.Make(req.Name),
		TrainerID: req.TrainerID,
	}
	if err := s.DB.Create(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create group",
			"cause": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// ListGroups returns all groups with their member counts.
func (s *GroupService) ListGroups(c *fiber.Ctx) error {
	var groups []models.Group
	if err := s.DB.Order("name ASC").Find(&groups).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list groups",
			"cause": err.Error(),
		})
	}

	res := make([]fiber.Map, len(groups))
	for i, g := range groups {
		var members int64
		s.DB.Model(&models.AcademyUser{}).Where("group_id = ?", g.ID).Count(&members)
		res[i] = fiber.Map{
			"id":         g.ID,
			"name":       g.Name,
			"slug":       g.Slug,
			"trainer_id": g.TrainerID,
			"members":    members,
		}
	}
	return c.JSON(res)
}

// SearchUsers searches academy users by name or email.
func (s *GroupService) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	var users []models.AcademyUser
	db := s.DB.Model(&models.AcademyUser{}).Limit(limit)
	if query != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}
	if err := db.Order("name ASC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "search failed",
			"cause": err.Error(),
		})
	}

	type UserSummary struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Role    string  `json:"role"`
		GroupID *string `json:"group_id,omitempty"`
		Points  int     `json:"points"`
		Level   int     `json:"level"`
	}
	res := make([]UserSummary, len(users))
	for i, u := range users {
		res[i] = UserSummary{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Role:    u.Role,
			GroupID: u.GroupID,
			Points:  u.Points,
			Level:   u.Level,
		}
	}
	return c.JSON(res)
}

// AssignUserToGroup moves a user into a group (admin only).
func (s *GroupService) AssignUserToGroup(c *fiber.Ctx) error {
	groupID := c.Params("id")
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	var group models.Group
	if err := s.DB.Where("id = ?", groupID).First(&group).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "group not found"})
	}

	result := s.DB.Model(&models.AcademyUser{}).
		Where("id = ?", req.UserID).
		Update("group_id", group.ID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to assign user",
			"cause": result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(fiber.Map{"message": "user assigned", "group_id": group.ID, "user_id": req.UserID})
}
