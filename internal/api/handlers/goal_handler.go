package handlers

import (
	"errors"

	"finwise/internal/dto"
	"finwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.goalService.CreateGoal(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to create goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	resp, err := h.goalService.ListGoals(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list goals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching goals",
		})
	}

	return c.JSON(resp)
}

func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}
	goalID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	var req dto.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.goalService.UpdateGoal(c.Context(), userID, goalID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		case errors.Is(err, service.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to update goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating goal",
		})
	}

	return c.JSON(resp)
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}
	goalID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	if err := h.goalService.DeleteGoal(c.Context(), userID, goalID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}
		h.logger.Error("Failed to delete goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error deleting goal",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Goal deleted successfully",
	})
}
