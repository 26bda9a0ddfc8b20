package handlers

import (
	"errors"

	"finwise/internal/dto"
	"finwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.CreateBudget(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrDuplicateBudget):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Budget already exists for this category and month",
			})
		}
		h.logger.Error("Failed to create budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create budget",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	resp, err := h.budgetService.ListBudgets(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list budgets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get budgets",
		})
	}

	return c.JSON(resp)
}

func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}
	budgetID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Budget not found",
		})
	}

	var req dto.UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.UpdateBudget(c.Context(), userID, budgetID, &req)
	if err != nil {
		return h.budgetError(c, err, "Failed to update budget")
	}

	return c.JSON(resp)
}

func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}
	budgetID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Budget not found",
		})
	}

	if err := h.budgetService.DeleteBudget(c.Context(), userID, budgetID); err != nil {
		return h.budgetError(c, err, "Failed to delete budget")
	}

	return c.JSON(fiber.Map{
		"message": "Budget deleted successfully",
	})
}

// Status reports budgets whose accumulated spend reached the warning
// threshold.
func (h *BudgetHandler) Status(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	warnings, err := h.budgetService.CheckStatus(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to check budget status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check budget status",
		})
	}

	return c.JSON(warnings)
}

// Adjustments recommends new limits from recent spending.
func (h *BudgetHandler) Adjustments(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	resp, err := h.budgetService.SuggestAdjustments(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to suggest budget adjustments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to suggest budget adjustments",
		})
	}

	return c.JSON(resp)
}

func (h *BudgetHandler) budgetError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrBudgetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Budget not found",
		})
	case errors.Is(err, service.ErrBudgetNotOwned):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to modify this budget",
		})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	h.logger.Error(fallback, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
