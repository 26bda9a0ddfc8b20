package handlers

import (
	"errors"

	"finwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService *service.AdminService
	logger       *zap.Logger
}

func NewAdminHandler(adminService *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.adminService.ListUsers(c.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching users",
		})
	}
	return c.JSON(resp)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := h.adminService.DeleteUser(c.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to delete user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error deleting user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	resp, err := h.adminService.ListTransactions(c.Context())
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching transactions",
		})
	}
	return c.JSON(resp)
}

func (h *AdminHandler) DeleteTransaction(c *fiber.Ctx) error {
	txID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	if err := h.adminService.DeleteTransaction(c.Context(), txID); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Error("Failed to delete transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error deleting transaction",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Transaction deleted",
	})
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.adminService.Dashboard(c.Context())
	if err != nil {
		h.logger.Error("Failed to build admin dashboard", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching admin dashboard data",
		})
	}
	return c.JSON(resp)
}
