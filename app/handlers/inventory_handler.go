package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/middleware"
	businessflow "github.com/fixitlab/buyback-api/business_flow"
	"github.com/fixitlab/buyback-api/models"
)

// InventoryHandler serves the admin refresh and public storefront endpoints.
type InventoryHandler struct {
	inventoryFlow *businessflow.InventoryRefreshFlow
	validator     *validator.Validate
}

func NewInventoryHandler(inventoryFlow *businessflow.InventoryRefreshFlow) *InventoryHandler {
	return &InventoryHandler{inventoryFlow: inventoryFlow, validator: validator.New()}
}

func (h *InventoryHandler) RefreshInventory(c fiber.Ctx) error {
	var req dto.InventoryRefreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result := h.inventoryFlow.Execute(ctx, &req)
	message := "inventory refresh completed"
	status := models.SyncStatusSuccess
	if !result.Success {
		message = "inventory refresh failed"
		status = models.SyncStatusFailed
	}
	middleware.SyncRunsTotal.WithLabelValues(models.SyncSourceInventoryScan, status).Inc()
	return SuccessResponse(c, fiber.StatusOK, message, result)
}

func (h *InventoryHandler) ListStorefront(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c)
	defer cancel()

	items, err := h.inventoryFlow.ListStorefront(ctx)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "inventory retrieved", items)
}
