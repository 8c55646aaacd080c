package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/middleware"
	businessflow "github.com/fixitlab/buyback-api/business_flow"
	"github.com/fixitlab/buyback-api/models"
)

// PricingAdminHandler serves the admin price list endpoints.
type PricingAdminHandler struct {
	syncFlow  *businessflow.PricingSyncFlow
	adminFlow *businessflow.PricingAdminFlow
	validator *validator.Validate
}

func NewPricingAdminHandler(syncFlow *businessflow.PricingSyncFlow, adminFlow *businessflow.PricingAdminFlow) *PricingAdminHandler {
	return &PricingAdminHandler{
		syncFlow:  syncFlow,
		adminFlow: adminFlow,
		validator: validator.New(),
	}
}

// TriggerSync runs a pricing sheet sync and returns its summary. The summary
// is returned for failed runs too, with HTTP 200, because the run itself
// completed and its outcome is the payload.
func (h *PricingAdminHandler) TriggerSync(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c)
	defer cancel()

	result := h.syncFlow.Execute(ctx)
	message := "pricing sync completed"
	status := models.SyncStatusSuccess
	if !result.Success {
		message = "pricing sync failed"
		status = models.SyncStatusFailed
	}
	middleware.SyncRunsTotal.WithLabelValues(models.SyncSourcePricingSheet, status).Inc()
	return SuccessResponse(c, fiber.StatusOK, message, result)
}

func (h *PricingAdminHandler) ListRecords(c fiber.Ctx) error {
	var req dto.ListPricingRecordsRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid query parameters")
	}
	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	page, err := h.adminFlow.ListRecords(ctx, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "pricing records retrieved", page)
}

func (h *PricingAdminHandler) GetRecord(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid record id")
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	item, err := h.adminFlow.GetRecord(ctx, uint(id))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "pricing record retrieved", item)
}

func (h *PricingAdminHandler) UpdateRecord(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid record id")
	}

	var req dto.UpdatePricingRecordRequest
	if err := c.Bind().Body(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	item, err := h.adminFlow.UpdateRecord(ctx, uint(id), &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "pricing record updated", item)
}

// ExportRecords streams the full price list as an XLSX download.
func (h *PricingAdminHandler) ExportRecords(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c)
	defer cancel()

	buf, err := h.adminFlow.ExportRecords(ctx)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	filename := fmt.Sprintf("price-list-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}

func (h *PricingAdminHandler) ListSyncLogs(c fiber.Ctx) error {
	var req dto.ListSyncLogsRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid query parameters")
	}
	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	page, err := h.adminFlow.ListSyncLogs(ctx, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "sync logs retrieved", page)
}
