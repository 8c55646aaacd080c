// Package handlers adapts HTTP requests to business flows and shapes the
// API envelope around their results.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/fixitlab/buyback-api/app/dto"
	businessflow "github.com/fixitlab/buyback-api/business_flow"
	"github.com/fixitlab/buyback-api/utils"
)

const requestTimeout = 30 * time.Second

// createRequestContext derives a bounded context tagged with request metadata
// for the flow layer.
func createRequestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.EndpointKey, c.Path())
	return ctx, cancel
}

func SuccessResponse(c fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   &dto.ErrorDetail{Code: code, Message: message},
	})
}

// BusinessErrorResponse maps a flow error onto an HTTP status.
func BusinessErrorResponse(c fiber.Ctx, err error) error {
	var businessErr *businessflow.BusinessError
	if !errors.As(err, &businessErr) {
		return ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	status := fiber.StatusInternalServerError
	switch {
	case businessflow.IsPricingRecordNotFound(err), businessflow.IsQuoteNotAvailable(err):
		status = fiber.StatusNotFound
	case businessflow.IsInvalidGrade(err):
		status = fiber.StatusBadRequest
	case businessflow.IsAuthError(err):
		status = fiber.StatusUnauthorized
	}
	return ErrorResponse(c, status, businessErr.Code, businessErr.Message)
}

// ValidationErrorResponse renders the first validator failure in a readable form.
func ValidationErrorResponse(c fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR",
			getValidationErrorMessage(validationErrs[0]))
	}
	return ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request")
}

func getValidationErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}
