package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/fixitlab/buyback-api/app/dto"
	businessflow "github.com/fixitlab/buyback-api/business_flow"
)

// AuthAdminHandler serves admin authentication.
type AuthAdminHandler struct {
	loginFlow *businessflow.LoginAdminFlow
	validator *validator.Validate
}

func NewAuthAdminHandler(loginFlow *businessflow.LoginAdminFlow) *AuthAdminHandler {
	return &AuthAdminHandler{loginFlow: loginFlow, validator: validator.New()}
}

func (h *AuthAdminHandler) Login(c fiber.Ctx) error {
	var req dto.LoginAdminRequest
	if err := c.Bind().Body(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	tokens, err := h.loginFlow.Execute(ctx, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "login successful", tokens)
}
