package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/fixitlab/buyback-api/app/dto"
	businessflow "github.com/fixitlab/buyback-api/business_flow"
)

// QuoteHandler serves the public buyback quote endpoint.
type QuoteHandler struct {
	quoteFlow *businessflow.QuoteFlow
	validator *validator.Validate
}

func NewQuoteHandler(quoteFlow *businessflow.QuoteFlow) *QuoteHandler {
	return &QuoteHandler{quoteFlow: quoteFlow, validator: validator.New()}
}

func (h *QuoteHandler) GetQuote(c fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid query parameters")
	}
	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	quote, err := h.quoteFlow.GetQuote(ctx, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.StatusOK, "quote retrieved", quote)
}
