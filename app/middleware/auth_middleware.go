// Package middleware holds the request-level concerns shared across routes.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/services"
)

// AdminAuthenticate validates the bearer token and stores the admin id in
// locals for downstream handlers.
func AdminAuthenticate(tokenService services.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "missing bearer token")
		}

		adminID, err := tokenService.ValidateAdminToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if err == services.ErrTokenExpired {
				return unauthorized(c, "token has expired")
			}
			return unauthorized(c, "invalid token")
		}

		c.Locals("admin_id", adminID)
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   &dto.ErrorDetail{Code: "UNAUTHORIZED", Message: message},
	})
}
