package businessflow

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/services"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

// LoginAdminFlow authenticates admins and issues token pairs.
type LoginAdminFlow struct {
	adminRepo    repository.AdminRepository
	tokenService services.TokenService
}

func NewLoginAdminFlow(adminRepo repository.AdminRepository, tokenService services.TokenService) *LoginAdminFlow {
	return &LoginAdminFlow{adminRepo: adminRepo, tokenService: tokenService}
}

func (f *LoginAdminFlow) Execute(ctx context.Context, req *dto.LoginAdminRequest) (*dto.LoginAdminResponse, error) {
	admin, err := f.adminRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to look up admin", err)
	}
	if admin == nil {
		// Same code as a bad password so probes cannot enumerate usernames.
		return nil, NewBusinessError("INVALID_CREDENTIALS", "invalid username or password", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "account is inactive", ErrAccountInactive)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "invalid username or password", ErrIncorrectPassword)
	}

	access, refresh, expiresIn, err := f.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "failed to issue tokens", err)
	}

	admin.LastLoginAt = utils.UTCNowPtr()
	if err := f.adminRepo.Update(ctx, admin); err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to record login", err)
	}

	return &dto.LoginAdminResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}
