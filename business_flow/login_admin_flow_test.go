package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/services"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

type fakeAdminRepo struct {
	repository.AdminRepository

	admin   *models.Admin
	updated bool
}

func (r *fakeAdminRepo) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if r.admin != nil && r.admin.Username == username {
		return r.admin, nil
	}
	return nil, nil
}

func (r *fakeAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	r.updated = true
	return nil
}

func testAdmin(t *testing.T, password string, active bool) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Admin{
		ID:           1,
		Username:     "owner",
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(active),
	}
}

func newLoginFlow(repo *fakeAdminRepo) *LoginAdminFlow {
	tokens := services.NewJWTTokenService("0123456789abcdef0123456789abcdef", "buyback-api")
	return NewLoginAdminFlow(repo, tokens)
}

func TestLogin_Succeeds(t *testing.T) {
	repo := &fakeAdminRepo{admin: testAdmin(t, "correct-horse", true)}

	resp, err := newLoginFlow(repo).Execute(context.Background(), &dto.LoginAdminRequest{
		Username: "owner",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.True(t, repo.updated)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeAdminRepo{admin: testAdmin(t, "correct-horse", true)}

	_, err := newLoginFlow(repo).Execute(context.Background(), &dto.LoginAdminRequest{
		Username: "owner",
		Password: "battery-staple",
	})
	assert.True(t, IsAuthError(err))
}

func TestLogin_UnknownUsernameSameCode(t *testing.T) {
	repo := &fakeAdminRepo{}

	_, err := newLoginFlow(repo).Execute(context.Background(), &dto.LoginAdminRequest{
		Username: "nobody",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	var businessErr *BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "INVALID_CREDENTIALS", businessErr.Code)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := &fakeAdminRepo{admin: testAdmin(t, "correct-horse", false)}

	_, err := newLoginFlow(repo).Execute(context.Background(), &dto.LoginAdminRequest{
		Username: "owner",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrAccountInactive)
}
