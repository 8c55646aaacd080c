package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fixitlab/buyback-api/utils"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenService issues and validates admin JWTs.
type TokenService interface {
	GenerateAdminTokens(adminID uint) (accessToken string, refreshToken string, expiresIn int64, err error)
	ValidateAdminToken(tokenString string) (uint, error)
}

type jwtTokenService struct {
	secret []byte
	issuer string
}

func NewJWTTokenService(secret string, issuer string) TokenService {
	return &jwtTokenService{secret: []byte(secret), issuer: issuer}
}

type adminClaims struct {
	AdminID uint   `json:"admin_id"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

func (s *jwtTokenService) GenerateAdminTokens(adminID uint) (string, string, int64, error) {
	access, err := s.signToken(adminID, "access", utils.AccessTokenTTL)
	if err != nil {
		return "", "", 0, err
	}
	refresh, err := s.signToken(adminID, "refresh", utils.RefreshTokenTTL)
	if err != nil {
		return "", "", 0, err
	}
	return access, refresh, int64(utils.AccessTokenTTL.Seconds()), nil
}

func (s *jwtTokenService) signToken(adminID uint, tokenType string, ttl time.Duration) (string, error) {
	now := utils.UTCNow()
	claims := adminClaims{
		AdminID: adminID,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", adminID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtTokenService) ValidateAdminToken(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &adminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid || claims.Type != "access" {
		return 0, ErrTokenInvalid
	}
	return claims.AdminID, nil
}
