package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"OnShift/internal/cache"
	"OnShift/internal/model"
	"OnShift/internal/model/dto"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/pkg/token"
	"OnShift/storage/database"
	"OnShift/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

type AuthService struct{}

// Login verifies the password and issues a token pair. The refresh
// token is pinned in Redis; issuing a new pair revokes the old one.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var worker model.Worker
	err := database.DB().WithContext(ctx).
		Where("email = ?", email).
		First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}

	if bcrypt.CompareHashAndPassword(worker.PasswordHash, []byte(req.Password)) != nil {
		return nil, pkgerrors.InvalidCredentials
	}

	return s.issueTokenPair(ctx, worker.PublicID, string(worker.Role))
}

// RefreshToken rotates the token pair. The presented refresh token
// must match the one pinned in Redis.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPairData, error) {
	workerID, role, err := token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	if !cache.ValidateRefreshTokenExists(ctx, workerID, req.RefreshToken) {
		return nil, pkgerrors.Unauthorized
	}

	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	return s.issueTokenPair(ctx, id, role)
}

func (s *AuthService) issueTokenPair(ctx context.Context, publicID int64, role string) (*dto.TokenPairData, error) {
	workerID := utils.FormatWorkerID(publicID)

	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(workerID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, workerID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPairData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		WorkerID:     workerID,
		Role:         role,
	}, nil
}
