package repository

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrRefreshTokenNotFound  = errors.New("refresh token not found")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrPasswordResetNotFound = errors.New("password reset not found")
)

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

type refreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

// NewRefreshTokenRepository creates an in-process RefreshTokenRepository
func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	refreshToken, ok := r.tokens[token]
	if !ok {
		return nil, ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, ErrRefreshTokenRevoked
	}
	cp := *refreshToken
	return &cp, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	refreshToken, ok := r.tokens[token]
	if !ok {
		return ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

// RevokeAllForUser revokes every refresh token issued to userID
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, refreshToken := range r.tokens {
		if refreshToken.UserID == userID {
			refreshToken.Revoked = true
		}
	}
	return nil
}

// PasswordResetRepository stores pending password reset tokens
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	Consume(ctx context.Context, token string) (*domain.PasswordReset, error)
}

type passwordResetRepository struct {
	mu     sync.Mutex
	resets map[string]*domain.PasswordReset
}

// NewPasswordResetRepository creates an in-process PasswordResetRepository
func NewPasswordResetRepository() PasswordResetRepository {
	return &passwordResetRepository{resets: make(map[string]*domain.PasswordReset)}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *reset
	r.resets[reset.Token] = &cp
	return nil
}

// Consume returns the reset and removes it; a token can be used once
func (r *passwordResetRepository) Consume(ctx context.Context, token string) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reset, ok := r.resets[token]
	if !ok {
		return nil, ErrPasswordResetNotFound
	}
	delete(r.resets, token)
	return reset, nil
}
