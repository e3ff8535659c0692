package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_EmailLookupIsCaseInsensitive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a user is found by any casing of their email", prop.ForAll(
		func(local string, host string) bool {
			repo := NewUserRepository()
			ctx := context.Background()

			user := &domain.User{
				ID:        uuid.New(),
				Email:     local + "@" + host + ".com",
				CreatedAt: time.Now(),
			}
			if err := repo.Create(ctx, user); err != nil {
				return false
			}

			found, err := repo.FindByEmail(ctx, "  "+local+"@"+host+".COM")
			return err == nil && found.ID == user.ID
		},
		gen.RegexMatch(`[a-z]{3,10}`),
		gen.RegexMatch(`[a-z]{3,8}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_ = repo.Create(ctx, &domain.User{ID: uuid.New(), Email: "john.doe@email.com"})
	err := repo.Create(ctx, &domain.User{ID: uuid.New(), Email: "John.Doe@email.com"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("Expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestPasswordResetRepository_ConsumeOnce(t *testing.T) {
	repo := NewPasswordResetRepository()
	ctx := context.Background()

	_ = repo.Create(ctx, &domain.PasswordReset{Token: "tok", UserID: uuid.New()})

	if _, err := repo.Consume(ctx, "tok"); err != nil {
		t.Fatalf("First consume failed: %v", err)
	}
	if _, err := repo.Consume(ctx, "tok"); !errors.Is(err, ErrPasswordResetNotFound) {
		t.Errorf("Expected ErrPasswordResetNotFound on reuse, got %v", err)
	}
}

func TestRefreshTokenRepository_RevokeAllForUser(t *testing.T) {
	repo := NewRefreshTokenRepository()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_ = repo.Create(ctx, &domain.RefreshToken{Token: "a1", UserID: alice})
	_ = repo.Create(ctx, &domain.RefreshToken{Token: "a2", UserID: alice})
	_ = repo.Create(ctx, &domain.RefreshToken{Token: "b1", UserID: bob})

	if err := repo.RevokeAllForUser(ctx, alice); err != nil {
		t.Fatalf("RevokeAllForUser failed: %v", err)
	}

	for _, token := range []string{"a1", "a2"} {
		if _, err := repo.FindByToken(ctx, token); !errors.Is(err, ErrRefreshTokenRevoked) {
			t.Errorf("Expected %s to be revoked, got %v", token, err)
		}
	}
	if _, err := repo.FindByToken(ctx, "b1"); err != nil {
		t.Errorf("Another user's token should stay valid, got %v", err)
	}
}
