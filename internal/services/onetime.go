package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"seminarbooking/internal/domain"
)

const oneTimeUsernamePrefix = "onetime-"

// oneTimeTokenExpiry bounds how long a guest session stays usable. Long
// enough to fill in a registration form, short enough not to linger.
const oneTimeTokenExpiry = 2 * time.Hour

type oneTimeAccountService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenIssuer
	now      domain.Clock
}

// NewOneTimeAccountService creates the guest-account side channel: visitors
// without a full account get a generated user plus a short-lived session
// token to register with.
func NewOneTimeAccountService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	now domain.Clock,
) domain.OneTimeAccountService {
	if now == nil {
		now = time.Now
	}
	return &oneTimeAccountService{userRepo: userRepo, hasher: hasher, tokens: tokens, now: now}
}

func (s *oneTimeAccountService) CreateOneTimeAccount(ctx context.Context, email string) (*domain.User, string, error) {
	suffix := make([]byte, 16)
	if _, err := rand.Read(suffix); err != nil {
		return nil, "", fmt.Errorf("generate username: %w", err)
	}
	password := make([]byte, 24)
	if _, err := rand.Read(password); err != nil {
		return nil, "", fmt.Errorf("generate password: %w", err)
	}
	// The password is never shown to anyone; hashing it just keeps the
	// account row well-formed and unusable for login guessing.
	hash, err := s.hasher.Hash(hex.EncodeToString(password))
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		Username:     oneTimeUsernamePrefix + hex.EncodeToString(suffix),
		Email:        email,
		OneTime:      true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create one-time account: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, true, oneTimeTokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("issue one-time token: %w", err)
	}
	return user, token, nil
}
