package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/domain/enums"
)

// CredentialStore is the document-store contract the auth core consumes.
// Phone uniqueness is enforced by the store (unique index on phone).
type CredentialStore interface {
	FindByPhone(ctx context.Context, phone string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
}

// ReplayStore remembers consumed refresh-token IDs until the token would have
// expired anyway, so a rotated-out refresh token cannot be replayed.
type ReplayStore interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

type Service struct {
	store       CredentialStore
	replay      ReplayStore
	hasher      *Hasher
	jwt         *JWTManager
	defaultRole string
	log         *zap.Logger
	now         func() time.Time
}

func NewService(store CredentialStore, replay ReplayStore, hasher *Hasher, jwtManager *JWTManager, defaultRole string, log *zap.Logger) *Service {
	if strings.TrimSpace(defaultRole) == "" {
		defaultRole = string(enums.RoleUser)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		store:       store,
		replay:      replay,
		hasher:      hasher,
		jwt:         jwtManager,
		defaultRole: defaultRole,
		log:         log,
		now:         time.Now,
	}
}

func (s *Service) Signup(ctx context.Context, name, phone, password string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return ErrInvalidInput
	}

	if _, err := s.store.FindByPhone(ctx, phone); err == nil {
		return ErrPhoneTaken
	} else if !errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("check existing account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.store.Create(ctx, Account{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         s.defaultRole,
	}); err != nil {
		if errors.Is(err, ErrPhoneTaken) {
			return ErrPhoneTaken
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (s *Service) Exists(ctx context.Context, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, ErrInvalidInput
	}

	if _, err := s.store.FindByPhone(ctx, phone); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find account: %w", err)
	}

	return true, nil
}

func (s *Service) Login(ctx context.Context, phone, password string) (AuthResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	account, err := s.store.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return AuthResult{}, ErrAccountNotFound
		}
		return AuthResult{}, fmt.Errorf("find account: %w", err)
	}

	match, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		// A corrupt stored hash is a data-integrity fault, not a wrong
		// password. Logged apart, same client-visible outcome.
		s.log.Error("stored password hash unreadable",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
		return AuthResult{}, ErrBadCredential
	}
	if !match {
		return AuthResult{}, ErrBadCredential
	}

	return s.issueForAccount(account)
}

// Refresh exchanges a valid refresh token for a fresh access+refresh pair.
// Claims are taken from the refresh token as issued; the credential store is
// not re-read, so a role change lands only after the token expires.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return AuthResult{}, ErrRefreshInvalid
	}

	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return AuthResult{}, ErrRefreshInvalid
	}

	if s.replay != nil {
		fresh, err := s.replay.MarkUsed(ctx, claims.JTI, remaining)
		if err != nil {
			return AuthResult{}, fmt.Errorf("mark refresh token used: %w", err)
		}
		if !fresh {
			s.log.Warn("refresh token replay rejected", zap.String("user_id", claims.UserID))
			return AuthResult{}, ErrRefreshInvalid
		}
	}

	access, accessExpires, err := s.jwt.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, _, _, err := s.jwt.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return AuthResult{
		AccessToken:   access,
		RefreshToken:  refresh,
		AccessExpires: accessExpires,
		Role:          claims.Role,
	}, nil
}

func (s *Service) ValidateAccessToken(accessToken string) (AccessClaims, error) {
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

func (s *Service) issueForAccount(account Account) (AuthResult, error) {
	access, accessExpires, err := s.jwt.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, _, _, err := s.jwt.GenerateRefreshToken(account.ID, account.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return AuthResult{
		AccessToken:   access,
		RefreshToken:  refresh,
		AccessExpires: accessExpires,
		Name:          account.Name,
		Phone:         account.Phone,
		Role:          account.Role,
	}, nil
}
