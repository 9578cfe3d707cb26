package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register creates an account that an admin must approve before it can log in.
// The very first account becomes an approved admin so a fresh install is
// usable without manual database edits.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleUser,
		IsActive:     true,
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		account.Role = RoleAdmin
		account.IsApproved = true
	}

	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, ErrUserDisabled
	}
	if !account.IsApproved {
		return nil, ErrNotApproved
	}

	now := s.now()
	if err := s.repo.SetLastLogin(ctx, account.ID, now); err != nil {
		return nil, err
	}
	account.LastLoginAt = &now

	return account, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Approve(ctx context.Context, id uint) (*User, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetApproved(ctx, id, true); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}
