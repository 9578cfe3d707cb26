package sponsors

import (
	"context"
	"strings"

	"sponsorship-app-go/internal/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	FullName string
	Contact  *string
	Email    *string
	Phone    *string
	ProxyID  *uint
}

type UpdateInput struct {
	FullName   *string
	Contact    *string
	Email      *string
	Phone      *string
	ProxyID    *uint
	ClearProxy bool
}

func (s *Service) List(ctx context.Context, filter ListFilter, page, limit int) ([]Sponsor, pagination.Pagination, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}

	window := pagination.New(page, limit, total)
	items, err := s.repo.List(ctx, filter, window.Limit, window.Offset())
	if err != nil {
		return nil, pagination.Pagination{}, err
	}

	return items, window, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Sponsor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Sponsor, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	if input.Email != nil && !validEmail(*input.Email) {
		return nil, ErrInvalidEmail
	}
	if input.ProxyID != nil {
		exists, err := s.repo.ProxyExists(ctx, *input.ProxyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrProxyNotFound
		}
	}

	sponsor := Sponsor{
		FullName: fullName,
		Contact:  input.Contact,
		Email:    input.Email,
		Phone:    input.Phone,
		ProxyID:  input.ProxyID,
	}

	if err := s.repo.Create(ctx, &sponsor); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, sponsor.ID)
}

func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*Sponsor, error) {
	sponsor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, ErrFullNameRequired
		}
		sponsor.FullName = fullName
	}
	if input.Contact != nil {
		sponsor.Contact = input.Contact
	}
	if input.Email != nil {
		if !validEmail(*input.Email) {
			return nil, ErrInvalidEmail
		}
		sponsor.Email = input.Email
	}
	if input.Phone != nil {
		sponsor.Phone = input.Phone
	}
	if input.ClearProxy {
		sponsor.ProxyID = nil
		sponsor.Proxy = nil
	} else if input.ProxyID != nil {
		exists, err := s.repo.ProxyExists(ctx, *input.ProxyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrProxyNotFound
		}
		sponsor.ProxyID = input.ProxyID
	}

	if err := s.repo.Update(ctx, sponsor); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete refuses to remove a sponsor that still supports children; their
// sponsorships must be ended first.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.CountActiveSponsorships(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrHasActiveSponsorships
	}

	return s.repo.Delete(ctx, id)
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
