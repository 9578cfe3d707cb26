package proxies

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	FullName    string
	Role        string
	Contact     *string
	Email       *string
	Phone       *string
	Description *string
}

type UpdateInput struct {
	FullName    *string
	Role        *string
	Contact     *string
	Email       *string
	Phone       *string
	Description *string
}

func (s *Service) List(ctx context.Context) ([]Proxy, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*Proxy, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Proxy, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}

	proxy := Proxy{
		FullName:    fullName,
		Role:        strings.TrimSpace(input.Role),
		Contact:     input.Contact,
		Email:       input.Email,
		Phone:       input.Phone,
		Description: input.Description,
	}

	if err := s.repo.Create(ctx, &proxy); err != nil {
		return nil, err
	}
	return &proxy, nil
}

func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*Proxy, error) {
	proxy, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, ErrFullNameRequired
		}
		proxy.FullName = fullName
	}
	if input.Role != nil {
		proxy.Role = strings.TrimSpace(*input.Role)
	}
	if input.Contact != nil {
		proxy.Contact = input.Contact
	}
	if input.Email != nil {
		proxy.Email = input.Email
	}
	if input.Phone != nil {
		proxy.Phone = input.Phone
	}
	if input.Description != nil {
		proxy.Description = input.Description
	}

	if err := s.repo.Update(ctx, proxy); err != nil {
		return nil, err
	}
	return proxy, nil
}
