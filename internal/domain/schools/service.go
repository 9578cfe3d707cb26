package schools

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
	Name     string
	Location string
	IsActive *bool
}

type UpdateInput struct {
	Name     *string
	Location *string
	IsActive *bool
}

func (s *Service) List(ctx context.Context) ([]School, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*School, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*School, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	taken, err := s.repo.IsNameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	school := School{
		Name:     name,
		Location: strings.TrimSpace(input.Location),
		IsActive: true,
	}
	if input.IsActive != nil {
		school.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, &school); err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*School, error) {
	school, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		taken, err := s.repo.IsNameTaken(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
		school.Name = name
	}
	if input.Location != nil {
		school.Location = strings.TrimSpace(*input.Location)
	}
	if input.IsActive != nil {
		school.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSchoolHasChildren
	}

	return s.repo.Delete(ctx, id)
}
