package photos

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type AddInput struct {
	ChildID     uint
	Data        string
	MimeType    string
	Filename    *string
	Size        *int64
	Description *string
}

func (s *Service) ListByChild(ctx context.Context, childID uint) ([]Photo, error) {
	exists, err := s.repo.ChildExists(ctx, childID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrChildNotFound
	}
	return s.repo.ListByChild(ctx, childID)
}

func (s *Service) Get(ctx context.Context, id uint) (*Photo, error) {
	return s.repo.Get(ctx, id)
}

// Add stores a new photo and makes it the profile photo, demoting any sibling
// that currently holds the flag.
func (s *Service) Add(ctx context.Context, input AddInput) (*Photo, error) {
	if strings.TrimSpace(input.Data) == "" {
		return nil, ErrDataRequired
	}
	if strings.TrimSpace(input.MimeType) == "" {
		return nil, ErrMimeTypeRequired
	}

	now := s.now()
	photo := Photo{
		ChildID:     input.ChildID,
		Data:        input.Data,
		MimeType:    strings.TrimSpace(input.MimeType),
		Filename:    input.Filename,
		Size:        input.Size,
		Description: input.Description,
		IsProfile:   true,
		UploadedAt:  now,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.ChildExists(ctx, input.ChildID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrChildNotFound
		}

		if err := tx.DemoteAll(ctx, input.ChildID); err != nil {
			return err
		}
		if err := tx.Create(ctx, &photo); err != nil {
			return err
		}
		return tx.TouchChild(ctx, input.ChildID, now)
	})
	if err != nil {
		return nil, err
	}

	return &photo, nil
}

func (s *Service) UpdateDescription(ctx context.Context, id uint, description *string) (*Photo, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDescription(ctx, id, description); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a photo. When the profile photo goes, the most recently
// uploaded survivor takes over the flag so a child with photos always has
// exactly one profile photo.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		photo, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(ctx, id); err != nil {
			return err
		}

		if photo.IsProfile {
			next, err := tx.MostRecent(ctx, photo.ChildID)
			if err != nil {
				return err
			}
			if next != nil {
				if err := tx.Promote(ctx, next.ID); err != nil {
					return err
				}
			}
		}

		return tx.TouchChild(ctx, photo.ChildID, s.now())
	})
}
