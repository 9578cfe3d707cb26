package children

import (
	"context"
	"strings"
	"time"

	"sponsorship-app-go/internal/domain/sponsors"
	"sponsorship-app-go/internal/pagination"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type NewSponsorInput struct {
	FullName string
	Contact  *string
	Email    *string
	Phone    *string
	ProxyID  *uint
}

type CreateInput struct {
	FirstName      string
	LastName       string
	DateOfBirth    *time.Time
	Gender         string
	Class          string
	FatherFullName string
	MotherFullName string
	Address        *string
	Contact        *string
	Story          *string
	Comment        *string
	SchoolID       uint
	SponsorIDs     []uint
	NewSponsor     *NewSponsorInput
}

type UpdateInput struct {
	FirstName      *string
	LastName       *string
	DateOfBirth    *time.Time
	Gender         *string
	Class          *string
	FatherFullName *string
	MotherFullName *string
	Address        *string
	Contact        *string
	Story          *string
	Comment        *string
	SchoolID       *uint
}

type AttachSponsorInput struct {
	SponsorID     uint
	MonthlyAmount *float64
	PaymentMethod *string
	Notes         *string
}

func (s *Service) List(ctx context.Context, filter Filter, page, limit int) ([]Child, pagination.Pagination, error) {
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

func (s *Service) ListAll(ctx context.Context, filter Filter) ([]Child, error) {
	return s.repo.ListAll(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uint) (*Child, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) SchoolIDByName(ctx context.Context, name string) (uint, error) {
	return s.repo.SchoolIDByName(ctx, strings.TrimSpace(name))
}

// Create registers a child and, when sponsors are attached in the same
// request, creates their sponsorships and the denormalized flag in one
// transaction so a failing step leaves nothing behind.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Child, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	now := s.now()
	child := Child{
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		DateOfBirth:       input.DateOfBirth,
		Gender:            strings.TrimSpace(input.Gender),
		Class:             strings.TrimSpace(input.Class),
		FatherFullName:    strings.TrimSpace(input.FatherFullName),
		MotherFullName:    strings.TrimSpace(input.MotherFullName),
		Address:           input.Address,
		Contact:           input.Contact,
		Story:             input.Story,
		Comment:           input.Comment,
		SchoolID:          input.SchoolID,
		LastProfileUpdate: now,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.SchoolExists(ctx, input.SchoolID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSchoolNotFound
		}

		if err := tx.Create(ctx, &child); err != nil {
			return err
		}

		sponsorIDs := input.SponsorIDs
		if input.NewSponsor != nil {
			sponsor := sponsors.Sponsor{
				FullName: strings.TrimSpace(input.NewSponsor.FullName),
				Contact:  input.NewSponsor.Contact,
				Email:    input.NewSponsor.Email,
				Phone:    input.NewSponsor.Phone,
				ProxyID:  input.NewSponsor.ProxyID,
			}
			if sponsor.FullName == "" {
				return sponsors.ErrFullNameRequired
			}
			if err := tx.CreateSponsor(ctx, &sponsor); err != nil {
				return err
			}
			sponsorIDs = append(sponsorIDs, sponsor.ID)
		}

		for _, sponsorID := range sponsorIDs {
			if err := s.createSponsorship(ctx, tx, child.ID, AttachSponsorInput{SponsorID: sponsorID}, now); err != nil {
				return err
			}
		}

		if len(sponsorIDs) > 0 {
			return s.syncSponsoredFlag(ctx, tx, child.ID, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, child.ID)
}

func (s *Service) Update(ctx context.Context, id uint, input UpdateInput) (*Child, error) {
	child, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, ErrFirstNameRequired
		}
		child.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, ErrLastNameRequired
		}
		child.LastName = name
	}
	if input.DateOfBirth != nil {
		child.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		child.Gender = strings.TrimSpace(*input.Gender)
	}
	if input.Class != nil {
		child.Class = strings.TrimSpace(*input.Class)
	}
	if input.FatherFullName != nil {
		child.FatherFullName = strings.TrimSpace(*input.FatherFullName)
	}
	if input.MotherFullName != nil {
		child.MotherFullName = strings.TrimSpace(*input.MotherFullName)
	}
	if input.Address != nil {
		child.Address = input.Address
	}
	if input.Contact != nil {
		child.Contact = input.Contact
	}
	if input.Story != nil {
		child.Story = input.Story
	}
	if input.Comment != nil {
		child.Comment = input.Comment
	}
	if input.SchoolID != nil {
		exists, err := s.repo.SchoolExists(ctx, *input.SchoolID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrSchoolNotFound
		}
		child.SchoolID = *input.SchoolID
	}

	child.LastProfileUpdate = s.now()
	child.School = nil
	child.Sponsorships = nil
	child.Photos = nil

	if err := s.repo.Update(ctx, child); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Archive(ctx context.Context, id uint) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Archive(ctx, id, s.now())
}

// AttachSponsor creates an active sponsorship and resynchronizes the child's
// sponsored flag in the same transaction. A second active sponsorship for the
// same (child, sponsor) pair is a conflict.
func (s *Service) AttachSponsor(ctx context.Context, childID uint, input AttachSponsorInput) (*sponsors.Sponsorship, error) {
	var created *sponsors.Sponsorship

	now := s.now()
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.Get(ctx, childID); err != nil {
			return err
		}

		if err := s.createSponsorship(ctx, tx, childID, input, now); err != nil {
			return err
		}

		sponsorship, err := tx.ActiveSponsorship(ctx, childID, input.SponsorID)
		if err != nil {
			return err
		}
		created = sponsorship

		return s.syncSponsoredFlag(ctx, tx, childID, now)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// EndSponsorship soft-deletes the active sponsorship between a child and a
// sponsor and resynchronizes the flag, atomically.
func (s *Service) EndSponsorship(ctx context.Context, childID, sponsorID uint) error {
	now := s.now()
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.Get(ctx, childID); err != nil {
			return err
		}

		sponsorship, err := tx.ActiveSponsorship(ctx, childID, sponsorID)
		if err != nil {
			return err
		}
		if sponsorship == nil {
			return sponsors.ErrSponsorshipNotFound
		}

		if err := tx.EndSponsorship(ctx, sponsorship.ID, now); err != nil {
			return err
		}

		return s.syncSponsoredFlag(ctx, tx, childID, now)
	})
}

func (s *Service) createSponsorship(ctx context.Context, tx Repository, childID uint, input AttachSponsorInput, now time.Time) error {
	exists, err := tx.SponsorExists(ctx, input.SponsorID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSponsorNotFound
	}

	existing, err := tx.ActiveSponsorship(ctx, childID, input.SponsorID)
	if err != nil {
		return err
	}
	if existing != nil {
		return sponsors.ErrDuplicateActiveSponsorship
	}

	return tx.CreateSponsorship(ctx, &sponsors.Sponsorship{
		ChildID:       childID,
		SponsorID:     input.SponsorID,
		IsActive:      true,
		StartDate:     now,
		MonthlyAmount: input.MonthlyAmount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	})
}

// syncSponsoredFlag recomputes the denormalized flag from the active
// sponsorship count. Idempotent; must run inside the mutating transaction so
// readers never observe the flag out of step with the rows.
func (s *Service) syncSponsoredFlag(ctx context.Context, tx Repository, childID uint, now time.Time) error {
	count, err := tx.CountActiveSponsorships(ctx, childID)
	if err != nil {
		return err
	}
	return tx.SetSponsoredFlag(ctx, childID, count > 0, now)
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(input.LastName) == "" {
		return ErrLastNameRequired
	}
	if input.SchoolID == 0 {
		return ErrSchoolRequired
	}
	if strings.TrimSpace(input.FatherFullName) == "" || strings.TrimSpace(input.MotherFullName) == "" {
		return ErrParentNamesRequired
	}
	return nil
}
