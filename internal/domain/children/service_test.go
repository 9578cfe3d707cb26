package children_test

import (
	"context"
	"errors"
	"testing"

	"sponsorship-app-go/internal/domain/children"
	"sponsorship-app-go/internal/domain/schools"
	"sponsorship-app-go/internal/domain/sponsors"
	"sponsorship-app-go/internal/repository/inmemory"
)

func newFixture(t *testing.T) (*children.Service, *inmemory.ChildrenRepository, schools.School, sponsors.Sponsor) {
	t.Helper()
	repo := inmemory.NewChildrenRepository()
	school := repo.AddSchool(schools.School{Name: "Hillside Primary", Location: "Kampala"})
	sponsor := repo.AddSponsor(sponsors.Sponsor{FullName: "Grete Olsen"})
	return children.NewService(repo), repo, school, sponsor
}

func validCreate(schoolID uint) children.CreateInput {
	return children.CreateInput{
		FirstName:      "Abel",
		LastName:       "Adria",
		Gender:         "male",
		Class:          "P3",
		FatherFullName: "John Adria",
		MotherFullName: "Mary Adria",
		SchoolID:       schoolID,
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, school, _ := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*children.CreateInput)
		wantErr error
	}{
		{"missing first name", func(in *children.CreateInput) { in.FirstName = "  " }, children.ErrFirstNameRequired},
		{"missing last name", func(in *children.CreateInput) { in.LastName = "" }, children.ErrLastNameRequired},
		{"missing school", func(in *children.CreateInput) { in.SchoolID = 0 }, children.ErrSchoolRequired},
		{"missing father name", func(in *children.CreateInput) { in.FatherFullName = "" }, children.ErrParentNamesRequired},
		{"missing mother name", func(in *children.CreateInput) { in.MotherFullName = "" }, children.ErrParentNamesRequired},
		{"unknown school", func(in *children.CreateInput) { in.SchoolID = 99 }, children.ErrSchoolNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreate(school.ID)
			tt.mutate(&input)
			if _, err := svc.Create(ctx, input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateWithoutSponsorsIsUnsponsored(t *testing.T) {
	svc, _, school, _ := newFixture(t)

	child, err := svc.Create(context.Background(), validCreate(school.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if child.IsSponsored {
		t.Error("child created without sponsors should not be sponsored")
	}
	if child.School == nil || child.School.Name != "Hillside Primary" {
		t.Error("school relation not loaded on the created child")
	}
}

func TestCreateWithExistingSponsorSetsFlag(t *testing.T) {
	svc, _, school, sponsor := newFixture(t)

	input := validCreate(school.ID)
	input.SponsorIDs = []uint{sponsor.ID}

	child, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !child.IsSponsored {
		t.Error("child created with a sponsor should be sponsored")
	}
	if len(child.Sponsorships) != 1 || !child.Sponsorships[0].IsActive {
		t.Fatalf("want one active sponsorship, got %+v", child.Sponsorships)
	}
}

func TestCreateWithInlineSponsor(t *testing.T) {
	svc, repo, school, _ := newFixture(t)
	ctx := context.Background()

	input := validCreate(school.ID)
	input.NewSponsor = &children.NewSponsorInput{FullName: "Fresh Donor"}

	child, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !child.IsSponsored {
		t.Error("child should be sponsored by the inline sponsor")
	}

	count, err := repo.CountActiveSponsorships(ctx, child.ID)
	if err != nil {
		t.Fatalf("CountActiveSponsorships: %v", err)
	}
	if count != 1 {
		t.Errorf("active sponsorships = %d, want 1", count)
	}
}

func TestCreateRejectsBlankInlineSponsor(t *testing.T) {
	svc, _, school, _ := newFixture(t)

	input := validCreate(school.ID)
	input.NewSponsor = &children.NewSponsorInput{FullName: "   "}

	if _, err := svc.Create(context.Background(), input); !errors.Is(err, sponsors.ErrFullNameRequired) {
		t.Errorf("Create() error = %v, want %v", err, sponsors.ErrFullNameRequired)
	}
}

func TestAttachSponsorFlipsFlag(t *testing.T) {
	svc, _, school, sponsor := newFixture(t)
	ctx := context.Background()

	child, err := svc.Create(ctx, validCreate(school.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created, err := svc.AttachSponsor(ctx, child.ID, children.AttachSponsorInput{SponsorID: sponsor.ID})
	if err != nil {
		t.Fatalf("AttachSponsor: %v", err)
	}
	if created == nil || !created.IsActive {
		t.Fatalf("want an active sponsorship back, got %+v", created)
	}

	after, err := svc.Get(ctx, child.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !after.IsSponsored {
		t.Error("flag should be true after attaching a sponsor")
	}
}

func TestAttachSponsorRejectsDuplicateActive(t *testing.T) {
	svc, _, school, sponsor := newFixture(t)
	ctx := context.Background()

	child, err := svc.Create(ctx, validCreate(school.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AttachSponsor(ctx, child.ID, children.AttachSponsorInput{SponsorID: sponsor.ID}); err != nil {
		t.Fatalf("first AttachSponsor: %v", err)
	}

	_, err = svc.AttachSponsor(ctx, child.ID, children.AttachSponsorInput{SponsorID: sponsor.ID})
	if !errors.Is(err, sponsors.ErrDuplicateActiveSponsorship) {
		t.Errorf("second AttachSponsor error = %v, want %v", err, sponsors.ErrDuplicateActiveSponsorship)
	}
}

func TestAttachSponsorUnknownTargets(t *testing.T) {
	svc, _, school, sponsor := newFixture(t)
	ctx := context.Background()

	child, err := svc.Create(ctx, validCreate(school.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.AttachSponsor(ctx, 99, children.AttachSponsorInput{SponsorID: sponsor.ID}); !errors.Is(err, children.ErrChildNotFound) {
		t.Errorf("unknown child error = %v, want %v", err, children.ErrChildNotFound)
	}
	if _, err := svc.AttachSponsor(ctx, child.ID, children.AttachSponsorInput{SponsorID: 99}); !errors.Is(err, children.ErrSponsorNotFound) {
		t.Errorf("unknown sponsor error = %v, want %v", err, children.ErrSponsorNotFound)
	}
}

func TestEndSponsorshipFlipsFlagBack(t *testing.T) {
	svc, _, school, sponsor := newFixture(t)
	ctx := context.Background()

	input := validCreate(school.ID)
	input.SponsorIDs = []uint{sponsor.ID}
	child, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.EndSponsorship(ctx, child.ID, sponsor.ID); err != nil {
		t.Fatalf("EndSponsorship: %v", err)
	}

	after, err := svc.Get(ctx, child.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after.IsSponsored {
		t.Error("flag should be false after the last sponsorship ends")
	}
	if len(after.Sponsorships) != 0 {
		t.Errorf("active sponsorships after end = %d, want 0", len(after.Sponsorships))
	}

	if err := svc.EndSponsorship(ctx, child.ID, sponsor.ID); !errors.Is(err, sponsors.ErrSponsorshipNotFound) {
		t.Errorf("second EndSponsorship error = %v, want %v", err, sponsors.ErrSponsorshipNotFound)
	}
}

func TestFlagStaysWhileAnotherSponsorshipIsActive(t *testing.T) {
	svc, repo, school, sponsor := newFixture(t)
	ctx := context.Background()

	other := repo.AddSponsor(sponsors.Sponsor{FullName: "Second Donor"})

	input := validCreate(school.ID)
	input.SponsorIDs = []uint{sponsor.ID, other.ID}
	child, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.EndSponsorship(ctx, child.ID, sponsor.ID); err != nil {
		t.Fatalf("EndSponsorship: %v", err)
	}

	after, err := svc.Get(ctx, child.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !after.IsSponsored {
		t.Error("flag should stay true while another sponsorship is active")
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, repo, school, _ := newFixture(t)
	ctx := context.Background()

	other := repo.AddSchool(schools.School{Name: "Valley Secondary"})

	child, err := svc.Create(ctx, validCreate(school.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newClass := "P4"
	updated, err := svc.Update(ctx, child.ID, children.UpdateInput{Class: &newClass, SchoolID: &other.ID})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Class != "P4" {
		t.Errorf("class = %q, want P4", updated.Class)
	}
	if updated.SchoolID != other.ID {
		t.Errorf("schoolId = %d, want %d", updated.SchoolID, other.ID)
	}
	if updated.FirstName != "Abel" {
		t.Errorf("first name changed unexpectedly to %q", updated.FirstName)
	}
	if !updated.LastProfileUpdate.After(child.LastProfileUpdate) && !updated.LastProfileUpdate.Equal(child.LastProfileUpdate) {
		t.Error("last profile update not refreshed")
	}

	blank := " "
	if _, err := svc.Update(ctx, child.ID, children.UpdateInput{FirstName: &blank}); !errors.Is(err, children.ErrFirstNameRequired) {
		t.Errorf("blank first name error = %v, want %v", err, children.ErrFirstNameRequired)
	}

	unknown := uint(99)
	if _, err := svc.Update(ctx, child.ID, children.UpdateInput{SchoolID: &unknown}); !errors.Is(err, children.ErrSchoolNotFound) {
		t.Errorf("unknown school error = %v, want %v", err, children.ErrSchoolNotFound)
	}
}

func TestArchiveHidesChild(t *testing.T) {
	svc, _, school, _ := newFixture(t)
	ctx := context.Background()

	child, err := svc.Create(ctx, validCreate(school.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Archive(ctx, child.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	rows, _, err := svc.List(ctx, children.Filter{}, 1, 12)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("archived child still listed: %+v", rows)
	}

	if err := svc.Archive(ctx, 99); !errors.Is(err, children.ErrChildNotFound) {
		t.Errorf("Archive(99) error = %v, want %v", err, children.ErrChildNotFound)
	}
}

func TestListReportsPaginationWindow(t *testing.T) {
	svc, _, school, _ := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		input := validCreate(school.ID)
		input.FirstName = string(rune('A' + i))
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	rows, window, err := svc.List(ctx, children.Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("page size = %d, want 2", len(rows))
	}
	if window.TotalCount != 5 || window.TotalPages != 3 || !window.HasNextPage || !window.HasPrevPage {
		t.Errorf("unexpected window: %+v", window)
	}
}
