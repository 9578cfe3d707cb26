package inmemory

import (
	"context"
	"testing"
	"time"

	childrendomain "sponsorship-app-go/internal/domain/children"
	schoolsdomain "sponsorship-app-go/internal/domain/schools"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
)

func seedChild(t *testing.T, repo *ChildrenRepository, child childrendomain.Child) childrendomain.Child {
	t.Helper()
	if err := repo.Create(context.Background(), &child); err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}

func seedSponsorship(t *testing.T, repo *ChildrenRepository, childID, sponsorID uint, active bool) {
	t.Helper()
	sp := sponsorsdomain.Sponsorship{
		ChildID:   childID,
		SponsorID: sponsorID,
		IsActive:  active,
		StartDate: time.Now(),
	}
	if err := repo.CreateSponsorship(context.Background(), &sp); err != nil {
		t.Fatalf("create sponsorship: %v", err)
	}
	if !active {
		ended := time.Now()
		sp.EndDate = &ended
	}
}

func ids(children []childrendomain.Child) []uint {
	out := make([]uint, 0, len(children))
	for _, c := range children {
		out = append(out, c.ID)
	}
	return out
}

func sameIDs(got []uint, want ...uint) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func uintPtr(v uint) *uint { return &v }

func TestFilterComposition(t *testing.T) {
	repo := NewChildrenRepository()
	ctx := context.Background()

	hill := repo.AddSchool(schoolsdomain.School{ID: 1, Name: "Hillside Primary"})
	valley := repo.AddSchool(schoolsdomain.School{ID: 2, Name: "Valley Secondary"})
	sponsor := repo.AddSponsor(sponsorsdomain.Sponsor{FullName: "Grete Olsen"})

	a := seedChild(t, repo, childrendomain.Child{FirstName: "Abel", LastName: "Adria", Gender: "male", SchoolID: hill.ID})
	b := seedChild(t, repo, childrendomain.Child{FirstName: "Brian", LastName: "Baru", Gender: "male", SchoolID: hill.ID})
	c := seedChild(t, repo, childrendomain.Child{FirstName: "Clara", LastName: "Cissy", Gender: "female", SchoolID: valley.ID})

	seedSponsorship(t, repo, a.ID, sponsor.ID, true)
	seedSponsorship(t, repo, c.ID, sponsor.ID, true)

	tests := []struct {
		name   string
		filter childrendomain.Filter
		want   []uint
	}{
		{"no filter", childrendomain.Filter{}, []uint{a.ID, b.ID, c.ID}},
		{"sponsored and male", childrendomain.Filter{Status: childrendomain.StatusSponsored, Gender: "male"}, []uint{a.ID}},
		{"by school", childrendomain.Filter{SchoolID: uintPtr(hill.ID)}, []uint{a.ID, b.ID}},
		{"sponsor none", childrendomain.Filter{Sponsor: childrendomain.SponsorFilter{None: true}}, []uint{b.ID}},
		{"by sponsor id", childrendomain.Filter{Sponsor: childrendomain.SponsorFilter{ID: uintPtr(sponsor.ID)}}, []uint{a.ID, c.ID}},
		{"search by school name", childrendomain.Filter{Search: "valley"}, []uint{c.ID}},
		{"search by last name fragment", childrendomain.Filter{Search: "bar"}, []uint{b.ID}},
		{"gender all is a no-op", childrendomain.Filter{Gender: "All"}, []uint{a.ID, b.ID, c.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListAll(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if !sameIDs(ids(got), tt.want...) {
				t.Errorf("got %v, want %v", ids(got), tt.want)
			}

			count, err := repo.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if count != int64(len(tt.want)) {
				t.Errorf("count = %d, want %d", count, len(tt.want))
			}
		})
	}
}

// Proxy "none" quantifies over every sponsorship a child ever had, while
// "direct" only looks at active ones. The cases below hold the line on that
// difference.
func TestProxyFilterQuantifiers(t *testing.T) {
	repo := NewChildrenRepository()
	ctx := context.Background()

	school := repo.AddSchool(schoolsdomain.School{ID: 1, Name: "Hillside Primary"})
	proxyID := uint(7)
	direct := repo.AddSponsor(sponsorsdomain.Sponsor{FullName: "Direct Donor"})
	proxied := repo.AddSponsor(sponsorsdomain.Sponsor{FullName: "Via Agency", ProxyID: &proxyID})

	// Never sponsored at all.
	blank := seedChild(t, repo, childrendomain.Child{FirstName: "Blank", LastName: "A", Gender: "male", SchoolID: school.ID})
	// Only an ended sponsorship, and it went through the proxy.
	endedProxied := seedChild(t, repo, childrendomain.Child{FirstName: "Ended", LastName: "B", Gender: "male", SchoolID: school.ID})
	// One active direct plus one active proxied sponsorship.
	mixed := seedChild(t, repo, childrendomain.Child{FirstName: "Mixed", LastName: "C", Gender: "male", SchoolID: school.ID})
	// Active direct sponsorship only.
	directOnly := seedChild(t, repo, childrendomain.Child{FirstName: "Solo", LastName: "D", Gender: "male", SchoolID: school.ID})

	seedSponsorship(t, repo, endedProxied.ID, proxied.ID, false)
	seedSponsorship(t, repo, mixed.ID, direct.ID, true)
	seedSponsorship(t, repo, mixed.ID, proxied.ID, true)
	seedSponsorship(t, repo, directOnly.ID, direct.ID, true)

	t.Run("none is universal over all sponsorships", func(t *testing.T) {
		got, err := repo.ListAll(ctx, childrendomain.Filter{Proxy: childrendomain.ProxyFilter{None: true}})
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		// blank qualifies vacuously; endedProxied is excluded even though the
		// proxied sponsorship is no longer active; mixed is excluded by the
		// active proxied one.
		if !sameIDs(ids(got), blank.ID, directOnly.ID) {
			t.Errorf("got %v, want [%d %d]", ids(got), blank.ID, directOnly.ID)
		}
	})

	t.Run("direct is existential over active sponsorships", func(t *testing.T) {
		got, err := repo.ListAll(ctx, childrendomain.Filter{Proxy: childrendomain.ProxyFilter{Direct: true}})
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		// blank has no active direct sponsorship so it drops out here, and
		// mixed qualifies despite its proxied one.
		if !sameIDs(ids(got), mixed.ID, directOnly.ID) {
			t.Errorf("got %v, want [%d %d]", ids(got), mixed.ID, directOnly.ID)
		}
	})

	t.Run("by proxy id needs an active sponsorship", func(t *testing.T) {
		got, err := repo.ListAll(ctx, childrendomain.Filter{Proxy: childrendomain.ProxyFilter{ID: &proxyID}})
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if !sameIDs(ids(got), mixed.ID) {
			t.Errorf("got %v, want [%d]", ids(got), mixed.ID)
		}
	})
}

func TestArchivedChildrenAreInvisible(t *testing.T) {
	repo := NewChildrenRepository()
	ctx := context.Background()

	school := repo.AddSchool(schoolsdomain.School{ID: 1, Name: "Hillside Primary"})
	kept := seedChild(t, repo, childrendomain.Child{FirstName: "Kept", LastName: "A", SchoolID: school.ID})
	gone := seedChild(t, repo, childrendomain.Child{FirstName: "Gone", LastName: "B", SchoolID: school.ID})

	if err := repo.Archive(ctx, gone.ID, time.Now()); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	got, err := repo.ListAll(ctx, childrendomain.Filter{})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !sameIDs(ids(got), kept.ID) {
		t.Errorf("got %v, want [%d]", ids(got), kept.ID)
	}
}

func TestListPagesInStableOrder(t *testing.T) {
	repo := NewChildrenRepository()
	ctx := context.Background()

	school := repo.AddSchool(schoolsdomain.School{ID: 1, Name: "Hillside Primary"})
	seedChild(t, repo, childrendomain.Child{FirstName: "Carol", LastName: "Zimba", SchoolID: school.ID})
	seedChild(t, repo, childrendomain.Child{FirstName: "Alice", LastName: "Mbeki", SchoolID: school.ID})
	seedChild(t, repo, childrendomain.Child{FirstName: "Bob", LastName: "Mbeki", SchoolID: school.ID})

	first, err := repo.List(ctx, childrendomain.Filter{}, 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	second, err := repo.List(ctx, childrendomain.Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(first) != 2 || len(second) != 1 {
		t.Fatalf("page sizes = %d, %d; want 2, 1", len(first), len(second))
	}
	if first[0].FirstName != "Alice" || first[1].FirstName != "Bob" || second[0].FirstName != "Carol" {
		t.Errorf("unexpected order: %s, %s / %s", first[0].FirstName, first[1].FirstName, second[0].FirstName)
	}
}
