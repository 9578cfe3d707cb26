package sponsors

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

type fakeRepo struct {
	nextID   uint
	sponsors map[uint]*Sponsor
	proxies  map[uint]bool
	active   map[uint]int64 // sponsorID -> active sponsorship count
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		sponsors: make(map[uint]*Sponsor),
		proxies:  make(map[uint]bool),
		active:   make(map[uint]int64),
	}
}

func (r *fakeRepo) matches(sponsor *Sponsor, filter ListFilter) bool {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		if !strings.Contains(strings.ToLower(sponsor.FullName), search) {
			return false
		}
	}
	switch {
	case filter.Proxy.None:
		if sponsor.ProxyID != nil {
			return false
		}
	case filter.Proxy.ID != nil:
		if sponsor.ProxyID == nil || *sponsor.ProxyID != *filter.Proxy.ID {
			return false
		}
	}
	if filter.HasSponsorship != nil {
		has := r.active[sponsor.ID] > 0
		if has != *filter.HasSponsorship {
			return false
		}
	}
	return true
}

func (r *fakeRepo) filtered(filter ListFilter) []Sponsor {
	result := make([]Sponsor, 0)
	for _, sponsor := range r.sponsors {
		if r.matches(sponsor, filter) {
			result = append(result, *sponsor)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Sponsor, error) {
	all := r.filtered(filter)
	if offset >= len(all) {
		return []Sponsor{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeRepo) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return int64(len(r.filtered(filter))), nil
}

func (r *fakeRepo) Get(ctx context.Context, id uint) (*Sponsor, error) {
	sponsor, ok := r.sponsors[id]
	if !ok {
		return nil, ErrSponsorNotFound
	}
	copied := *sponsor
	return &copied, nil
}

func (r *fakeRepo) Create(ctx context.Context, sponsor *Sponsor) error {
	r.nextID++
	sponsor.ID = r.nextID
	copied := *sponsor
	r.sponsors[sponsor.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, sponsor *Sponsor) error {
	if _, ok := r.sponsors[sponsor.ID]; !ok {
		return ErrSponsorNotFound
	}
	copied := *sponsor
	r.sponsors[sponsor.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uint) error {
	delete(r.sponsors, id)
	return nil
}

func (r *fakeRepo) ProxyExists(ctx context.Context, proxyID uint) (bool, error) {
	return r.proxies[proxyID], nil
}

func (r *fakeRepo) CountActiveSponsorships(ctx context.Context, sponsorID uint) (int64, error) {
	return r.active[sponsorID], nil
}

func strPtr(s string) *string { return &s }

func TestCreateValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{FullName: "  "}); !errors.Is(err, ErrFullNameRequired) {
		t.Errorf("blank name error = %v, want %v", err, ErrFullNameRequired)
	}
	if _, err := svc.Create(ctx, CreateInput{FullName: "A", Email: strPtr("not-an-email")}); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("bad email error = %v, want %v", err, ErrInvalidEmail)
	}
	unknown := uint(9)
	if _, err := svc.Create(ctx, CreateInput{FullName: "A", ProxyID: &unknown}); !errors.Is(err, ErrProxyNotFound) {
		t.Errorf("unknown proxy error = %v, want %v", err, ErrProxyNotFound)
	}
}

func TestCreateTrimsAndStores(t *testing.T) {
	repo := newFakeRepo()
	repo.proxies[3] = true
	svc := NewService(repo)

	proxyID := uint(3)
	sponsor, err := svc.Create(context.Background(), CreateInput{
		FullName: "  Grete Olsen  ",
		Email:    strPtr("grete@example.org"),
		ProxyID:  &proxyID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sponsor.FullName != "Grete Olsen" {
		t.Errorf("full name = %q, want trimmed", sponsor.FullName)
	}
	if sponsor.ProxyID == nil || *sponsor.ProxyID != 3 {
		t.Errorf("proxyId = %v, want 3", sponsor.ProxyID)
	}
}

func TestUpdateClearProxyWinsOverProxyID(t *testing.T) {
	repo := newFakeRepo()
	repo.proxies[3] = true
	svc := NewService(repo)
	ctx := context.Background()

	proxyID := uint(3)
	sponsor, err := svc.Create(ctx, CreateInput{FullName: "Grete Olsen", ProxyID: &proxyID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, sponsor.ID, UpdateInput{ClearProxy: true, ProxyID: &proxyID})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ProxyID != nil {
		t.Errorf("proxyId = %v, want nil after clear", updated.ProxyID)
	}
}

func TestUpdateValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	sponsor, err := svc.Create(ctx, CreateInput{FullName: "Grete Olsen"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, 99, UpdateInput{}); !errors.Is(err, ErrSponsorNotFound) {
		t.Errorf("unknown sponsor error = %v, want %v", err, ErrSponsorNotFound)
	}
	if _, err := svc.Update(ctx, sponsor.ID, UpdateInput{FullName: strPtr(" ")}); !errors.Is(err, ErrFullNameRequired) {
		t.Errorf("blank name error = %v, want %v", err, ErrFullNameRequired)
	}
	unknown := uint(9)
	if _, err := svc.Update(ctx, sponsor.ID, UpdateInput{ProxyID: &unknown}); !errors.Is(err, ErrProxyNotFound) {
		t.Errorf("unknown proxy error = %v, want %v", err, ErrProxyNotFound)
	}
}

func TestDeleteRefusesActiveSponsorships(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	sponsor, err := svc.Create(ctx, CreateInput{FullName: "Grete Olsen"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.active[sponsor.ID] = 2

	if err := svc.Delete(ctx, sponsor.ID); !errors.Is(err, ErrHasActiveSponsorships) {
		t.Errorf("Delete error = %v, want %v", err, ErrHasActiveSponsorships)
	}

	repo.active[sponsor.ID] = 0
	if err := svc.Delete(ctx, sponsor.ID); err != nil {
		t.Fatalf("Delete after ending sponsorships: %v", err)
	}
	if _, err := svc.Get(ctx, sponsor.ID); !errors.Is(err, ErrSponsorNotFound) {
		t.Errorf("Get after delete error = %v, want %v", err, ErrSponsorNotFound)
	}
}

func TestListFilters(t *testing.T) {
	repo := newFakeRepo()
	repo.proxies[1] = true
	svc := NewService(repo)
	ctx := context.Background()

	proxyID := uint(1)
	direct, _ := svc.Create(ctx, CreateInput{FullName: "Alice Direct"})
	if _, err := svc.Create(ctx, CreateInput{FullName: "Bob Agency", ProxyID: &proxyID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.active[direct.ID] = 1

	hasTrue := true
	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"all", ListFilter{}, []string{"Alice Direct", "Bob Agency"}},
		{"search", ListFilter{Search: "agency"}, []string{"Bob Agency"}},
		{"proxy none", ListFilter{Proxy: ProxyFilter{None: true}}, []string{"Alice Direct"}},
		{"by proxy", ListFilter{Proxy: ProxyFilter{ID: &proxyID}}, []string{"Bob Agency"}},
		{"has sponsorship", ListFilter{HasSponsorship: &hasTrue}, []string{"Alice Direct"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, window, err := svc.List(ctx, tt.filter, 1, 20)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(items) != len(tt.want) {
				t.Fatalf("got %d sponsors, want %d", len(items), len(tt.want))
			}
			for i, name := range tt.want {
				if items[i].FullName != name {
					t.Errorf("item %d = %q, want %q", i, items[i].FullName, name)
				}
			}
			if window.TotalCount != int64(len(tt.want)) {
				t.Errorf("total = %d, want %d", window.TotalCount, len(tt.want))
			}
		})
	}
}

func TestEmailValidation(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"", true},
		{"  ", true},
		{"a@b.com", true},
		{"first.last@sub.domain.org", true},
		{"missing-at.com", false},
		{"@nothing.com", false},
		{"trailing@", false},
		{"no-dot@domain", false},
	}

	for _, tt := range tests {
		if got := validEmail(tt.email); got != tt.valid {
			t.Errorf("validEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}
