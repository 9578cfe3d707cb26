// Package inmemory holds map-backed repositories that mirror the behavior of
// the postgres ones, including the children filter semantics. They back the
// filter and service tests and make the quantifier rules executable without a
// database.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	childrendomain "sponsorship-app-go/internal/domain/children"
	schoolsdomain "sponsorship-app-go/internal/domain/schools"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
)

type ChildrenRepository struct {
	mu sync.RWMutex

	nextChildID       uint
	nextSponsorID     uint
	nextSponsorshipID uint

	children     map[uint]*childrendomain.Child
	schools      map[uint]*schoolsdomain.School
	sponsors     map[uint]*sponsorsdomain.Sponsor
	sponsorships map[uint]*sponsorsdomain.Sponsorship
}

func NewChildrenRepository() *ChildrenRepository {
	return &ChildrenRepository{
		children:     make(map[uint]*childrendomain.Child),
		schools:      make(map[uint]*schoolsdomain.School),
		sponsors:     make(map[uint]*sponsorsdomain.Sponsor),
		sponsorships: make(map[uint]*sponsorsdomain.Sponsorship),
	}
}

// AddSchool and AddSponsor seed reference rows for tests.
func (r *ChildrenRepository) AddSchool(school schoolsdomain.School) schoolsdomain.School {
	r.mu.Lock()
	defer r.mu.Unlock()
	if school.ID == 0 {
		school.ID = uint(len(r.schools) + 1)
	}
	copied := school
	r.schools[school.ID] = &copied
	return copied
}

func (r *ChildrenRepository) AddSponsor(sponsor sponsorsdomain.Sponsor) sponsorsdomain.Sponsor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sponsor.ID == 0 {
		r.nextSponsorID++
		sponsor.ID = r.nextSponsorID
	} else if sponsor.ID > r.nextSponsorID {
		r.nextSponsorID = sponsor.ID
	}
	copied := sponsor
	r.sponsors[sponsor.ID] = &copied
	return copied
}

func (r *ChildrenRepository) Transaction(ctx context.Context, fn func(childrendomain.Repository) error) error {
	return fn(r)
}

func (r *ChildrenRepository) matches(child *childrendomain.Child, filter childrendomain.Filter) bool {
	if child.IsArchived {
		return false
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		schoolName := ""
		if school, ok := r.schools[child.SchoolID]; ok {
			schoolName = strings.ToLower(school.Name)
		}
		if !strings.Contains(strings.ToLower(child.FirstName), search) &&
			!strings.Contains(strings.ToLower(child.LastName), search) &&
			!strings.Contains(schoolName, search) {
			return false
		}
	}

	if gender := strings.ToLower(strings.TrimSpace(filter.Gender)); gender != "" && gender != "all" {
		if strings.ToLower(child.Gender) != gender {
			return false
		}
	}

	if filter.SchoolID != nil && child.SchoolID != *filter.SchoolID {
		return false
	}

	switch {
	case filter.Sponsor.None:
		if r.countActive(child.ID) > 0 {
			return false
		}
	case filter.Sponsor.ID != nil:
		if !r.hasActiveWith(child.ID, *filter.Sponsor.ID) {
			return false
		}
	}

	switch {
	case filter.Proxy.None:
		// Universal over ALL sponsorships, active or not.
		for _, sp := range r.sponsorships {
			if sp.ChildID != child.ID {
				continue
			}
			if sponsor, ok := r.sponsors[sp.SponsorID]; ok && sponsor.ProxyID != nil {
				return false
			}
		}
	case filter.Proxy.Direct:
		// Existential over active sponsorships only.
		found := false
		for _, sp := range r.sponsorships {
			if sp.ChildID != child.ID || !sp.IsActive {
				continue
			}
			if sponsor, ok := r.sponsors[sp.SponsorID]; ok && sponsor.ProxyID == nil {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	case filter.Proxy.ID != nil:
		found := false
		for _, sp := range r.sponsorships {
			if sp.ChildID != child.ID || !sp.IsActive {
				continue
			}
			if sponsor, ok := r.sponsors[sp.SponsorID]; ok && sponsor.ProxyID != nil && *sponsor.ProxyID == *filter.Proxy.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	switch filter.Status {
	case childrendomain.StatusSponsored:
		if r.countActive(child.ID) == 0 {
			return false
		}
	case childrendomain.StatusUnsponsored:
		if r.countActive(child.ID) > 0 {
			return false
		}
	}

	return true
}

func (r *ChildrenRepository) countActive(childID uint) int {
	count := 0
	for _, sp := range r.sponsorships {
		if sp.ChildID == childID && sp.IsActive {
			count++
		}
	}
	return count
}

func (r *ChildrenRepository) hasActiveWith(childID, sponsorID uint) bool {
	for _, sp := range r.sponsorships {
		if sp.ChildID == childID && sp.SponsorID == sponsorID && sp.IsActive {
			return true
		}
	}
	return false
}

func (r *ChildrenRepository) filtered(filter childrendomain.Filter) []childrendomain.Child {
	result := make([]childrendomain.Child, 0)
	for _, child := range r.children {
		if r.matches(child, filter) {
			copied := *child
			if school, ok := r.schools[child.SchoolID]; ok {
				schoolCopy := *school
				copied.School = &schoolCopy
			}
			result = append(result, copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		if result[i].FirstName != result[j].FirstName {
			return result[i].FirstName < result[j].FirstName
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *ChildrenRepository) List(ctx context.Context, filter childrendomain.Filter, limit, offset int) ([]childrendomain.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.filtered(filter)
	if offset >= len(all) {
		return []childrendomain.Child{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *ChildrenRepository) ListAll(ctx context.Context, filter childrendomain.Filter) ([]childrendomain.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filtered(filter), nil
}

func (r *ChildrenRepository) Count(ctx context.Context, filter childrendomain.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *ChildrenRepository) Get(ctx context.Context, id uint) (*childrendomain.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	child, ok := r.children[id]
	if !ok {
		return nil, childrendomain.ErrChildNotFound
	}

	copied := *child
	if school, ok := r.schools[child.SchoolID]; ok {
		schoolCopy := *school
		copied.School = &schoolCopy
	}
	copied.Sponsorships = nil
	for _, sp := range r.sponsorships {
		if sp.ChildID == id && sp.IsActive {
			spCopy := *sp
			if sponsor, ok := r.sponsors[sp.SponsorID]; ok {
				sponsorCopy := *sponsor
				spCopy.Sponsor = &sponsorCopy
			}
			copied.Sponsorships = append(copied.Sponsorships, spCopy)
		}
	}
	return &copied, nil
}

func (r *ChildrenRepository) Create(ctx context.Context, child *childrendomain.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextChildID++
	child.ID = r.nextChildID
	copied := *child
	copied.School = nil
	copied.Sponsorships = nil
	copied.Photos = nil
	r.children[child.ID] = &copied
	return nil
}

func (r *ChildrenRepository) Update(ctx context.Context, child *childrendomain.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.children[child.ID]; !ok {
		return childrendomain.ErrChildNotFound
	}
	copied := *child
	copied.School = nil
	copied.Sponsorships = nil
	copied.Photos = nil
	r.children[child.ID] = &copied
	return nil
}

func (r *ChildrenRepository) Archive(ctx context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	child, ok := r.children[id]
	if !ok {
		return childrendomain.ErrChildNotFound
	}
	child.IsArchived = true
	child.ArchivedAt = &at
	return nil
}

func (r *ChildrenRepository) SchoolExists(ctx context.Context, schoolID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.schools[schoolID]
	return ok, nil
}

func (r *ChildrenRepository) SchoolIDByName(ctx context.Context, name string) (uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, school := range r.schools {
		if strings.EqualFold(school.Name, name) {
			return school.ID, nil
		}
	}
	return 0, childrendomain.ErrSchoolNotFound
}

func (r *ChildrenRepository) SponsorExists(ctx context.Context, sponsorID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sponsors[sponsorID]
	return ok, nil
}

func (r *ChildrenRepository) CreateSponsor(ctx context.Context, sponsor *sponsorsdomain.Sponsor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSponsorID++
	sponsor.ID = r.nextSponsorID
	copied := *sponsor
	r.sponsors[sponsor.ID] = &copied
	return nil
}

func (r *ChildrenRepository) CreateSponsorship(ctx context.Context, sponsorship *sponsorsdomain.Sponsorship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSponsorshipID++
	sponsorship.ID = r.nextSponsorshipID
	copied := *sponsorship
	copied.Sponsor = nil
	r.sponsorships[sponsorship.ID] = &copied
	return nil
}

func (r *ChildrenRepository) ActiveSponsorship(ctx context.Context, childID, sponsorID uint) (*sponsorsdomain.Sponsorship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sp := range r.sponsorships {
		if sp.ChildID == childID && sp.SponsorID == sponsorID && sp.IsActive {
			copied := *sp
			if sponsor, ok := r.sponsors[sp.SponsorID]; ok {
				sponsorCopy := *sponsor
				copied.Sponsor = &sponsorCopy
			}
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *ChildrenRepository) EndSponsorship(ctx context.Context, sponsorshipID uint, endDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sp, ok := r.sponsorships[sponsorshipID]
	if !ok {
		return sponsorsdomain.ErrSponsorshipNotFound
	}
	sp.IsActive = false
	sp.EndDate = &endDate
	return nil
}

func (r *ChildrenRepository) CountActiveSponsorships(ctx context.Context, childID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(r.countActive(childID)), nil
}

func (r *ChildrenRepository) SetSponsoredFlag(ctx context.Context, childID uint, sponsored bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	child, ok := r.children[childID]
	if !ok {
		return childrendomain.ErrChildNotFound
	}
	child.IsSponsored = sponsored
	child.LastProfileUpdate = at
	return nil
}
