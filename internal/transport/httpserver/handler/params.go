package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	childrendomain "sponsorship-app-go/internal/domain/children"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
	"sponsorship-app-go/internal/pagination"
)

func idParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

// pageParams reads page/limit with the usual defaults. Garbage values fall
// back to the defaults instead of failing the request.
func pageParams(r *http.Request) (page, limit int) {
	page = pagination.DefaultPage
	limit = pagination.DefaultLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return page, limit
}

func uintQuery(r *http.Request, name string) *uint {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return nil
	}
	value := uint(parsed)
	return &value
}

// childrenFilter builds the typed filter from query parameters. Values that
// do not parse are treated as absent; a bad filter widens the result set
// rather than erroring the whole listing.
func childrenFilter(r *http.Request) childrendomain.Filter {
	query := r.URL.Query()

	filter := childrendomain.Filter{
		Search: strings.TrimSpace(query.Get("search")),
		Gender: strings.TrimSpace(query.Get("gender")),
	}
	if gender := strings.ToLower(filter.Gender); gender == "all" {
		filter.Gender = ""
	}

	filter.SchoolID = uintQuery(r, "schoolId")

	switch raw := strings.ToLower(strings.TrimSpace(query.Get("sponsorId"))); raw {
	case "", "all":
	case "none":
		filter.Sponsor.None = true
	default:
		filter.Sponsor.ID = uintQuery(r, "sponsorId")
	}

	switch raw := strings.ToLower(strings.TrimSpace(query.Get("proxyId"))); raw {
	case "", "all":
	case "none":
		filter.Proxy.None = true
	case "direct":
		filter.Proxy.Direct = true
	default:
		filter.Proxy.ID = uintQuery(r, "proxyId")
	}

	switch strings.ToLower(strings.TrimSpace(query.Get("sponsorship"))) {
	case "sponsored":
		filter.Status = childrendomain.StatusSponsored
	case "unsponsored":
		filter.Status = childrendomain.StatusUnsponsored
	}

	return filter
}

func sponsorsFilter(r *http.Request) sponsorsdomain.ListFilter {
	query := r.URL.Query()

	filter := sponsorsdomain.ListFilter{
		Search: strings.TrimSpace(query.Get("search")),
	}

	switch raw := strings.ToLower(strings.TrimSpace(query.Get("proxyId"))); raw {
	case "", "all":
	case "none":
		filter.Proxy.None = true
	default:
		filter.Proxy.ID = uintQuery(r, "proxyId")
	}

	switch strings.ToLower(strings.TrimSpace(query.Get("hasSponsorship"))) {
	case "true", "yes":
		yes := true
		filter.HasSponsorship = &yes
	case "false", "no":
		no := false
		filter.HasSponsorship = &no
	}

	return filter
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		// Full timestamps are accepted too; the frontend sends both.
		parsed, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, err
		}
	}
	return &parsed, nil
}
