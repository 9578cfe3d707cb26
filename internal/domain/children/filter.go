package children

import "strconv"

type StatusFilter string

const (
	StatusAny         StatusFilter = ""
	StatusSponsored   StatusFilter = "sponsored"
	StatusUnsponsored StatusFilter = "unsponsored"
)

// SponsorFilter narrows children by sponsor. The zero value matches all.
type SponsorFilter struct {
	None bool  // no active sponsorship at all
	ID   *uint // at least one active sponsorship with this sponsor
}

// ProxyFilter narrows children by the intermediary behind their sponsorships.
// The zero value matches all. None quantifies over every sponsorship of the
// child, active or not, while Direct only looks at active ones; the asymmetry
// is long-standing observed behavior that dashboard users rely on, so it is
// kept as is and pinned by tests.
type ProxyFilter struct {
	None   bool  // every sponsorship (if any) goes through a sponsor with no proxy
	Direct bool  // at least one active sponsorship through a sponsor with no proxy
	ID     *uint // at least one active sponsorship through this proxy
}

// Filter is the typed form of the list/statistics query parameters. One filter
// value drives the count, the page fetch and the statistics row load so the
// pagination metadata always agrees with the data.
type Filter struct {
	Search   string
	Gender   string
	SchoolID *uint
	Sponsor  SponsorFilter
	Proxy    ProxyFilter
	Status   StatusFilter
}

func (f SponsorFilter) Describe() string {
	switch {
	case f.None:
		return "none"
	case f.ID != nil:
		return strconv.FormatUint(uint64(*f.ID), 10)
	default:
		return "all"
	}
}

func (f ProxyFilter) Describe() string {
	switch {
	case f.None:
		return "none"
	case f.Direct:
		return "direct"
	case f.ID != nil:
		return strconv.FormatUint(uint64(*f.ID), 10)
	default:
		return "all"
	}
}
