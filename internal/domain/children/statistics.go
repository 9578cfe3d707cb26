package children

import (
	"context"
	"fmt"
	"math"
	"sort"
)

const topSchoolsCount = 5

type Totals struct {
	Children    int `json:"children"`
	Sponsored   int `json:"sponsored"`
	Unsponsored int `json:"unsponsored"`
	Schools     int `json:"schools"`
}

type Percentages struct {
	Sponsored   int `json:"sponsored"`
	Unsponsored int `json:"unsponsored"`
}

type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

type ClassCount struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}

type SchoolCount struct {
	SchoolID        uint   `json:"schoolId"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	Children        int    `json:"children"`
	Sponsored       int    `json:"sponsored"`
	SponsorshipRate int    `json:"sponsorshipRate"`
}

type Insight struct {
	Level   string `json:"level"` // "info", "warning", "success"
	Message string `json:"message"`
}

type Breakdown struct {
	Gender     []GenderCount `json:"gender"`
	Class      []ClassCount  `json:"class"`
	TopSchools []SchoolCount `json:"topSchools"`
}

type AppliedFilters struct {
	Search      string `json:"search"`
	Gender      string `json:"gender"`
	SchoolID    string `json:"schoolId"`
	SponsorID   string `json:"sponsorId"`
	ProxyID     string `json:"proxyId"`
	Sponsorship string `json:"sponsorship"`
}

type Statistics struct {
	Total          Totals         `json:"total"`
	Percentages    Percentages    `json:"percentages"`
	Breakdown      Breakdown      `json:"breakdown"`
	Insights       []Insight      `json:"insights"`
	AppliedFilters AppliedFilters `json:"appliedFilters"`
}

// classOrder is the pedagogical ordering for the class breakdown: primary
// years first, then secondary. Unknown class labels sort after these.
var classOrder = []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7", "S1", "S2", "S3", "S4", "S5", "S6"}

func (s *Service) Statistics(ctx context.Context, filter Filter) (*Statistics, error) {
	rows, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats := BuildStatistics(rows)
	stats.AppliedFilters = describeFilters(filter)
	return stats, nil
}

// BuildStatistics reduces an already-filtered child set into the dashboard
// statistics document. Rows need their School relation loaded.
func BuildStatistics(rows []Child) *Statistics {
	total := len(rows)
	sponsored := 0
	genders := make(map[string]int)
	classes := make(map[string]int)
	schoolTotals := make(map[uint]*SchoolCount)

	for _, child := range rows {
		if child.IsSponsored {
			sponsored++
		}
		if child.Gender != "" {
			genders[child.Gender]++
		}
		if child.Class != "" {
			classes[child.Class]++
		}

		entry, ok := schoolTotals[child.SchoolID]
		if !ok {
			entry = &SchoolCount{SchoolID: child.SchoolID}
			if child.School != nil {
				entry.Name = child.School.Name
				entry.Location = child.School.Location
			}
			schoolTotals[child.SchoolID] = entry
		}
		entry.Children++
		if child.IsSponsored {
			entry.Sponsored++
		}
	}

	stats := &Statistics{
		Total: Totals{
			Children:    total,
			Sponsored:   sponsored,
			Unsponsored: total - sponsored,
			Schools:     len(schoolTotals),
		},
		Percentages: Percentages{
			Sponsored:   percentage(sponsored, total),
			Unsponsored: percentage(total-sponsored, total),
		},
		Breakdown: Breakdown{
			Gender:     genderBreakdown(genders),
			Class:      classBreakdown(classes),
			TopSchools: topSchools(schoolTotals),
		},
	}
	stats.Insights = buildInsights(stats)

	return stats
}

// percentage rounds half away from zero and never divides by zero.
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func genderBreakdown(counts map[string]int) []GenderCount {
	result := make([]GenderCount, 0, len(counts))
	for gender, count := range counts {
		result = append(result, GenderCount{Gender: gender, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Gender < result[j].Gender
	})
	return result
}

func classBreakdown(counts map[string]int) []ClassCount {
	rank := make(map[string]int, len(classOrder))
	for i, class := range classOrder {
		rank[class] = i
	}

	result := make([]ClassCount, 0, len(counts))
	for class, count := range counts {
		result = append(result, ClassCount{Class: class, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		ri, iKnown := rank[result[i].Class]
		rj, jKnown := rank[result[j].Class]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return result[i].Class < result[j].Class
		}
	})
	return result
}

func topSchools(totals map[uint]*SchoolCount) []SchoolCount {
	result := make([]SchoolCount, 0, len(totals))
	for _, entry := range totals {
		entry.SponsorshipRate = percentage(entry.Sponsored, entry.Children)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Children != result[j].Children {
			return result[i].Children > result[j].Children
		}
		return result[i].Name < result[j].Name
	})
	if len(result) > topSchoolsCount {
		result = result[:topSchoolsCount]
	}
	return result
}

func buildInsights(stats *Statistics) []Insight {
	insights := make([]Insight, 0, 3)

	if stats.Total.Children > 0 && stats.Percentages.Sponsored < 50 {
		insights = append(insights, Insight{
			Level:   "warning",
			Message: fmt.Sprintf("Only %d%% of children are sponsored.", stats.Percentages.Sponsored),
		})
	}
	if stats.Total.Unsponsored > 0 {
		insights = append(insights, Insight{
			Level:   "info",
			Message: fmt.Sprintf("%d children are waiting for a sponsor.", stats.Total.Unsponsored),
		})
	}
	if best := bestSchool(stats.Breakdown.TopSchools); best != nil && best.SponsorshipRate > 80 {
		insights = append(insights, Insight{
			Level:   "success",
			Message: fmt.Sprintf("%s has a %d%% sponsorship rate.", best.Name, best.SponsorshipRate),
		})
	}

	return insights
}

func bestSchool(schools []SchoolCount) *SchoolCount {
	var best *SchoolCount
	for i := range schools {
		if best == nil || schools[i].SponsorshipRate > best.SponsorshipRate {
			best = &schools[i]
		}
	}
	return best
}

func describeFilters(filter Filter) AppliedFilters {
	applied := AppliedFilters{
		Search:      filter.Search,
		Gender:      filter.Gender,
		SchoolID:    "all",
		SponsorID:   filter.Sponsor.Describe(),
		ProxyID:     filter.Proxy.Describe(),
		Sponsorship: string(filter.Status),
	}
	if applied.Gender == "" {
		applied.Gender = "all"
	}
	if applied.Sponsorship == "" {
		applied.Sponsorship = "all"
	}
	if filter.SchoolID != nil {
		applied.SchoolID = fmt.Sprintf("%d", *filter.SchoolID)
	}
	return applied
}
