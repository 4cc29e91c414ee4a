// Package scorer ranks job listings against user preferences with a
// deterministic weighted multi-criteria score. Missing data on a listing is
// never penalized: every sub-score falls back to a neutral value, so an
// incomplete posting degrades to "unknown" rather than zero.
package scorer

import (
	"math"
	"strings"

	"jobpilot/internal/listing"
)

// The six scoring criteria. Weights must cover exactly this set.
const (
	CriterionKeywordMatch       = "keyword_match"
	CriterionSalaryMatch        = "salary_match"
	CriterionLocationPreference = "location_preference"
	CriterionCompanyRating      = "company_rating"
	CriterionRoleSeniority      = "role_seniority"
	CriterionBenefits           = "benefits"
)

// Criteria lists the required criteria in a stable order.
var Criteria = []string{
	CriterionKeywordMatch,
	CriterionSalaryMatch,
	CriterionLocationPreference,
	CriterionCompanyRating,
	CriterionRoleSeniority,
	CriterionBenefits,
}

var seniorityKeywords = map[string][]string{
	ExperienceJunior: {"junior", "entry", "associate", "jr"},
	ExperienceMid:    {"mid", "intermediate", "engineer", "developer"},
	ExperienceSenior: {"senior", "sr", "lead", "principal", "staff"},
}

var benefitKeywords = []string{
	"health insurance", "401k", "retirement", "stock options",
	"equity", "pto", "vacation", "remote", "flexible",
	"work-life balance", "dental", "vision", "bonus",
}

// Scored pairs a listing with its computed score. Produced fresh each run and
// never persisted.
type Scored struct {
	Listing *listing.Listing
	Score   float64
}

type Scorer struct {
	weights Weights
	prefs   *Preferences
}

func New(weights Weights, prefs *Preferences) *Scorer {
	return &Scorer{weights: weights, prefs: prefs}
}

// Score computes the weighted score for a listing on the [0,10] scale,
// rounded to two decimal places. It is a pure function of its inputs.
func (s *Scorer) Score(l *listing.Listing) float64 {
	subs := map[string]float64{
		CriterionKeywordMatch:       s.scoreKeywordMatch(l),
		CriterionSalaryMatch:        s.scoreSalaryMatch(l),
		CriterionLocationPreference: s.scoreLocation(l),
		CriterionCompanyRating:      s.scoreCompanyRating(l),
		CriterionRoleSeniority:      s.scoreRoleSeniority(l),
		CriterionBenefits:           s.scoreBenefits(l),
	}

	total := 0.0
	for _, criterion := range Criteria {
		total += subs[criterion] * s.weights[criterion]
	}

	return math.Round(total*10*100) / 100
}

// ScoreAll scores every listing, preserving fetch order.
func (s *Scorer) ScoreAll(ls *listing.Listings) []*Scored {
	scored := make([]*Scored, 0, ls.Len())
	for _, l := range ls.Items {
		scored = append(scored, &Scored{Listing: l, Score: s.Score(l)})
	}
	return scored
}

// scoreKeywordMatch combines required and nice-to-have skill hit rates with a
// fixed 70/30 split. Matching is a case-insensitive substring search against
// the title and description.
func (s *Scorer) scoreKeywordMatch(l *listing.Listing) float64 {
	text := l.CombinedText()

	requiredScore := 1.0
	if len(s.prefs.RequiredSkills) > 0 {
		requiredScore = float64(countMatches(text, s.prefs.RequiredSkills)) / float64(len(s.prefs.RequiredSkills))
	}

	niceScore := 0.0
	if len(s.prefs.NiceToHaveSkills) > 0 {
		niceScore = float64(countMatches(text, s.prefs.NiceToHaveSkills)) / float64(len(s.prefs.NiceToHaveSkills))
	}

	return requiredScore*0.7 + niceScore*0.3
}

// scoreSalaryMatch scores how the advertised salary sits against the
// acceptable range. No salary info is neutral, below the floor is zero, above
// the ceiling is still acceptable, and between floor and target the score
// grows linearly.
func (s *Scorer) scoreSalaryMatch(l *listing.Listing) float64 {
	if l.SalaryMin == nil && l.SalaryMax == nil {
		return 0.5
	}

	var jobSalary float64
	switch {
	case l.SalaryMin != nil && l.SalaryMax != nil:
		jobSalary = float64(*l.SalaryMin+*l.SalaryMax) / 2
	case l.SalaryMin != nil:
		jobSalary = float64(*l.SalaryMin)
	default:
		jobSalary = float64(*l.SalaryMax)
	}

	switch {
	case jobSalary < float64(s.prefs.MinSalary):
		return 0.0
	case jobSalary > float64(s.prefs.MaxSalary):
		return 0.5
	case jobSalary >= float64(s.prefs.TargetSalary):
		return 1.0
	}

	// target == min would divide by zero below; anything at or above the
	// floor is treated as fully satisfied in that case.
	if s.prefs.TargetSalary == s.prefs.MinSalary {
		return 1.0
	}

	return (jobSalary - float64(s.prefs.MinSalary)) / float64(s.prefs.TargetSalary-s.prefs.MinSalary)
}

func (s *Scorer) scoreLocation(l *listing.Listing) float64 {
	if len(s.prefs.PreferredLocations) == 0 {
		return 1.0
	}

	jobLocation := strings.ToLower(l.Location)
	for _, preferred := range s.prefs.PreferredLocations {
		p := strings.ToLower(preferred)
		if strings.Contains(jobLocation, p) || strings.Contains(p, jobLocation) {
			return 1.0
		}
	}

	// not a hard filter, partial credit
	return 0.3
}

func (s *Scorer) scoreCompanyRating(l *listing.Listing) float64 {
	if l.CompanyRating == nil {
		return 0.5
	}
	return math.Min(*l.CompanyRating/5.0, 1.0)
}

func (s *Scorer) scoreRoleSeniority(l *listing.Listing) float64 {
	text := l.CombinedText()
	for _, keyword := range seniorityKeywords[s.prefs.ExperienceLevel] {
		if strings.Contains(text, keyword) {
			return 1.0
		}
	}
	return 0.5
}

// scoreBenefits counts distinct benefit vocabulary terms mentioned in the
// description or the benefits list, maxing out at six.
func (s *Scorer) scoreBenefits(l *listing.Listing) float64 {
	description := strings.ToLower(l.Description)
	benefits := strings.ToLower(strings.Join(l.Benefits, " "))

	count := 0
	for _, keyword := range benefitKeywords {
		if strings.Contains(description, keyword) || strings.Contains(benefits, keyword) {
			count++
		}
	}

	return math.Min(float64(count)/6.0, 1.0)
}

func countMatches(text string, terms []string) int {
	matches := 0
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			matches++
		}
	}
	return matches
}
