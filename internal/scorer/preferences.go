package scorer

import (
	"fmt"
	"math"
	"slices"
)

// Experience levels accepted in preferences.
const (
	ExperienceJunior = "junior"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
)

// weightSumTolerance is the allowed floating point slack around 1.0.
const weightSumTolerance = 0.01

// Weights maps criterion name to its share of the final score.
type Weights map[string]float64

// Validate checks that exactly the six required criteria are present, every
// weight is non-negative, and the weights sum to 1.0 within tolerance.
func (w Weights) Validate() error {
	sum := 0.0
	for _, criterion := range Criteria {
		weight, ok := w[criterion]
		if !ok {
			return fmt.Errorf("missing scoring weight for criterion %q", criterion)
		}
		if weight < 0 {
			return fmt.Errorf("scoring weight for criterion %q is negative: %v", criterion, weight)
		}
		sum += weight
	}

	for criterion := range w {
		if !slices.Contains(Criteria, criterion) {
			return fmt.Errorf("unknown scoring criterion %q", criterion)
		}
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}

	return nil
}

// Preferences holds the user-supplied matching parameters. Loaded once at
// startup and immutable for the run.
type Preferences struct {
	RequiredSkills     []string `mapstructure:"required_skills"`
	NiceToHaveSkills   []string `mapstructure:"nice_to_have_skills"`
	TargetSalary       int      `mapstructure:"target_salary"`
	MinSalary          int      `mapstructure:"min_salary"`
	MaxSalary          int      `mapstructure:"max_salary"`
	PreferredLocations []string `mapstructure:"preferred_locations"`
	ExperienceLevel    string   `mapstructure:"experience_level"`
}

func (p *Preferences) Validate() error {
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceMid
	}

	switch p.ExperienceLevel {
	case ExperienceJunior, ExperienceMid, ExperienceSenior:
	default:
		return fmt.Errorf("invalid experience_level %q: must be one of junior, mid, senior", p.ExperienceLevel)
	}

	return nil
}
