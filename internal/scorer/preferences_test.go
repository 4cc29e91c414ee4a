package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsValidate(t *testing.T) {
	valid := Weights{
		CriterionKeywordMatch:       0.4,
		CriterionSalaryMatch:        0.2,
		CriterionLocationPreference: 0.1,
		CriterionCompanyRating:      0.1,
		CriterionRoleSeniority:      0.1,
		CriterionBenefits:           0.1,
	}
	require.NoError(t, valid.Validate())

	t.Run("missing criterion", func(t *testing.T) {
		w := Weights{CriterionKeywordMatch: 1.0}
		assert.ErrorContains(t, w.Validate(), "missing scoring weight")
	})

	t.Run("negative weight", func(t *testing.T) {
		w := Weights{}
		for k, v := range valid {
			w[k] = v
		}
		w[CriterionBenefits] = -0.1
		w[CriterionKeywordMatch] = 0.6
		assert.ErrorContains(t, w.Validate(), "negative")
	})

	t.Run("unknown criterion", func(t *testing.T) {
		w := Weights{}
		for k, v := range valid {
			w[k] = v
		}
		w["astrology"] = 0.0
		assert.ErrorContains(t, w.Validate(), "unknown scoring criterion")
	})

	t.Run("bad sum", func(t *testing.T) {
		w := Weights{}
		for k, v := range valid {
			w[k] = v / 2
		}
		assert.ErrorContains(t, w.Validate(), "must sum to 1.0")
	})

	t.Run("sum within tolerance", func(t *testing.T) {
		w := Weights{}
		for k, v := range valid {
			w[k] = v
		}
		w[CriterionBenefits] = 0.105
		assert.NoError(t, w.Validate())
	})
}

func TestPreferencesValidate(t *testing.T) {
	p := &Preferences{}
	require.NoError(t, p.Validate())
	assert.Equal(t, ExperienceMid, p.ExperienceLevel, "empty experience level defaults to mid")

	p = &Preferences{ExperienceLevel: ExperienceSenior}
	assert.NoError(t, p.Validate())

	p = &Preferences{ExperienceLevel: "principal"}
	assert.ErrorContains(t, p.Validate(), "invalid experience_level")
}
