// Package config holds the validated, strongly typed configuration loaded
// once at startup. A missing required section or an invalid weight set is a
// fatal error raised before any network or ledger access.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"jobpilot/internal/documents"
	"jobpilot/internal/scorer"
)

type Config struct {
	ScoreThreshold float64             `mapstructure:"score_threshold"`
	ScoringWeights scorer.Weights      `mapstructure:"scoring_weights"`
	Preferences    *scorer.Preferences `mapstructure:"preferences"`
	Documents      *documents.Config   `mapstructure:"documents"`
	JobSearch      *JobSearch          `mapstructure:"job_search"`
	Application    *Application        `mapstructure:"application"`
	RateLimiting   *RateLimiting       `mapstructure:"rate_limiting"`
	Source         *Source             `mapstructure:"source"`
	Submitter      *Submitter          `mapstructure:"submitter"`
}

type JobSearch struct {
	Keywords  []string `mapstructure:"keywords"`
	Locations []string `mapstructure:"locations"`
	Boards    []string `mapstructure:"job_boards"`
}

type Application struct {
	LedgerFile            string `mapstructure:"ledger_file"`
	MaxApplicationsPerDay int    `mapstructure:"max_applications_per_day"`
	DryRun                bool   `mapstructure:"dry_run"`
	AutoApply             bool   `mapstructure:"auto_apply"`
}

type RateLimiting struct {
	// seconds, matching the config file units
	DelayBetweenApplications int `mapstructure:"delay_between_applications"`
	DelayBetweenBoards       int `mapstructure:"delay_between_boards"`
}

func (r *RateLimiting) ApplicationDelay() time.Duration {
	return time.Duration(r.DelayBetweenApplications) * time.Second
}

func (r *RateLimiting) BoardDelay() time.Duration {
	return time.Duration(r.DelayBetweenBoards) * time.Second
}

type Source struct {
	Mode string `mapstructure:"mode"` // static or file
	File string `mapstructure:"file"`
}

type Submitter struct {
	Mode      string `mapstructure:"mode"` // simulated or board
	Endpoint  string `mapstructure:"endpoint"`
	TokenFile string `mapstructure:"token-file"`
}

// Load unmarshals the configuration from the prepared viper instance, applies
// defaults, and validates it.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault("score_threshold", 7.0)
	v.SetDefault("application.ledger_file", "jobpilot.db")
	v.SetDefault("application.max_applications_per_day", 10)
	v.SetDefault("application.auto_apply", true)
	v.SetDefault("rate_limiting.delay_between_applications", 30)
	v.SetDefault("rate_limiting.delay_between_boards", 5)
	v.SetDefault("source.mode", "static")
	v.SetDefault("submitter.mode", "simulated")

	var cfg *Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is empty")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JobSearch == nil {
		c.JobSearch = &JobSearch{}
	}
	if c.Application == nil {
		c.Application = &Application{MaxApplicationsPerDay: 10, AutoApply: true, LedgerFile: "jobpilot.db"}
	}
	if c.RateLimiting == nil {
		c.RateLimiting = &RateLimiting{DelayBetweenApplications: 30, DelayBetweenBoards: 5}
	}
	if c.Source == nil {
		c.Source = &Source{Mode: "static"}
	}
	if c.Submitter == nil {
		c.Submitter = &Submitter{Mode: "simulated"}
	}

	if len(c.ScoringWeights) == 0 {
		return fmt.Errorf("scoring_weights section is required")
	}
	if err := c.ScoringWeights.Validate(); err != nil {
		return err
	}

	if c.Preferences == nil {
		return fmt.Errorf("preferences section is required")
	}
	if err := c.Preferences.Validate(); err != nil {
		return err
	}

	if c.Documents == nil {
		return fmt.Errorf("documents section is required")
	}

	if c.ScoreThreshold < 0 || c.ScoreThreshold > 10 {
		return fmt.Errorf("score_threshold must be within [0, 10], got %v", c.ScoreThreshold)
	}

	if c.Application.MaxApplicationsPerDay < 1 {
		return fmt.Errorf("application.max_applications_per_day must be at least 1")
	}

	switch c.Source.Mode {
	case "static":
	case "file":
		if c.Source.File == "" {
			return fmt.Errorf("source.file is required when source.mode is file")
		}
	default:
		return fmt.Errorf("unsupported source mode: %s", c.Source.Mode)
	}

	switch c.Submitter.Mode {
	case "simulated":
	case "board":
		if c.Submitter.Endpoint == "" {
			return fmt.Errorf("submitter.endpoint is required when submitter.mode is board")
		}
	default:
		return fmt.Errorf("unsupported submitter mode: %s", c.Submitter.Mode)
	}

	return nil
}
