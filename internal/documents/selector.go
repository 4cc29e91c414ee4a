// Package documents picks the resume and cover letter to attach to an
// application by classifying a listing with fixed keyword sets. Selection is
// pure: it reads the configured catalog and never mutates it. A missing
// resume is a soft outcome the caller turns into a skip, not an error.
package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

// Resume categories, checked in this priority order.
var resumeCategories = []struct {
	name     string
	keywords []string
}{
	{"backend", []string{"backend", "server", "api", "django", "flask", "fastapi"}},
	{"frontend", []string{"frontend", "react", "vue", "angular", "javascript", "typescript"}},
	{"fullstack", []string{"fullstack", "full stack", "full-stack"}},
	{"data_science", []string{"data scientist", "machine learning", "ml", "ai", "data analysis"}},
}

var startupKeywords = []string{"startup", "early stage", "series a", "series b"}

var enterpriseKeywords = []string{"enterprise", "fortune 500", "large company"}

// Config describes the document catalog: where files live and how categories
// map onto them.
type Config struct {
	ResumesDir         string            `mapstructure:"resumes_dir"`
	CoverLettersDir    string            `mapstructure:"cover_letters_dir"`
	DefaultResume      string            `mapstructure:"default_resume"`
	ResumeMapping      map[string]string `mapstructure:"resume_mapping"`
	CoverLetterMapping map[string]string `mapstructure:"cover_letter_mapping"`
}

type Selector struct {
	cfg    *Config
	logger *zap.Logger

	// exists is swapped in tests
	exists func(path string) bool
}

func NewSelector(cfg *Config, logger *zap.Logger) *Selector {
	return &Selector{
		cfg:    cfg,
		logger: logger,
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Select returns the resume and cover letter paths for a listing. Either may
// be empty: an empty resume means the listing cannot be applied to.
func (s *Selector) Select(l *listing.Listing) (resume, coverLetter string) {
	return s.selectResume(l), s.selectCoverLetter(l)
}

func (s *Selector) selectResume(l *listing.Listing) string {
	text := l.CombinedText()

	for _, category := range resumeCategories {
		if !containsAny(text, category.keywords) {
			continue
		}
		file := s.cfg.ResumeMapping[category.name]
		if file == "" {
			continue
		}
		path := filepath.Join(s.cfg.ResumesDir, file)
		if s.exists(path) {
			return path
		}
	}

	defaultPath := filepath.Join(s.cfg.ResumesDir, s.cfg.DefaultResume)
	if s.cfg.DefaultResume != "" && s.exists(defaultPath) {
		return defaultPath
	}

	s.logger.Warn("no resume found for listing",
		zap.String("url", l.URL),
		zap.String("resumes_dir", s.cfg.ResumesDir),
	)
	return ""
}

func (s *Selector) selectCoverLetter(l *listing.Listing) string {
	description := strings.ToLower(l.Description)

	category := "generic"
	switch {
	case containsAny(description, startupKeywords):
		category = "startup"
	case containsAny(description, enterpriseKeywords):
		category = "enterprise"
	}

	file := s.cfg.CoverLetterMapping[category]
	if file == "" {
		file = "cover_letter_generic.pdf"
	}

	path := filepath.Join(s.cfg.CoverLettersDir, file)
	if s.exists(path) {
		return path
	}

	s.logger.Warn("no cover letter found for listing",
		zap.String("url", l.URL),
		zap.String("cover_letters_dir", s.cfg.CoverLettersDir),
	)
	return ""
}

// Validate reports catalog problems found at startup. Callers treat them as
// warnings: a missing cover letter never blocks a run, and a missing resume
// surfaces per listing as a skip.
func (s *Selector) Validate() []error {
	var errs []error

	if !s.exists(s.cfg.ResumesDir) {
		errs = append(errs, fmt.Errorf("resumes directory not found: %s", s.cfg.ResumesDir))
	}
	if !s.exists(s.cfg.CoverLettersDir) {
		errs = append(errs, fmt.Errorf("cover letters directory not found: %s", s.cfg.CoverLettersDir))
	}

	defaultPath := filepath.Join(s.cfg.ResumesDir, s.cfg.DefaultResume)
	if !s.exists(defaultPath) {
		errs = append(errs, fmt.Errorf("default resume not found: %s", defaultPath))
	}

	return errs
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
