package content

import (
	"github.com/thebestsalad/portfolio/internal/config"
)

// CheckResult is one startup self-check.
type CheckResult struct {
	Name string
	Pass bool
}

// Check runs the diagnostic self-checks over the catalog and the site
// configuration. Failures are informational; nothing here stops the server.
func (c *Catalog) Check(cfg *config.Config) []CheckResult {
	results := []CheckResult{
		{Name: "Education defined", Pass: c.Education.School != "" && c.Education.Highlights != nil},
		{Name: "Project slugs unique", Pass: len(c.DuplicateSlugs()) == 0},
		{Name: "Social links present", Pass: cfg.Site.Socials.LinkedIn != "" && cfg.Site.Socials.GitHub != ""},
		{Name: "Awards clickable", Pass: awardsClickable(c.Awards)},
		{Name: "Skills groups present", Pass: len(c.Skills) > 0},
		{Name: "Contact form configured", Pass: contactConfigured(cfg)},
		{Name: "Testimonials exist", Pass: len(c.Testimonials) >= 1},
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}

func awardsClickable(awards []Award) bool {
	for _, a := range awards {
		if a.Title == "" || a.URL == "" {
			return false
		}
	}
	return true
}

func contactConfigured(cfg *config.Config) bool {
	switch cfg.Contact.Relay {
	case config.RelayFormSubmit:
		return cfg.Contact.Endpoint != ""
	case config.RelaySMTP:
		return cfg.SMTP.Host != ""
	}
	return false
}
