// Package config holds the static site configuration: owner identity, theme
// tokens, contact relay settings and server options. It is loaded once at
// startup and never mutated afterwards.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Relay kinds accepted by Contact.Relay.
const (
	RelayFormSubmit = "formsubmit"
	RelaySMTP       = "smtp"
)

type Config struct {
	Site     Site     `koanf:"site"`
	Theme    Theme    `koanf:"theme"`
	Contact  Contact  `koanf:"contact"`
	SMTP     SMTP     `koanf:"smtp"`
	Server   Server   `koanf:"server"`
	Visitors Visitors `koanf:"visitors"`
	Log      Log      `koanf:"log"`
}

// Site is the owner identity shown across the page.
type Site struct {
	Name      string  `koanf:"name"`
	Headline  string  `koanf:"headline"`
	Bio       string  `koanf:"bio"`
	Location  string  `koanf:"location"`
	Email     string  `koanf:"email"`
	Phone     string  `koanf:"phone"`
	Domain    string  `koanf:"domain"`
	ResumePDF string  `koanf:"resume_pdf"`
	Avatar    string  `koanf:"avatar"`
	Socials   Socials `koanf:"socials"`
}

type Socials struct {
	LinkedIn string `koanf:"linkedin"`
	GitHub   string `koanf:"github"`
	HTBID    string `koanf:"htb_id"`
}

// HTBLink is the Hack The Box profile search URL for the configured ID.
func (s Socials) HTBLink() string {
	return "https://app.hackthebox.com/profile/search?query=" + url.QueryEscape(s.HTBID)
}

// FormSubmitEndpoint is the FormSubmit AJAX endpoint that forwards to email.
func FormSubmitEndpoint(email string) string {
	return "https://formsubmit.co/ajax/" + url.PathEscape(email)
}

// Theme carries CSS class tokens used by the templates.
type Theme struct {
	Primary string `koanf:"primary"`
	Ring    string `koanf:"ring"`
	Chip    string `koanf:"chip"`
}

// Contact configures the outbound relay used by the contact form.
type Contact struct {
	Relay    string        `koanf:"relay"`
	Endpoint string        `koanf:"endpoint"`
	Subject  string        `koanf:"subject"`
	Template string        `koanf:"template"`
	Captcha  bool          `koanf:"captcha"`
	Timeout  time.Duration `koanf:"timeout"`

	// RatePerMinute bounds contact posts per client IP. Zero disables the limit.
	RatePerMinute int `koanf:"rate_per_minute"`
}

// SMTP is only consulted when Contact.Relay is "smtp".
type SMTP struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	To   string `koanf:"to"`
}

type Server struct {
	Addr string `koanf:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `koanf:"mode"`
}

type Visitors struct {
	Enabled   bool          `koanf:"enabled"`
	DBPath    string        `koanf:"db_path"`
	Retention time.Duration `koanf:"retention"`

	// StatsToken guards /api/stats when set. Callers send it as a bearer token.
	StatsToken string `koanf:"stats_token"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns the configuration the site ships with.
func DefaultConfig() *Config {
	return &Config{
		Site: Site{
			Name:      "Cesar K. Diab",
			Headline:  "Your next Cyber Analyst",
			Bio:       "Motivated CS student focused on cybersecurity and digital forensics with hands-on DFIR, crypto, and network analysis.",
			Location:  "San Antonio, Texas",
			Email:     "cesarkdiab@gmail.com",
			Domain:    "cesarkdiab.com",
			ResumePDF: "#",
			Avatar:    "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=640&q=60&auto=format&fit=crop",
			Socials: Socials{
				LinkedIn: "https://www.linkedin.com/in/cesar-diab",
				GitHub:   "https://github.com/thebestsalad",
				HTBID:    "HTB-EB1BCAD53B",
			},
		},
		Theme: Theme{
			Primary: "from-blue-500 to-slate-600",
			Ring:    "focus-visible:ring-blue-500",
			Chip:    "bg-blue-500/10 text-blue-400",
		},
		Contact: Contact{
			Relay:         RelayFormSubmit,
			Endpoint:      FormSubmitEndpoint("cesarkdiab@gmail.com"),
			Subject:       "New message from cesarkdiab.com",
			Template:      "table",
			Captcha:       false,
			Timeout:       10 * time.Second,
			RatePerMinute: 5,
		},
		SMTP: SMTP{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Server: Server{
			Addr: ":8080",
			Mode: "release",
		},
		Visitors: Visitors{
			Enabled:   true,
			DBPath:    "data/portfolio.db",
			Retention: 365 * 24 * time.Hour,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Site.Name == "" {
		return fmt.Errorf("site.name is required")
	}
	if c.Site.Email == "" {
		return fmt.Errorf("site.email is required")
	}

	switch c.Contact.Relay {
	case RelayFormSubmit:
		u, err := url.Parse(c.Contact.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("contact.endpoint %q is not an absolute URL", c.Contact.Endpoint)
		}
	case RelaySMTP:
		if c.SMTP.Host == "" || c.SMTP.Port == "" {
			return fmt.Errorf("smtp.host and smtp.port are required for the smtp relay")
		}
	default:
		return fmt.Errorf("invalid contact.relay %q: must be one of formsubmit, smtp", c.Contact.Relay)
	}

	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("contact.timeout must be positive")
	}
	if c.Contact.RatePerMinute < 0 {
		return fmt.Errorf("contact.rate_per_minute must be non-negative")
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}
	if c.Visitors.Enabled && c.Visitors.DBPath == "" {
		return fmt.Errorf("visitors.db_path is required when visitor tracking is enabled")
	}
	return nil
}
