package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: PORTFOLIO_SERVER__ADDR sets server.addr.
const EnvPrefix = "PORTFOLIO_"

// DefaultPath is read when no --config flag is given. A missing file is fine.
const DefaultPath = "portfolio.yaml"

// Load starts from DefaultConfig, overlays the YAML file at path if it
// exists, then overlays PORTFOLIO_* environment variables. The contact
// endpoint is derived from site.email when not set explicitly.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	// The relay follows site.email unless an endpoint was given.
	if !k.Exists("contact.endpoint") {
		cfg.Contact.Endpoint = FormSubmitEndpoint(cfg.Site.Email)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
