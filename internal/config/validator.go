package config

import (
	"fmt"
	"strings"

	werrors "wasmweight/internal/errors"
)

// Validate checks settings that would otherwise fail late, after a
// benchmark batch has already spent its time building.
func (c Config) Validate() error {
	var problems []string

	if c.Window <= 0 {
		problems = append(problems, fmt.Sprintf("window must be positive, got: %d", c.Window))
	}

	switch c.DB.Type {
	case "sqlite", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("db.type must be sqlite or postgres, got: %q", c.DB.Type))
	}

	if c.DB.Type == "postgres" && c.DB.URL == "" {
		problems = append(problems, "db.url is required for postgres")
	}

	if c.Slack.Token != "" && c.Slack.Channel == "" {
		problems = append(problems, "notify.slack.channel is required when notify.slack.token is set")
	}

	if len(problems) > 0 {
		return werrors.Configurationf("configuration validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
