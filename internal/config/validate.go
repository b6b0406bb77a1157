package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if len(c.Auth.Roles()) == 0 {
		return fmt.Errorf("auth.coordinator_roles must name at least one role")
	}

	if c.hasPartialHMPPSAuth() {
		return fmt.Errorf("hmpps_auth: base_url, client_id and client_secret must be set together")
	}

	if err := c.Edit.validate(); err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	if c.Redis.URL != "" && c.Redis.NameTTL <= 0 {
		return fmt.Errorf("redis.name_ttl must be > 0 (got %v)", c.Redis.NameTTL)
	}

	return nil
}

func (c *Config) hasPartialHMPPSAuth() bool {
	set := 0
	for _, v := range []string{c.HMPPSAuth.BaseURL, c.HMPPSAuth.ClientID, c.HMPPSAuth.ClientSecret} {
		if v != "" {
			set++
		}
	}
	return set > 0 && set < 3
}

func (e *EditConfig) validate() error {
	if e.LookupConcurrency <= 0 {
		return fmt.Errorf("lookup_concurrency must be > 0 (got %d)", e.LookupConcurrency)
	}
	if strings.TrimSpace(e.NoneMessage) == "" {
		return fmt.Errorf("none_message must not be blank")
	}

	loc, err := time.LoadLocation(e.TimeZone)
	if err != nil {
		return fmt.Errorf("time_zone: %w", err)
	}
	e.Location = loc

	return nil
}
