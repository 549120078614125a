// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/warmonitor/internal/logging"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q validation (value: %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	if err := c.validateUpstream(); err != nil {
		return err
	}
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateSecondary(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateCursor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateUpstream() error {
	return validateHTTPURL(c.Upstream.BaseURL, "UPSTREAM_BASE_URL")
}

func (c *Config) validateSteam() error {
	if !c.Steam.Enabled {
		return nil
	}
	if c.Steam.AppID == 0 {
		return fmt.Errorf("STEAM_APP_ID is required when STEAM_ENABLED=true")
	}
	return validateHTTPURL(c.Steam.BaseURL, "STEAM_BASE_URL")
}

func (c *Config) validateSecondary() error {
	if !c.Secondary.Enabled {
		return nil
	}
	if c.Secondary.Token == "" {
		return fmt.Errorf("SECONDARY_TOKEN is required when SECONDARY_ENABLED=true")
	}
	return validateHTTPURL(c.Secondary.BaseURL, "SECONDARY_BASE_URL")
}

func (c *Config) validatePipeline() error {
	if !slices.Contains(c.Pipeline.Locales, c.Pipeline.CanonicalLocale) {
		return fmt.Errorf("CANONICAL_LOCALE %q must be one of LOCALES %v", c.Pipeline.CanonicalLocale, c.Pipeline.Locales)
	}
	if c.Pipeline.StaleAfter < c.Pipeline.Interval {
		return fmt.Errorf("STALE_AFTER (%s) must not be shorter than POLL_INTERVAL (%s)", c.Pipeline.StaleAfter, c.Pipeline.Interval)
	}
	return nil
}

func (c *Config) validateCursor() error {
	if !c.Cursor.InMemory && c.Cursor.Dir == "" {
		return fmt.Errorf("CURSOR_DIR is required unless CURSOR_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got: %s", c.Logging.Level)
	}
	return nil
}

// validateHTTPURL accepts an http(s) base URL without path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, u.Path)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, u.RawQuery)
	}
	return nil
}
