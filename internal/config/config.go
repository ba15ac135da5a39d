package config

import (
	"fmt"
	"strings"
)

// Config holds the site-wide settings decoded from portfolio.yaml plus
// environment overrides.
type Config struct {
	SiteTitle       string `mapstructure:"siteTitle"`
	SiteDescription string `mapstructure:"siteDescription"`
	Author          string `mapstructure:"author"`
	BaseURL         string `mapstructure:"baseURL"`
	ContentDir      string `mapstructure:"contentDir"`
	LayoutsDir      string `mapstructure:"layoutsDir"`
	StaticDir       string `mapstructure:"staticDir"`
	OutputDir       string `mapstructure:"outputDir"`
	PostsPerPage    int    `mapstructure:"postsPerPage"`
}

// Validate checks the decoded config and normalizes the base URL.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir must not be empty")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("contentDir must not be empty")
	}
	if c.PostsPerPage <= 0 {
		return fmt.Errorf("postsPerPage must be positive, got %d", c.PostsPerPage)
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	return nil
}
