package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration, populated from the
// environment.
type Config struct {
	// Profile selects a shared-config profile; empty means the default
	// credential chain.
	Profile string `env:"AWSDRILL_PROFILE"`
	// Regions is the list offered at the top of the hierarchy.
	Regions []string `env:"AWSDRILL_REGIONS" envSeparator:","`
	// LogFile receives the JSON log stream; the terminal belongs to the UI.
	LogFile string `env:"AWSDRILL_LOG_FILE"`
	// SSHUser is used for plain SSH sessions to instances without SSM.
	SSHUser string `env:"AWSDRILL_SSH_USER" envDefault:"ec2-user"`

	// Explicit key pair for browsing an account other than the ambient one.
	// Both parts must be set; the session token is optional. Takes
	// precedence over Profile.
	AccessKeyID     string `env:"AWSDRILL_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWSDRILL_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWSDRILL_SESSION_TOKEN"`
}

// HasStaticCredentials reports whether an explicit key pair is configured.
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

var defaultRegions = []string{
	"us-east-1",
	"us-west-2",
	"eu-west-1",
	"ap-southeast-1",
	"ap-northeast-1",
}

// Load parses the configuration from environment variables and fills in
// defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing env config: %w", err)
	}

	if len(cfg.Regions) == 0 {
		cfg.Regions = defaultRegions
	}
	// A configured default region sorts first so it is one keypress away.
	if def := DefaultRegion(); def != "" {
		cfg.Regions = promoteRegion(cfg.Regions, def)
	}

	return cfg, nil
}

// DefaultRegion returns the ambient AWS region, if any.
func DefaultRegion() string {
	if region, ok := os.LookupEnv("AWS_REGION"); ok {
		return region
	}
	if region, ok := os.LookupEnv("AWS_DEFAULT_REGION"); ok {
		return region
	}
	return ""
}

// promoteRegion moves region to the front of the list if present.
func promoteRegion(regions []string, region string) []string {
	for i, r := range regions {
		if r == region && i > 0 {
			out := make([]string, 0, len(regions))
			out = append(out, region)
			out = append(out, regions[:i]...)
			out = append(out, regions[i+1:]...)
			return out
		}
	}
	return regions
}
