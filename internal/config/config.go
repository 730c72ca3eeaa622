// Package config provides centralized configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigFile is read when no config file is given explicitly and the file exists.
const DefaultConfigFile = ".github/backport.yaml"

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub    GitHubConfig
	EventPath string
	LogLevel  string
	Products  []ProductConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token      string
	Domain     string
	APIURL     string
	Repository string
}

// ProductConfig maps a top-level documentation folder to its versioned copy.
type ProductConfig struct {
	// Folder is the unversioned documentation folder (e.g., "vcluster")
	Folder string `mapstructure:"folder"`

	// VersionedFolder holds one "version-<v>" directory per release
	VersionedFolder string `mapstructure:"versioned_folder"`

	// VersionPrefixes select this product for versions starting with any of them
	VersionPrefixes []string `mapstructure:"version_prefixes"`

	// VersionSuffix is appended to the version in the versioned directory name
	VersionSuffix string `mapstructure:"version_suffix"`

	// Default marks the product used when no prefix matches
	Default bool `mapstructure:"default"`
}

// DefaultProducts returns the built-in docs layout: vcluster 0.x/1.x and platform for everything else.
func DefaultProducts() []ProductConfig {
	return []ProductConfig{
		{
			Folder:          "platform",
			VersionedFolder: "platform_versioned_docs",
			Default:         true,
		},
		{
			Folder:          "vcluster",
			VersionedFolder: "vcluster_versioned_docs",
			VersionPrefixes: []string{"0.", "1."},
			VersionSuffix:   ".0",
		},
	}
}

// LoadConfig initializes and loads configuration from environment variables and,
// when present, a YAML config file. An empty configFile falls back to DefaultConfigFile.
func LoadConfig(configFile string) (*Config, error) {
	// Initialize Viper; every key is bound explicitly so derived names like
	// EVENT_PATH never shadow the runner's variables
	v := viper.New()

	// Map specific environment variables; the action input takes precedence
	v.BindEnv("github.token", "INPUT_GITHUB_TOKEN", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("github.api_url", "GITHUB_API_URL")
	v.BindEnv("github.repository", "GITHUB_REPOSITORY")
	v.BindEnv("event_path", "GITHUB_EVENT_PATH")
	v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("log_level", "info")

	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	// Create config structure
	config := &Config{
		GitHub: GitHubConfig{
			Token:      v.GetString("github.token"),
			Domain:     v.GetString("github.domain"),
			APIURL:     v.GetString("github.api_url"),
			Repository: v.GetString("github.repository"),
		},
		EventPath: v.GetString("event_path"),
		LogLevel:  strings.ToLower(v.GetString("log_level")),
	}
	if config.GitHub.Domain == "" {
		config.GitHub.Domain = "github.com"
	}

	if err := v.UnmarshalKey("products", &config.Products); err != nil {
		return nil, fmt.Errorf("failed to parse products: %w", err)
	}
	if len(config.Products) == 0 {
		config.Products = DefaultProducts()
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// APIBaseURL returns the REST endpoint for the configured host. GITHUB_API_URL wins
// over the domain so the action works unchanged on GitHub Enterprise runners.
func (c GitHubConfig) APIBaseURL() string {
	if c.APIURL != "" {
		return strings.TrimSuffix(c.APIURL, "/") + "/"
	}
	domain := c.Domain
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// OwnerRepo splits the repository into owner and name.
func (c GitHubConfig) OwnerRepo() (string, string, error) {
	parts := strings.Split(c.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s, expected format: owner/repo", c.Repository)
	}
	return parts[0], parts[1], nil
}

// validateConfig ensures that the product table is usable.
func validateConfig(config *Config) error {
	var problems []string

	defaults := 0
	seen := make(map[string]bool)
	for i, p := range config.Products {
		if p.Folder == "" {
			problems = append(problems, fmt.Sprintf("products[%d]: folder is required", i))
		}
		if p.VersionedFolder == "" {
			problems = append(problems, fmt.Sprintf("products[%d]: versioned_folder is required", i))
		}
		if seen[p.Folder] {
			problems = append(problems, fmt.Sprintf("products[%d]: duplicate folder %q", i, p.Folder))
		}
		seen[p.Folder] = true
		if p.Default {
			defaults++
		}
	}
	if defaults != 1 {
		problems = append(problems, fmt.Sprintf("exactly one default product required, found %d", defaults))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// ValidateGitHubConfig validates the settings needed to talk to the GitHub API.
func ValidateGitHubConfig(config *Config) error {
	var missingVars []string

	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}
	if config.GitHub.Repository == "" {
		missingVars = append(missingVars, "GITHUB_REPOSITORY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if _, _, err := config.GitHub.OwnerRepo(); err != nil {
		return err
	}

	return nil
}
