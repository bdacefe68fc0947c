package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// TokenEnvVar is consulted when no token is configured.
	TokenEnvVar = "GITHUB_TOKEN"

	// TokenPlaceholder is the value shipped in sample configs; it means "not configured".
	TokenPlaceholder = "YOUR_GITHUB_TOKEN_HERE"
)

// ErrMissingToken is returned when neither configuration nor environment yield a token.
var ErrMissingToken = errors.New("no GitHub token found")

// Settings is the optional file-based configuration.
type Settings struct {
	Token  string `yaml:"token"`   // Inline, ${ENV_VAR}, or file path
	Branch string `yaml:"branch"`  // Target branch, defaults to main
	APIURL string `yaml:"api_url"` // REST API base URL, for GitHub Enterprise
	WebURL string `yaml:"web_url"` // Browser host printed in the summary
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = ResolveToken(settings.Token)
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".ghpush.yaml",
		".ghpush.yml",
		"ghpush.yaml",
		"ghpush.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ResolveCredential picks the token to authenticate with. A configured value
// wins; the placeholder and the empty string fall back to the environment.
func ResolveCredential(configured string, lookupEnv func(string) string) (string, error) {
	if configured != "" && configured != TokenPlaceholder {
		return configured, nil
	}
	if token := lookupEnv(TokenEnvVar); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("%w: set the %s environment variable, --token, or a config file", ErrMissingToken, TokenEnvVar)
}
