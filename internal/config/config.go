package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the provider connection parameters for a single invocation.
type Config struct {
	// Region is the provider region the alarm lives in. Required.
	Region string `yaml:"region"`
	// EndpointURL optionally points the client at a non-default API endpoint.
	EndpointURL string `yaml:"endpoint_url"`
	// Profile names a shared credentials profile to load.
	Profile string `yaml:"profile"`
	// AccessKey and SecretKey form an explicit credential pair. When both are
	// empty the SDK's default credential chain applies.
	AccessKey string `yaml:"access_key"`
	// SecretKey is the secret half of the credential pair.
	SecretKey string `yaml:"secret_key"`
	// SessionToken is the optional security token for temporary credentials.
	SessionToken string `yaml:"session_token"`
	// ValidateCerts controls TLS certificate verification. Defaults to true.
	ValidateCerts bool `yaml:"validate_certs"`
}

// Overrides carries flag-level connection values. Non-empty fields take
// precedence over both the environment and the settings file.
type Overrides struct {
	// Region overrides the provider region.
	Region string
	// EndpointURL overrides the API endpoint.
	EndpointURL string
	// Profile overrides the shared credentials profile name.
	Profile string
	// AccessKey overrides the access key half of the credential pair.
	AccessKey string
	// SecretKey overrides the secret key half of the credential pair.
	SecretKey string
	// SessionToken overrides the security token.
	SessionToken string
	// NoValidateCerts disables TLS certificate verification when true.
	NoValidateCerts bool
}

// DefaultConfigFilename is the settings file consulted when no --config path is given.
const DefaultConfigFilename = "alarm-reconciler-settings.yaml"

// Environment fallback chains, first non-empty value wins.
// The EC2_* names are kept for compatibility with older tooling.
//
//nolint:gochecknoglobals // Fixed lookup order shared by every invocation.
var (
	regionEnvVars       = []string{"AWS_REGION", "AWS_DEFAULT_REGION", "EC2_REGION"}
	accessKeyEnvVars    = []string{"AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY", "EC2_ACCESS_KEY"}
	secretKeyEnvVars    = []string{"AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY", "EC2_SECRET_KEY"}
	sessionTokenEnvVars = []string{"AWS_SESSION_TOKEN", "AWS_SECURITY_TOKEN", "EC2_SECURITY_TOKEN"}
	profileEnvVars      = []string{"AWS_PROFILE"}
)

var (
	// ErrRegionRequired is returned when no region can be resolved from any source.
	ErrRegionRequired = errors.New("region must be provided via flag, environment or settings file")
	// errCredentialPairIncomplete is returned when only half of a credential pair is supplied.
	errCredentialPairIncomplete = errors.New("access key and secret key must be provided together")
)

// Default returns the configuration used before any file, environment or
// flag source is applied.
func Default() *Config {
	return &Config{
		ValidateCerts: true,
	}
}

// Resolve builds the effective connection configuration for one invocation.
// Precedence, weakest first: settings file, environment variables, flag
// overrides. The result is validated before being returned.
func Resolve(path string, overrides *Overrides) (*Config, error) {
	cfg := Default()

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	cfg.applyOverrides(overrides)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PreloadEnv loads variables from a dotenv file into the process environment
// before fallback resolution runs. An explicit path must exist; the implicit
// ".env" is loaded only when present.
func PreloadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}

		return nil
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}

// Validate checks the resolved configuration for required fields and formatting.
func Validate(cfg *Config) error {
	if cfg.Region == "" {
		return ErrRegionRequired
	}

	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return errCredentialPairIncomplete
	}

	if cfg.EndpointURL == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.EndpointURL); err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	return nil
}

// loadFile merges settings from a YAML file into cfg. An explicitly named
// file must exist; the default filename is consulted only when present.
func loadFile(cfg *Config, path string) error {
	required := path != ""
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}

	return nil
}

// applyEnvironment fills fields from their environment fallback chains.
// Environment values take precedence over the settings file.
func (c *Config) applyEnvironment() {
	if v := firstEnv(regionEnvVars); v != "" {
		c.Region = v
	}

	if v := firstEnv(accessKeyEnvVars); v != "" {
		c.AccessKey = v
	}

	if v := firstEnv(secretKeyEnvVars); v != "" {
		c.SecretKey = v
	}

	if v := firstEnv(sessionTokenEnvVars); v != "" {
		c.SessionToken = v
	}

	if v := firstEnv(profileEnvVars); v != "" {
		c.Profile = v
	}
}

// applyOverrides applies non-empty flag values on top of everything else.
func (c *Config) applyOverrides(overrides *Overrides) {
	if overrides == nil {
		return
	}

	if overrides.Region != "" {
		c.Region = overrides.Region
	}

	if overrides.EndpointURL != "" {
		c.EndpointURL = overrides.EndpointURL
	}

	if overrides.Profile != "" {
		c.Profile = overrides.Profile
	}

	if overrides.AccessKey != "" {
		c.AccessKey = overrides.AccessKey
	}

	if overrides.SecretKey != "" {
		c.SecretKey = overrides.SecretKey
	}

	if overrides.SessionToken != "" {
		c.SessionToken = overrides.SessionToken
	}

	if overrides.NoValidateCerts {
		c.ValidateCerts = false
	}
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(names []string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}

	return ""
}
