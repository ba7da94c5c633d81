// Package config provides configuration management for fsj.
//
// The command line only selects the operation and its file; everything else
// comes from environment variables or from the YAML file named by FSJ_CONFIG.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/hooks"
	"gopkg.in/yaml.v3"
)

// FileEnvVar names the environment variable holding the optional config file path.
const FileEnvVar = "FSJ_CONFIG"

var (
	// ErrInvalidConcurrency is returned when UPLOAD_CONCURRENCY is out of range.
	ErrInvalidConcurrency = errors.New("invalid upload concurrency")
	// ErrInvalidRateLimit is returned when STORAGE_RATE_LIMIT is not positive.
	ErrInvalidRateLimit = errors.New("invalid storage rate limit")
	// ErrInvalidS3Config is returned when the S3 block breaks AWS naming rules.
	ErrInvalidS3Config = errors.New("invalid S3 configuration")
	// ErrInvalidDebugLevel is returned for an unknown DEBUGLEVEL.
	ErrInvalidDebugLevel = errors.New("invalid debug level")
	// ErrNoStorage is returned when FETCH_BEFORE_JOIN is set without a storage backend.
	ErrNoStorage = errors.New("no storage defined")
)

// S3Config holds the configuration for S3 storage backend.
type S3Config struct {
	Endpoint   string `env:"S3ENDPOINT"            env-default:""   yaml:"endpoint"`
	BucketName string `env:"S3BUCKETNAME"          env-default:""   yaml:"bucketName"`
	BucketPath string `env:"S3BUCKETPATH"          env-default:""   yaml:"bucketPath"`
	Region     string `env:"S3REGION"              env-default:""   yaml:"region"`
	AccessKey  string `env:"AWS_ACCESS_KEY_ID"     yaml:"accessKey"`
	SecretKey  string `env:"AWS_SECRET_ACCESS_KEY" yaml:"secretKey"`
}

// Config holds the application configuration.
type Config struct {
	DebugLevel        string      `env:"DEBUGLEVEL"         env-default:"info"  yaml:"debugLevel"`
	NoLogTime         bool        `env:"NOLOGTIME"          env-default:"false" yaml:"noLogTime"`
	NoBanner          bool        `env:"NOBANNER"           env-default:"false" yaml:"noBanner"`
	LocalPath         string      `env:"LOCALPATH"          env-default:""      yaml:"localpath"`
	FetchBeforeJoin   bool        `env:"FETCH_BEFORE_JOIN"  env-default:"false" yaml:"fetchBeforeJoin"`
	UploadConcurrency int         `env:"UPLOAD_CONCURRENCY" env-default:"4"     yaml:"uploadConcurrency"`
	StorageRateLimit  float64     `env:"STORAGE_RATE_LIMIT" env-default:"10"    yaml:"storageRateLimit"`
	Hooks             hooks.Hooks `yaml:"hooks"`
	S3cfg             S3Config    `yaml:"s3cfg"`
}

// Load reads the configuration from the file named by FSJ_CONFIG when set,
// from the environment otherwise.
func Load() (*Config, error) {
	if path := os.Getenv(FileEnvVar); path != "" {
		return NewConfigFromFile(path)
	}
	return NewConfigFromEnv()
}

// NewConfigFromFile returns a new Config struct from the given file.
// Environment variables override values of the file.
func NewConfigFromFile(filePath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(filePath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// NewConfigFromEnv returns a new Config struct from the environment variables.
func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}

// IsS3ConfigValid returns true if the S3 config is usable.
func (c *Config) IsS3ConfigValid() bool {
	return len(c.S3cfg.BucketName) > 0 && len(c.S3cfg.Region) > 0
}

// IsLocalConfigValid returns true if a local storage directory is configured.
func (c *Config) IsLocalConfigValid() bool {
	return len(c.LocalPath) > 0
}

// HasStorage returns true if chunk sets are published to a storage backend.
func (c *Config) HasStorage() bool {
	return c.IsS3ConfigValid() || c.IsLocalConfigValid()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.DebugLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDebugLevel, c.DebugLevel)
	}
	if c.UploadConcurrency < 1 || c.UploadConcurrency > constants.MaxUploadConcurrency {
		return fmt.Errorf("%w: %d (expected 1..%d)", ErrInvalidConcurrency, c.UploadConcurrency, constants.MaxUploadConcurrency)
	}
	if c.StorageRateLimit <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRateLimit, c.StorageRateLimit)
	}
	if c.FetchBeforeJoin && !c.HasStorage() {
		return fmt.Errorf("%w: FETCH_BEFORE_JOIN requires LOCALPATH or an S3 bucket", ErrNoStorage)
	}
	return c.validateS3()
}

func (c *Config) validateS3() error {
	if c.S3cfg.BucketName == "" && c.S3cfg.Region == "" {
		return nil
	}
	if n := len(c.S3cfg.BucketName); n < constants.S3BucketNameMinLength || n > constants.S3BucketNameMaxLength {
		return fmt.Errorf("%w: bucket name must be %d..%d characters, got %d",
			ErrInvalidS3Config, constants.S3BucketNameMinLength, constants.S3BucketNameMaxLength, n)
	}
	if n := len(c.S3cfg.Region); n < constants.S3RegionMinLength || n > constants.S3RegionMaxLength {
		return fmt.Errorf("%w: region must be %d..%d characters, got %d",
			ErrInvalidS3Config, constants.S3RegionMinLength, constants.S3RegionMaxLength, n)
	}
	return nil
}

func (c *Config) String() string {
	cyaml, err := yaml.Marshal(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return string(cyaml)
}

// Redacted returns a YAML representation of the config with sensitive fields redacted.
func (c *Config) Redacted() string {
	redacted := *c
	if redacted.S3cfg.AccessKey != "" {
		redacted.S3cfg.AccessKey = constants.RedactedValue
	}
	if redacted.S3cfg.SecretKey != "" {
		redacted.S3cfg.SecretKey = constants.RedactedValue
	}
	cyaml, err := yaml.Marshal(redacted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return string(cyaml)
}

// Usage prints the environment variables understood by the config to w.
func (c *Config) Usage(w io.Writer) {
	header := "Environment variables (or keys of the YAML file named by " + FileEnvVar + "):"
	f := cleanenv.FUsage(w, c, &header)
	f()
}
