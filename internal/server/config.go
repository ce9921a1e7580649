package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/finance-projection/internal/config"
	"github.com/iwvelando/finance-projection/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	CacheTTL      string               `yaml:"cacheTTL"`
	Logging       config.LoggingConfig `yaml:"logging"`

	uploadSizeBytes int64
	cacheTTL        time.Duration
}

func defaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
		cacheTTL:        constants.DefaultCacheTTLSeconds * time.Second,
	}
}

// LoadConfig loads the server configuration from YAML. A missing file or an
// empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes returns the request body limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the request body limit. Non-positive sizes
// are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = strconv.FormatInt(size, 10)
	}
}

// CacheLifetime returns how long a computed plan is memoized. Zero disables
// the cache.
func (c *Config) CacheLifetime() time.Duration {
	return c.cacheTTL
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size

	ttl := strings.TrimSpace(c.CacheTTL)
	if ttl == "" {
		c.cacheTTL = constants.DefaultCacheTTLSeconds * time.Second
		return nil
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return fmt.Errorf("invalid cacheTTL %q: %w", c.CacheTTL, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid cacheTTL %q: must not be negative", c.CacheTTL)
	}
	c.cacheTTL = d
	return nil
}

// ParseSize converts a byte string such as "256K" or "10MB" into bytes. An
// empty string yields the default upload size.
func ParseSize(value string) (int64, error) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if upper == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(upper[:idx]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var shift uint
	switch strings.TrimSpace(upper[idx:]) {
	case "", "B":
	case "K", "KB":
		shift = 10
	case "M", "MB":
		shift = 20
	case "G", "GB":
		shift = 30
	default:
		return 0, fmt.Errorf("unsupported size unit %q", upper[idx:])
	}

	if n > (1<<63-1)>>shift {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n << shift, nil
}
