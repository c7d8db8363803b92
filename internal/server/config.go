package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/home-cost-calculator/internal/config"
	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config is the contents of server-config.yaml.
type Config struct {
	Address string `yaml:"address"`
	// MaxBodySize caps every request body, from a single keystroke on
	// /api/field to a scenario file upload. Accepts units such as "64K".
	MaxBodySize string               `yaml:"maxBodySize"`
	Logging     config.LoggingConfig `yaml:"logging"`
	// FixedLoanTerms restricts breakdown requests to mortgage.LoanTermChoices.
	FixedLoanTerms bool `yaml:"fixedLoanTerms"`

	bodyLimit int64
}

// LoadConfig reads the server settings at path. A missing file is not an
// error: the calculator API runs on ":8080" with a 256K body limit and free
// loan term entry.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:   constants.DefaultServerAddress,
		bodyLimit: constants.DefaultMaxUploadSizeBytes,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}

	if cfg.Address == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	limit, err := ParseSize(cfg.MaxBodySize)
	if err != nil {
		return nil, fmt.Errorf("maxBodySize: %w", err)
	}
	if limit > 0 {
		cfg.bodyLimit = limit
	}
	return cfg, nil
}

// BodyLimit is the request body cap in bytes handed to NewHandler.
func (c *Config) BodyLimit() int64 {
	return c.bodyLimit
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// ParseSize turns "512", "64K" or "1MB" into bytes. Blank means the default
// body limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	if split == -1 {
		split = len(trimmed)
	}
	if split == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(trimmed[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	unit := strings.TrimSpace(trimmed[split:])
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}

	if n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
