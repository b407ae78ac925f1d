package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the dinekit configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Logging     LoggingConfig     `yaml:"logging"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Sorting     SortingConfig     `yaml:"sorting"`
	Cart        CartConfig        `yaml:"cart"`
	Reservation ReservationConfig `yaml:"reservation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig points at the YAML catalog of collections and restaurants.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// SortingConfig holds comparator settings.
type SortingConfig struct {
	Locale string `yaml:"locale"` // BCP 47 tag for name collation
}

// CartConfig holds checkout pricing settings. Amounts are decimal strings.
type CartConfig struct {
	TaxPercent  string `yaml:"tax_percent"`
	DeliveryFee string `yaml:"delivery_fee"`
	MaxQuantity int    `yaml:"max_quantity"` // per line, 0 = unlimited
	Collection  string `yaml:"collection"`   // catalog collection carts are priced from
}

// ReservationConfig holds slot generation settings.
type ReservationConfig struct {
	DefaultIncrementMin int `yaml:"default_increment_min"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes configuration YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = filepath.Join("config", "catalog.yaml")
	}
	if c.Sorting.Locale == "" {
		c.Sorting.Locale = "en"
	}
	if c.Cart.TaxPercent == "" {
		c.Cart.TaxPercent = "0"
	}
	if c.Cart.DeliveryFee == "" {
		c.Cart.DeliveryFee = "0"
	}
	if c.Cart.Collection == "" {
		c.Cart.Collection = "menu"
	}
	if c.Reservation.DefaultIncrementMin <= 0 {
		c.Reservation.DefaultIncrementMin = 30
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if _, err := language.Parse(c.Sorting.Locale); err != nil {
		return fmt.Errorf("sorting.locale %q is not a valid language tag: %w", c.Sorting.Locale, err)
	}
	tax, err := decimal.NewFromString(c.Cart.TaxPercent)
	if err != nil {
		return fmt.Errorf("cart.tax_percent %q is not a decimal: %w", c.Cart.TaxPercent, err)
	}
	if tax.IsNegative() {
		return fmt.Errorf("cart.tax_percent must not be negative, got %s", c.Cart.TaxPercent)
	}
	fee, err := decimal.NewFromString(c.Cart.DeliveryFee)
	if err != nil {
		return fmt.Errorf("cart.delivery_fee %q is not a decimal: %w", c.Cart.DeliveryFee, err)
	}
	if fee.IsNegative() {
		return fmt.Errorf("cart.delivery_fee must not be negative, got %s", c.Cart.DeliveryFee)
	}
	if c.Cart.MaxQuantity < 0 {
		return fmt.Errorf("cart.max_quantity must not be negative, got %d", c.Cart.MaxQuantity)
	}
	return nil
}

// Locale returns the parsed collation locale. Call after Validate.
func (c *Config) Locale() language.Tag {
	return language.Make(c.Sorting.Locale)
}

// TaxPercent returns the parsed tax percentage. Call after Validate.
func (c *Config) TaxPercent() decimal.Decimal {
	return decimal.RequireFromString(c.Cart.TaxPercent)
}

// DeliveryFee returns the parsed delivery fee. Call after Validate.
func (c *Config) DeliveryFee() decimal.Decimal {
	return decimal.RequireFromString(c.Cart.DeliveryFee)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
