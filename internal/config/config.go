package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"papapizza/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

const (
	EnvConfigPath     = "PAPA_PIZZA_CONFIG"
	EnvLogLevel       = "PAPA_PIZZA_LOG_LEVEL"
	EnvLogFile        = "PAPA_PIZZA_LOG_FILE"
	EnvNoColor        = "PAPA_PIZZA_NO_COLOR"
	EnvDiscountPolicy = "PAPA_PIZZA_DISCOUNT_POLICY"
)

var validate = validator.New()

type Config struct {
	Store   StoreConfig      `yaml:"store"`
	Pricing PricingConfig    `yaml:"pricing"`
	Menu    []MenuItemConfig `yaml:"menu" validate:"required,min=1,dive"`
	Log     LogConfig        `yaml:"log"`
	Console ConsoleConfig    `yaml:"console"`
}

type StoreConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Tagline string `yaml:"tagline"`
}

// PricingConfig keeps amounts as strings so they reach decimal.Decimal
// without a float round trip.
type PricingConfig struct {
	Policy              string `yaml:"policy" validate:"omitempty,oneof=threshold loyalty"`
	DiscountThreshold   string `yaml:"discount_threshold" validate:"required,numeric"`
	DiscountRate        string `yaml:"discount_rate" validate:"required,numeric"`
	LoyaltyDiscountRate string `yaml:"loyalty_discount_rate" validate:"required,numeric"`
	DeliveryFee         string `yaml:"delivery_fee" validate:"required,numeric"`
	TaxRate             string `yaml:"tax_rate" validate:"required,numeric"`
	TaxName             string `yaml:"tax_name" validate:"required"`
	MaxQuantity         int    `yaml:"max_quantity" validate:"required,min=1"`
}

type MenuItemConfig struct {
	Name     string `yaml:"name" validate:"required,max=50"`
	Price    string `yaml:"price" validate:"required,numeric"`
	Category string `yaml:"category"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  string `yaml:"file"`
}

type ConsoleConfig struct {
	Color bool `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path over the defaults. An empty path means
// defaults only. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads a dotenv file into the process environment if it exists.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// FromEnv loads the config named by PAPA_PIZZA_CONFIG (or the defaults) and
// applies the environment overrides.
func FromEnv() (*Config, error) {
	cfg, err := Load(getEnv(EnvConfigPath, ""))
	if err != nil {
		return nil, err
	}

	cfg.Log.Level = getEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Log.File = getEnv(EnvLogFile, cfg.Log.File)
	cfg.Pricing.Policy = getEnv(EnvDiscountPolicy, cfg.Pricing.Policy)
	if getEnv(EnvNoColor, "") != "" {
		cfg.Console.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.MenuItems(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.PricingRules(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) MenuItems() ([]models.MenuItem, error) {
	seen := make(map[string]bool, len(c.Menu))
	items := make([]models.MenuItem, 0, len(c.Menu))
	for i, m := range c.Menu {
		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return nil, fmt.Errorf("menu[%d].price: %w", i, err)
		}
		item, err := models.NewMenuItem(m.Name, price, m.Category)
		if err != nil {
			return nil, fmt.Errorf("menu[%d]: %w", i, err)
		}

		key := strings.ToLower(item.Name)
		if seen[key] {
			return nil, fmt.Errorf("menu[%d]: %w: %s", i, models.ErrDuplicateMenuItem, item.Name)
		}
		seen[key] = true
		items = append(items, item)
	}
	return items, nil
}

func (c *Config) PricingRules() (models.Pricing, error) {
	policy, err := models.ParseDiscountPolicy(c.Pricing.Policy)
	if err != nil {
		return models.Pricing{}, err
	}

	p := models.Pricing{
		Policy:      policy,
		TaxName:     c.Pricing.TaxName,
		MaxQuantity: c.Pricing.MaxQuantity,
	}
	fields := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"discount_threshold", c.Pricing.DiscountThreshold, &p.DiscountThreshold},
		{"discount_rate", c.Pricing.DiscountRate, &p.DiscountRate},
		{"loyalty_discount_rate", c.Pricing.LoyaltyDiscountRate, &p.LoyaltyRate},
		{"delivery_fee", c.Pricing.DeliveryFee, &p.DeliveryFee},
		{"tax_rate", c.Pricing.TaxRate, &p.TaxRate},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			return models.Pricing{}, fmt.Errorf("pricing.%s: %w", f.name, err)
		}
		if d.IsNegative() {
			return models.Pricing{}, fmt.Errorf("pricing.%s must not be negative", f.name)
		}
		*f.dst = d
	}

	one := decimal.NewFromInt(1)
	if p.DiscountRate.GreaterThan(one) || p.LoyaltyRate.GreaterThan(one) {
		return models.Pricing{}, fmt.Errorf("pricing: discount rates must be between 0 and 1")
	}
	return p, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
