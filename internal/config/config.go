package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flexprice/taxengine/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Cache      CacheConfig
	Tax        TaxConfig `validate:"required"`
	Catalog    CatalogConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
}

// TaxConfig holds the per-tenant tax computation settings. It is loaded once
// at startup and threaded into each computation context at call time; a
// process restart is the reload boundary.
type TaxConfig struct {
	// Resolver is the registry key of the tax resolver implementation to
	// instantiate per computation. Empty means the null resolver.
	Resolver string
	// AmountPrecision is the number of fractional digits tax amounts are
	// rounded to (ties round away from zero).
	AmountPrecision int32 `validate:"gte=0,lte=12"`
	// DefaultItemDescription is used for tax items whose tax code carries
	// no description of its own.
	DefaultItemDescription string
	// Codes defines the tax codes known to this tenant.
	Codes []TaxCodeConfig `validate:"dive"`
	// Products maps a product name to the names of its candidate tax codes.
	Products map[string][]string
}

// TaxCodeConfig defines one configured tax code.
type TaxCodeConfig struct {
	Name string `validate:"required"`
	// Rate is a decimal fraction, e.g. "0.20" for a 20% tax.
	Rate            string `validate:"required"`
	ItemDescription string
}

// CatalogConfig is the config-backed catalog: it maps plan names (the
// classifier carried by invoice items) to product names.
type CatalogConfig struct {
	Plans map[string]string
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/taxengine")

	v.SetEnvPrefix("TAXENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Cache:      CacheConfig{Enabled: true},
		Tax: TaxConfig{
			AmountPrecision:        2,
			DefaultItemDescription: "tax",
		},
	}
}
