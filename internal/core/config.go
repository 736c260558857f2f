package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/dcrodman/cipherkit/internal/bcrypt"
	"github.com/dcrodman/cipherkit/internal/digest"
)

// Config contains all of the configuration options available to the
// cipherkit commands.
type Config struct {
	// Full path to file to which logs will be written. Blank will write to stderr.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`

	Digest struct {
		// Algorithm used when none is given on the command line.
		Algorithm string `mapstructure:"algorithm"`
		// Output encoding for digests, hex or base64.
		Encoding string `mapstructure:"encoding"`
	} `mapstructure:"digest"`

	Bcrypt struct {
		// Cost new password hashes are created with.
		Cost int `mapstructure:"cost"`
		// Convert passwords to Unicode NFC before hashing.
		Normalize bool `mapstructure:"normalize"`
	} `mapstructure:"bcrypt"`

	Cache struct {
		// How long a keyed Blowfish cipher stays cached in batch mode. -1 never expires.
		TTL time.Duration `mapstructure:"ttl"`
		// How often expired ciphers are dropped.
		CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	} `mapstructure:"cache"`
}

const envVarPrefix = "CIPHERKIT"

// Encodings accepted for digest.encoding.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

var defaults = map[string]interface{}{
	"log_file_path":          "",
	"log_level":              "info",
	"digest.algorithm":       digest.MD5,
	"digest.encoding":        EncodingHex,
	"bcrypt.cost":            bcrypt.DefaultCost,
	"bcrypt.normalize":       false,
	"cache.ttl":              "10m",
	"cache.cleanup_interval": "1m",
}

// LoadConfig reads config.yaml from configPath, if there is one, on top of the
// built-in defaults. Every key can be overridden from the environment; for
// example bcrypt.cost is read from CIPHERKIT_BCRYPT_COST.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, digest.encoding can be set using: <envVarPrefix>_DIGEST_ENCODING
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("error binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that every option holds a usable value.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if _, err := digest.New(c.Digest.Algorithm); err != nil {
		return fmt.Errorf("invalid digest.algorithm: %w", err)
	}
	switch c.Digest.Encoding {
	case EncodingHex, EncodingBase64:
	default:
		return fmt.Errorf("invalid digest.encoding %q: must be %s or %s", c.Digest.Encoding, EncodingHex, EncodingBase64)
	}
	if c.Bcrypt.Cost < bcrypt.MinCost || c.Bcrypt.Cost > bcrypt.MaxCost {
		return fmt.Errorf("invalid bcrypt.cost: %w", bcrypt.InvalidCostError(c.Bcrypt.Cost))
	}
	if c.Cache.CleanupInterval < 0 {
		return fmt.Errorf("invalid cache.cleanup_interval %s", c.Cache.CleanupInterval)
	}
	return nil
}

// Dump renders the effective configuration for debug output.
func (c *Config) Dump() string {
	return spew.Sdump(c)
}
