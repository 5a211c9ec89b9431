package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/aegis/config"
	ConfigFileName    = "aegis.yml"
)

// Config holds all Aegis configuration settings. It is loaded once at
// startup and passed explicitly to the issuer, validator and server
// constructors; nothing reads configuration ambiently during validation.
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// SigningKey is the base64-encoded HMAC key used to sign tokens.
	SigningKey string `yaml:"signing_key" json:"signing_key"`

	// Issuer is the value of the iss claim on issued tokens.
	Issuer string `yaml:"issuer" json:"issuer"`

	// AccessTokenTTLMinutes is the lifetime of access tokens in minutes.
	AccessTokenTTLMinutes int `yaml:"access_token_ttl_minutes" json:"access_token_ttl_minutes"`

	// RefreshTokenTTLHours is the lifetime of refresh tokens in hours.
	RefreshTokenTTLHours int `yaml:"refresh_token_ttl_hours" json:"refresh_token_ttl_hours"`

	// BindAddress is the address the HTTP server listens on.
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port.
	Port string `yaml:"port" json:"port"`

	// DenylistPruneIntervalMinutes is how often expired denylist rows are
	// removed. Zero disables the background pruner.
	DenylistPruneIntervalMinutes int `yaml:"denylist_prune_interval_minutes" json:"denylist_prune_interval_minutes"`

	// TrustedProxies is a list of CIDR ranges whose X-Forwarded-For is honored.
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// RejectDuplicatePermissions makes registry writes fail when a
	// (service, action) permission pair already exists. Off by default:
	// duplicate rows are a legal modeling choice (for example multiple
	// virtual variants of the same pair).
	RejectDuplicatePermissions bool `yaml:"reject_duplicate_permissions" json:"reject_duplicate_permissions"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newDefault() *Config {
	return &Config{
		Issuer:                       "aegis",
		AccessTokenTTLMinutes:        15,
		RefreshTokenTTLHours:         168,
		BindAddress:                  "0.0.0.0",
		Port:                         "8000",
		DenylistPruneIntervalMinutes: 60,
		TrustedProxies:               []string{},
		sources:                      make(map[string]string),
	}
}

// Load loads configuration from a .env file (when present), the YAML config
// file and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("AEGIS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "signing_key", "issuer",
		"access_token_ttl_minutes", "refresh_token_ttl_hours",
		"bind_address", "port", "denylist_prune_interval_minutes",
		"trusted_proxies", "reject_duplicate_permissions",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.SigningKey != "" {
		c.SigningKey = file.SigningKey
		c.sources["signing_key"] = "file"
	}
	if file.Issuer != "" {
		c.Issuer = file.Issuer
		c.sources["issuer"] = "file"
	}
	if file.AccessTokenTTLMinutes != 0 {
		c.AccessTokenTTLMinutes = file.AccessTokenTTLMinutes
		c.sources["access_token_ttl_minutes"] = "file"
	}
	if file.RefreshTokenTTLHours != 0 {
		c.RefreshTokenTTLHours = file.RefreshTokenTTLHours
		c.sources["refresh_token_ttl_hours"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != "" {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.DenylistPruneIntervalMinutes != 0 {
		c.DenylistPruneIntervalMinutes = file.DenylistPruneIntervalMinutes
		c.sources["denylist_prune_interval_minutes"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.RejectDuplicatePermissions {
		c.RejectDuplicatePermissions = true
		c.sources["reject_duplicate_permissions"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("AEGIS_SIGNING_KEY"); val != "" {
		c.SigningKey = val
		c.sources["signing_key"] = "environment"
	}
	if val := os.Getenv("AEGIS_ISSUER"); val != "" {
		c.Issuer = val
		c.sources["issuer"] = "environment"
	}
	if val := os.Getenv("AEGIS_ACCESS_TOKEN_TTL_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AccessTokenTTLMinutes = i
			c.sources["access_token_ttl_minutes"] = "environment"
		}
	}
	if val := os.Getenv("AEGIS_REFRESH_TOKEN_TTL_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RefreshTokenTTLHours = i
			c.sources["refresh_token_ttl_hours"] = "environment"
		}
	}
	if val := os.Getenv("AEGIS_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("AEGIS_PORT"); val != "" {
		c.Port = val
		c.sources["port"] = "environment"
	}
	if val := os.Getenv("AEGIS_DENYLIST_PRUNE_INTERVAL_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.DenylistPruneIntervalMinutes = i
			c.sources["denylist_prune_interval_minutes"] = "environment"
		}
	}
	if val := os.Getenv("AEGIS_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("AEGIS_REJECT_DUPLICATE_PERMISSIONS"); val != "" {
		c.RejectDuplicatePermissions = val == "true" || val == "1"
		c.sources["reject_duplicate_permissions"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AccessTokenTTL returns the access token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime as a duration.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHours) * time.Hour
}

// PruneInterval returns the denylist prune interval as a duration.
func (c *Config) PruneInterval() time.Duration {
	return time.Duration(c.DenylistPruneIntervalMinutes) * time.Minute
}

// SigningKeyBytes decodes the base64 signing key.
func (c *Config) SigningKeyBytes() ([]byte, error) {
	if c.SigningKey == "" {
		return nil, fmt.Errorf("signing key is not configured")
	}
	key, err := base64.StdEncoding.DecodeString(c.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("bad signing key: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("signing key must be at least 32 bytes, got %d", len(key))
	}
	return key, nil
}

// IsTrustedProxy checks if an IP is from a trusted proxy.
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if _, err := c.SigningKeyBytes(); err != nil {
		return err
	}
	if c.AccessTokenTTLMinutes <= 0 {
		return fmt.Errorf("access_token_ttl_minutes must be positive")
	}
	if c.RefreshTokenTTLHours <= 0 {
		return fmt.Errorf("refresh_token_ttl_hours must be positive")
	}
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}
	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. The signing key value is masked.
func (c *Config) Attributes() []Attribute {
	maskedKey := ""
	if c.SigningKey != "" {
		maskedKey = "(set)"
	}
	return []Attribute{
		{Name: "database_url", Value: c.DatabaseURL, Source: c.Source("database_url")},
		{Name: "signing_key", Value: maskedKey, Source: c.Source("signing_key")},
		{Name: "issuer", Value: c.Issuer, Source: c.Source("issuer")},
		{Name: "access_token_ttl_minutes", Value: strconv.Itoa(c.AccessTokenTTLMinutes), Source: c.Source("access_token_ttl_minutes")},
		{Name: "refresh_token_ttl_hours", Value: strconv.Itoa(c.RefreshTokenTTLHours), Source: c.Source("refresh_token_ttl_hours")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: c.Port, Source: c.Source("port")},
		{Name: "denylist_prune_interval_minutes", Value: strconv.Itoa(c.DenylistPruneIntervalMinutes), Source: c.Source("denylist_prune_interval_minutes")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "reject_duplicate_permissions", Value: strconv.FormatBool(c.RejectDuplicatePermissions), Source: c.Source("reject_duplicate_permissions")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-36s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-36s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-36s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
