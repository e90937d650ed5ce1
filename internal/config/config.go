package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "OPBOTS"
	configDir      = ".config/opbots"
	configFileName = "config.toml"

	SecretsBackendChain = "pass+file"
	SecretsBackendFile  = "file"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Telegram TelegramConfig
	WhatsApp WhatsAppConfig
	Groups   GroupsConfig
	Catalog  CatalogConfig
	Health   HealthConfig
	Secrets  SecretsConfig
	Logging  LoggingConfig
}

type TelegramConfig struct {
	OperatorID      int64
	GroupsToken     string
	CatalogToken    string
	GroupsTokenRef  string
	CatalogTokenRef string
}

type WhatsAppConfig struct {
	GatewayURL     string
	APIKey         string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

type GroupsConfig struct {
	UnitTimeout time.Duration
	HistoryPath string
}

type CatalogConfig struct {
	Path           string
	AdminID        int64
	AnnounceChatID int64
	BannerURL      string
}

type HealthConfig struct {
	Listen string
}

type SecretsConfig struct {
	Backend string
	Dir     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// New returns a viper instance with defaults and OPBOTS_* environment
// overrides; "whatsapp.gateway_url" reads OPBOTS_WHATSAPP_GATEWAY_URL.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("telegram.operator_id", 0)
	v.SetDefault("telegram.groups_token", "")
	v.SetDefault("telegram.catalog_token", "")
	v.SetDefault("telegram.groups_token_ref", "telegram/groups")
	v.SetDefault("telegram.catalog_token_ref", "telegram/catalog")
	v.SetDefault("whatsapp.gateway_url", "http://127.0.0.1:8088")
	v.SetDefault("whatsapp.api_key", "")
	v.SetDefault("whatsapp.poll_interval", "3s")
	v.SetDefault("whatsapp.request_timeout", "30s")
	v.SetDefault("groups.unit_timeout", "0s")
	v.SetDefault("groups.history_path", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.admin_id", 0)
	v.SetDefault("catalog.announce_chat_id", 0)
	v.SetDefault("catalog.banner_url", "")
	v.SetDefault("health.listen", "")
	v.SetDefault("secrets.backend", SecretsBackendChain)
	v.SetDefault("secrets.dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// ReadFile loads path into v. An empty path falls back to
// ~/.config/opbots/config.toml, which may be absent.
func ReadFile(v *viper.Viper, path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, configDir, configFileName)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load decodes v into a Config. Paths left empty stay empty so each
// repository applies its own default under ~/.config/opbots.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Telegram: TelegramConfig{
			OperatorID:      v.GetInt64("telegram.operator_id"),
			GroupsToken:     strings.TrimSpace(v.GetString("telegram.groups_token")),
			CatalogToken:    strings.TrimSpace(v.GetString("telegram.catalog_token")),
			GroupsTokenRef:  strings.TrimSpace(v.GetString("telegram.groups_token_ref")),
			CatalogTokenRef: strings.TrimSpace(v.GetString("telegram.catalog_token_ref")),
		},
		WhatsApp: WhatsAppConfig{
			GatewayURL:     strings.TrimSpace(v.GetString("whatsapp.gateway_url")),
			APIKey:         strings.TrimSpace(v.GetString("whatsapp.api_key")),
			PollInterval:   v.GetDuration("whatsapp.poll_interval"),
			RequestTimeout: v.GetDuration("whatsapp.request_timeout"),
		},
		Groups: GroupsConfig{
			UnitTimeout: v.GetDuration("groups.unit_timeout"),
			HistoryPath: strings.TrimSpace(v.GetString("groups.history_path")),
		},
		Catalog: CatalogConfig{
			Path:           strings.TrimSpace(v.GetString("catalog.path")),
			AdminID:        v.GetInt64("catalog.admin_id"),
			AnnounceChatID: v.GetInt64("catalog.announce_chat_id"),
			BannerURL:      strings.TrimSpace(v.GetString("catalog.banner_url")),
		},
		Health: HealthConfig{
			Listen: strings.TrimSpace(v.GetString("health.listen")),
		},
		Secrets: SecretsConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("secrets.backend"))),
			Dir:     strings.TrimSpace(v.GetString("secrets.dir")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.WhatsApp.PollInterval < 0 {
		errs = append(errs, errors.New("whatsapp.poll_interval must not be negative"))
	}
	if c.WhatsApp.RequestTimeout < 0 {
		errs = append(errs, errors.New("whatsapp.request_timeout must not be negative"))
	}
	if c.Groups.UnitTimeout < 0 {
		errs = append(errs, errors.New("groups.unit_timeout must not be negative"))
	}
	switch c.Secrets.Backend {
	case SecretsBackendChain, SecretsBackendFile:
	default:
		errs = append(errs, fmt.Errorf("secrets.backend must be %q or %q, got %q", SecretsBackendChain, SecretsBackendFile, c.Secrets.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ValidateGroups checks what the group bot needs before it connects.
func (c Config) ValidateGroups() error {
	var errs []error
	if c.Telegram.OperatorID == 0 {
		errs = append(errs, errors.New("telegram.operator_id is required"))
	}
	if c.WhatsApp.GatewayURL == "" {
		errs = append(errs, errors.New("whatsapp.gateway_url is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ValidateCatalog checks what the catalog bot needs before it connects.
func (c Config) ValidateCatalog() error {
	if c.Catalog.AdminID == 0 {
		return fmt.Errorf("%w: catalog.admin_id is required", ErrInvalidConfig)
	}
	return nil
}

// SecretsDir resolves secrets.dir, defaulting to ~/.config/opbots/secrets.
func (c Config) SecretsDir() (string, error) {
	if c.Secrets.Dir != "" {
		return filepath.Clean(c.Secrets.Dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir, "secrets"), nil
}
