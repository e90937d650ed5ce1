package cmd

import (
	"fmt"
	"log/slog"
	"time"

	tomlrepo "github.com/bnema/opbots/internal/adapters/repo/toml"
	chainstore "github.com/bnema/opbots/internal/adapters/secrets/chain"
	filestore "github.com/bnema/opbots/internal/adapters/secrets/file"
	"github.com/bnema/opbots/internal/adapters/whatsapp"
	"github.com/bnema/opbots/internal/application"
	"github.com/bnema/opbots/internal/config"
	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	v       *viper.Viper
	cfg     config.Config
	logger  *slog.Logger
	secrets ports.SecretStore
	tokens  *application.TokenService
	now     func() time.Time
}

// wire loads configuration for the command being run. Flags win over the
// environment, which wins over the config file.
func (a *app) wire(cmd *cobra.Command, opts *rootOptions) error {
	v := config.New()
	if err := config.ReadFile(v, opts.configPath); err != nil {
		return err
	}
	if opts.logLevel != "" {
		v.Set("logging.level", opts.logLevel)
	}
	if opts.logFormat != "" {
		v.Set("logging.format", opts.logFormat)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	secrets, err := wireSecretStore(cfg)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	a.logger = logger
	a.secrets = secrets
	a.tokens = application.NewTokenService(secrets, map[domain.Bot]string{
		domain.BotGroups:  cfg.Telegram.GroupsTokenRef,
		domain.BotCatalog: cfg.Telegram.CatalogTokenRef,
	})
	a.now = time.Now
	return nil
}

func wireSecretStore(cfg config.Config) (ports.SecretStore, error) {
	dir, err := cfg.SecretsDir()
	if err != nil {
		return nil, err
	}

	if cfg.Secrets.Backend == config.SecretsBackendFile {
		return filestore.NewStore(dir), nil
	}

	store, err := chainstore.NewPassFirstWithFileFallback(dir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}
	return store, nil
}

func (a *app) catalogRepository() (*tomlrepo.CatalogRepository, error) {
	repo, err := tomlrepo.NewCatalogRepository(a.v)
	if err != nil {
		return nil, fmt.Errorf("wire catalog repository: %w", err)
	}
	return repo, nil
}

func (a *app) historyRepository() (*tomlrepo.HistoryRepository, error) {
	repo, err := tomlrepo.NewHistoryRepository(a.v)
	if err != nil {
		return nil, fmt.Errorf("wire run history: %w", err)
	}
	return repo, nil
}

func (a *app) whatsappClient() *whatsapp.Client {
	return &whatsapp.Client{
		API:            whatsapp.DefaultAPI(a.cfg.WhatsApp.GatewayURL),
		APIKey:         a.cfg.WhatsApp.APIKey,
		RequestTimeout: a.cfg.WhatsApp.RequestTimeout,
		Logger:         a.logger,
	}
}
