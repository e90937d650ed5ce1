package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/opbots/internal/adapters/render"
	"github.com/bnema/opbots/internal/adapters/telegram"
	"github.com/bnema/opbots/internal/application"
	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store and share .txt files through a Telegram bot",
	}

	cmd.AddCommand(
		newCatalogServeCmd(app),
		newCatalogListCmd(app),
	)

	return cmd
}

func newCatalogServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog bot until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serveCatalog(ctx, app)
		},
	}
}

func serveCatalog(ctx context.Context, app *app) error {
	cfg := app.cfg
	if err := cfg.ValidateCatalog(); err != nil {
		return err
	}

	token, err := app.tokens.Resolve(ctx, domain.BotCatalog, cfg.Telegram.CatalogToken)
	if err != nil {
		return err
	}
	api, err := telegram.Connect(token)
	if err != nil {
		return err
	}
	repo, err := app.catalogRepository()
	if err != nil {
		return err
	}

	svc := application.NewCatalogService(repo, telegram.NewNotifier(api), ports.SystemClock{}, app.logger, cfg.Catalog.BannerURL)
	bot := telegram.NewCatalogBot(api, svc, telegram.CatalogBotConfig{
		AdminID:        cfg.Catalog.AdminID,
		AnnounceChatID: cfg.Catalog.AnnounceChatID,
		BotUsername:    api.Self.UserName,
	}, app.logger)

	app.logger.Info("catalog bot starting", "bot", api.Self.UserName, "catalog", repo.Path())
	return bot.Run(ctx)
}

func newCatalogListCmd(app *app) *cobra.Command {
	var asJSON bool
	var botUsername string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored catalog files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := app.catalogRepository()
			if err != nil {
				return err
			}

			files, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(files)
			}

			rendered, err := render.Catalog(files, botUsername)
			if err != nil {
				return fmt.Errorf("render catalog: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print files as JSON")
	cmd.Flags().StringVar(&botUsername, "bot-username", "", "print t.me deep links for this bot")
	return cmd
}
