package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/opbots/internal/adapters/health"
	"github.com/bnema/opbots/internal/adapters/render"
	"github.com/bnema/opbots/internal/adapters/telegram"
	"github.com/bnema/opbots/internal/adapters/whatsapp"
	"github.com/bnema/opbots/internal/application"
	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const defaultPairTimeout = 2 * time.Minute

var errPairingCodeRotated = errors.New("pairing code rotated")

func newGroupsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Batch-create WhatsApp groups from a Telegram operator chat",
	}

	cmd.AddCommand(
		newGroupsServeCmd(app),
		newGroupsPairCmd(app),
		newGroupsHistoryCmd(app),
	)

	return cmd
}

func newGroupsServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the group creation bot until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serveGroups(ctx, app)
		},
	}
}

func serveGroups(ctx context.Context, app *app) error {
	cfg := app.cfg
	if err := cfg.ValidateGroups(); err != nil {
		return err
	}

	token, err := app.tokens.Resolve(ctx, domain.BotGroups, cfg.Telegram.GroupsToken)
	if err != nil {
		return err
	}
	api, err := telegram.Connect(token)
	if err != nil {
		return err
	}
	history, err := app.historyRepository()
	if err != nil {
		return err
	}

	notifier := telegram.NewNotifier(api)
	client := app.whatsappClient()
	tasks := application.NewTaskService(notifier, client, ports.SystemClock{}, app.logger, application.TaskOptions{
		UnitTimeout: cfg.Groups.UnitTimeout,
		History:     history,
	})
	defer tasks.Close()

	pairing := application.NewPairingService(notifier, whatsapp.QRRenderer{}, app.logger, cfg.Telegram.OperatorID)
	bot := telegram.NewGroupBot(api, tasks, cfg.Telegram.OperatorID, app.logger)

	app.logger.Info("group bot starting",
		"bot", api.Self.UserName,
		"gateway", cfg.WhatsApp.GatewayURL,
		"history", history.Path(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(gctx)
	})
	g.Go(func() error {
		return client.Watch(gctx, cfg.WhatsApp.PollInterval, pairing.HandleEvent)
	})
	if cfg.Health.Listen != "" {
		g.Go(func() error {
			return health.Serve(gctx, cfg.Health.Listen, health.NewRouter(tasks, app.logger), app.logger)
		})
	}

	err = g.Wait()
	app.logger.Info("group bot stopped")
	return err
}

func newGroupsPairCmd(app *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Link the WhatsApp gateway by scanning a QR code in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return pairGateway(ctx, cmd, app)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultPairTimeout, "give up when the phone has not linked by then")
	return cmd
}

func pairGateway(ctx context.Context, cmd *cobra.Command, app *app) error {
	out := cmd.OutOrStdout()
	client := app.whatsappClient()

	var status whatsapp.SessionStatus
	err := runSpinner(ctx, cmd.ErrOrStderr(), "Contacting WhatsApp gateway...", func(ctx context.Context) error {
		var err error
		status, err = client.Status(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("query gateway session: %w", err)
	}
	if status.Connected {
		_, err = fmt.Fprintln(out, "WhatsApp is already linked.")
		return err
	}

	code := status.QR
	for {
		if code != "" {
			rendered, err := whatsapp.TerminalQR(code)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, rendered)
			_, _ = fmt.Fprintln(out, "Scan with WhatsApp: Linked devices > Link a device.")
		}

		next := ""
		err := runSpinner(ctx, cmd.ErrOrStderr(), "Waiting for the phone to link...", func(ctx context.Context) error {
			var err error
			next, err = waitForLink(ctx, client, app.cfg.WhatsApp.PollInterval, code)
			return err
		})
		switch {
		case err == nil:
			_, err = fmt.Fprintln(out, "WhatsApp connected.")
			return err
		case errors.Is(err, errPairingCodeRotated):
			code = next
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return errors.New("pairing timed out; run `opbots groups pair` again")
		default:
			return err
		}
	}
}

// waitForLink blocks until the gateway reports a connection or a pairing
// code other than current, which is returned with errPairingCodeRotated.
func waitForLink(ctx context.Context, client *whatsapp.Client, interval time.Duration, current string) (string, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var next string
	var linked bool
	err := client.Watch(ctx, interval, func(_ context.Context, ev ports.ConnectionEvent) {
		switch ev.Kind {
		case ports.EventConnected:
			linked = true
			cancel(nil)
		case ports.EventPairing:
			if ev.Code != current {
				next = ev.Code
				cancel(errPairingCodeRotated)
			}
		}
	})
	if err != nil {
		return "", err
	}
	if linked {
		return "", nil
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return next, cause
	}
	return "", ctx.Err()
}

func newGroupsHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent group creation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := app.historyRepository()
			if err != nil {
				return err
			}

			records, err := application.NewHistoryService(repo).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			rendered, err := render.History(records, render.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultHistoryLimit, "number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print runs as JSON")
	return cmd
}
