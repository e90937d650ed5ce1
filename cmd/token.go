package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/opbots/internal/domain"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage Telegram bot tokens in the secret store",
	}

	cmd.AddCommand(
		newTokenSetCmd(app),
		newTokenRemoveCmd(app),
	)

	return cmd
}

func newTokenSetCmd(app *app) *cobra.Command {
	var botName string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a bot token (read from stdin when --value is omitted)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bot, err := domain.ParseBot(botName)
			if err != nil {
				return err
			}

			if value == "" {
				value, err = readFirstLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read token from stdin: %w", err)
				}
			}

			if err := app.tokens.Set(cmd.Context(), bot, value); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s bot token\n", bot)
			return nil
		},
	}

	cmd.Flags().StringVar(&botName, "bot", "", "bot: groups or catalog")
	cmd.Flags().StringVar(&value, "value", "", "token value")
	_ = cmd.MarkFlagRequired("bot")
	return cmd
}

func newTokenRemoveCmd(app *app) *cobra.Command {
	var botName string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove a stored bot token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bot, err := domain.ParseBot(botName)
			if err != nil {
				return err
			}

			if err := app.tokens.Remove(cmd.Context(), bot); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s bot token\n", bot)
			return nil
		},
	}

	cmd.Flags().StringVar(&botName, "bot", "", "bot: groups or catalog")
	_ = cmd.MarkFlagRequired("bot")
	return cmd
}

func readFirstLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
