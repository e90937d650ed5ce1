package cmd

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "opbots",
		Short:         "Operator bots: WhatsApp group creation and a Telegram text catalog",
		Long:          "opbots runs two Telegram bots: one lets a single operator batch-create WhatsApp groups through a gateway, the other stores and shares .txt files with deep links.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/opbots/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGroupsCmd(app),
		newCatalogCmd(app),
		newTokenCmd(app),
	)

	return rootCmd
}
