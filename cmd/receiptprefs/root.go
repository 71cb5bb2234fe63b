package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "receiptprefs",
		Short: "Receipt preference service",
		Long: `receiptprefs stores typed per-user receipt preferences and keeps them in
line with the preferences pushed by an organization.

Configuration is read from --config (YAML) and RECEIPTPREFS_* environment
variables. Set RECEIPTPREFS_ENCRYPTION_KEY when encryption is enabled.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")

	root.AddCommand(
		newServeCmd(&configPath),
		newCheckCmd(&configPath),
		newSyncCmd(&configPath),
		newGetCmd(&configPath),
	)
	return root
}
