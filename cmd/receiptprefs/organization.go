package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CreativeUnicorns/receiptprefs/organization"
)

type orgFlags struct {
	user string
	file string
}

func (f *orgFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "user whose preferences are compared")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "JSON file with the organization preferences")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
}

func (f *orgFlags) load() (*organization.Preferences, error) {
	data, err := os.ReadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.file, err)
	}
	return organization.ParsePreferences(data)
}

func newCheckCmd(configPath *string) *cobra.Command {
	var flags orgFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether a user's preferences match the organization's",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			remote, err := flags.load()
			if err != nil {
				return err
			}
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s := organization.NewSynchronizer(a.manager.ForUser(flags.user), a.logger)
			match, err := s.CheckOrganizationPreferencesMatch(cmd.Context(), remote)
			if err != nil {
				return err
			}
			if match {
				fmt.Fprintln(cmd.OutOrStdout(), "match")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "mismatch")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSyncCmd(configPath *string) *cobra.Command {
	var flags orgFlags
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Overwrite a user's preferences with the organization's",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			remote, err := flags.load()
			if err != nil {
				return err
			}
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s := organization.NewSynchronizer(a.manager.ForUser(flags.user), a.logger)
			applied, err := s.ApplyOrganizationPreferences(cmd.Context(), remote)
			for _, key := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
