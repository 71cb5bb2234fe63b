package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newGetCmd(configPath *string) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print one or all of a user's preference values as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			prefs := a.manager.ForUser(user)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if len(args) == 1 {
				v, err := prefs.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return enc.Encode(v)
			}

			defs, err := prefs.Definitions(cmd.Context())
			if err != nil {
				return err
			}
			values := make(map[string]interface{}, len(defs))
			for _, def := range defs {
				v, err := prefs.Get(cmd.Context(), def.Key)
				if err != nil {
					return err
				}
				values[def.Key] = v
			}
			return enc.Encode(values)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user to read")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
