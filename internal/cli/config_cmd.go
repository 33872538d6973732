package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/chessassist/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := newTable(cmd.OutOrStdout())
			for _, e := range a.cfg.Entries() {
				value := e.Value
				if value == "" {
					value = "(unset)"
				}
				fmt.Fprintf(tw, "%s\t%s\n", e.Key, value)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and the engine path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			path, err := a.resolveEngine(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration OK (engine: %s)\n", path)
			return nil
		},
	})

	var savePath string
	save := &cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to a key-value file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			path := savePath
			if path == "" {
				path = a.envFile
			}
			if err := config.Save(path, a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration written to %s\n", path)
			return nil
		},
	}
	save.Flags().StringVarP(&savePath, "output", "o", "", "file to write (default --env-file)")
	cmd.AddCommand(save)

	return cmd
}
