package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirchsolutions/sirchweb/internal/version"
)

func (a *app) newVersionCommand() *cobra.Command {
	var checkServer bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sirchctl version: %s\n", version.Info())

			if !checkServer {
				return nil
			}

			info, err := a.client().Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to reach server: %w", err)
			}

			fmt.Fprintf(out, "Server version:   %s\n", info.Version)
			if info.EmailConfigured {
				fmt.Fprintln(out, "Server email:     configured")
			} else {
				fmt.Fprintln(out, "Server email:     not configured (contact messages will be refused)")
			}
			if version.IsNewer(version.Version, info.Version) {
				fmt.Fprintf(out, "A newer release (%s) is available.\n", info.Version)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkServer, "check", false, "Also query the server version")
	return cmd
}
