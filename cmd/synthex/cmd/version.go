package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tanaos/synthex-go"
)

func newVersionCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the SDK version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("synthex-go %s (API %s)\n", synthex.Version, synthex.APIVersion)
			if server != "" {
				if synthex.IsCompatible(server) {
					cmd.Printf("server %s is compatible\n", server)
				} else {
					cmd.Printf("server %s is outside %s\n", server, synthex.APIVersionRange)
				}
			}
		},
	}
	cmd.Flags().StringVar(&server, "check", "", "server version to check for compatibility")
	return cmd
}
