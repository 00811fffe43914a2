package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			if !client.Ping(cmd.Context()) {
				return errors.New("API at " + client.BaseURL() + " is unreachable")
			}
			cmd.Println("OK", client.BaseURL())
			return nil
		},
	}
}
