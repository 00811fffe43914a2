package cmd

import (
	"github.com/spf13/cobra"
)

func newMeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			user, err := client.Users.Me(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("ID:       %s\n", user.ID)
			cmd.Printf("Name:     %s\n", user.FullName())
			cmd.Printf("Email:    %s\n", user.Email)
			cmd.Printf("Verified: %t\n", user.IsVerified)
			return nil
		},
	}
}

func newCreditsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Show promotional credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			credit, err := client.Credits.Promotional(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Promotional credits: %g %s\n", credit.Amount, credit.Currency)
			return nil
		},
	}
}
