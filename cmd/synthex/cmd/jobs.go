package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tanaos/synthex-go"
	"github.com/tanaos/synthex-go/internal/jobfile"
)

func newJobsCmd(opts *rootOptions) *cobra.Command {
	jobs := &cobra.Command{
		Use:   "jobs",
		Short: "List and generate jobs",
	}
	jobs.AddCommand(newJobsListCmd(opts), newJobsGenerateCmd(opts))
	return jobs
}

func newJobsListCmd(opts *rootOptions) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			page, err := client.Jobs.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			cmd.Printf("%d of %d jobs\n", len(page.Jobs), page.Total)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tDATAPOINTS\tCREATED")
			for _, j := range page.Jobs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", j.ID, j.Name, j.Status, j.DatapointNum, j.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of jobs")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of jobs to skip")
	return cmd
}

func newJobsGenerateCmd(opts *rootOptions) *cobra.Command {
	var output, format string
	var samples int
	cmd := &cobra.Command{
		Use:   "generate [job-file]",
		Short: "Submit a generation job and write its output",
		Long: `Submit a data generation job described by a YAML job file and write the
generated records to a local file as they are streamed back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := jobfile.Read(args[0])
			if err != nil {
				return err
			}
			req := f.Request()
			if output != "" {
				req.OutputPath = output
			}
			if format != "" {
				req.OutputFormat = synthex.OutputFormat(format)
			}
			if samples > 0 {
				req.NumberOfSamples = samples
			}

			client, err := opts.client()
			if err != nil {
				return err
			}
			res, err := client.Jobs.GenerateData(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !res.Written {
				cmd.Println("No data received; nothing written")
				return nil
			}
			cmd.Printf("Wrote %d records to %s\n", res.Records, res.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (overrides the job file)")
	cmd.Flags().StringVar(&format, "format", "", "output format (overrides the job file)")
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "number of samples (overrides the job file)")
	return cmd
}
