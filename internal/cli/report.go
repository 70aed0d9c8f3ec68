package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "report <draft-id>",
		Short: "Generate a feedback report",
		Long:  "Generate the aggregate feedback report for a draft: overall sentiment, readability, critical/supportive ratio, and actionable insights.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args[0], format, output)
		},
	}

	// Shadows the global --format; the report has its own format set.
	cmd.Flags().StringVar(&format, "format", "json", "report format (json|text|html|pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}

func runReport(draftID, format, output string) error {
	c := newAPIClient()

	if format == "html" || format == "pdf" {
		data, err := c.DownloadReport(draftID, format)
		if err != nil {
			return err
		}
		if output == "" {
			output = fmt.Sprintf("report-%s.%s", draftID, format)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", output)
		return nil
	}

	rep, err := c.GetReport(draftID)
	if err != nil {
		return err
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "warning: closing report file: %v\n", cerr)
			}
		}()
		return printJSONTo(f, rep)
	}

	if format == "text" {
		printReport(rep)
		return nil
	}

	return printJSON(rep)
}
