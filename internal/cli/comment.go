package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage comments on a draft",
		Long:  "Add a single comment or upload a CSV of comments to a draft.",
	}

	cmd.AddCommand(
		newCommentAddCmd(),
		newCommentUploadCmd(),
		newCommentListCmd(),
	)

	return cmd
}

func newCommentAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `add <draft-id> "text"`,
		Short: "Add a comment to a draft",
		Long:  "Add a single comment to a draft. The server annotates it with sentiment before storing.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCommentAdd,
	}
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args[1:], " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}

	c := newAPIClient()

	comm, err := c.AddComment(args[0], text)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(comm)
	}

	printCommentSingle(comm)
	return nil
}

func newCommentUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <draft-id> <file.csv>",
		Short: "Upload a CSV of comments",
		Long:  "Upload a CSV file with a 'comment' column. Every row is annotated and stored; blank rows are skipped.",
		Args:  cobra.ExactArgs(2),
		RunE:  runCommentUpload,
	}
}

func runCommentUpload(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening csv file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing csv file: %v\n", cerr)
		}
	}()

	c := newAPIClient()

	comments, err := c.UploadComments(args[0], file.Name(), file)
	if err != nil {
		return fmt.Errorf("uploading comments: %w", err)
	}

	if isJSON() {
		return printJSON(comments)
	}

	fmt.Printf("%d comments added.\n\n", len(comments))
	printCommentList(comments)
	return nil
}

func newCommentListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list <draft-id>",
		Short: "List comments on a draft",
		Long:  "List comments on a draft, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentList(args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of comments to return")

	return cmd
}

func runCommentList(draftID string, limit int) error {
	c := newAPIClient()

	comments, err := c.ListComments(draftID, limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(comments)
	}

	printCommentList(comments)
	return nil
}
