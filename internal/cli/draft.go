package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage drafts",
		Long:  "Upload, list, show, and remove drafts.",
	}

	cmd.AddCommand(
		newDraftAddCmd(),
		newDraftListCmd(),
		newDraftShowCmd(),
		newDraftRemoveCmd(),
	)

	return cmd
}

func newDraftAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Upload a draft from a file",
		Long:  "Read a draft from a text file, upload it, and print the generated title.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDraftAdd,
	}
}

func runDraftAdd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading draft file: %w", err)
	}

	body := strings.TrimSpace(string(data))
	if body == "" {
		return fmt.Errorf("draft file is empty")
	}

	c := newAPIClient()

	d, err := c.CreateDraft(body)
	if err != nil {
		return fmt.Errorf("uploading draft: %w", err)
	}

	if isJSON() {
		return printJSON(d)
	}

	fmt.Println("Draft uploaded.")
	printDraftSummary(d)
	return nil
}

func newDraftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your drafts",
		Long:  "List your drafts, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraftList()
		},
	}
}

func runDraftList() error {
	c := newAPIClient()

	drafts, err := c.ListDrafts()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(drafts)
	}

	return printDraftTable(drafts)
}

func newDraftShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show draft details",
		Long:  "Show a draft and all of its comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDraftShow,
	}
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	c := newAPIClient()

	resp, err := c.GetDraft(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(resp)
	}

	printDraftSummary(resp.Draft)
	fmt.Println()
	if len(resp.Comments) > 0 {
		fmt.Printf("Comments (%d):\n", len(resp.Comments))
		printCommentList(resp.Comments)
	} else {
		fmt.Println("No comments.")
	}

	return nil
}

func newDraftRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a draft",
		Long:  "Remove a draft and all of its comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDraftRemove,
	}
}

func runDraftRemove(cmd *cobra.Command, args []string) error {
	c := newAPIClient()

	if err := c.DeleteDraft(args[0]); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"id":      args[0],
			"removed": true,
		})
	}

	fmt.Printf("Draft %s removed.\n", args[0])
	return nil
}
