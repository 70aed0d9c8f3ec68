package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tcravens/redpen/internal/auth"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage API keys",
		Long:  "Create, list, and revoke API keys in the local database. Run these on the machine that hosts the server.",
	}

	cmd.AddCommand(
		newKeyCreateCmd(),
		newKeyListCmd(),
		newKeyRevokeCmd(),
	)

	return cmd
}

func newKeyCreateCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an API key",
		Long:  "Create an API key bound to an owner. The full key is shown once; only a hash is stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeyCreate(args[0], owner)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "default", "owner ID the key authenticates as")

	return cmd
}

func runKeyCreate(name, owner string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	raw, key, err := auth.NewAPIKeyStore(database).Create(name, owner)
	if err != nil {
		return fmt.Errorf("creating key: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"id":    key.ID,
			"name":  key.Name,
			"owner": key.OwnerID,
			"key":   raw,
		})
	}

	fmt.Printf("Key #%d created for owner %q.\n\n", key.ID, key.OwnerID)
	fmt.Printf("  %s\n\n", raw)
	fmt.Println("Store it now; it cannot be shown again.")
	return nil
}

func newKeyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeyList()
		},
	}
}

func runKeyList() error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	keys, err := auth.NewAPIKeyStore(database).List()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(keys)
	}

	printKeyTable(keys)
	return nil
}

func newKeyRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE:  runKeyRevoke,
	}
}

func runKeyRevoke(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid key ID: %s", args[0])
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	if err := auth.NewAPIKeyStore(database).Delete(id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"id":      id,
			"revoked": true,
		})
	}

	fmt.Printf("Key #%d revoked.\n", id)
	return nil
}
