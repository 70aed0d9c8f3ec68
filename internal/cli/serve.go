package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcravens/redpen/internal/classifier"
	"github.com/tcravens/redpen/internal/logging"
	"github.com/tcravens/redpen/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API server. Requires OPENAI_API_KEY for comment annotation and draft summarization.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, dev)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().BoolVar(&dev, "dev", false, "developer mode (human-readable logs)")

	return cmd
}

func runServe(port int, dev bool) error {
	logging.Setup(dev)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required to run the server")
	}

	models, err := classifier.New(apiKey, os.Getenv("OPENAI_BASE_URL"))
	if err != nil {
		return fmt.Errorf("creating classifier client: %w", err)
	}

	database, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	server := web.NewServer(database, models)

	fmt.Printf("Listening on http://localhost:%d\n", port)
	return server.ListenAndServe(port)
}
