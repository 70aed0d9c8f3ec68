package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "redpen", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL returns the server URL from env var, config, or default.
func getServerURL() string {
	if v := os.Getenv("REDPEN_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return "http://localhost:8080"
}

// getAPIKey returns the API key from env var or config.
func getAPIKey() string {
	if v := os.Getenv("REDPEN_API_KEY"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.APIKey
	}
	return ""
}

func newConfigCmd() *cobra.Command {
	var setServer, setKey string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update CLI configuration",
		Long:  "Show the resolved server URL and API key, or update the stored values with --server and --key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(setServer, setKey)
		},
	}

	cmd.Flags().StringVar(&setServer, "server", "", "set the server URL")
	cmd.Flags().StringVar(&setKey, "key", "", "set the API key")

	return cmd
}

func runConfig(setServer, setKey string) error {
	if setServer != "" || setKey != "" {
		cfg, err := loadConfig()
		if err != nil {
			cfg = CLIConfig{}
		}
		if setServer != "" {
			cfg.ServerURL = setServer
		}
		if setKey != "" {
			cfg.APIKey = setKey
		}
		if err := saveConfig(cfg); err != nil {
			return err
		}
		fmt.Println("Configuration saved.")
		return nil
	}

	if isJSON() {
		return printJSON(map[string]string{
			"server_url": getServerURL(),
			"api_key":    maskKey(getAPIKey()),
		})
	}

	fmt.Printf("Server:  %s\n", getServerURL())
	key := getAPIKey()
	if key == "" {
		fmt.Println("API Key: not configured")
	} else {
		fmt.Printf("API Key: %s\n", maskKey(key))
	}
	return nil
}

// maskKey hides all but the prefix of an API key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) > 8 {
		return key[:8] + "…"
	}
	return key
}
