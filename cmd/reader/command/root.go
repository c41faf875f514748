package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kweezy.app/server/internal/reader"
)

var (
	apiURL    string
	token     string
	cachePath string
)

var rootCmd = &cobra.Command{
	Use:   "reader",
	Short: "reader - terminal client for the Kweezy reading platform",
	Long: `reader is a terminal client for the Kweezy reading platform. It can:
- Browse the novel catalog
- Read chapters segment by segment, resuming where you left off
- Show and post segment comments

Reading positions are cached locally and synced to the server in the
background when a token is provided.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultCache := "scroll_cache.json"
	if home, err := os.UserHomeDir(); err == nil {
		defaultCache = filepath.Join(home, ".kweezy", "scroll_cache.json")
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "authentication token (JWT)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", defaultCache, "local scroll cache file")
}

func newClient() *reader.Client {
	c := reader.NewClient(apiURL)
	if token != "" {
		c.SetToken(token)
	}
	return c
}

func openStore() *reader.Store {
	return reader.OpenStore(cachePath)
}
