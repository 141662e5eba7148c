package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dominos-uk/lib/configutil"
	"dominos-uk/lib/dominos"
	"dominos-uk/lib/orderlog"
	"dominos-uk/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	// BaseURL overrides the production website, mainly for testing against
	// a local fake.
	BaseURL  string `json:"base_url"`
	OrderLog string `json:"order_log"`
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dominos-cli",
	Short: "dominos-cli finds stores, browses menus and orders from Dominos UK.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func loadConfig() Config {
	config, err := configutil.ReadRecursively[Config]("dominos.json5")
	if err != nil && !os.IsNotExist(err) {
		fail(err)
	}
	if config.OrderLog == "" {
		config.OrderLog = defaultOrderLogPath()
	}
	return config
}

func defaultOrderLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "orders.db"
	}
	dir = filepath.Join(dir, "dominos-cli")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "orders.db"
	}
	return filepath.Join(dir, "orders.db")
}

func newClient() *dominos.Client {
	config := loadConfig()
	client, err := dominos.NewClient(dominos.ClientOptions{BaseURL: config.BaseURL})
	if err != nil {
		fail(err)
	}
	return client
}

func openOrderLog() *orderlog.Log {
	config := loadConfig()
	log, err := orderlog.Open(config.OrderLog)
	if err != nil {
		fail(err)
	}
	return log
}
