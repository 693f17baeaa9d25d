// Command accountctl runs operator tasks against the account store, the email
// provider and a running account service.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

type cli struct {
	loadConfig func() (*config.Config, error)
	openDB     func(addr string, debug bool) (*sql.DB, error)
	newRedis   func(addr, password string, db int) *redis.Client
	http       *http.Client
	out        io.Writer

	apiURL    string
	outFormat string
	timeout   time.Duration
}

func defaultCLI() *cli {
	return &cli{
		loadConfig: config.Load,
		openDB:     config.NewDB,
		newRedis:   redis.New,
		http:       &http.Client{Timeout: 30 * time.Second},
		out:        os.Stdout,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "accountctl",
		Short:         "Operator CLI for the account service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", envOr("ACCOUNTCTL_API_URL", "http://localhost:5000"), "Base URL of a running account service (env ACCOUNTCTL_API_URL)")
	root.PersistentFlags().StringVar(&c.outFormat, "out", envOr("ACCOUNTCTL_OUT", "text"), "Output format: json|text")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", time.Minute, "Deadline for the whole command")

	root.AddCommand(
		newMigrateCmd(c),
		newSeedCmd(c),
		newLookupCmd(c),
		newSendTestEmailCmd(c),
		newCacheCmd(c),
	)
	return root
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	logger.InitWithWriter(os.Stderr)

	if err := newRootCmd(defaultCLI()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
