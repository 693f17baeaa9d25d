package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/bootstrap"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/email/emailjs"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
)

var errNotPostgres = errors.New("this command needs STORE_DRIVER=postgres")

// postgresDB loads config and opens the configured database. The caller closes it.
func (c *cli) postgresDB() (*config.Config, *sql.DB, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return nil, nil, errNotPostgres
	}
	db, err := c.openDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, db, nil
}

func (c *cli) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the accounts and contact_messages tables if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := c.postgresDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := postgres.EnsureSchema(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "schema ready")
			return nil
		},
	}
}

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create one verified demo account per role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := c.postgresDB()
			if err != nil {
				return err
			}
			defer db.Close()

			hasher, err := security.NewHasher(cfg.PasswordHasher, cfg.BcryptCost)
			if err != nil {
				return err
			}

			ctx, cancel := c.ctx(cmd)
			defer cancel()
			n := account.SeedDemoAccounts(ctx, postgres.NewAccountRepo(db), hasher)
			fmt.Fprintf(c.out, "created %d demo accounts (password %q)\n", n, account.DemoPassword)
			return nil
		},
	}
}

func newLookupCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup EMAIL",
		Short: "Show an account through the service's test-verify endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			u := strings.TrimRight(c.apiURL, "/") + "/api/auth/test-verify/" + url.PathEscape(args[0])
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return err
			}
			if resp.StatusCode/100 != 2 {
				return fmt.Errorf("lookup failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
			}
			return c.printLookup(body)
		},
	}
}

func (c *cli) printLookup(body []byte) error {
	var res dto.LookupResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if c.outFormat == "json" {
		pretty, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(c.out, string(pretty))
		return nil
	}
	if res.User == nil {
		fmt.Fprintln(c.out, res.Message)
		return nil
	}
	u := res.User
	fmt.Fprintf(c.out, "id=%s email=%s name=%q role=%s verified=%t\n", u.ID, u.Email, u.Name, u.Role, u.IsVerified)
	return nil
}

func newSendTestEmailCmd(c *cli) *cobra.Command {
	var to, name string
	cmd := &cobra.Command{
		Use:   "send-test-email",
		Short: "Send a verification email through EmailJS with the configured retry policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := c.ctx(cmd)
			defer cancel()

			res := bootstrap.NewMailer(cfg, c.http).Send(ctx, emailjs.Params{
				SenderName:     name,
				SenderEmail:    to,
				RecipientEmail: to,
			})
			fmt.Fprintf(c.out, "sent=%t attempts=%d status=%d\n", res.Sent, res.Attempts, res.Status)
			if !res.Sent {
				return errors.New(res.ErrorMessage())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient address (required)")
	cmd.Flags().StringVar(&name, "name", "", "Name shown in the email")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
