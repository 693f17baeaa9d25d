package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/redis"
)

func (c *cli) cacheClient() (*redis.Client, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is not set; the account cache is disabled")
	}
	return c.newRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
}

func newCacheCmd(c *cli) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or purge the Redis account cache",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List cached accounts with their TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := c.cacheClient()
			if err != nil {
				return err
			}
			defer rc.Close()

			ctx, cancel := c.ctx(cmd)
			defer cancel()
			n, err := rc.ScanAccounts(ctx, func(e redis.CacheEntry) error {
				if e.Corrupt {
					fmt.Fprintf(c.out, "%s ttl=%s corrupt\n", e.Key, e.TTL)
					return nil
				}
				fmt.Fprintf(c.out, "%s ttl=%s role=%s verified=%t\n", e.Key, e.TTL, e.Role, e.Verified)
				return nil
			})
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(c.out, "no cached accounts")
			}
			return nil
		},
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete every cached account; reads fall back to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := c.cacheClient()
			if err != nil {
				return err
			}
			defer rc.Close()

			ctx, cancel := c.ctx(cmd)
			defer cancel()
			n, err := rc.PurgeAccounts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "purged %d keys\n", n)
			return nil
		},
	}

	cacheCmd.AddCommand(list, purge)
	return cacheCmd
}
