package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// AccountKeyPrefix namespaces cached accounts by normalized email.
const AccountKeyPrefix = "account:email:"

const scanCount = 200

// CacheEntry is one cached account as an operator sees it. The password is never exposed.
type CacheEntry struct {
	Key      string
	TTL      time.Duration
	Email    string
	Role     string
	Verified bool
	// Corrupt is set when the value does not decode. The cache evicts such keys on read.
	Corrupt bool
}

// ScanAccounts walks every cached account with SCAN and calls fn per key.
// Keys that expire between SCAN and GET are skipped.
func (c *Client) ScanAccounts(ctx context.Context, fn func(CacheEntry) error) (int, error) {
	var cursor uint64
	seen := 0
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, AccountKeyPrefix+"*", scanCount).Result()
		if err != nil {
			return seen, err
		}

		for _, k := range keys {
			raw, err := c.rdb.Get(ctx, k).Bytes()
			if errors.Is(err, goredis.Nil) {
				continue
			}
			if err != nil {
				return seen, err
			}
			ttl, err := c.rdb.TTL(ctx, k).Result()
			if err != nil {
				return seen, err
			}

			e := CacheEntry{Key: k, TTL: ttl}
			var ca cachedAccount
			if json.Unmarshal(raw, &ca) != nil {
				e.Corrupt = true
			} else {
				e.Email, e.Role, e.Verified = ca.Email, ca.Role, ca.IsVerified
			}

			seen++
			if err := fn(e); err != nil {
				return seen, err
			}
		}

		cursor = next
		if cursor == 0 {
			return seen, nil
		}
	}
}

// PurgeAccounts deletes every cached account and returns how many keys went.
func (c *Client) PurgeAccounts(ctx context.Context) (int64, error) {
	var cursor uint64
	var deleted int64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, AccountKeyPrefix+"*", scanCount).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
