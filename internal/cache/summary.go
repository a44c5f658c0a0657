package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// summaryTTL bounds staleness of a cached summary. Trip mutations invalidate
// eagerly; the TTL covers writes that bypass this service.
const summaryTTL = 5 * time.Minute

// SummaryCache caches today's compliance summary per owner. Only the current
// day is cached: historical or future reference dates are cheap one-off
// queries and would pollute the keyspace.
type SummaryCache struct {
	client *Client
}

// NewSummaryCache returns a cache over the given client. A nil client yields
// a cache whose operations are all no-ops.
func NewSummaryCache(client *Client) *SummaryCache {
	return &SummaryCache{client: client}
}

func summaryKey(ownerID string) string {
	return "compliance:summary:" + ownerID
}

// Get returns the cached summary for ownerID, or false when absent, expired,
// disabled, or unreadable. Cache errors are reported as misses, never failures.
func (c *SummaryCache) Get(ctx context.Context, ownerID string) (domain.ComplianceSummary, bool) {
	if c == nil || c.client == nil {
		return domain.ComplianceSummary{}, false
	}

	raw, err := c.client.Get(ctx, summaryKey(ownerID)).Bytes()
	if err != nil {
		return domain.ComplianceSummary{}, false
	}

	var s domain.ComplianceSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.ComplianceSummary{}, false
	}
	return s, true
}

// Set stores the summary for ownerID. Errors are swallowed: the cache is an
// optimization, never a dependency.
func (c *SummaryCache) Set(ctx context.Context, ownerID string, s domain.ComplianceSummary) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	c.client.Client.Set(ctx, summaryKey(ownerID), raw, summaryTTL)
}

// Invalidate drops the cached summary for ownerID after a trip mutation.
func (c *SummaryCache) Invalidate(ctx context.Context, ownerID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, summaryKey(ownerID))
}

// AcquireLock takes a best-effort advisory lock so only one replica runs the
// daily alert cycle. Returns true when the lock was acquired or Redis is not
// configured (single-replica deployments still run the job).
func (c *Client) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}
	ok, err := c.SetNX(ctx, lockKey(name), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	return ok, nil
}

// ReleaseLock drops the advisory lock. Nil-safe; errors are returned so the
// job can log them, but a leaked lock expires with its TTL anyway.
func (c *Client) ReleaseLock(ctx context.Context, name string) error {
	if c == nil {
		return nil
	}
	return c.Del(ctx, lockKey(name)).Err()
}

func lockKey(name string) string {
	return "lock:" + name
}
