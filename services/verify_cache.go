package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const verifyCacheTTL = 60 * time.Second

// VerifyCache is a short-TTL Redis cache in front of consent verification,
// the hot path SDKs hit on every page load. A nil *VerifyCache or a nil
// client disables caching entirely.
//
// Invalidation uses a per-subject+domain generation counter baked into the
// value key, so writes never need to scan for stale entries.
type VerifyCache struct {
	Client *redis.Client
}

func NewVerifyCache(client *redis.Client) *VerifyCache {
	if client == nil {
		return nil
	}
	return &VerifyCache{Client: client}
}

func (c *VerifyCache) enabled() bool {
	return c != nil && c.Client != nil
}

func (c *VerifyCache) genKey(subjectID, domain string) string {
	return fmt.Sprintf("consent:verify:gen:%s:%s", subjectID, domain)
}

func (c *VerifyCache) valueKey(subjectID, domain string, gen int64, purposes []string) string {
	sorted := append([]string(nil), purposes...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, ",")))
	return fmt.Sprintf("consent:verify:%s:%s:%d:%s", subjectID, domain, gen, hex.EncodeToString(sum[:8]))
}

func (c *VerifyCache) generation(ctx context.Context, subjectID, domain string) int64 {
	gen, err := c.Client.Get(ctx, c.genKey(subjectID, domain)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// Get returns a cached verification result, or ok=false on any miss or
// redis error. The returned generation is the one observed before the DB
// read and must be handed back to Set, so a result computed before a
// concurrent consent write never lands under the post-write generation.
func (c *VerifyCache) Get(ctx context.Context, subjectID, domain string, purposes []string) (*VerificationResult, int64, bool) {
	if !c.enabled() {
		return nil, 0, false
	}
	gen := c.generation(ctx, subjectID, domain)
	raw, err := c.Client.Get(ctx, c.valueKey(subjectID, domain, gen, purposes)).Bytes()
	if err != nil {
		return nil, gen, false
	}
	var result VerificationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, gen, false
	}
	return &result, gen, true
}

// Set stores a verification result under the generation returned by Get.
// If Invalidate ran in between, the entry lands under the old generation
// and is never served.
func (c *VerifyCache) Set(ctx context.Context, subjectID, domain string, purposes []string, gen int64, result *VerificationResult) {
	if !c.enabled() || result == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.Client.Set(ctx, c.valueKey(subjectID, domain, gen, purposes), raw, verifyCacheTTL)
}

// Invalidate bumps the generation so all cached results for the pair go
// stale immediately. Called after every consent write.
func (c *VerifyCache) Invalidate(ctx context.Context, subjectID, domain string) {
	if !c.enabled() {
		return
	}
	key := c.genKey(subjectID, domain)
	c.Client.Incr(ctx, key)
	c.Client.Expire(ctx, key, 24*time.Hour)
}
