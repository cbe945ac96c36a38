// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// CachingResumeRepository decorates a ResumeRepository with Redis caching.
// Reads are cached per owner; every write bumps the owner's version and drops
// the owner's list entry and the affected item entry. A fill only lands if the
// version is unchanged since before the inner read, so a read racing a write
// cannot put the old document back. A nil client turns the decorator into a
// pass-through.
type CachingResumeRepository struct {
	inner     usecase.ResumeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// fillScript sets KEYS[2] only while KEYS[1] still holds the version read
// before the inner lookup. A missing version counts as "0".
const fillScript = `if (redis.call('GET', KEYS[1]) or '0') == ARGV[1] then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
	return 1
end
return 0`

// Compile-time check that CachingResumeRepository implements ResumeRepository.
var _ usecase.ResumeRepository = (*CachingResumeRepository)(nil)

// NewCachingResumeRepository decorates a ResumeRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "resumes".
func NewCachingResumeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ResumeRepository, namespace string) *CachingResumeRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "resumes"
	}
	return &CachingResumeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the resume and invalidates the owner's list.
func (c *CachingResumeRepository) Create(ctx context.Context, r *entity.Resume) error {
	if err := c.inner.Create(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx, r.UserID, c.listKey(r.UserID))
	return nil
}

// FindByID checks the cache first then falls back to the inner repository.
// Misses are not cached.
func (c *CachingResumeRepository) FindByID(ctx context.Context, userID uint, id string) (*entity.Resume, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, userID, id)
	}

	key := c.itemKey(userID, id)
	var cached entity.Resume
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	ver, ok := c.version(ctx, userID)
	r, err := c.inner.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if ok {
		c.store(ctx, userID, ver, key, r)
	}
	return r, nil
}

// ListByUser checks the cache first then falls back to the inner repository.
func (c *CachingResumeRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Resume, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.listKey(userID)
	var cached []entity.Resume
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	ver, ok := c.version(ctx, userID)
	list, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		c.store(ctx, userID, ver, key, list)
	}
	return list, nil
}

// Update writes through and invalidates the item and the owner's list.
func (c *CachingResumeRepository) Update(ctx context.Context, r *entity.Resume) (*entity.Resume, error) {
	out, err := c.inner.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, r.UserID, c.itemKey(r.UserID, r.ID), c.listKey(r.UserID))
	return out, nil
}

// Delete removes the resume and invalidates the item and the owner's list.
func (c *CachingResumeRepository) Delete(ctx context.Context, userID uint, id string) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID, c.itemKey(userID, id), c.listKey(userID))
	return nil
}

// load reports whether key held a decodable value. Corrupted entries are deleted.
func (c *CachingResumeRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// version returns the owner's current cache version. ok is false when Redis
// could not be read, in which case the result must not be cached.
func (c *CachingResumeRepository) version(ctx context.Context, userID uint) (string, bool) {
	v, err := c.rdb.Get(ctx, c.versionKey(userID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		return "", false
	}
	return v, true
}

// store writes v under key if the owner's version still equals ver. Best effort.
func (c *CachingResumeRepository) store(ctx context.Context, userID uint, ver, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	keys := []string{c.versionKey(userID), key}
	if err := c.rdb.Eval(ctx, fillScript, keys, ver, b, c.ttl.Milliseconds()).Err(); err != nil {
		slog.Warn("resume cache write failed", "key", key, "error", err)
	}
}

func (c *CachingResumeRepository) invalidate(ctx context.Context, userID uint, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.versionKey(userID)).Err(); err != nil {
		slog.Warn("resume cache version bump failed", "user_id", userID, "error", err)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		// A stale entry survives at most one TTL.
		slog.Warn("resume cache invalidation failed", "keys", keys, "error", err)
	}
}

func (c *CachingResumeRepository) listKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d:list", c.namespace, userID)
}

func (c *CachingResumeRepository) versionKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d:version", c.namespace, userID)
}

func (c *CachingResumeRepository) itemKey(userID uint, id string) string {
	return fmt.Sprintf("%s:user:%d:item:%s", c.namespace, userID, id)
}
