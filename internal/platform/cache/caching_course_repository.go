// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"course_api/internal/feature/courses/domain/entity"
	"course_api/internal/feature/courses/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "courses"
)

// CachingCourseRepository decorates a CourseRepository with a Redis read-through cache.
// Reads are served from Redis when possible; every write invalidates the
// affected keys after the underlying write succeeds.
type CachingCourseRepository struct {
	inner     usecase.CourseRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CourseRepository = (*CachingCourseRepository)(nil)

// NewCachingCourseRepository decorates a CourseRepository with Redis caching.
// If ttl is not positive, it defaults to 5 minutes. If namespace is empty, it uses "courses".
// A nil rdb disables caching.
func NewCachingCourseRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CourseRepository, namespace string) *CachingCourseRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingCourseRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns all courses, from cache when present.
func (c *CachingCourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()
	var out []entity.Course
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindByID returns a single course, from cache when present. Misses are not cached.
func (c *CachingCourseRepository) FindByID(ctx context.Context, id uint) (*entity.Course, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.courseKey(id)
	var cached entity.Course
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	course, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, course)
	return course, nil
}

// Create persists the course and invalidates the list.
func (c *CachingCourseRepository) Create(ctx context.Context, course *entity.Course) error {
	if err := c.inner.Create(ctx, course); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// Update persists the change and invalidates the course and the list.
func (c *CachingCourseRepository) Update(ctx context.Context, course *entity.Course) error {
	if err := c.inner.Update(ctx, course); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.courseKey(course.ID))
	return nil
}

// Delete removes the course and invalidates the course and the list.
func (c *CachingCourseRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.courseKey(id))
	return nil
}

// get decodes the cached value at key into dst. Corrupted entries are deleted.
func (c *CachingCourseRepository) get(ctx context.Context, key string, dst any) bool {
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

// set stores v at key (best effort).
func (c *CachingCourseRepository) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "course cache write failed", "key", key, "error", err)
	}
}

// invalidate deletes keys (best effort). Stale entries still expire after ttl.
func (c *CachingCourseRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "course cache invalidation failed", "keys", keys, "error", err)
	}
}

func (c *CachingCourseRepository) listKey() string {
	return c.namespace + ":list"
}

func (c *CachingCourseRepository) courseKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}
