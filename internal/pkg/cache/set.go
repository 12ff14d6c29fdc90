package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("cache: key not found")

func NewSet[T any](prefix string, expire time.Duration) *Set[T] {
	return &Set[T]{
		prefix: prefix + ":",
		expire: expire,
		c:      cache.New(expire, expire*2),
	}
}

// Set is an in-process keyed cache of T values.
type Set[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	prefix string
	expire time.Duration

	c *cache.Cache
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(key string) (T, error) {
	var zero T
	result, ok := c.c.Get(c.key(key))
	if !ok {
		return zero, ErrNotFound
	}
	value, ok := result.(T)
	if !ok {
		log.Error().Str("key", c.key(key)).Msgf("unexpected cached value type %T", result)
		return zero, ErrNotFound
	}
	return value, nil
}

func (c *Set[T]) Set(key string, value T) {
	if l := log.Trace(); l.Enabled() {
		l.Str("key", c.key(key)).Msg("setting value to cache")
	}
	c.c.Set(c.key(key), value, c.expire)
}

// MutexGetSet gets value from cache, or if the key does not exist, it executes valueFunc
// to get the value if the key still does not exist when serially dispatched, and stores it.
// The second return value tells whether the value was calculated (true) or served from cache (false).
func (c *Set[T]) MutexGetSet(key string, valueFunc func() (T, error)) (T, bool, error) {
	if value, err := c.Get(key); err == nil {
		return value, false, nil
	}
	// onwards, cache key does not exist

	return c.slowMutexGetSet(key, valueFunc)
}

func (c *Set[T]) slowMutexGetSet(key string, valueFunc func() (T, error)) (T, bool, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if value, err := c.Get(key); err == nil {
		return value, false, nil
	}

	value, err := valueFunc()
	if err != nil {
		var zero T
		return zero, true, err
	}

	c.Set(key, value)

	return value, true, nil
}

func (c *Set[T]) Delete(key string) {
	c.c.Delete(c.key(key))
}

func (c *Set[T]) Flush() {
	c.c.Flush()
}

func (c *Set[T]) Count() int {
	return c.c.ItemCount()
}
