// Package cache keeps transcoding results in memory and, optionally, in a
// persistent store so repeated work on large inputs is skipped.
package cache

import (
	"bytes"
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DriverNone     = "none"
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver        string        `yaml:"driver"`
	File          string        `yaml:"file"`
	DSN           string        `yaml:"dsn"`
	Entries       int           `yaml:"entries"`
	MaxEntryBytes int           `yaml:"maxEntryBytes"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Store persists results. Implementations return copies that callers may
// keep.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Put(ctx context.Context, key Key, value []byte) error
	Close() error
}

// Cache is an LRU memory tier in front of an optional Store.
// It is safe for concurrent use.
type Cache struct {
	mem      *lru.Cache[Key, []byte]
	maxEntry int
	store    Store
}

// New creates a cache holding up to entries values of at most maxEntryBytes
// each in memory. A zero maxEntryBytes means no limit. store may be nil.
func New(entries, maxEntryBytes int, store Store) (*Cache, error) {
	mem, err := lru.New[Key, []byte](entries)
	if err != nil {
		return nil, fmt.Errorf("cache: lru: %w", err)
	}

	return &Cache{
		mem:      mem,
		maxEntry: maxEntryBytes,
		store:    store,
	}, nil
}

// Open builds the cache described by config. It returns nil, nil when
// caching is disabled.
func Open(ctx context.Context, config Config) (*Cache, error) {
	if config.Entries == 0 {
		config.Entries = 128
	}

	var store Store
	switch config.Driver {
	case "", DriverNone:
		return nil, nil

	case DriverMemory:

	case DriverBolt:
		b, err := OpenBolt(config.File, config.Timeout)
		if err != nil {
			return nil, err
		}
		store = b

	case DriverPostgres:
		p, err := OpenPostgres(ctx, config.DSN, config.Timeout)
		if err != nil {
			return nil, err
		}
		store = p

	default:
		return nil, fmt.Errorf("cache: unknown driver %q", config.Driver)
	}

	c, err := New(config.Entries, config.MaxEntryBytes, store)
	if err != nil && store != nil {
		store.Close()
	}
	return c, err
}

// Get returns a value that must not be modified.
func (c *Cache) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if v, ok := c.mem.Get(key); ok {
		return v, true, nil
	}
	if c.store == nil {
		return nil, false, nil
	}

	v, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	c.remember(key, v)
	return v, true, nil
}

// Put stores a copy of value. Empty values are cheap to recompute and are
// not stored.
func (c *Cache) Put(ctx context.Context, key Key, value []byte) error {
	if len(value) == 0 {
		return nil
	}

	c.remember(key, bytes.Clone(value))
	if c.store == nil {
		return nil
	}
	return c.store.Put(ctx, key, value)
}

func (c *Cache) remember(key Key, value []byte) {
	if c.maxEntry > 0 && len(value) > c.maxEntry {
		return
	}
	c.mem.Add(key, value)
}

func (c *Cache) Close() error {
	c.mem.Purge()
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
