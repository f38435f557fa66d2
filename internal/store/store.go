// Package store keeps raw scene documents in Redis.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	redis "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix for stored documents.
// Key pattern: scene:doc:{name}, with the name set at scene:doc:_index.
const DefaultPrefix = "scene:doc:"

const indexSuffix = "_index"

// Repository errors.
var (
	ErrNotFound    = errors.New("scene document not found")
	ErrInvalidName = errors.New("invalid scene document name")
	ErrNoClient    = errors.New("redis client is required")
)

// Repository stores scene documents by name.
type Repository interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Config holds the configuration for the Redis repository.
type Config struct {
	Client redis.UniversalClient
	// Prefix defaults to DefaultPrefix.
	Prefix string
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	if c == nil || c.Client == nil {
		return ErrNoClient
	}
	return nil
}

type redisRepository struct {
	client redis.UniversalClient
	prefix string
}

var _ Repository = (*redisRepository)(nil)

// NewClient creates a Redis client for addr.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// NewRedisRepository creates a Redis-backed document repository.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &redisRepository{client: cfg.Client, prefix: prefix}, nil
}

func validName(name string) error {
	if name == "" || name == indexSuffix || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (r *redisRepository) key(name string) string {
	return r.prefix + name
}

func (r *redisRepository) indexKey() string {
	return r.prefix + indexSuffix
}

// Put stores or replaces a document.
func (r *redisRepository) Put(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(name), data, 0)
		pipe.SAdd(ctx, r.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing scene %q: %w", name, err)
	}
	return nil
}

// Get returns the raw document bytes.
func (r *redisRepository) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("loading scene %q: %w", name, err)
	}
	return data, nil
}

// Delete removes a document. Deleting a missing document returns ErrNotFound.
func (r *redisRepository) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.key(name))
		pipe.SRem(ctx, r.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting scene %q: %w", name, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// List returns the stored document names in sorted order.
func (r *redisRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing scenes: %w", err)
	}
	slices.Sort(names)
	return names, nil
}
