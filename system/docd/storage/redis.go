package storage

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/signadot/space/debug"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"

	backend "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix prefixes the keys of documents stored in redis.
const DefaultRedisPrefix = "space:doc:"

// Redis stores documents as space notation strings in redis, with a sorted
// set indexing the live keys.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*Redis)

// WithTTL sets the expiration of stored documents.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *Redis) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		s.prefix = prefix
	}
}

// NewRedis connects to the redis server at address.
func NewRedis(address, password string, db int, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(client, opts...)
}

// NewRedisFromClient uses an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Redis) key(key string) string {
	return s.prefix + key
}

func (s *Redis) indexKey() string {
	return s.prefix + "index"
}

// never expires, far enough out
const noExpiry = 4102444800

func (s *Redis) Get(ctx context.Context, key string) (*ir.Node, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return parse.ParseString(val), nil
}

func (s *Redis) Put(ctx context.Context, key string, doc *ir.Node) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), encode.MustString(doc), s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	if debug.Store() {
		debug.Logf("redis put %s\n", s.key(key))
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// List prunes expired entries from the index and returns the rest.
func (s *Redis) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired documents: %w", err)
	}
	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close closes the redis client.
func (s *Redis) Close() error {
	return s.client.Close()
}
