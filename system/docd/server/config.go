package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/signadot/space/gomap"
	"github.com/signadot/space/system/docd/storage"
)

// Config selects the listen address and the storage backend. It is read
// from a space notation file such as
//
//	addr :7400
//	redis
//	 addr localhost:6379
//	 prefix space:doc:
//	 ttl 24h
type Config struct {
	Addr  string      `space:"addr"`
	Dir   string      `space:"dir"`
	Redis RedisConfig `space:"redis"`
}

type RedisConfig struct {
	Addr     string        `space:"addr"`
	Password string        `space:"password"`
	DB       int           `space:"db"`
	Prefix   string        `space:"prefix"`
	TTL      time.Duration `space:"ttl"`
}

var ErrConfig = errors.New("config error")

func DefaultConfig() *Config {
	return &Config{
		Addr:  ":7400",
		Redis: RedisConfig{Prefix: storage.DefaultRedisPrefix},
	}
}

// LoadConfig reads the config file at path over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	doc, err := storage.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := gomap.Decode(doc, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return cfg, nil
}

// OpenStore builds the configured backend: redis when a redis address is
// set, a directory when dir is set, memory otherwise.
func (c *Config) OpenStore() (storage.Store, error) {
	switch {
	case c.Redis.Addr != "" && c.Dir != "":
		return nil, fmt.Errorf("%w: dir and redis are exclusive", ErrConfig)
	case c.Redis.Addr != "":
		return storage.NewRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB,
			storage.WithPrefix(c.Redis.Prefix), storage.WithTTL(c.Redis.TTL)), nil
	case c.Dir != "":
		return storage.NewDir(c.Dir), nil
	default:
		return storage.NewMemory(), nil
	}
}
