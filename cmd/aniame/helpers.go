package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/aniame"
	"github.com/aretw0/aniame/internal/config"
	"github.com/aretw0/aniame/pkg/adapters/redis"
	"github.com/aretw0/aniame/pkg/ports"
	"github.com/aretw0/aniame/pkg/refcheck"
	"github.com/aretw0/aniame/pkg/tree"
)

// readDocument decodes a JSON or YAML file; "-" reads standard input.
func readDocument(path string, stdin io.Reader) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := tree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

// refOptions wires a Redis backed foreign key check when cfg.Addr is set.
// The returned func closes the Redis client.
func refOptions(cfg config.RedisConfig) ([]aniame.Option, func() error, error) {
	if cfg.Addr == "" {
		return nil, func() error { return nil }, nil
	}
	ttl, err := cfg.Expiration()
	if err != nil {
		return nil, nil, err
	}
	opts := []redis.Option{redis.WithTTL(ttl)}
	if cfg.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Prefix))
	}
	store := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)

	var lookups ports.ReferenceStore = store
	if cfg.CacheSize > 0 {
		cache, err := refcheck.NewCache(store, cfg.CacheSize)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		lookups = cache
	}
	return []aniame.Option{aniame.WithRefChecker(refcheck.ForeignKey(lookups))}, store.Close, nil
}
