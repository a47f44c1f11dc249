package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"
)

// Store is a string-keyed byte cache. A failed lookup is a miss; callers never need to
// distinguish the two.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New builds the store selected by cfg. It returns a nil Store when caching is disabled.
func New(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("cache disabled")
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheBackendRedis:
		rs, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key builds "<namespace>:<sha256 of parts>".
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// HashBytes hex SHA-256 of b.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func namespaceOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "default"
}

// GetJSON decodes the cached value at key into v. A nil store always misses.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) bool {
	if s == nil {
		return false
	}
	data, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		common.LogWarn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON stores v at key. Failures are logged, never returned.
func SetJSON(ctx context.Context, s Store, key string, v interface{}) {
	if s == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		common.LogWarn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.Set(ctx, key, data); err != nil {
		common.LogWarn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
