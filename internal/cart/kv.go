package cart

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// KV is the single persisted slot holding the serialized cart. Get returns
// (nil, nil) when the slot is empty.
type KV interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, value []byte) error
	Delete(ctx context.Context) error
}

// RedisKV persists the cart under a fixed key in Redis.
type RedisKV struct {
	client *redis.Client
	key    string
}

func NewRedisKV(client *redis.Client, key string) *RedisKV {
	return &RedisKV{client: client, key: key}
}

func (r *RedisKV) Get(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisKV) Set(ctx context.Context, value []byte) error {
	// No TTL: the cart survives until cleared, like the browser slot it
	// replaces.
	return r.client.Set(ctx, r.key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// MemoryKV is the in-process fallback used when Redis is unreachable, and
// the store of choice in tests.
type MemoryKV struct {
	mu    sync.Mutex
	value []byte
	set   bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{}
}

func (m *MemoryKV) Get(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, nil
	}
	out := make([]byte, len(m.value))
	copy(out, m.value)
	return out, nil
}

func (m *MemoryKV) Set(ctx context.Context, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = make([]byte, len(value))
	copy(m.value, value)
	m.set = true
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = nil
	m.set = false
	return nil
}
