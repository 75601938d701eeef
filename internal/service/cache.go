package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Cache хранилище сериализуемых значений с TTL.
type Cache interface {
	// Get декодирует значение в dst; false, если ключа нет или он истёк.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidateByPrefix(ctx context.Context, prefix string) error
}

// Ключи кэша.
const (
	cachePrefixCandidates = "candidates:"
	filterOptionsCacheKey = cachePrefixCandidates + "filter_options"
)

// MemoryCache кэш в памяти процесса с периодической очисткой истёкших записей.
type MemoryCache struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache создаёт кэш и запускает фоновую очистку.
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go mc.cleanup(5 * time.Minute)
	return mc
}

func (mc *MemoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	mc.mu.RLock()
	entry, exists := mc.cache[key]
	mc.mu.RUnlock()

	if !exists || mc.now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.cache[key] = &cacheEntry{data: data, expiresAt: mc.now().Add(ttl)}
	return nil
}

func (mc *MemoryCache) InvalidateByPrefix(_ context.Context, prefix string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for key := range mc.cache {
		if strings.HasPrefix(key, prefix) {
			delete(mc.cache, key)
		}
	}
	return nil
}

// Close останавливает фоновую очистку.
func (mc *MemoryCache) Close() {
	mc.once.Do(func() { close(mc.stop) })
}

func (mc *MemoryCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.purgeExpired()
		}
	}
}

func (mc *MemoryCache) purgeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	for key, entry := range mc.cache {
		if now.After(entry.expiresAt) {
			delete(mc.cache, key)
		}
	}
}
