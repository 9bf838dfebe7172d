package history

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"image-story-web/internal/domain"
)

// cleanupInterval 失効したセッション履歴を掃除する周期
const cleanupInterval = 10 * time.Minute

// Store はセッションIDごとの生成履歴を保持するインメモリストアです。
// 履歴は挿入順を保った追記専用のリストで、重複排除や選別は行いません。
// TTL を過ぎて放置されたセッションの履歴はまとめて破棄されます。
type Store struct {
	mu      sync.Mutex
	entries *cache.Cache
}

// NewStore は TTL 付きの履歴ストアを初期化します。
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: cache.New(ttl, cleanupInterval),
	}
}

// Append はセッションの履歴末尾に 1 件追記し、TTL を更新します。
func (s *Store) Append(sessionID string, result domain.GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(sessionID)
	records = append(records, result)
	s.entries.Set(sessionID, records, cache.DefaultExpiration)
}

// Records はセッションの履歴を挿入順で返します。返り値は呼び出し側が
// 自由に使えるコピーです。
func (s *Store) Records(sessionID string) []domain.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(sessionID)
	out := make([]domain.GenerationResult, len(records))
	copy(out, records)
	return out
}

// Clear はセッションの履歴を破棄します。
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Delete(sessionID)
}

func (s *Store) load(sessionID string) []domain.GenerationResult {
	v, ok := s.entries.Get(sessionID)
	if !ok {
		return nil
	}
	records, ok := v.([]domain.GenerationResult)
	if !ok {
		return nil
	}
	return records
}
