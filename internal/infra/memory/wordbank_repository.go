package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vocab-quiz-service/internal/domain"
)

// WordBankLoader fetches word-bank content from a backing store (e.g., Postgres).
type WordBankLoader interface {
	LoadWordBank(ctx context.Context, bankID string) ([]domain.VocabWord, error)
}

// WordBankRepository caches word banks with TTL to avoid repeated DB hits.
type WordBankRepository struct {
	loader WordBankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	words     []domain.VocabWord
	expiresAt time.Time
}

func NewWordBankRepository(loader WordBankLoader, ttl time.Duration) *WordBankRepository {
	return &WordBankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (r *WordBankRepository) GetWordBank(ctx context.Context, bankID string) ([]domain.VocabWord, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[bankID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.words, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[bankID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.words, nil
		}
		r.mu.RUnlock()

		words, err := r.loader.LoadWordBank(ctx, bankID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[bankID] = cachedBank{
			words:     words,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return words, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.VocabWord), nil
}

func (r *WordBankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticWordBankLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticWordBankLoader struct {
	banks map[string][]domain.VocabWord
}

func NewStaticWordBankLoader(banks map[string][]domain.VocabWord) *StaticWordBankLoader {
	return &StaticWordBankLoader{banks: banks}
}

func (l *StaticWordBankLoader) LoadWordBank(_ context.Context, bankID string) ([]domain.VocabWord, error) {
	if words, ok := l.banks[bankID]; ok {
		return words, nil
	}
	return nil, domain.ErrWordBankNotFound
}
