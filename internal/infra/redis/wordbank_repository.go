package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"vocab-quiz-service/internal/domain"
)

// WordBankLoader fetches word-bank content from a backing store (e.g., Postgres).
type WordBankLoader interface {
	LoadWordBank(ctx context.Context, bankID string) ([]domain.VocabWord, error)
}

// WordBankRepository caches word banks in Redis (hash per bank) and falls back
// to a loader on cache miss. Words are stored as:
//
//	HSET wordbank:{bankID}:words {wordID} {word JSON}
type WordBankRepository struct {
	client *redis.Client
	loader WordBankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewWordBankRepository(client *redis.Client, loader WordBankLoader, ttl time.Duration) *WordBankRepository {
	return &WordBankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *WordBankRepository) GetWordBank(ctx context.Context, bankID string) ([]domain.VocabWord, error) {
	key := r.wordsKey(bankID)

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err == nil && len(fields) > 0 {
		return decodeBank(fields)
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err == nil && len(fields) > 0 {
			return decodeBankAny(fields)
		}

		words, err := r.loader.LoadWordBank(ctx, bankID)
		if err != nil {
			return nil, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for _, word := range words {
			data, err := json.Marshal(word)
			if err != nil {
				continue
			}
			pipe.HSet(ctx, key, word.ID, data)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return words, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.VocabWord), nil
}

func (r *WordBankRepository) wordsKey(bankID string) string {
	return "wordbank:" + bankID + ":words"
}

// decodeBank rebuilds a bank from the cached hash. Hash iteration order is
// unspecified, so entries are sorted by word id for a stable sequence.
func decodeBank(fields map[string]string) ([]domain.VocabWord, error) {
	words := make([]domain.VocabWord, 0, len(fields))
	for _, raw := range fields {
		var word domain.VocabWord
		if err := json.Unmarshal([]byte(raw), &word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].ID < words[j].ID })
	return words, nil
}

func decodeBankAny(fields map[string]string) (interface{}, error) {
	words, err := decodeBank(fields)
	if err != nil {
		return nil, err
	}
	return words, nil
}

func (r *WordBankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
