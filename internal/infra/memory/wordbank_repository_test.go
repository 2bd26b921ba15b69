package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"vocab-quiz-service/internal/domain"
)

type countingLoader struct {
	calls int32
	banks map[string][]domain.VocabWord
}

func (l *countingLoader) LoadWordBank(_ context.Context, bankID string) ([]domain.VocabWord, error) {
	atomic.AddInt32(&l.calls, 1)
	if words, ok := l.banks[bankID]; ok {
		return words, nil
	}
	return nil, domain.ErrWordBankNotFound
}

func TestWordBankRepositoryCachesLoads(t *testing.T) {
	loader := &countingLoader{banks: map[string][]domain.VocabWord{
		"bank-1": {{ID: "w1", Word: "alpha", Definition: "first"}},
	}}
	repo := NewWordBankRepository(loader, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		words, err := repo.GetWordBank(ctx, "bank-1")
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if len(words) != 1 || words[0].ID != "w1" {
			t.Fatalf("get %d: unexpected words %+v", i, words)
		}
	}
	if calls := atomic.LoadInt32(&loader.calls); calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
}

func TestWordBankRepositoryExpiresEntries(t *testing.T) {
	loader := &countingLoader{banks: map[string][]domain.VocabWord{
		"bank-1": {{ID: "w1", Word: "alpha", Definition: "first"}},
	}}
	repo := NewWordBankRepository(loader, time.Minute)
	now := time.Unix(1700000000, 0)
	repo.clock = func() time.Time { return now }
	ctx := context.Background()

	if _, err := repo.GetWordBank(ctx, "bank-1"); err != nil {
		t.Fatalf("first get: %v", err)
	}

	// jitter caps at 10%, so 2x TTL is always past expiry
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetWordBank(ctx, "bank-1"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if calls := atomic.LoadInt32(&loader.calls); calls != 2 {
		t.Fatalf("loader called %d times, want 2 after expiry", calls)
	}
}

func TestWordBankRepositoryPropagatesNotFound(t *testing.T) {
	repo := NewWordBankRepository(&countingLoader{}, time.Minute)

	if _, err := repo.GetWordBank(context.Background(), "missing"); !errors.Is(err, domain.ErrWordBankNotFound) {
		t.Fatalf("expected ErrWordBankNotFound, got %v", err)
	}
}

func TestStaticWordBankLoader(t *testing.T) {
	loader := NewStaticWordBankLoader(map[string][]domain.VocabWord{
		"demo": {{ID: "w1"}, {ID: "w2"}},
	})

	words, err := loader.LoadWordBank(context.Background(), "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if _, err := loader.LoadWordBank(context.Background(), "other"); !errors.Is(err, domain.ErrWordBankNotFound) {
		t.Fatalf("expected ErrWordBankNotFound, got %v", err)
	}
}
