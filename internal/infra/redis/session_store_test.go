package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/domain"
	"vocab-quiz-service/internal/quiz"
)

func TestSessionStoreTracksLiveness(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewSessionStore(client, time.Minute)
	bank := []domain.VocabWord{
		{ID: "w1", Word: "alpha", Definition: "first", Synonyms: []string{"a"}},
		{ID: "w2", Word: "beta", Definition: "second", Synonyms: []string{"b"}},
	}
	session := app.NewSession("s1", bank, quiz.DefaultRules())

	store.Put(session)
	got, ok := store.Get("s1")
	if !ok || got.ID() != "s1" {
		t.Fatalf("expected stored session s1, got %v/%v", got, ok)
	}
	if !mr.Exists("quiz:session:s1") {
		t.Fatalf("expected a liveness marker in redis")
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("session survived delete")
	}
	if mr.Exists("quiz:session:s1") {
		t.Fatalf("liveness marker survived delete")
	}
}
