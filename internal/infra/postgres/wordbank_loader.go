package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vocab-quiz-service/internal/domain"
)

// WordBankLoader loads word-bank JSONB from Postgres.
type WordBankLoader struct {
	pool *pgxpool.Pool
}

func NewWordBankLoader(pool *pgxpool.Pool) *WordBankLoader {
	return &WordBankLoader{pool: pool}
}

func (l *WordBankLoader) LoadWordBank(ctx context.Context, bankID string) ([]domain.VocabWord, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM word_banks WHERE id=$1`, bankID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWordBankNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load word bank: %w", err)
	}
	var words []domain.VocabWord
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, fmt.Errorf("unmarshal word bank: %w", err)
	}
	return words, nil
}
