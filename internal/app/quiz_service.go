package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vocab-quiz-service/internal/domain"
	"vocab-quiz-service/internal/quiz"
)

// SessionRepository abstracts how live sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// WordBankRepository loads word-bank content (from cache/backing store).
type WordBankRepository interface {
	GetWordBank(ctx context.Context, bankID string) ([]domain.VocabWord, error)
}

// QuizService contains the quiz use cases: one session per caller, each an
// independent engine over a loaded word bank.
type QuizService struct {
	sessions SessionRepository
	banks    WordBankRepository
	rules    quiz.Rules
	newRand  func() quiz.Rand
	now      func() time.Time
	newID    func() string
}

func NewQuizService(store SessionRepository, banks WordBankRepository, rules quiz.Rules) *QuizService {
	return NewQuizServiceWithDeps(store, banks, rules, quiz.NewRand, time.Now, uuid.NewString)
}

// NewQuizServiceWithDeps injects randomness, clock, and id generation for
// deterministic tests.
func NewQuizServiceWithDeps(store SessionRepository, banks WordBankRepository, rules quiz.Rules, newRand func() quiz.Rand, now func() time.Time, newID func() string) *QuizService {
	return &QuizService{
		sessions: store,
		banks:    banks,
		rules:    rules,
		newRand:  newRand,
		now:      now,
		newID:    newID,
	}
}

// Start loads the bank, builds the initial question batch, and registers a
// fresh session. The snapshot is the initial read model.
func (s *QuizService) Start(ctx context.Context, bankID string) (domain.Snapshot, error) {
	bank, err := s.banks.GetWordBank(ctx, bankID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if len(bank) == 0 {
		return domain.Snapshot{}, domain.ErrWordBankEmpty
	}
	session := NewSessionWithDeps(s.newID(), bank, s.rules, s.newRand(), s.now, s.newID)
	s.sessions.Put(session)
	return session.Snapshot(), nil
}

// SelectOption records a tentative selection on the active question.
func (s *QuizService) SelectOption(_ context.Context, sessionID, optionID string) (domain.Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.SelectOption(optionID), nil
}

// RevealSynonymHint applies the first hint step.
func (s *QuizService) RevealSynonymHint(_ context.Context, sessionID string) (domain.Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.RevealSynonymHint(), nil
}

// EliminateOptionHint applies the second hint step.
func (s *QuizService) EliminateOptionHint(_ context.Context, sessionID string) (domain.Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.EliminateOptionHint(), nil
}

// SubmitAnswer grades the current selection.
func (s *QuizService) SubmitAnswer(_ context.Context, sessionID string) (domain.Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.SubmitAnswer(), nil
}

// Advance moves to the next question, finishes the quiz, or injects a review
// question per the finish gate.
func (s *QuizService) Advance(_ context.Context, sessionID string) (domain.Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Advance(), nil
}

// Restart rebuilds the session's question batch from its word bank.
func (s *QuizService) Restart(_ context.Context, sessionID string) (domain.Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Restart(), nil
}

// Summary returns the aggregate results of a finished session.
func (s *QuizService) Summary(_ context.Context, sessionID string) (domain.Summary, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Summary{}, domain.ErrSessionNotFound
	}
	summary, done := session.Summary()
	if !done {
		return domain.Summary{}, domain.ErrQuizNotFinished
	}
	return summary, nil
}

// Subscribe returns a channel that receives a snapshot after every transition.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, sessionID string) (<-chan domain.Snapshot, func(), error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// End drops the session; sessions are per-consumer, so a disconnect ends them.
func (s *QuizService) End(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}
