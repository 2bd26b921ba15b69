package app

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"vocab-quiz-service/internal/domain"
	"vocab-quiz-service/internal/quiz"
)

// Session is the quiz engine: it owns the question sequence, per-question
// hint state, score/streak accounting, the response history, and the
// finish-gate policy. It is single-owner, single-consumer; the mutex only
// guards against the transport reading a snapshot mid-transition.
type Session struct {
	id    string
	rules quiz.Rules
	bank  []domain.VocabWord
	now   func() time.Time
	rnd   quiz.Rand
	newID func() string

	mu                sync.RWMutex
	questions         []domain.Question
	hints             map[string]*domain.HintState
	responses         map[string]domain.Response
	submitted         []string // question ids in first-submission order
	currentIndex      int
	selectedOptionID  string
	revealed          bool
	points            int
	streak            int
	maxStreak         int
	pendingReview     []string
	guardMessage      string
	attemptedFinish   bool
	finished          bool
	startedAt         time.Time
	questionStartedAt time.Time
	finishedAt        time.Time
	subscribers       map[chan domain.Snapshot]struct{}
}

// NewSession builds a session over bank with production randomness and clock.
func NewSession(id string, bank []domain.VocabWord, rules quiz.Rules) *Session {
	return NewSessionWithDeps(id, bank, rules, quiz.NewRand(), time.Now, uuid.NewString)
}

// NewSessionWithDeps injects the random source, clock, and id generator for
// deterministic tests.
func NewSessionWithDeps(id string, bank []domain.VocabWord, rules quiz.Rules, rnd quiz.Rand, now func() time.Time, newID func() string) *Session {
	s := &Session{
		id:          id,
		rules:       rules,
		bank:        bank,
		now:         now,
		rnd:         rnd,
		newID:       newID,
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	s.resetLocked()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// resetLocked rebuilds the question batch and clears all progress state.
func (s *Session) resetLocked() {
	s.questions = quiz.BuildQuestions(s.rnd, s.bank, s.rules)
	s.hints = make(map[string]*domain.HintState, len(s.questions))
	for i := range s.questions {
		s.hints[s.questions[i].ID] = &domain.HintState{}
	}
	s.responses = make(map[string]domain.Response)
	s.submitted = nil
	s.currentIndex = 0
	s.selectedOptionID = ""
	s.revealed = false
	s.points = 0
	s.streak = 0
	s.maxStreak = 0
	s.pendingReview = nil
	s.guardMessage = ""
	s.attemptedFinish = false
	s.finished = false
	now := s.now()
	s.startedAt = now
	s.questionStartedAt = now
	s.finishedAt = time.Time{}
}

func (s *Session) currentLocked() *domain.Question {
	if s.currentIndex < 0 || s.currentIndex >= len(s.questions) {
		return nil
	}
	return &s.questions[s.currentIndex]
}

// SelectOption records a tentative selection. No-op once revealed, for an
// eliminated option, or for an option id not on the active question.
func (s *Session) SelectOption(optionID string) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.currentLocked()
	if question == nil || s.finished || s.revealed {
		return s.snapshotLocked()
	}
	if hint := s.hints[question.ID]; hint != nil && optionID != "" && optionID == hint.EliminatedOptionID {
		return s.snapshotLocked()
	}
	found := false
	for _, opt := range question.Options {
		if opt.ID == optionID {
			found = true
			break
		}
	}
	if !found {
		return s.snapshotLocked()
	}
	s.selectedOptionID = optionID
	return s.broadcastLocked()
}

// RevealSynonymHint reveals a uniform-random synonym of the prompt word and
// moves the hint step to at least 1. Idempotent per question id: repeated
// calls return the synonym picked the first time.
func (s *Session) RevealSynonymHint() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.currentLocked()
	if question == nil || s.finished {
		return s.snapshotLocked()
	}
	synonyms := question.Word.Synonyms
	if len(synonyms) == 0 {
		return s.snapshotLocked()
	}
	hint := s.hints[question.ID]
	if hint.RevealedSynonym == "" {
		hint.RevealedSynonym = synonyms[s.rnd.Intn(len(synonyms))]
	}
	if hint.Step < 1 {
		hint.Step = 1
	}
	return s.broadcastLocked()
}

// EliminateOptionHint removes one uniform-random incorrect option. Valid only
// after the synonym hint (step exactly 1) and before the answer is revealed;
// with no eligible incorrect options it is a no-op. An eliminated option that
// was selected is deselected.
func (s *Session) EliminateOptionHint() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.currentLocked()
	if question == nil || s.finished || s.revealed {
		return s.snapshotLocked()
	}
	hint := s.hints[question.ID]
	if hint.Step != 1 {
		return s.snapshotLocked()
	}
	candidates := make([]domain.Option, 0, len(question.Options))
	for _, opt := range question.Options {
		if !opt.Correct && opt.ID != hint.EliminatedOptionID {
			candidates = append(candidates, opt)
		}
	}
	if len(candidates) == 0 {
		return s.snapshotLocked()
	}
	chosen := candidates[s.rnd.Intn(len(candidates))]
	hint.EliminatedOptionID = chosen.ID
	if s.selectedOptionID == chosen.ID {
		s.selectedOptionID = ""
	}
	hint.Step = 2
	return s.broadcastLocked()
}

// SubmitAnswer grades the current selection. Scoring applies only to the
// first submission of a question id; a defensive resubmission replaces the
// response record but keeps the original points delta and streak.
func (s *Session) SubmitAnswer() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.currentLocked()
	if question == nil || s.finished || s.selectedOptionID == "" {
		return s.snapshotLocked()
	}
	var chosen *domain.Option
	for i := range question.Options {
		if question.Options[i].ID == s.selectedOptionID {
			chosen = &question.Options[i]
			break
		}
	}
	if chosen == nil {
		return s.snapshotLocked()
	}

	timeSpent := s.now().Sub(s.questionStartedAt).Milliseconds()
	hintsUsed := s.hints[question.ID].Step
	wordID := question.Word.ID

	existing, resubmit := s.responses[question.ID]
	var pointsDelta, streakAfter int
	if !resubmit {
		pre := s.streak
		if chosen.Correct {
			s.streak = pre + 1
			pointsDelta = s.rules.Award(pre)
			s.points += pointsDelta
			if s.streak > s.maxStreak {
				s.maxStreak = s.streak
			}
			s.removePendingLocked(wordID)
			s.guardMessage = ""
		} else {
			pointsDelta = -s.rules.Penalty(pre)
			s.points += pointsDelta
			if s.points < 0 {
				s.points = 0
			}
			s.streak = 0
			s.addPendingLocked(wordID)
		}
		streakAfter = s.streak
		s.submitted = append(s.submitted, question.ID)
	} else {
		pointsDelta = existing.PointsDelta
		streakAfter = existing.StreakAfter
		if chosen.Correct {
			s.removePendingLocked(wordID)
			s.guardMessage = ""
		}
	}

	s.revealed = true
	s.responses[question.ID] = domain.Response{
		QuestionID:         question.ID,
		Word:               question.Word.Word,
		SelectedOptionID:   chosen.ID,
		SelectedDefinition: chosen.Label,
		CorrectDefinition:  question.Word.Definition,
		Correct:            chosen.Correct,
		Difficulty:         question.Word.Difficulty,
		TimeSpentMs:        timeSpent,
		PointsDelta:        pointsDelta,
		StreakAfter:        streakAfter,
		HintsUsed:          hintsUsed,
	}
	return s.broadcastLocked()
}

// Advance moves past a revealed answer. On the last question it either
// finishes the quiz (streak requirement met) or appends a review question:
// the quiz cannot end until the required streak has been reached at least
// once, even if that means growing the sequence without bound.
func (s *Session) Advance() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.currentLocked()
	if question == nil || s.finished || !s.revealed {
		return s.snapshotLocked()
	}

	if s.currentIndex+1 < len(s.questions) {
		s.currentIndex++
		s.selectedOptionID = ""
		s.revealed = false
		s.guardMessage = ""
		s.questionStartedAt = s.now()
		return s.broadcastLocked()
	}

	if s.maxStreak >= s.rules.RequiredStreak {
		s.finished = true
		s.finishedAt = s.now()
		s.guardMessage = ""
		s.attemptedFinish = false
		return s.broadcastLocked()
	}

	s.attemptedFinish = true
	s.appendReviewLocked()
	return s.broadcastLocked()
}

// appendReviewLocked injects a fresh question for the word at the head of the
// pending-review list, or a uniform-random bank word when nothing is pending.
// The pending entry survives until the word is answered correctly.
func (s *Session) appendReviewLocked() {
	var word *domain.VocabWord
	if len(s.pendingReview) > 0 {
		head := s.pendingReview[0]
		for i := range s.bank {
			if s.bank[i].ID == head {
				word = &s.bank[i]
				break
			}
		}
	}
	if word == nil {
		if len(s.bank) == 0 {
			return
		}
		word = &s.bank[s.rnd.Intn(len(s.bank))]
	}

	retry := quiz.BuildQuestion(s.rnd, *word, s.bank, s.rules, word.ID+"-retry-"+s.newID())
	s.questions = append(s.questions, retry)
	s.hints[retry.ID] = &domain.HintState{}
	s.currentIndex++
	s.selectedOptionID = ""
	s.revealed = false
	s.questionStartedAt = s.now()
	s.guardMessage = fmt.Sprintf("Reach a streak of %d to finish. Keep going!", s.rules.RequiredStreak)
}

// Restart rebuilds a fresh question batch and resets all session state.
func (s *Session) Restart() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return s.broadcastLocked()
}

// Snapshot returns the current read model.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Summary reports the finished session. The bool is false while the finish
// gate is still closed.
func (s *Session) Summary() (domain.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.finished {
		return domain.Summary{}, false
	}

	responses := make([]domain.Response, 0, len(s.submitted))
	correct := 0
	var totalAnswerMs int64
	hints := 0
	for _, id := range s.submitted {
		resp := s.responses[id]
		responses = append(responses, resp)
		if resp.Correct {
			correct++
		}
		totalAnswerMs += resp.TimeSpentMs
		hints += resp.HintsUsed
	}

	avgSeconds := 0.0
	if len(responses) > 0 {
		avgSeconds = math.Round(float64(totalAnswerMs)/float64(len(responses))/100) / 10
	}
	totalSeconds := math.Round(float64(s.finishedAt.Sub(s.startedAt).Milliseconds())/100) / 10

	return domain.Summary{
		SessionID:          s.id,
		Responses:          responses,
		TotalQuestions:     len(s.questions),
		CorrectCount:       correct,
		Accuracy:           accuracy(correct, len(responses)),
		Points:             s.points,
		MaxStreak:          s.maxStreak,
		AverageTimeSeconds: avgSeconds,
		TotalTimeSeconds:   totalSeconds,
		TotalHintsUsed:     hints,
	}, true
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID:          s.id,
		Index:              s.currentIndex,
		Total:              len(s.questions),
		Points:             s.points,
		Streak:             s.streak,
		MaxStreak:          s.maxStreak,
		SelectedOptionID:   s.selectedOptionID,
		Revealed:           s.revealed,
		FinishGuardMessage: s.guardMessage,
		Finished:           s.finished,
	}

	if question := s.currentLocked(); question != nil && !s.finished {
		hint := s.hints[question.ID]
		snap.Hint = *hint
		view := domain.QuestionView{
			ID:           question.ID,
			Word:         question.Word.Word,
			PartOfSpeech: question.Word.PartOfSpeech,
			Options:      make([]domain.OptionView, 0, len(question.Options)),
		}
		for _, opt := range question.Options {
			view.Options = append(view.Options, domain.OptionView{
				ID:         opt.ID,
				Label:      opt.Label,
				Eliminated: opt.ID == hint.EliminatedOptionID,
			})
		}
		snap.Question = &view

		if s.revealed {
			for i, opt := range question.Options {
				if opt.Correct {
					snap.CorrectOptionID = opt.ID
					snap.CorrectAnswerLetter = string(rune('A' + i))
					break
				}
			}
			if resp, ok := s.responses[question.ID]; ok {
				r := resp
				snap.LastResponse = &r
			}
		}
	}

	correct := 0
	hintsUsed := 0
	for _, id := range s.submitted {
		resp := s.responses[id]
		if resp.Correct {
			correct++
		}
		hintsUsed += resp.HintsUsed
	}
	snap.Accuracy = accuracy(correct, len(s.submitted))
	snap.TotalHintsUsed = hintsUsed

	last := len(s.questions) > 0 && s.currentIndex+1 >= len(s.questions)
	met := s.maxStreak >= s.rules.RequiredStreak
	snap.ShouldShowSummaryCTA = last && (met || !s.attemptedFinish)
	return snap
}

func accuracy(correct, submitted int) int {
	if submitted == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(submitted) * 100))
}

func (s *Session) addPendingLocked(wordID string) {
	for _, id := range s.pendingReview {
		if id == wordID {
			return
		}
	}
	s.pendingReview = append(s.pendingReview, wordID)
}

func (s *Session) removePendingLocked(wordID string) {
	for i, id := range s.pendingReview {
		if id == wordID {
			s.pendingReview = append(s.pendingReview[:i], s.pendingReview[i+1:]...)
			return
		}
	}
}

// subscribe registers a snapshot listener; the cancel func must be called to
// avoid leaks.
func (s *Session) subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() domain.Snapshot {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow reader never blocks a transition.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}
