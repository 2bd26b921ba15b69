package quiz

import (
	"fmt"

	"vocab-quiz-service/internal/domain"
)

// BuildQuestion assembles a multiple-choice question for word. Distractors
// are a uniform-random prefix of the rest of the bank, so each source word
// contributes at most one option; a bank smaller than the configured choice
// count degrades to fewer options rather than failing. The question id is
// idOverride when non-empty, else the word id.
func BuildQuestion(rnd Rand, word domain.VocabWord, bank []domain.VocabWord, rules Rules, idOverride string) domain.Question {
	pool := make([]domain.VocabWord, 0, len(bank))
	for _, candidate := range bank {
		if candidate.ID != word.ID {
			pool = append(pool, candidate)
		}
	}
	pool = Shuffle(rnd, pool)

	wanted := rules.ChoicesPerQuestion - 1
	if wanted > len(pool) {
		wanted = len(pool)
	}
	if wanted < 0 {
		wanted = 0
	}

	options := make([]domain.Option, 0, wanted+1)
	for i, distractor := range pool[:wanted] {
		options = append(options, domain.Option{
			ID:           fmt.Sprintf("%s-distractor-%d", word.ID, i),
			Label:        distractor.Definition,
			Correct:      false,
			SourceWordID: distractor.ID,
		})
	}
	options = append(options, domain.Option{
		ID:           word.ID + "-correct",
		Label:        word.Definition,
		Correct:      true,
		SourceWordID: word.ID,
	})

	id := idOverride
	if id == "" {
		id = word.ID
	}
	return domain.Question{
		ID:      id,
		Word:    word,
		Options: Shuffle(rnd, options),
	}
}

// BuildQuestions builds the initial batch: a uniform permutation of the bank
// truncated to the configured question count, one question per word. Word ids
// double as question ids here, so the batch has pairwise-distinct ids.
func BuildQuestions(rnd Rand, bank []domain.VocabWord, rules Rules) []domain.Question {
	shuffled := Shuffle(rnd, bank)
	count := rules.QuestionCount
	if count > len(shuffled) {
		count = len(shuffled)
	}
	questions := make([]domain.Question, 0, count)
	for _, word := range shuffled[:count] {
		questions = append(questions, BuildQuestion(rnd, word, bank, rules, ""))
	}
	return questions
}
