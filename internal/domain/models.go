package domain

// Difficulty buckets a word by how hard it is. Empty means unrated.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// VocabWord is a single word-bank entry. The engine never mutates it.
type VocabWord struct {
	ID           string     `json:"id"`
	Word         string     `json:"word"`
	Definition   string     `json:"definition"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	PartOfSpeech string     `json:"partOfSpeech,omitempty"`
	Synonyms     []string   `json:"synonyms,omitempty"`
	Example      string     `json:"example,omitempty"`
}

// Option is one multiple-choice answer, labelled with a definition text.
type Option struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Correct      bool   `json:"correct"`
	SourceWordID string `json:"sourceWordId"`
}

// Question models an MCQ question with exactly one correct option whose
// source is the prompt word itself. Immutable once built.
type Question struct {
	ID      string    `json:"id"`
	Word    VocabWord `json:"word"`
	Options []Option  `json:"options"`
}

// HintState tracks the per-question hint progression 0 -> 1 -> 2.
// Step only ever increases within a question instance; a review question
// gets a fresh id and therefore a fresh HintState.
type HintState struct {
	Step               int    `json:"step"`
	RevealedSynonym    string `json:"revealedSynonym,omitempty"`
	EliminatedOptionID string `json:"eliminatedOptionId,omitempty"`
}

// Response records the graded outcome of one submitted question.
// There is at most one live record per question id.
type Response struct {
	QuestionID         string     `json:"questionId"`
	Word               string     `json:"word"`
	SelectedOptionID   string     `json:"selectedOptionId"`
	SelectedDefinition string     `json:"selectedDefinition"`
	CorrectDefinition  string     `json:"correctDefinition"`
	Correct            bool       `json:"correct"`
	Difficulty         Difficulty `json:"difficulty,omitempty"`
	TimeSpentMs        int64      `json:"timeSpentMs"`
	PointsDelta        int        `json:"pointsDelta"`
	StreakAfter        int        `json:"streakAfter"`
	HintsUsed          int        `json:"hintsUsed"`
}

// OptionView is the option data safe to show before the answer is revealed.
type OptionView struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Eliminated bool   `json:"eliminated"`
}

// QuestionView is the client-facing projection of the active question.
type QuestionView struct {
	ID           string       `json:"id"`
	Word         string       `json:"word"`
	PartOfSpeech string       `json:"partOfSpeech,omitempty"`
	Options      []OptionView `json:"options"`
}

// Snapshot is the read model the presentation layer renders after every
// intent. The correct option is only present once the answer is revealed.
type Snapshot struct {
	SessionID            string        `json:"sessionId"`
	Question             *QuestionView `json:"question,omitempty"`
	Index                int           `json:"index"`
	Total                int           `json:"total"`
	Points               int           `json:"points"`
	Streak               int           `json:"streak"`
	MaxStreak            int           `json:"maxStreak"`
	Hint                 HintState     `json:"hint"`
	SelectedOptionID     string        `json:"selectedOptionId,omitempty"`
	Revealed             bool          `json:"revealed"`
	CorrectOptionID      string        `json:"correctOptionId,omitempty"`
	CorrectAnswerLetter  string        `json:"correctAnswerLetter,omitempty"`
	LastResponse         *Response     `json:"lastResponse,omitempty"`
	FinishGuardMessage   string        `json:"finishGuardMessage,omitempty"`
	ShouldShowSummaryCTA bool          `json:"shouldShowSummaryCta"`
	Finished             bool          `json:"finished"`
	Accuracy             int           `json:"accuracy"`
	TotalHintsUsed       int           `json:"totalHintsUsed"`
}

// Summary aggregates a finished session for the results view.
type Summary struct {
	SessionID          string     `json:"sessionId"`
	Responses          []Response `json:"responses"`
	TotalQuestions     int        `json:"totalQuestions"`
	CorrectCount       int        `json:"correctCount"`
	Accuracy           int        `json:"accuracy"`
	Points             int        `json:"points"`
	MaxStreak          int        `json:"maxStreak"`
	AverageTimeSeconds float64    `json:"averageTimeSeconds"`
	TotalTimeSeconds   float64    `json:"totalTimeSeconds"`
	TotalHintsUsed     int        `json:"totalHintsUsed"`
}
