package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"vocab-quiz-service/internal/domain"
)

// Expected sheet layout, one word per row:
//
//	A: word | B: definition | C: difficulty | D: part of speech | E: synonyms (comma separated) | F: example
//
// A header row is skipped when the first cell reads "word" (case-insensitive).

// ImportWordBank reads a word bank from an .xlsx file. Sheet selects the
// worksheet by name; empty means the first sheet.
func ImportWordBank(path, sheet string) ([]domain.VocabWord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	words := make([]domain.VocabWord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}
		word := strings.TrimSpace(cell(row, 0))
		definition := strings.TrimSpace(cell(row, 1))
		if word == "" || definition == "" {
			continue
		}
		entry := domain.VocabWord{
			ID:           slug(word),
			Word:         word,
			Definition:   definition,
			PartOfSpeech: strings.TrimSpace(cell(row, 3)),
			Synonyms:     splitSynonyms(cell(row, 4)),
			Example:      strings.TrimSpace(cell(row, 5)),
		}
		if difficulty, ok := parseDifficulty(cell(row, 2)); ok {
			entry.Difficulty = difficulty
		}
		words = append(words, entry)
	}
	return words, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseDifficulty(raw string) (domain.Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(domain.DifficultyEasy):
		return domain.DifficultyEasy, true
	case string(domain.DifficultyMedium):
		return domain.DifficultyMedium, true
	case string(domain.DifficultyHard):
		return domain.DifficultyHard, true
	}
	return "", false
}

func splitSynonyms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	synonyms := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			synonyms = append(synonyms, trimmed)
		}
	}
	if len(synonyms) == 0 {
		return nil
	}
	return synonyms
}

// slug derives a stable word id from the word itself, so re-imports keep ids.
func slug(word string) string {
	lowered := strings.ToLower(strings.TrimSpace(word))
	return strings.ReplaceAll(lowered, " ", "-")
}
