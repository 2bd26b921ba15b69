package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"vocab-quiz-service/internal/domain"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "bank.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestImportWordBank(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"word", "definition", "difficulty", "part of speech", "synonyms", "example"},
		{"Ubiquitous", "present everywhere", "hard", "adjective", "omnipresent, pervasive; universal", "Smartphones are ubiquitous."},
		{"run", "move fast on foot", "easy", "verb", "", ""},
	})

	words, err := ImportWordBank(path, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}

	first := words[0]
	if first.ID != "ubiquitous" || first.Word != "Ubiquitous" {
		t.Fatalf("unexpected id/word: %q/%q", first.ID, first.Word)
	}
	if first.Difficulty != domain.DifficultyHard {
		t.Fatalf("difficulty = %q, want hard", first.Difficulty)
	}
	if first.PartOfSpeech != "adjective" {
		t.Fatalf("part of speech = %q", first.PartOfSpeech)
	}
	if len(first.Synonyms) != 3 || first.Synonyms[1] != "pervasive" {
		t.Fatalf("synonyms = %v", first.Synonyms)
	}
	if first.Example != "Smartphones are ubiquitous." {
		t.Fatalf("example = %q", first.Example)
	}

	second := words[1]
	if second.ID != "run" || second.Difficulty != domain.DifficultyEasy {
		t.Fatalf("unexpected second word: %+v", second)
	}
	if second.Synonyms != nil {
		t.Fatalf("expected no synonyms, got %v", second.Synonyms)
	}
}

func TestImportWordBankSkipsIncompleteRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"alpha", "first letter", "medium", "noun", "", ""},
		{"", "orphan definition", "", "", "", ""},
		{"beta", "", "", "", "", ""},
	})

	words, err := ImportWordBank(path, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(words) != 1 || words[0].ID != "alpha" {
		t.Fatalf("expected only alpha, got %+v", words)
	}
}

func TestImportWordBankMissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"alpha", "first letter"}})

	if _, err := ImportWordBank(path, "NoSuchSheet"); err == nil {
		t.Fatalf("expected an error for a missing sheet")
	}
}

func TestImportWordBankMultiWordSlug(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Sine Qua Non", "an essential condition", "hard", "noun", "essential", ""},
	})

	words, err := ImportWordBank(path, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(words) != 1 || words[0].ID != "sine-qua-non" {
		t.Fatalf("expected slug sine-qua-non, got %+v", words)
	}
}
