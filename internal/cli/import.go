package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"vocab-quiz-service/internal/config"
	"vocab-quiz-service/internal/infra/excel"
)

// NewImportCmd loads a word bank from a spreadsheet into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	var (
		file  string
		bank  string
		sheet string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a word bank from an .xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, file, bank, sheet)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the .xlsx word list")
	cmd.Flags().StringVar(&bank, "bank", "default", "word bank id to import into")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (defaults to the first sheet)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(ctx context.Context, configPath, file, bankID, sheet string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	words, err := excel.ImportWordBank(file, sheet)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no words found in %s", file)
	}

	data, err := json.Marshal(words)
	if err != nil {
		return err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	if _, err := db.ExecContext(ctx,
		`INSERT INTO word_banks (id, data, updated_at) VALUES (?, ?::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		bankID, string(data)); err != nil {
		return fmt.Errorf("upsert word bank: %w", err)
	}

	log.Printf("imported %d words into bank %q", len(words), bankID)
	return nil
}
