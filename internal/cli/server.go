package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vocab-quiz-service/internal/analyze"
	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/config"
	"vocab-quiz-service/internal/domain"
	"vocab-quiz-service/internal/infra/memory"
	pgloader "vocab-quiz-service/internal/infra/postgres"
	redisinfra "vocab-quiz-service/internal/infra/redis"
	transport "vocab-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.WordBankLoader = memory.NewStaticWordBankLoader(sampleWordBanks())
	if pool != nil {
		loader = pgloader.NewWordBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.WordBank.TTL, 10*time.Minute)
	var banks app.WordBankRepository
	if redisClient != nil {
		banks = redisinfra.NewWordBankRepository(redisClient, loader, bankTTL)
	} else {
		banks = memory.NewWordBankRepository(loader, bankTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewQuizService(store, banks, cfg.Rules())
	wsHandler := transport.NewWSHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	if cfg.Analyze.URL != "" {
		analyzeTimeout := config.TTLDuration(cfg.Analyze.Timeout, 30*time.Second)
		analyzeClient := analyze.NewClient(cfg.Analyze.URL, analyzeTimeout)
		mux.Handle("/analyze", transport.NewAnalyzeHandler(analyzeClient, logger))
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting vocab quiz service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleWordBanks provides a builtin demo bank; configure Postgres to serve real content.
func sampleWordBanks() map[string][]domain.VocabWord {
	return map[string][]domain.VocabWord{
		"demo": {
			{ID: "ubiquitous", Word: "ubiquitous", Definition: "present or found everywhere", Difficulty: domain.DifficultyMedium, PartOfSpeech: "adjective", Synonyms: []string{"omnipresent", "pervasive"}, Example: "Smartphones have become ubiquitous in daily life."},
			{ID: "ephemeral", Word: "ephemeral", Definition: "lasting for a very short time", Difficulty: domain.DifficultyMedium, PartOfSpeech: "adjective", Synonyms: []string{"fleeting", "transient"}, Example: "The beauty of cherry blossoms is ephemeral."},
			{ID: "pragmatic", Word: "pragmatic", Definition: "dealing with things sensibly and realistically", Difficulty: domain.DifficultyEasy, PartOfSpeech: "adjective", Synonyms: []string{"practical", "realistic"}, Example: "She took a pragmatic approach to the problem."},
			{ID: "obfuscate", Word: "obfuscate", Definition: "to deliberately make something unclear", Difficulty: domain.DifficultyHard, PartOfSpeech: "verb", Synonyms: []string{"obscure", "muddle"}, Example: "The report was written to obfuscate the real findings."},
			{ID: "candid", Word: "candid", Definition: "truthful and straightforward", Difficulty: domain.DifficultyEasy, PartOfSpeech: "adjective", Synonyms: []string{"frank", "honest"}, Example: "He gave a candid account of his mistakes."},
			{ID: "venerate", Word: "venerate", Definition: "to regard with great respect", Difficulty: domain.DifficultyHard, PartOfSpeech: "verb", Synonyms: []string{"revere", "esteem"}, Example: "The community venerates its elders."},
			{ID: "tenacious", Word: "tenacious", Definition: "holding firmly to a purpose or course of action", Difficulty: domain.DifficultyMedium, PartOfSpeech: "adjective", Synonyms: []string{"persistent", "determined"}, Example: "Her tenacious spirit carried the team through."},
			{ID: "lucid", Word: "lucid", Definition: "expressed clearly and easy to understand", Difficulty: domain.DifficultyEasy, PartOfSpeech: "adjective", Synonyms: []string{"clear", "intelligible"}, Example: "The professor gave a lucid explanation."},
			{ID: "capitulate", Word: "capitulate", Definition: "to cease resisting and surrender", Difficulty: domain.DifficultyHard, PartOfSpeech: "verb", Synonyms: []string{"surrender", "yield"}, Example: "The defenders refused to capitulate."},
			{ID: "austere", Word: "austere", Definition: "severe or strict in manner or appearance", Difficulty: domain.DifficultyMedium, PartOfSpeech: "adjective", Synonyms: []string{"stern", "severe"}, Example: "The monastery was an austere building."},
			{ID: "alacrity", Word: "alacrity", Definition: "brisk and cheerful readiness", Difficulty: domain.DifficultyHard, PartOfSpeech: "noun", Synonyms: []string{"eagerness", "willingness"}, Example: "She accepted the invitation with alacrity."},
			{ID: "mundane", Word: "mundane", Definition: "lacking interest or excitement; ordinary", Difficulty: domain.DifficultyEasy, PartOfSpeech: "adjective", Synonyms: []string{"ordinary", "banal"}, Example: "He wanted to escape his mundane routine."},
		},
	}
}
