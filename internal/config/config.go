package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"vocab-quiz-service/internal/quiz"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	WordBank struct {
		TTL string `yaml:"ttl"`
	} `yaml:"wordbank"`
	Analyze struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"analyze"`
	Quiz struct {
		QuestionCount      int `yaml:"question_count"`
		ChoicesPerQuestion int `yaml:"choices_per_question"`
		BasePoints         int `yaml:"base_points"`
		StreakBonus        int `yaml:"streak_bonus"`
		PenaltyBase        int `yaml:"penalty_base"`
		PenaltyPerStreak   int `yaml:"penalty_per_streak"`
		RequiredStreak     int `yaml:"required_streak"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Rules maps the quiz tuning block onto scoring rules, falling back to the
// production defaults for any constant left at zero.
func (c Config) Rules() quiz.Rules {
	rules := quiz.DefaultRules()
	if c.Quiz.QuestionCount > 0 {
		rules.QuestionCount = c.Quiz.QuestionCount
	}
	if c.Quiz.ChoicesPerQuestion > 0 {
		rules.ChoicesPerQuestion = c.Quiz.ChoicesPerQuestion
	}
	if c.Quiz.BasePoints > 0 {
		rules.BasePoints = c.Quiz.BasePoints
	}
	if c.Quiz.StreakBonus > 0 {
		rules.StreakBonus = c.Quiz.StreakBonus
	}
	if c.Quiz.PenaltyBase > 0 {
		rules.PenaltyBase = c.Quiz.PenaltyBase
	}
	if c.Quiz.PenaltyPerStreak > 0 {
		rules.PenaltyPerStreak = c.Quiz.PenaltyPerStreak
	}
	if c.Quiz.RequiredStreak > 0 {
		rules.RequiredStreak = c.Quiz.RequiredStreak
	}
	return rules
}
