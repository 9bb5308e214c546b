package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Scoring.HighThreshold != 80 || cfg.Scoring.MediumThreshold != 50 {
		t.Errorf("verdict thresholds = %v/%v, want 80/50",
			cfg.Scoring.HighThreshold, cfg.Scoring.MediumThreshold)
	}
	if cfg.Scoring.FuzzyThreshold != 80 {
		t.Errorf("fuzzy threshold = %d, want 80", cfg.Scoring.FuzzyThreshold)
	}
	if cfg.Worker.ItemTimeout != 45*time.Second {
		t.Errorf("item timeout = %v, want 45s", cfg.Worker.ItemTimeout)
	}
	if len(cfg.Scoring.ResumeSkillVocab) == 0 || len(cfg.Scoring.JDSkillVocab) == 0 {
		t.Error("skill vocabularies must have defaults")
	}
	if cfg.Report.Provider != "static" {
		t.Errorf("report provider = %q, want static", cfg.Report.Provider)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORKER_CONCURRENCY", "7")
	t.Setenv("JD_SKILL_VOCAB", "Go, Kafka ,,Terraform")

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Worker.Concurrency != 7 {
		t.Errorf("concurrency = %d, want 7", cfg.Worker.Concurrency)
	}
	want := []string{"Go", "Kafka", "Terraform"}
	if len(cfg.Scoring.JDSkillVocab) != len(want) {
		t.Fatalf("jd vocab = %v, want %v", cfg.Scoring.JDSkillVocab, want)
	}
	for i, skill := range want {
		if cfg.Scoring.JDSkillVocab[i] != skill {
			t.Errorf("jd vocab[%d] = %q, want %q", i, cfg.Scoring.JDSkillVocab[i], skill)
		}
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "app",
		Password: "secret",
		DBName:   "relevance",
	}}

	want := "host=db port=5433 user=app password=secret dbname=relevance sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}
