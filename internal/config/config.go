package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Scoring  ScoringConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey     string
	EmbedModel string
	TextModel  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	ItemTimeout       time.Duration
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

// ScoringConfig carries the relevance-scoring constants. Defaults follow the
// documented contract: verdict tiers at 80/50, fuzzy acceptance above 80.
type ScoringConfig struct {
	HighThreshold    float64
	MediumThreshold  float64
	FuzzyThreshold   int
	MaxResumeSkills  int
	MaxBullets       int
	ResumeSkillVocab []string
	JDSkillVocab     []string
}

type ReportConfig struct {
	Provider string // "static" or "gemini"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_relevance"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_embeddings"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			TextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 3),
			ItemTimeout:       getEnvAsDuration("ITEM_TIMEOUT", "45s"),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
		Scoring: ScoringConfig{
			HighThreshold:   getEnvAsFloat("VERDICT_HIGH_THRESHOLD", 80),
			MediumThreshold: getEnvAsFloat("VERDICT_MEDIUM_THRESHOLD", 50),
			FuzzyThreshold:  getEnvAsInt("FUZZY_THRESHOLD", 80),
			MaxResumeSkills: getEnvAsInt("MAX_RESUME_SKILLS", 10),
			MaxBullets:      getEnvAsInt("MAX_SECTION_BULLETS", 2),
			ResumeSkillVocab: getEnvAsList("RESUME_SKILL_VOCAB",
				"Python,SQL,Matplotlib,Seaborn,Power BI,Pandas,NumPy,Scikit-learn,BeautifulSoup"),
			JDSkillVocab: getEnvAsList("JD_SKILL_VOCAB",
				"Python,R,Excel,Pandas,Mechanical,Manufacturing"),
		},
		Report: ReportConfig{
			Provider: getEnv("REPORT_PROVIDER", "static"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)

	var items []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
