// Package file loads application settings from a TOML config file with
// environment variable overrides. Precedence, lowest to highest:
// built-in defaults, config file, environment.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
)

// Environment variable names.
const (
	EnvAPIKey         = "OPENAI_API_KEY"
	EnvEmbeddingModel = "EMBEDDING_MODEL"
	EnvChatModel      = "CHAT_MODEL"
	EnvIndexDir       = "RAG_DB_DIR"
	EnvCollection     = "RAG_COLLECTION"
	EnvChunkSize      = "RAG_CHUNK_SIZE"
	EnvChunkOverlap   = "RAG_CHUNK_OVERLAP"
	EnvTopK           = "RAG_TOP_K_DEFAULT"
	EnvTemperature    = "RAG_TEMPERATURE_DEFAULT"
	EnvDietDBPath     = "DIET_DB_PATH"
)

// fileConfig is the TOML config file format. Every field is optional;
// zero values fall through to the defaults.
type fileConfig struct {
	APIKey         string   `toml:"api_key"`
	EmbeddingModel string   `toml:"embedding_model"`
	ChatModel      string   `toml:"chat_model"`
	IndexDir       string   `toml:"index_dir"`
	Collection     string   `toml:"collection"`
	DietDBPath     string   `toml:"diet_db_path"`
	ChunkSize      int      `toml:"chunk_size"`
	ChunkOverlap   int      `toml:"chunk_overlap"`
	TopK           int      `toml:"top_k"`
	Temperature    *float64 `toml:"temperature"`
	KeywordPattern string   `toml:"keyword_pattern"`
	Stopwords      []string `toml:"stopwords"`
}

// Load resolves the settings. If configDir is empty, defaults to
// ~/.dietcoach. A .env file in the working directory is loaded first so
// it can supply environment overrides.
func Load(configDir string) (domain.Settings, error) {
	// Missing .env files are the normal case.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return domain.Settings{}, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".dietcoach")
	}

	settings := defaults(configDir)

	if err := applyFile(filepath.Join(configDir, "config.toml"), &settings); err != nil {
		return domain.Settings{}, err
	}
	applyEnv(&settings)

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("validating settings: %w", err)
	}
	return settings, nil
}

// defaults returns the built-in settings rooted at configDir.
func defaults(configDir string) domain.Settings {
	return domain.Settings{
		EmbeddingModel: domain.DefaultEmbeddingModel,
		ChatModel:      domain.DefaultChatModel,
		IndexDir:       filepath.Join(configDir, "index"),
		Collection:     domain.DefaultCollection,
		DietDBPath:     filepath.Join(configDir, "diet.db"),
		ChunkSize:      domain.DefaultChunkSize,
		ChunkOverlap:   domain.DefaultChunkOverlap,
		TopK:           domain.DefaultTopK,
		Temperature:    domain.DefaultTemperature,
		KeywordPattern: domain.DefaultKeywordPattern,
		Stopwords:      domain.DefaultStopwords,
	}
}

// applyFile overlays values from the TOML file when it exists.
func applyFile(path string, settings *domain.Settings) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.APIKey != "" {
		settings.APIKey = cfg.APIKey
	}
	if cfg.EmbeddingModel != "" {
		settings.EmbeddingModel = cfg.EmbeddingModel
	}
	if cfg.ChatModel != "" {
		settings.ChatModel = cfg.ChatModel
	}
	if cfg.IndexDir != "" {
		settings.IndexDir = cfg.IndexDir
	}
	if cfg.Collection != "" {
		settings.Collection = cfg.Collection
	}
	if cfg.DietDBPath != "" {
		settings.DietDBPath = cfg.DietDBPath
	}
	if cfg.ChunkSize > 0 {
		settings.ChunkSize = cfg.ChunkSize
	}
	if cfg.ChunkOverlap > 0 {
		settings.ChunkOverlap = cfg.ChunkOverlap
	}
	if cfg.TopK > 0 {
		settings.TopK = cfg.TopK
	}
	if cfg.Temperature != nil {
		settings.Temperature = *cfg.Temperature
	}
	if cfg.KeywordPattern != "" {
		settings.KeywordPattern = cfg.KeywordPattern
	}
	if len(cfg.Stopwords) > 0 {
		settings.Stopwords = cfg.Stopwords
	}
	return nil
}

// applyEnv overlays environment variable overrides.
func applyEnv(settings *domain.Settings) {
	setString(EnvAPIKey, &settings.APIKey)
	setString(EnvEmbeddingModel, &settings.EmbeddingModel)
	setString(EnvChatModel, &settings.ChatModel)
	setString(EnvIndexDir, &settings.IndexDir)
	setString(EnvCollection, &settings.Collection)
	setString(EnvDietDBPath, &settings.DietDBPath)
	setInt(EnvChunkSize, &settings.ChunkSize)
	setInt(EnvChunkOverlap, &settings.ChunkOverlap)
	setInt(EnvTopK, &settings.TopK)
	setFloat(EnvTemperature, &settings.Temperature)
}

func setString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setInt(key string, target *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Ignoring %s=%q: %v", key, v, err)
		return
	}
	*target = parsed
}

func setFloat(key string, target *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("Ignoring %s=%q: %v", key, v, err)
		return
	}
	*target = parsed
}
