package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PolicyConfig locates the policy document (plain text or PDF).
type PolicyConfig struct {
	Path string `yaml:"path"`
}

// SheetsConfig describes the spreadsheet that backs both the tabular
// corpus source and the user store.
type SheetsConfig struct {
	ExportURL     string `yaml:"export_url"`
	SpreadsheetID string `yaml:"spreadsheet_id"`
	SheetName     string `yaml:"sheet_name"`
	HistorySheet  string `yaml:"history_sheet"`
	TokenEnv      string `yaml:"token_env"`
	TimeoutSecs   int    `yaml:"timeout_secs"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OllamaConfig points at a local Ollama instance for embeddings or generation.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// GeminiConfig configures the Gemini backend used for embeddings or generation.
type GeminiConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
	Ollama *OllamaConfig         `yaml:"ollama,omitempty"`
	Gemini *GeminiConfig         `yaml:"gemini,omitempty"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SQLiteVecConfig locates the sqlite-vec database file.
type SQLiteVecConfig struct {
	Path string `yaml:"path"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string           `yaml:"type"`
	Qdrant *QdrantConfig    `yaml:"qdrant,omitempty"`
	SQLite *SQLiteVecConfig `yaml:"sqlite,omitempty"`
}

// RetrievalConfig sets the candidate count and reranker cut-off.
// SearchK must be at least RerankTopK so the reranker has enough
// candidates to work with.
type RetrievalConfig struct {
	SearchK    int `yaml:"search_k"`
	RerankTopK int `yaml:"rerank_top_k"`
}

// GeneratorConfig selects and configures the text-generation backend.
type GeneratorConfig struct {
	Type            string        `yaml:"type"`
	Temperature     float64       `yaml:"temperature"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Gemini          *GeminiConfig `yaml:"gemini,omitempty"`
	Ollama          *OllamaConfig `yaml:"ollama,omitempty"`
}

// UserStoreConfig selects the user store implementation. The sheets
// store reuses the top-level sheets section; xlsx reads a local workbook.
type UserStoreConfig struct {
	Type     string `yaml:"type"`
	XLSXPath string `yaml:"xlsx_path,omitempty"`
}

// LeaveConfig bounds a single leave application.
type LeaveConfig struct {
	MinDays float64 `yaml:"min_days"`
	MaxDays float64 `yaml:"max_days"`
}

// AuthConfig controls the login flow.
type AuthConfig struct {
	MaxLoginAttempts int `yaml:"max_login_attempts"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Policy      PolicyConfig      `yaml:"policy"`
	Sheets      SheetsConfig      `yaml:"sheets"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Generator   GeneratorConfig   `yaml:"generator"`
	UserStore   UserStoreConfig   `yaml:"user_store"`
	Leave       LeaveConfig       `yaml:"leave"`
	Auth        AuthConfig        `yaml:"auth"`
	HREmail     string            `yaml:"hr_email"`
	LogFile     string            `yaml:"log_file"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/hrassistant/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hrassistant", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Policy: PolicyConfig{Path: "hr_policies.pdf"},
		Sheets: SheetsConfig{
			SheetName:    "Sheet1",
			HistorySheet: "LeaveHistory",
			TokenEnv:     "GOOGLE_SHEETS_TOKEN",
			TimeoutSecs:  30,
		},
		Embedder:    EmbedderConfig{Type: "tfidf"},
		Chunker:     ChunkerConfig{ChunkSize: 1000, ChunkOverlap: 100},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Retrieval:   RetrievalConfig{SearchK: 10, RerankTopK: 3},
		Generator: GeneratorConfig{
			Type:            "gemini",
			Temperature:     0.3,
			MaxOutputTokens: 800,
			Gemini:          &GeminiConfig{APIKeyEnv: "GEMINI_API_KEY", Model: "gemini-2.5-flash"},
		},
		UserStore: UserStoreConfig{Type: "sheets"},
		Leave:     LeaveConfig{MinDays: 0.5, MaxDays: 30},
		Auth:      AuthConfig{MaxLoginAttempts: 3},
		HREmail:   "hr@example.com",
		LogFile:   "hrassistant.log",
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Policy.Path == "" {
		cfg.Policy.Path = "hr_policies.pdf"
	}
	if cfg.Sheets.SheetName == "" {
		cfg.Sheets.SheetName = "Sheet1"
	}
	if cfg.Sheets.HistorySheet == "" {
		cfg.Sheets.HistorySheet = "LeaveHistory"
	}
	if cfg.Sheets.TokenEnv == "" {
		cfg.Sheets.TokenEnv = "GOOGLE_SHEETS_TOKEN"
	}
	if cfg.Sheets.TimeoutSecs == 0 {
		cfg.Sheets.TimeoutSecs = 30
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 1000
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = 100
	}
	if cfg.Chunker.ChunkOverlap < 0 || cfg.Chunker.ChunkOverlap >= cfg.Chunker.ChunkSize {
		cfg.Chunker.ChunkOverlap = cfg.Chunker.ChunkSize / 10
	}
	if cfg.Retrieval.SearchK == 0 {
		cfg.Retrieval.SearchK = 10
	}
	if cfg.Retrieval.RerankTopK == 0 {
		cfg.Retrieval.RerankTopK = 3
	}
	if cfg.Retrieval.SearchK < cfg.Retrieval.RerankTopK {
		cfg.Retrieval.SearchK = cfg.Retrieval.RerankTopK
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.3
	}
	if cfg.Generator.MaxOutputTokens == 0 {
		cfg.Generator.MaxOutputTokens = 800
	}
	if cfg.Generator.Type == "" {
		cfg.Generator.Type = "gemini"
	}
	if cfg.Generator.Type == "gemini" {
		if cfg.Generator.Gemini == nil {
			cfg.Generator.Gemini = &GeminiConfig{}
		}
		if cfg.Generator.Gemini.APIKeyEnv == "" {
			cfg.Generator.Gemini.APIKeyEnv = "GEMINI_API_KEY"
		}
		if cfg.Generator.Gemini.Model == "" {
			cfg.Generator.Gemini.Model = "gemini-2.5-flash"
		}
	}
	if cfg.Generator.Type == "ollama" && cfg.Generator.Ollama != nil {
		if cfg.Generator.Ollama.BaseURL == "" {
			cfg.Generator.Ollama.BaseURL = "http://localhost:11434"
		}
		if cfg.Generator.Ollama.Model == "" {
			cfg.Generator.Ollama.Model = "qwen3:8b"
		}
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Embedder.Type == "ollama" && cfg.Embedder.Ollama != nil {
		if cfg.Embedder.Ollama.BaseURL == "" {
			cfg.Embedder.Ollama.BaseURL = "http://localhost:11434"
		}
		if cfg.Embedder.Ollama.Model == "" {
			cfg.Embedder.Ollama.Model = "nomic-embed-text"
		}
	}
	if cfg.Embedder.Type == "gemini" && cfg.Embedder.Gemini != nil {
		if cfg.Embedder.Gemini.APIKeyEnv == "" {
			cfg.Embedder.Gemini.APIKeyEnv = "GEMINI_API_KEY"
		}
		if cfg.Embedder.Gemini.Model == "" {
			cfg.Embedder.Gemini.Model = "gemini-embedding-001"
		}
	}
	if cfg.UserStore.Type == "" {
		cfg.UserStore.Type = "sheets"
	}
	if cfg.Leave.MinDays == 0 {
		cfg.Leave.MinDays = 0.5
	}
	if cfg.Leave.MaxDays == 0 {
		cfg.Leave.MaxDays = 30
	}
	if cfg.Auth.MaxLoginAttempts == 0 {
		cfg.Auth.MaxLoginAttempts = 3
	}
	if cfg.HREmail == "" {
		cfg.HREmail = "hr@example.com"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "hrassistant.log"
	}
}
