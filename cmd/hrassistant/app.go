package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hrassistant/internal/auth"
	"hrassistant/internal/chunker"
	"hrassistant/internal/config"
	"hrassistant/internal/docstore"
	"hrassistant/internal/domain"
	embgemini "hrassistant/internal/embedding/gemini"
	embollama "hrassistant/internal/embedding/ollama"
	"hrassistant/internal/embedding/openai"
	"hrassistant/internal/embedding/tfidf"
	"hrassistant/internal/generate"
	"hrassistant/internal/leave"
	"hrassistant/internal/llm"
	"hrassistant/internal/logging"
	"hrassistant/internal/service"
	"hrassistant/internal/summarizer"
	usermemory "hrassistant/internal/userstore/memory"
	"hrassistant/internal/userstore/sheets"
	"hrassistant/internal/userstore/xlsxfile"
	vecmemory "hrassistant/internal/vectorstore/memory"
	"hrassistant/internal/vectorstore/qdrant"
	"hrassistant/internal/vectorstore/sqlitevec"
)

// App holds the assembled application components.
type App struct {
	Config    *config.AppConfig
	Assistant *service.Assistant
	Auth      *auth.Authenticator
	Users     domain.UserStore
	Logger    *zap.Logger

	closers []func() error
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c()
	}
	_ = a.Logger.Sync()
}

// buildApp loads configuration and assembles every component behind it.
func buildApp(ctx context.Context) (*App, error) {
	var cfg *config.AppConfig
	var err error
	if flagConfig == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(flagConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	app := &App{Config: cfg, Logger: logger}

	embedder, err := buildEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildVectorStore(cfg, app)
	if err != nil {
		return nil, err
	}
	backend, err := buildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	users, err := buildUserStore(cfg)
	if err != nil {
		return nil, err
	}
	app.Users = users
	app.Auth = auth.New(users)

	loader := docstore.NewLoader(docstore.Config{
		PolicyPath: cfg.Policy.Path,
		ExportURL:  cfg.Sheets.ExportURL,
		Timeout:    time.Duration(cfg.Sheets.TimeoutSecs) * time.Second,
	})
	answers := generate.NewAnswerGenerator(backend, cfg.Generator.Temperature, cfg.Generator.MaxOutputTokens, logger)
	if cfg.HREmail != "" {
		answers.SetFallbacks(generate.FallbacksWithContact(cfg.HREmail))
	}
	leaves := leave.NewService(users, cfg.Leave.MinDays, cfg.Leave.MaxDays)

	app.Assistant = service.New(service.Config{
		Loader:     loader,
		Chunker:    chunker.NewRecursiveChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap),
		Embedder:   embedder,
		Store:      store,
		Users:      users,
		Answers:    answers,
		Leaves:     leaves,
		Summarizer: summarizer.NewFrequencySummarizer(),
		SearchK:    cfg.Retrieval.SearchK,
		RerankTopK: cfg.Retrieval.RerankTopK,
		Logger:     logger,
	})
	return app, nil
}

func buildEmbedder(ctx context.Context, cfg *config.AppConfig) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		return openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
	case "ollama":
		if cfg.Embedder.Ollama == nil {
			return nil, fmt.Errorf("ollama embedder config missing")
		}
		return embollama.NewEmbedder(cfg.Embedder.Ollama.BaseURL, cfg.Embedder.Ollama.Model), nil
	case "gemini":
		if cfg.Embedder.Gemini == nil {
			return nil, fmt.Errorf("gemini embedder config missing")
		}
		return embgemini.NewEmbedder(ctx, cfg.Embedder.Gemini.APIKeyEnv, cfg.Embedder.Gemini.Model)
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

func buildVectorStore(cfg *config.AppConfig, app *App) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "memory", "":
		return vecmemory.NewStorage(), nil
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}), nil
	case "sqlite":
		if cfg.VectorStore.SQLite == nil || cfg.VectorStore.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite vector store path missing")
		}
		st, err := sqlitevec.Open(cfg.VectorStore.SQLite.Path)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, st.Close)
		return st, nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

func buildGenerator(ctx context.Context, cfg *config.AppConfig) (domain.Generator, error) {
	switch cfg.Generator.Type {
	case "gemini", "":
		if cfg.Generator.Gemini == nil {
			return nil, fmt.Errorf("gemini generator config missing")
		}
		return llm.NewGeminiClient(ctx, cfg.Generator.Gemini.APIKeyEnv, cfg.Generator.Gemini.Model)
	case "ollama":
		if cfg.Generator.Ollama == nil {
			return nil, fmt.Errorf("ollama generator config missing")
		}
		return llm.NewOllamaClient(cfg.Generator.Ollama.BaseURL, cfg.Generator.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.Generator.Type)
	}
}

func buildUserStore(cfg *config.AppConfig) (domain.UserStore, error) {
	switch cfg.UserStore.Type {
	case "sheets", "":
		return sheets.NewStore(sheets.Config{
			ExportURL:     cfg.Sheets.ExportURL,
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			SheetName:     cfg.Sheets.SheetName,
			HistorySheet:  cfg.Sheets.HistorySheet,
			TokenEnv:      cfg.Sheets.TokenEnv,
			Timeout:       time.Duration(cfg.Sheets.TimeoutSecs) * time.Second,
		}), nil
	case "xlsx":
		if cfg.UserStore.XLSXPath == "" {
			return nil, fmt.Errorf("xlsx user store path missing")
		}
		return xlsxfile.NewStore(cfg.UserStore.XLSXPath, cfg.Sheets.SheetName, cfg.Sheets.HistorySheet), nil
	case "memory":
		return usermemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown user store: %s", cfg.UserStore.Type)
	}
}
