package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"medichat/internal/config"
	"medichat/internal/domain"
	"medichat/internal/embedding/hash"
	"medichat/internal/embedding/openai"
	"medichat/internal/index"
	"medichat/internal/llm"
	"medichat/internal/logger"
	"medichat/internal/pipeline"
	"medichat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/medichat/config.yaml if not provided)")
	flag.BoolVar(&verbose, "verbose", false, "Print pipeline diagnostics to stderr")
	flag.Parse()
	logger.SetVerbose(verbose)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "hash", "":
		dim := 0
		if cfg.Embedder.Hash != nil {
			dim = cfg.Embedder.Hash.Dimension
		}
		emb = hash.NewEmbedder(dim)
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	loader := index.NewLoader(cfg.Index.Path)

	// A missing API key does not abort startup: the chat surface runs and
	// every turn reports the configuration problem until the env is fixed.
	var completer domain.Completer
	client, err := llm.New(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		TimeoutSecs: cfg.LLM.TimeoutSecs,
	})
	if err != nil {
		logger.Warn("completion client unavailable: %v", err)
	} else {
		completer = client
		logger.Info("completion model: %s", client.ModelName())
	}

	pipe := pipeline.New(loader, emb, completer)
	opts := domain.QueryOptions{
		TopK:          cfg.UI.TopK,
		Temperature:   cfg.UI.Temperature,
		MaxTokens:     cfg.UI.MaxTokens,
		ExpandSources: cfg.UI.ExpandSources,
	}

	m := tui.New(pipe, opts)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
