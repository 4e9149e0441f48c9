package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"meeting-insights-go/internal/analyzer"
	"meeting-insights-go/internal/config"
	"meeting-insights-go/internal/drive"
	"meeting-insights-go/internal/fetcher"
	"meeting-insights-go/internal/ledger"
	"meeting-insights-go/internal/logger"
	"meeting-insights-go/internal/pipeline"
	"meeting-insights-go/internal/provider"
	"meeting-insights-go/internal/quarantine"
	"meeting-insights-go/internal/sink"
	"meeting-insights-go/internal/transcriber"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "meeting-insights-go").Info("starting pipeline")

	cfgPath := envOr("CONFIG_PATH", "config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token := os.Getenv("GOOGLE_ACCESS_TOKEN")
	if token == "" {
		log.Fatal("GOOGLE_ACCESS_TOKEN not set")
	}
	store, err := drive.NewStore(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	if err != nil {
		log.WithError(err).Fatal("failed to create drive store")
	}

	ledgerStore, err := ledger.Open(cfg.Ledger.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open ledger")
	}
	defer ledgerStore.Close()

	providers := buildProviders(cfg, log)
	if len(providers) == 0 {
		log.Fatal("no AI provider configured; set GEMINI_API_KEYS or OPENAI_API_KEY")
	}

	runner := &pipeline.Runner{
		Fetcher: &fetcher.Fetcher{
			Store:     store,
			Dir:       cfg.Pipeline.ScratchDir,
			Transient: drive.IsTransient,
			Progress: func(pct float64) {
				log.WithField("pct", int(pct)).Debug("transfer progress")
			},
		},
		Transcriber: transcriber.New(transcriber.ModelConfig{
			BinaryPath:  cfg.Whisper.BinaryPath,
			ModelPath:   cfg.Whisper.ModelPath,
			Language:    cfg.Whisper.Language,
			TrimSilence: cfg.Whisper.TrimSilence,
			BestOf:      cfg.Whisper.BestOf,
			Threads:     cfg.Whisper.Threads,
		}),
		Analyzer: &analyzer.Analyzer{
			Providers: providers,
			Template:  analyzer.LoadTemplate(cfg.Pipeline.PromptTemplate),
		},
		Ledger: ledgerStore,
		Sink:   sink.NewWorkbook(cfg.Output.WorkbookPath, cfg.Output.Sheet),
		Quarantine: &quarantine.Manager{
			Store:           store,
			HoldingFolderID: cfg.Drive.QuarantineFolderID,
			Transient:       drive.IsTransient,
		},
		DefaultOwner: cfg.Pipeline.DefaultOwner,
	}

	objs, err := store.List(ctx, cfg.Drive.InboxFolderID, cfg.Drive.MimePrefixes)
	if err != nil {
		log.WithError(err).Fatal("failed to list inbox folder")
	}
	log.WithField("objects", len(objs)).Info("inbox listed")

	stats := runner.RunAll(ctx, objs, cfg.Pipeline.Workers)
	if stats.Failed > 0 {
		log.Warn("run completed with failures: " + stats.Summary())
		os.Exit(1)
	}
}

func buildProviders(cfg *config.Config, log *logger.Logger) []provider.Provider {
	var providers []provider.Provider
	if keys := splitKeys(os.Getenv("GEMINI_API_KEYS")); len(keys) > 0 {
		providers = append(providers, provider.NewGemini(keys, cfg.Providers.GeminiModel))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		openai, err := provider.NewOpenAI(provider.OpenAIConfig{
			APIKey:  key,
			BaseURL: cfg.Providers.OpenAIBaseURL,
			Model:   cfg.Providers.OpenAIModel,
		})
		if err != nil {
			log.WithError(err).Warn("openai provider unavailable")
		} else {
			providers = append(providers, openai)
		}
	}
	return providers
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
