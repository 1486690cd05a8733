package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/llm"
	"github.com/medscribe/scribe-flow/internal/logger"
	"github.com/medscribe/scribe-flow/internal/media"
	"github.com/medscribe/scribe-flow/internal/pipeline"
	"github.com/medscribe/scribe-flow/internal/roles"
	"github.com/medscribe/scribe-flow/internal/server"
	"github.com/medscribe/scribe-flow/internal/storage"
	"github.com/medscribe/scribe-flow/internal/summary"
	"github.com/medscribe/scribe-flow/internal/transcribe"
	"github.com/medscribe/scribe-flow/internal/watcher"
	"github.com/medscribe/scribe-flow/pkg/executor"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	// Secrets are referenced from config via ${VAR} expansion
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Clinical Transcription & Summarization Service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcription mode: %s", transcriptionMode(cfg))
	log.Info(ctx, "LLM provider: %s", cfg.LLM.Provider)
	log.Info(ctx, "Role classifier: %s", cfg.Roles.Classifier)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Error(ctx, "Failed to load AWS configuration: %v", err)
		os.Exit(1)
	}

	store, err := storage.New(ctx, awsCfg, cfg.AWS, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize storage: %v", err)
		os.Exit(1)
	}

	backend := transcribe.New(awsCfg, cfg.Transcribe, cfg.AWS.Bucket, store, log)
	encoder := media.New(cfg.Audio, executor.New(), log)

	provider, err := llm.New(cfg.LLM, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize LLM provider: %v", err)
		os.Exit(1)
	}

	var classifier roles.Classifier
	if cfg.Roles.Classifier == "llm" && provider != nil {
		classifier = roles.NewLLMClassifier(provider)
	}
	assigner := roles.New(classifier, log)
	generator := summary.New(provider, log)

	p := pipeline.New(cfg, encoder, store, backend, assigner, generator, log)
	srv := server.New(cfg, p, log)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)

	go func() {
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Optional drop-folder ingest alongside the HTTP API
	if cfg.Paths.Input != "" {
		w, err := watcher.New(cfg.Paths.Input, dropFolderHandler(p, log), log, 2)
		if err != nil {
			log.Error(ctx, "Failed to create drop-folder watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(runCtx); err != nil && err != context.Canceled {
				errChan <- fmt.Errorf("watcher: %w", err)
			}
		}()
		log.Info(ctx, "Drop folder: %s", cfg.Paths.Input)
	}

	log.Info(ctx, "Listening on %s, transcripts in %s", cfg.Server.ListenAddr, cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Server shutdown: %v", err)
	}

	log.Info(ctx, "Service stopped")
}

// dropFolderHandler adapts the pipeline to the watcher callback. Results
// land in the output directory; there is no client to reply to.
func dropFolderHandler(p pipeline.Pipeline, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		result, err := p.Process(ctx, filePath, filePath)
		if err != nil {
			return err
		}
		log.Info(ctx, "Drop-folder job %s done: %s", result.JobName, result.TranscriptPath)
		return nil
	}
}

func transcriptionMode(cfg *config.Config) string {
	if cfg.Transcribe.Medical {
		return "medical"
	}
	return "standard"
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Output, cfg.Audio.TempDir}
	if cfg.Paths.Input != "" {
		dirs = append(dirs, cfg.Paths.Input)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
