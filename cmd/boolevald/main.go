package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"boolevald/internal/backend"
	"boolevald/internal/config"
	"boolevald/internal/dataset"
	"boolevald/internal/httpapi"
	"boolevald/internal/scheduler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		flagCfg    config.Config
		jsonOut    bool
	)
	root := &cobra.Command{
		Use:           "boolevald",
		Short:         "Evaluate a boolean-QA dataset against a local GGUF model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flagCfg
			if configPath != "" {
				fileCfg, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = mergeConfig(fileCfg, flagCfg)
			}
			return run(cfg, jsonOut)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "Config file (.yaml/.json/.toml); flags override file values")
	root.Flags().StringVar(&flagCfg.ModelPath, "model", "", "Path to the GGUF model file")
	root.Flags().StringVar(&flagCfg.DatasetPath, "dataset", "", "Path to the CSV question dataset")
	root.Flags().IntVar(&flagCfg.Parallel, "parallel", 0, "Requested number of parallel sessions (default 4)")
	root.Flags().IntVar(&flagCfg.CtxSize, "ctx-size", 0, "Context size in tokens (default 2048)")
	root.Flags().IntVar(&flagCfg.Threads, "threads", 0, "Decode threads (default 4)")
	root.Flags().StringVar(&flagCfg.Addr, "addr", os.Getenv("BOOLEVALD_ADDR"), "Status HTTP listen address, e.g. :8080 (empty disables)")
	root.Flags().StringVar(&flagCfg.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	root.Flags().StringVar(&flagCfg.SystemPrompt, "system-prompt", "", "Override the system prompt")
	root.Flags().BoolVar(&jsonOut, "json", false, "Print the final report as JSON on stdout")
	return root
}

// mergeConfig overlays flag values onto file values; a set flag wins.
func mergeConfig(file, flags config.Config) config.Config {
	out := file
	if flags.ModelPath != "" {
		out.ModelPath = flags.ModelPath
	}
	if flags.DatasetPath != "" {
		out.DatasetPath = flags.DatasetPath
	}
	if flags.Parallel != 0 {
		out.Parallel = flags.Parallel
	}
	if flags.CtxSize != 0 {
		out.CtxSize = flags.CtxSize
	}
	if flags.Threads != 0 {
		out.Threads = flags.Threads
	}
	if flags.Addr != "" {
		out.Addr = flags.Addr
	}
	if flags.LogLevel != "" {
		out.LogLevel = flags.LogLevel
	}
	if flags.SystemPrompt != "" {
		out.SystemPrompt = flags.SystemPrompt
	}
	return out
}

func run(cfg config.Config, jsonOut bool) error {
	logger := newLogger(cfg.LogLevel)
	if cfg.ModelPath == "" {
		return errors.New("--model is required")
	}
	if cfg.DatasetPath == "" {
		return errors.New("--dataset is required")
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = 4
	}

	tasks, skipped, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Msg("dataset rows skipped (label not boolean)")
	}
	if len(tasks) == 0 {
		return errors.New("dataset contains no usable rows")
	}
	logger.Info().Int("tasks", len(tasks)).Str("model", cfg.ModelPath).Msg("loading model")

	model, bctx, err := backend.Open(backend.Config{
		ModelPath: cfg.ModelPath,
		Capacity:  cfg.Parallel,
		CtxSize:   cfg.CtxSize,
		Threads:   cfg.Threads,
	})
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer bctx.Close()

	sched := scheduler.New(model, bctx, tasks, scheduler.Config{
		Capacity:     cfg.Parallel,
		SystemPrompt: cfg.SystemPrompt,
		Sink:         scheduler.LogSink{Logger: logger},
	})

	// Optional read-only reporting server
	var srv *http.Server
	if cfg.Addr != "" {
		httpapi.SetLogger(logger)
		srv = &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(sched)}
		go func() {
			logger.Info().Str("addr", cfg.Addr).Msg("status server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("status server error")
			}
		}()
	}

	// Whole-process abort on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := sched.Run(ctx)

	if srv != nil {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shCtx); serr != nil {
			logger.Warn().Err(serr).Msg("graceful shutdown error")
		}
	}
	if err != nil {
		return err
	}

	logger.Info().
		Int("tp", report.TruePositive).
		Int("tn", report.TrueNegative).
		Int("fp", report.FalsePositive).
		Int("fn", report.FalseNegative).
		Int("total", report.Total).
		Float64("accuracy", report.Accuracy).
		Msg("evaluation complete")
	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(report)
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}
