package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"finplan/internal/config"
	"finplan/internal/llm"
	"finplan/internal/manager"
	"finplan/internal/model"
	"finplan/internal/store"
	"finplan/internal/training"
)

// globalOpts are the persistent flags shared by every subcommand.
type globalOpts struct {
	configPath string
	envFile    string
	logLevel   string
	modelsDir  string
	dataDir    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}
	root := &cobra.Command{
		Use:           "finplan",
		Short:         "Financial goal planner: savings plans, property estimates and model training",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (.yaml|.yml|.json|.toml)")
	pf.StringVar(&opts.envFile, "env-file", "", "Path to a .env file (defaults to ./.env when present)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&opts.modelsDir, "models-dir", "", "Directory holding model artifacts")
	pf.StringVar(&opts.dataDir, "data-dir", "", "Directory holding the training CSVs")

	serve := newServeCmd(opts)
	root.AddCommand(serve, newTrainCmd(opts), newCheckCmd(opts))
	// serve is the default command.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return serve.RunE(cmd, args)
	}
	return root
}

// loadConfig layers defaults, the config file, the environment and flags,
// in increasing precedence.
func loadConfig(opts *globalOpts) (config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return config.Config{}, fmt.Errorf("env file: %w", err)
	}
	cfg := config.Defaults()
	if opts.configPath != "" {
		fileCfg, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg.ApplyEnv()
	cfg = cfg.Merge(config.Config{
		ModelsDir: opts.modelsDir,
		DataDir:   opts.dataDir,
		Log:       config.LogConfig{Level: opts.logLevel},
	})
	return cfg, nil
}

// newLogger builds the process logger. A configured file is rotated by
// lumberjack; the returned closer releases it.
func newLogger(c config.LogConfig) (zerolog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if c.File != "" {
		lj := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		w, closer = lj, lj
	}
	if strings.EqualFold(c.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("svc", "finplan").Logger(), closer
}

// app holds the components every subcommand builds from the config.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	store   *store.Store
	manager *manager.Manager
	trainer *training.Orchestrator
}

func newApp(cfg config.Config, log zerolog.Logger) *app {
	st := store.New(model.Decoders())
	mgr := manager.New(manager.Config{
		Dir:    cfg.ModelsDir,
		Names:  cfg.Artifacts,
		Loader: st,
		Logger: log.With().Str("component", "manager").Logger(),
	})
	trainer := training.New(training.Config{
		ModelsDir: cfg.ModelsDir,
		DataDir:   cfg.DataDir,
		Names:     cfg.Artifacts,
		Params: model.GBMParams{
			Rounds:       cfg.Training.Rounds,
			LearningRate: cfg.Training.LearningRate,
			MaxDepth:     cfg.Training.MaxDepth,
			MinLeaf:      cfg.Training.MinLeaf,
		},
		Seed:              cfg.Training.Seed,
		DefaultSampleSize: cfg.Training.SampleSize,
		Logger:            log.With().Str("component", "training").Logger(),
	}, st, mgr)
	return &app{cfg: cfg, log: log, store: st, manager: mgr, trainer: trainer}
}

func (a *app) advisor() *llm.Proxy {
	timeout := time.Duration(a.cfg.Chat.TimeoutSeconds) * time.Second
	client := llm.NewOpenAIClient(a.cfg.Chat.BaseURL, a.cfg.Chat.APIKey, timeout, 10*time.Second)
	return llm.NewProxy(client, llm.ProxyConfig{
		APIKey:        a.cfg.Chat.APIKey,
		Model:         a.cfg.Chat.Model,
		RatePerMinute: a.cfg.Chat.RatePerMinute,
		Logger:        a.log.With().Str("component", "chat").Logger(),
	})
}

// splitCSV splits a comma-separated flag value, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
