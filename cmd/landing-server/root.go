package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/BuddyBreak/internal/config"
	"github.com/Its-donkey/BuddyBreak/internal/metrics"
	"github.com/Its-donkey/BuddyBreak/internal/signups"
	uiserver "github.com/Its-donkey/BuddyBreak/internal/ui/server"
	"github.com/Its-donkey/BuddyBreak/logging"
)

const logFileName = "landing.log"

// flags override values loaded from the environment when set.
type flags struct {
	envFile  string
	listen   string
	assets   string
	sink     string
	logDir   string
	logLevel string
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "landing-server",
		Short: "Serve the BuddyBreak landing page and waitlist",
		Long: `Serves the BuddyBreak landing page, the no-JS waitlist form, the JSON
waitlist API used by the browser client, and Prometheus metrics.

Settings come from LANDING_* environment variables, optionally preloaded from a
dotenv file. Flags override both.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}
	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.Flags().StringVar(&f.listen, "listen", "", "address to serve on (LANDING_LISTEN_ADDR)")
	root.Flags().StringVar(&f.assets, "assets", "", "directory served under /static (LANDING_ASSETS_DIR)")
	root.Flags().StringVar(&f.sink, "sink", "", "signup sink: stub, memory or postgres (LANDING_SINK)")
	root.PersistentFlags().StringVar(&f.logDir, "log-dir", "", "directory for rotated JSON logs (LANDING_LOG_DIR)")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "minimum log level (LANDING_LOG_LEVEL)")

	root.AddCommand(newLogsCommand(f))
	return root
}

func loadConfig(f *flags) (config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if v := strings.TrimSpace(f.listen); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(f.assets); v != "" {
		cfg.AssetsDir = v
	}
	if v := strings.TrimSpace(f.sink); v != "" {
		cfg.Sink = v
	}
	if v := strings.TrimSpace(f.logDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(f.logLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

// newLogger writes to stdout and, when a log directory is set, to a rotated file.
func newLogger(cfg config.Config, stdout io.Writer) (*logging.Logger, func(), error) {
	writers := []io.Writer{stdout}
	closeFn := func() {}
	if strings.TrimSpace(cfg.LogDir) != "" {
		fw, err := logging.NewFileWriter(cfg.LogDir, logFileName, 10, 7)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, fw)
		closeFn = func() { _ = fw.Close() }
	}
	return logging.New(cfg.SiteName, logging.ParseLevel(cfg.LogLevel), writers...), closeFn, nil
}

func runServe(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, closeLogs, err := newLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeLogs()

	ctx := cmd.Context()
	sink, closeSink, err := signups.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("server", "Failed to open signup sink", err, map[string]any{"sink": cfg.Sink})
		return err
	}
	defer closeSink()
	logger.Info("server", "Signup sink ready", map[string]any{"sink": cfg.Sink})

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	err = uiserver.Run(ctx, uiserver.Options{
		Listen:            cfg.ListenAddr,
		AssetsDir:         cfg.AssetsDir,
		SiteName:          cfg.SiteName,
		BaseURL:           cfg.BaseURL,
		EnableWASM:        cfg.EnableWASM,
		SubmitTimeout:     cfg.SubmitTimeout,
		ShutdownTimeout:   cfg.ShutdownTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		Sink:              sink,
		Logger:            logger,
		Metrics:           m,
	})
	if err != nil {
		logger.Error("server", "Server exited", err, nil)
	}
	return err
}
