// Package main provides the CLI entrypoint for solar-terminal.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/solar-terminal/internal/api"
	"github.com/ngmaloney/solar-terminal/internal/config"
	"github.com/ngmaloney/solar-terminal/internal/journal"
	"github.com/ngmaloney/solar-terminal/internal/ui"
	"github.com/ngmaloney/solar-terminal/internal/weather"
)

var (
	configPath      string
	apiURL          string
	apiTimeout      time.Duration
	weatherInterval time.Duration
	dbPath          string
	logFile         string
	metricsAddr     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "solar-terminal",
		Short:        "Terminal dashboard for solar plant power forecasts",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runDashboardCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	flags.StringVar(&apiURL, "api-url", "", "prediction backend URL (default "+api.DefaultBaseURL+")")
	flags.DurationVar(&apiTimeout, "timeout", 0, "backend request timeout (default 30s)")
	flags.StringVar(&dbPath, "db", "", "fetch journal database path")

	rootCmd.Flags().DurationVar(&weatherInterval, "weather-interval", 0, "live weather refresh period (default 10m)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "dashboard log file")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. :9102)")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newTriggerCmd())
	rootCmd.AddCommand(newPerformanceCmd())
	rootCmd.AddCommand(newFetchesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadConfig resolves the effective configuration. Flag values only count
// when the user actually set them.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var flags config.Flags
	applyStringFlag(cmd, "api-url", &flags.APIURL, apiURL)
	applyDurationFlag(cmd, "timeout", &flags.Timeout, apiTimeout)
	applyDurationFlag(cmd, "weather-interval", &flags.WeatherInterval, weatherInterval)
	applyStringFlag(cmd, "db", &flags.DBPath, dbPath)
	applyStringFlag(cmd, "log-file", &flags.LogFile, logFile)
	applyStringFlag(cmd, "metrics-addr", &flags.MetricsAddr, metricsAddr)

	return config.Resolve(fileCfg, flags, os.Getenv)
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		*target = value
	}
}

func applyDurationFlag(cmd *cobra.Command, name string, target *time.Duration, value time.Duration) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		*target = value
	}
}

func newClient(cfg config.Config) *api.HTTPClient {
	client := api.NewClient(cfg.APIURL)
	client.SetTimeout(cfg.Timeout)
	return client
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alt screen owns stdout; std log goes to a file instead.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogFile, "solar-terminal")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	sessionID := uuid.NewString()
	log.Printf("session %s: backend %s", sessionID, cfg.APIURL)

	client := newClient(cfg)
	repo, err := journal.Open(cfg.DBPath)
	if err != nil {
		log.Printf("journal: disabled: %v", err)
	} else {
		defer repo.Close()
		client.SetRecorder(repo, sessionID)
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	program := tea.NewProgram(ui.NewModel(client), tea.WithAltScreen())

	poller := weather.NewPoller(client, cfg.WeatherInterval)
	poller.Notify = ui.WeatherNotifier(program.Send)
	poller.Start()
	defer poller.Stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("metrics: listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("metrics: server stopped: %v", err)
	}
}
