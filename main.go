package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/healthtrackr/internal/config"
	"github.com/sadopc/healthtrackr/internal/daily"
	"github.com/sadopc/healthtrackr/internal/logging"
	"github.com/sadopc/healthtrackr/internal/store"
	"github.com/sadopc/healthtrackr/internal/tui"
)

func main() {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	configPath := flag.String("config", defaultConfig, "path to the TOML config file")
	dbPath := flag.String("db", "", "path to the SQLite database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})
	defer logCloser.Close()

	if err := run(cfg); err != nil {
		log.Errorf("exiting: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	log.WithField("db", cfg.DBPath).Info("starting healthtrackr")

	tracker := daily.New(s)
	if err := tracker.Load(); err != nil {
		if !errors.Is(err, daily.ErrStorage) {
			return err
		}
		// The day is usable in memory; later writes will retry.
		log.Warnf("initial save failed: %v", err)
	}

	app := tui.NewApp(tracker, tui.Options{
		StepIncrement: cfg.StepIncrement,
		HistoryDays:   cfg.HistoryDays,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
