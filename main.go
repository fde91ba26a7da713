package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"valentine/cmd"
	"valentine/internal/db"
	"valentine/internal/server"
	"valentine/internal/theme"
	"valentine/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch config.Command {
	case cmd.CommandVersion:
		fmt.Println("valentine", config.Version)
	case cmd.CommandServe:
		err = serve(config)
	default:
		err = runTUI(config)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(config *cmd.Config) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(config.Debug)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(theme.Default(), config.BaseURL).Run(ctx, config.Addr)
}

func runTUI(config *cmd.Config) error {
	// The alt screen owns stdout, so logs go to a file or nowhere.
	if config.Debug {
		f, err := tea.LogToFile(filepath.Join(config.ConfigDir, "debug.log"), "valentine")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	// History is optional; the builder and viewer work without it.
	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ℹ  Link history disabled: %v\n", err)
	} else {
		defer database.Close()
	}

	opts := ui.Options{
		DB:        database,
		Catalog:   theme.Default(),
		BaseURL:   config.BaseURL,
		ConfigDir: config.ConfigDir,
	}
	if config.Images {
		loader, err := ui.NewArtLoader(nil, ui.DetectTerminalCapabilities())
		if err != nil {
			slog.Warn("images disabled", "error", err)
		} else {
			opts.Art = loader
		}
	}

	p := tea.NewProgram(rootModel(config, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func rootModel(config *cmd.Config, opts ui.Options) tea.Model {
	switch config.Command {
	case cmd.CommandOpen:
		return ui.NewViewer(opts, config.Target)
	case cmd.CommandHistory:
		return ui.NewHistory(opts)
	default:
		return ui.New(opts)
	}
}

func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
