package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"inkwell/internal/adapters/filesystem"
	openaigw "inkwell/internal/adapters/openai"
	"inkwell/internal/adapters/state"
	"inkwell/internal/adapters/tui"
	"inkwell/internal/application/commands"
	"inkwell/internal/config"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	gateway, err := openaigw.NewGateway("",
		openaigw.WithModel(cfg.Model),
		openaigw.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repo := filesystem.NewRepository(cfg.VaultPath)
	pipeline, err := commands.NewPipeline(commands.PipelineDeps{
		Classifier:  gateway,
		Summarizer:  gateway,
		Transcriber: gateway,
		Vault:       repo,
		Pending:     state.NewPendingStore(cfg.VaultPath, cfg.PendingTTL),
		Recents:     state.NewRecents(cfg.VaultPath),
		Ledger:      filesystem.NewLedger(cfg.VaultPath),
	},
		commands.WithThreshold(cfg.ConfidenceThreshold),
		commands.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(pipeline)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
