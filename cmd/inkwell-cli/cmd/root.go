package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inkwell/internal/adapters/filesystem"
	openaigw "inkwell/internal/adapters/openai"
	"inkwell/internal/adapters/sqlite"
	"inkwell/internal/adapters/state"
	"inkwell/internal/application"
	"inkwell/internal/application/commands"
	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

var (
	vaultPath string
	verbose   bool
	pipeline  *commands.Pipeline
	index     *sqlite.Index
)

var rootCmd = &cobra.Command{
	Use:   "inkwell-cli",
	Short: "CLI for the inkwell capture pipeline",
	Long: `inkwell-cli captures quick thoughts, classifies them into People,
Projects, Ideas or Admin, and files them as markdown notes in your vault.

Uncertain captures open a clarification you answer with "reply"; recent
filings can be corrected with "fix" and reviewed with "status" and
"digest".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initPipeline()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if index != nil {
			index.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", config.VaultPath(), "path to the vault")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func initPipeline() error {
	cfg := config.Load()
	if vaultPath != "" {
		cfg.VaultPath = vaultPath
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	repo := filesystem.NewRepository(cfg.VaultPath)
	ledger := filesystem.NewLedger(cfg.VaultPath)
	pending := state.NewPendingStore(cfg.VaultPath, cfg.PendingTTL)
	recents := state.NewRecents(cfg.VaultPath)

	index = sqlite.NewIndex(repo)
	if err := index.Open(cfg.VaultPath); err != nil {
		log.Warn().Err(err).Msg("capture index unavailable")
		index = nil
	}

	var classifier ports.Classifier
	var summarizer ports.Summarizer
	var transcriber ports.Transcriber
	gateway, err := openaigw.NewGateway("",
		openaigw.WithModel(cfg.Model),
		openaigw.WithLogger(log),
	)
	if err != nil {
		log.Warn().Err(err).Msg("model gateway unavailable, captures will fail")
		classifier = unavailableGateway{}
	} else {
		classifier = gateway
		summarizer = gateway
		transcriber = gateway
	}

	var deps = commands.PipelineDeps{
		Classifier:  classifier,
		Summarizer:  summarizer,
		Transcriber: transcriber,
		Vault:       repo,
		Pending:     pending,
		Recents:     recents,
		Ledger:      ledger,
	}
	if index != nil {
		deps.Index = index
	}

	pipeline, err = commands.NewPipeline(deps,
		commands.WithThreshold(cfg.ConfidenceThreshold),
		commands.WithStuckWindow(cfg.StuckWindow),
		commands.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("wiring pipeline: %w", err)
	}
	return nil
}

// GetPipeline returns the initialized pipeline
func GetPipeline() *commands.Pipeline {
	return pipeline
}

// unavailableGateway stands in when no API key is configured, so the
// read-only commands still work.
type unavailableGateway struct{}

func (unavailableGateway) Classify(context.Context, string) (*domain.Classification, error) {
	return nil, fmt.Errorf("%w: set OPENAI_API_KEY", application.ErrClassifierUnavailable)
}
