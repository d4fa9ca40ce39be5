package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"inkwell/internal/adapters/filesystem"
	mcpadapter "inkwell/internal/adapters/mcp"
	openaigw "inkwell/internal/adapters/openai"
	"inkwell/internal/adapters/sqlite"
	"inkwell/internal/adapters/state"
	"inkwell/internal/application/commands"
	"inkwell/internal/config"
)

func main() {
	vaultFlag := flag.String("vault", config.VaultPath(), "path to the vault")
	flag.Parse()

	cfg := config.Load()
	cfg.VaultPath = *vaultFlag

	// Stdout carries the MCP protocol; logs go to stderr only.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	gateway, err := openaigw.NewGateway("",
		openaigw.WithModel(cfg.Model),
		openaigw.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("inkwell-mcp: %v", err)
	}

	repo := filesystem.NewRepository(cfg.VaultPath)
	index := sqlite.NewIndex(repo)
	if err := index.Open(cfg.VaultPath); err != nil {
		logger.Warn().Err(err).Msg("capture index unavailable")
		index = nil
	} else {
		defer index.Close()
	}

	deps := commands.PipelineDeps{
		Classifier:  gateway,
		Summarizer:  gateway,
		Transcriber: gateway,
		Vault:       repo,
		Pending:     state.NewPendingStore(cfg.VaultPath, cfg.PendingTTL),
		Recents:     state.NewRecents(cfg.VaultPath),
		Ledger:      filesystem.NewLedger(cfg.VaultPath),
	}
	if index != nil {
		deps.Index = index
	}

	pipeline, err := commands.NewPipeline(deps,
		commands.WithThreshold(cfg.ConfidenceThreshold),
		commands.WithStuckWindow(cfg.StuckWindow),
		commands.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("inkwell-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"inkwell-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, pipeline)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("inkwell-mcp: %v", err)
	}
}
