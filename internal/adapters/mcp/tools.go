// Package mcp exposes the capture pipeline as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"inkwell/internal/application"
	"inkwell/internal/application/commands"
	"inkwell/internal/domain"
)

// RegisterTools adds all pipeline tools to the MCP server.
func RegisterTools(s *server.MCPServer, pipeline *commands.Pipeline) {
	s.AddTool(captureTool(), captureHandler(pipeline))
	s.AddTool(replyTool(), replyHandler(pipeline))
	s.AddTool(fixTool(), fixHandler(pipeline))
	s.AddTool(doneTool(), doneHandler(pipeline))
	s.AddTool(pendingTool(), pendingHandler(pipeline))
	s.AddTool(sweepTool(), sweepHandler(pipeline))
	s.AddTool(statusTool(), statusHandler(pipeline))
	s.AddTool(digestTool(), digestHandler(pipeline))
}

// --- capture ---

func captureTool() mcp.Tool {
	return mcp.NewTool("capture",
		mcp.WithDescription("Capture a thought. It gets classified into People, Projects, Ideas or Admin and filed into the vault; uncertain captures open a clarification question instead. Inline 'fix: <category>' and 'done: <task>' commands are understood."),
		mcp.WithString("text",
			mcp.Description("The raw thought to capture"),
			mcp.Required(),
		),
	)
}

func captureHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		result, err := pipeline.Capture(ctx, text)
		if err != nil {
			var partial *application.PartialFilingError
			if errors.As(err, &partial) && result != nil {
				return mcp.NewToolResultText(result.Message + "\nWarning: audit log entry could not be written."), nil
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reply ---

func replyTool() mcp.Tool {
	return mcp.NewTool("reply",
		mcp.WithDescription("Answer an open clarification with the category the note belongs to."),
		mcp.WithString("category",
			mcp.Description("One of: People, Projects, Ideas, Admin (prefixes accepted)"),
			mcp.Required(),
		),
		mcp.WithString("key",
			mcp.Description("Correlation key of the clarification. Omit to answer the current one."),
		),
	)
}

func replyHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := req.GetString("category", "")
		key := req.GetString("key", "")

		result, err := pipeline.Reply(ctx, key, category)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- fix ---

func fixTool() mcp.Tool {
	return mcp.NewTool("fix",
		mcp.WithDescription("Move the most recently filed note to a different category."),
		mcp.WithString("category",
			mcp.Description("Target category: People, Projects, Ideas or Admin"),
			mcp.Required(),
		),
	)
}

func fixHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := req.GetString("category", "")

		result, err := pipeline.Fix(ctx, category)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- done ---

func doneTool() mcp.Tool {
	return mcp.NewTool("done",
		mcp.WithDescription("Check off a task in the vault, or mark a whole note done when no single task matches."),
		mcp.WithString("task",
			mcp.Description("Part of the task or note to mark done"),
			mcp.Required(),
		),
	)
}

func doneHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		task := req.GetString("task", "")

		result, err := pipeline.Done(ctx, task)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- pending ---

func pendingTool() mcp.Tool {
	return mcp.NewTool("pending",
		mcp.WithDescription("Show the open clarification, if any."),
	)
}

func pendingHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cur, err := pipeline.Pending()
		if err != nil {
			return toolError(err)
		}
		if cur == nil {
			return mcp.NewToolResultText("No clarification is open."), nil
		}
		msg := fmt.Sprintf("Waiting for a category for %q (captured %s, expires %s). Reply with People, Projects, Ideas or Admin.",
			cur.Note.Title,
			cur.CreatedAt.Format("15:04"),
			cur.ExpiresAt.Format("15:04"))
		return mcp.NewToolResultText(msg), nil
	}
}

// --- sweep ---

func sweepTool() mcp.Tool {
	return mcp.NewTool("sweep",
		mcp.WithDescription("Abandon expired clarifications, recording them in the audit log."),
	)
}

func sweepHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := pipeline.Sweep(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Report per-category note counts for the vault."),
	)
}

func statusHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := pipeline.Status(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- digest ---

func digestTool() mcp.Tool {
	return mcp.NewTool("digest",
		mcp.WithDescription("Generate the morning briefing (daily) or weekly review."),
		mcp.WithString("variant",
			mcp.Description("Either 'daily' or 'weekly'. Defaults to daily."),
		),
	)
}

func digestHandler(pipeline *commands.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variant := domain.DigestDaily
		if strings.EqualFold(req.GetString("variant", ""), "weekly") {
			variant = domain.DigestWeekly
		}

		result, err := pipeline.Digest(ctx, variant)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Text), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
