package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/application"
	"inkwell/internal/domain"
	"inkwell/internal/ports"
)

const (
	defaultThreshold   = 0.6
	defaultStuckWindow = 7 * 24 * time.Hour
	defaultCallTimeout = 60 * time.Second
)

// PipelineDeps are the ports a Pipeline is wired with. Summarizer,
// Transcriber and Index may be nil; the corresponding features degrade.
type PipelineDeps struct {
	Classifier  ports.Classifier
	Summarizer  ports.Summarizer
	Transcriber ports.Transcriber
	Vault       ports.VaultRepository
	Pending     ports.PendingStore
	Recents     ports.Recents
	Ledger      ports.AuditLedger
	Index       ports.CaptureIndex
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithThreshold sets the confidence gate for auto-filing.
func WithThreshold(t float64) PipelineOption {
	return func(p *Pipeline) { p.threshold = t }
}

// WithStuckWindow sets how long a project may sit unchanged before the
// weekly review flags it.
func WithStuckWindow(d time.Duration) PipelineOption {
	return func(p *Pipeline) { p.stuckWindow = d }
}

// WithCallTimeout bounds each external gateway call.
func WithCallTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) { p.callTimeout = d }
}

// WithLogger sets the pipeline logger.
func WithLogger(log zerolog.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// WithClock overrides the time source. Tests use this; production code
// never should.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline is the capture → classify → gate → file flow plus its follow-up
// commands, serialized per conversation: one mutating operation runs at a
// time, so the pending store and last-note pointer are never raced.
type Pipeline struct {
	mu   sync.Mutex
	deps PipelineDeps

	threshold   float64
	stuckWindow time.Duration
	callTimeout time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewPipeline wires a Pipeline. Classifier, Vault, Pending, Recents and
// Ledger are required.
func NewPipeline(deps PipelineDeps, opts ...PipelineOption) (*Pipeline, error) {
	switch {
	case deps.Classifier == nil:
		return nil, fmt.Errorf("pipeline: classifier is required")
	case deps.Vault == nil:
		return nil, fmt.Errorf("pipeline: vault repository is required")
	case deps.Pending == nil:
		return nil, fmt.Errorf("pipeline: pending store is required")
	case deps.Recents == nil:
		return nil, fmt.Errorf("pipeline: recents store is required")
	case deps.Ledger == nil:
		return nil, fmt.Errorf("pipeline: audit ledger is required")
	}

	p := &Pipeline{
		deps:        deps,
		threshold:   defaultThreshold,
		stuckWindow: defaultStuckWindow,
		callTimeout: defaultCallTimeout,
		log:         zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := deps.Vault.EnsureStructure(); err != nil {
		return nil, fmt.Errorf("preparing vault: %w", err)
	}
	return p, nil
}

// Capture runs one text message through the pipeline. Inline directives
// ("fix: <category>", "done: <hint>") are routed to their commands; any
// other text is a capture.
func (p *Pipeline) Capture(ctx context.Context, text string) (*CaptureResult, error) {
	kind, arg := application.ParseDirective(text)
	switch kind {
	case application.DirectiveFix:
		fixed, err := p.Fix(ctx, arg)
		if err != nil {
			return nil, err
		}
		return &CaptureResult{Filed: fixed.Document, Message: fixed.Message}, nil
	case application.DirectiveDone:
		done, err := p.Done(ctx, arg)
		if err != nil {
			return nil, err
		}
		var filed *domain.Document
		if done.Completion != nil {
			filed = done.Completion.Document
		}
		return &CaptureResult{Filed: filed, Message: done.Message}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	cmd := NewCaptureCommand(
		p.deps.Classifier, p.deps.Vault, p.deps.Pending, p.deps.Recents,
		p.deps.Ledger, p.log, arg, p.threshold, p.now(),
	)
	return cmd.Execute(ctx)
}

// CaptureVoice transcribes audio and runs the transcript through Capture.
// The transcript rides along in the result so the transport can echo it.
func (p *Pipeline) CaptureVoice(ctx context.Context, audio []byte) (*CaptureResult, error) {
	if p.deps.Transcriber == nil {
		return nil, application.ErrTranscriberUnavailable
	}

	tctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	transcript, err := p.deps.Transcriber.Transcribe(tctx, audio)
	cancel()
	if err != nil {
		return nil, err
	}

	result, err := p.Capture(ctx, transcript)
	if result != nil {
		result.Transcript = transcript
	}
	return result, err
}

// Reply resolves the open clarification with a category choice. An empty
// key targets the current clarification, matching the conversational flow
// where the user just answers the question.
func (p *Pipeline) Reply(ctx context.Context, key, reply string) (*ResolveResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if key == "" {
		cur, err := p.deps.Pending.Current()
		if err != nil {
			return nil, fmt.Errorf("reading pending state: %w", err)
		}
		if cur == nil {
			return nil, application.ErrUnknownCorrelation
		}
		key = cur.Key
	}

	cmd := NewResolveCommand(
		p.deps.Pending, p.deps.Vault, p.deps.Recents, p.deps.Ledger,
		p.log, key, reply, p.now(),
	)
	return cmd.Execute(ctx)
}

// Fix reclassifies the most recent filed note.
func (p *Pipeline) Fix(ctx context.Context, newCategory string) (*FixResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cmd := NewFixCommand(p.deps.Vault, p.deps.Recents, p.deps.Ledger, p.log, newCategory, p.now())
	return cmd.Execute(ctx)
}

// Done checks off a task or closes a note.
func (p *Pipeline) Done(ctx context.Context, hint string) (*DoneResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cmd := NewDoneCommand(p.deps.Vault, p.log, hint)
	return cmd.Execute(ctx)
}

// Sweep abandons expired clarifications.
func (p *Pipeline) Sweep(ctx context.Context) (*SweepResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cmd := NewSweepCommand(p.deps.Pending, p.deps.Ledger, p.log, p.now())
	return cmd.Execute(ctx)
}

// Status reports per-category counts. Read-only, so it does not serialize
// against mutating operations.
func (p *Pipeline) Status(ctx context.Context) (*StatusResult, error) {
	return NewStatusCommand(p.deps.Vault, p.deps.Index, p.log, p.now()).Execute(ctx)
}

// Digest builds the daily or weekly briefing.
func (p *Pipeline) Digest(ctx context.Context, variant domain.DigestVariant) (*DigestResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	cmd := NewDigestCommand(
		p.deps.Vault, p.deps.Summarizer, p.deps.Index, p.log,
		variant, p.stuckWindow, p.now(),
	)
	return cmd.Execute(ctx)
}

// Pending returns the open clarification, or nil.
func (p *Pipeline) Pending() (*domain.PendingClarification, error) {
	return p.deps.Pending.Current()
}

// RecentEntries returns up to n of the latest ledger rows, oldest first.
func (p *Pipeline) RecentEntries(n int) ([]domain.AuditEntry, error) {
	return p.deps.Ledger.Tail(n)
}

// LastFiled returns the most recently filed document, or nil.
func (p *Pipeline) LastFiled() (*domain.Document, error) {
	return p.deps.Recents.LastFiled()
}
