package navigationcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitenav/internal/commands"
	"github.com/goliatone/go-sitenav/internal/generator"
	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

const generateOperation = "navigation.generate"

// ErrBuilderRequired is returned when no generator is wired.
var ErrBuilderRequired = errors.New("navigation command: builder is nil")

var _ command.Commander[GenerateCommand] = (*GenerateHandler)(nil)

// Builder runs a generation pass. generator.Service satisfies it.
type Builder interface {
	Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error)
}

// ResultObserver receives the outcome of a successful pass.
type ResultObserver func(ctx context.Context, result *generator.BuildResult)

// GenerateHandler runs navigation passes through the shared command handler.
type GenerateHandler struct {
	inner *commands.Handler[GenerateCommand]
}

// NewGenerateHandler creates a handler bound to builder. observer may be nil.
func NewGenerateHandler(builder Builder, logger interfaces.Logger, observer ResultObserver, opts ...commands.HandlerOption[GenerateCommand]) *GenerateHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg GenerateCommand) error {
		if builder == nil {
			return ErrBuilderRequired
		}
		result, err := builder.Build(ctx, generator.BuildOptions{
			OutputDir: msg.OutputDir,
			Format:    msg.Format,
			DryRun:    msg.DryRun,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"pages":    len(result.Pages),
			"eligible": result.Eligible,
			"default":  result.Default,
			"gaps":     result.Gaps,
			"output":   result.Output,
		}).Info("navigation.command.generate.completed")
		if observer != nil {
			observer(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateCommand]{
		commands.WithLogger[GenerateCommand](baseLogger),
		commands.WithOperation[GenerateCommand](generateOperation),
		commands.WithMessageFields[GenerateCommand](func(msg GenerateCommand) map[string]any {
			fields := map[string]any{}
			if msg.OutputDir != "" {
				fields["output_dir"] = msg.OutputDir
			}
			if msg.Format != "" {
				fields["format"] = msg.Format
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[GenerateCommand].
func (h *GenerateHandler) Execute(ctx context.Context, msg GenerateCommand) error {
	return h.inner.Execute(ctx, msg)
}
