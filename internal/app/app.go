package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"nutrition-tracker/internal/config"
	"nutrition-tracker/internal/history"
	"nutrition-tracker/internal/mailer"
	"nutrition-tracker/internal/nutrition"
	"nutrition-tracker/internal/nutritionix"
	"nutrition-tracker/internal/report"
	"nutrition-tracker/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArtifactStore saves rendered reports and moves them into the logs directory.
type ArtifactStore interface {
	Save(name, report string) (string, error)
	Relocate(path string) (string, error)
}

// Notifier is told about every delivered report.
type Notifier interface {
	NotifyReport(subject, report, filePath string) error
}

// RunRecorder persists run outcomes.
type RunRecorder interface {
	Record(ctx context.Context, r history.Run) error
}

// Outcome describes how a pipeline run ended.
type Outcome struct {
	RunID        string
	State        State
	Status       Status
	Report       string
	ArtifactPath string
	ArchiveURI   string
	Warnings     []error
}

// App holds the application's dependencies.
type App struct {
	cfg      *config.Config
	client   nutritionix.Client
	store    ArtifactStore
	sender   mailer.Sender
	archiver storage.Archiver
	notifier Notifier
	recorder RunRecorder
	console  io.Writer
	logger   *zap.Logger
	now      func() time.Time
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	client nutritionix.Client,
	store ArtifactStore,
	sender mailer.Sender,
	console io.Writer,
	logger *zap.Logger,
) *App {
	if console == nil {
		console = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:     cfg,
		client:  client,
		store:   store,
		sender:  sender,
		console: console,
		logger:  logger,
		now:     time.Now,
	}
}

// WithArchiver copies relocated reports to long-term storage.
func (a *App) WithArchiver(ar storage.Archiver) *App {
	a.archiver = ar
	return a
}

// WithNotifier announces delivered reports.
func (a *App) WithNotifier(n Notifier) *App {
	a.notifier = n
	return a
}

// WithRecorder records each run's outcome.
func (a *App) WithRecorder(r RunRecorder) *App {
	a.recorder = r
	return a
}

// WithClock overrides the time source used for file names and subjects.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// RunInteractive prompts on in for a food item and runs the pipeline for it.
func (a *App) RunInteractive(ctx context.Context, in io.Reader) (*Outcome, error) {
	q, err := Prompt(in, a.console)
	if err != nil {
		return nil, err
	}
	return a.Run(ctx, q)
}

// RunText validates raw and runs the pipeline for it. Text that is not a
// valid food name aborts at Idle with an input_invalid failure and is
// recorded like any other abort.
func (a *App) RunText(ctx context.Context, raw string) (*Outcome, error) {
	q, err := nutrition.ParseFoodQuery(raw)
	if err == nil {
		return a.Run(ctx, q)
	}

	started := a.now()
	out := &Outcome{RunID: uuid.NewString(), State: StateAborted, Status: StatusAborted}
	logger := a.logger.With(zap.String("run_id", out.RunID), zap.String("query", raw))
	failure := nutrition.NewFailure(nutrition.KindInputInvalid, err)
	logger.Info("run aborted", zap.Stringer("state", StateIdle), zap.Stringer("kind", failure.Kind), zap.Error(err))
	a.record(ctx, logger, strings.TrimSpace(raw), out, failure, started)
	return out, failure
}

// Run executes one pipeline run for q. Fetch and save failures abort the run
// and are returned as errors; later failures are reported in Outcome.Warnings.
func (a *App) Run(ctx context.Context, q nutrition.FoodQuery) (*Outcome, error) {
	started := a.now()
	out := &Outcome{RunID: uuid.NewString(), State: StateIdle}
	logger := a.logger.With(zap.String("run_id", out.RunID), zap.String("query", q.String()))

	var runErr error
	defer func() {
		a.record(ctx, logger, q.String(), out, runErr, started)
	}()

	abort := func(err error) (*Outcome, error) {
		logger.Info("run aborted", zap.Stringer("state", out.State), zap.Stringer("kind", nutrition.KindOf(err)), zap.Error(err))
		out.State = StateAborted
		out.Status = StatusAborted
		runErr = err
		return out, err
	}

	// Idle -> QueryValidated
	if q.IsZero() {
		return abort(nutrition.NewFailure(nutrition.KindInputInvalid, nutrition.ErrEmptyQuery))
	}
	out.State = StateQueryValidated

	// QueryValidated -> NutrientsFetched
	result, err := a.client.Nutrients(ctx, q)
	if err != nil {
		fmt.Fprintf(a.console, "Could not retrieve nutritional information for '%s'. Operation aborted.\n", q)
		return abort(err)
	}
	if result.Empty() {
		fmt.Fprintf(a.console, "Could not retrieve nutritional information for '%s'. Operation aborted.\n", q)
		return abort(nutrition.NewFailure(nutrition.KindNoMatch, fmt.Errorf("no foods returned for %q", q.String())))
	}
	out.State = StateNutrientsFetched

	// NutrientsFetched -> ReportRendered
	out.Report = report.Format(result)
	fmt.Fprintln(a.console, "\n"+out.Report)
	out.State = StateReportRendered

	// ReportRendered -> ArtifactSaved
	now := a.now()
	path, err := a.store.Save(report.FileName(q.String(), now), out.Report)
	if err != nil {
		fmt.Fprintf(a.console, "  > Error saving file: %v\n", err)
		fmt.Fprintln(a.console, "  > File was not saved, so email and file moving could not be done.")
		return abort(err)
	}
	fmt.Fprintf(a.console, "  > Nutritional data saved temporarily to '%s' (%s)\n", path, humanize.Bytes(uint64(len(out.Report))))
	out.ArtifactPath = path
	out.State = StateArtifactSaved

	// ArtifactSaved -> Delivered
	fmt.Fprintf(a.console, "  > Processing saved file for '%s'...\n", q)
	if moved, err := a.store.Relocate(path); err != nil {
		fmt.Fprintf(a.console, "  > Error moving file to logs folder: %v\n", err)
		fmt.Fprintln(a.console, "  > Attempting to send email using the file's original location (if it still exists).")
		a.warn(logger, out, err)
	} else {
		fmt.Fprintf(a.console, "  > File moved to '%s'\n", moved)
		out.ArtifactPath = moved
	}

	if a.archiver != nil {
		if uri, err := a.archiver.Archive(ctx, out.ArtifactPath); err != nil {
			a.warn(logger, out, err)
		} else {
			out.ArchiveURI = uri
			logger.Debug("report archived", zap.String("uri", uri))
		}
	}

	subject := mailer.Subject(q.String(), now)
	fmt.Fprintln(a.console, "  > Preparing to send email...")
	receipt, err := a.sender.Send(ctx, mailer.Message{
		Subject:        subject,
		Body:           mailer.Body(q.String(), out.Report),
		To:             a.cfg.Delivery.ReceiverEmail,
		AttachmentPath: out.ArtifactPath,
	})
	if err != nil {
		fmt.Fprintln(a.console, "  > Email sending failed. Please check the error messages above.")
		a.warn(logger, out, err)
	} else {
		if receipt != nil && receipt.AttachmentErr != nil {
			a.warn(logger, out, receipt.AttachmentErr)
		}
		fmt.Fprintln(a.console, "  > Email operation completed.")
		out.State = StateDelivered
	}

	if a.notifier != nil {
		if err := a.notifier.NotifyReport(subject, out.Report, out.ArtifactPath); err != nil {
			a.warn(logger, out, err)
		}
	}

	out.Status = StatusCompleted
	if len(out.Warnings) > 0 {
		out.Status = StatusCompletedWithWarning
	}
	return out, nil
}

func (a *App) warn(logger *zap.Logger, out *Outcome, err error) {
	logger.Warn("run degraded", zap.Stringer("state", out.State), zap.Stringer("kind", nutrition.KindOf(err)), zap.Error(err))
	out.Warnings = append(out.Warnings, err)
}

func (a *App) record(ctx context.Context, logger *zap.Logger, query string, out *Outcome, runErr error, started time.Time) {
	if a.recorder == nil {
		return
	}

	run := history.Run{
		ID:           out.RunID,
		Query:        query,
		State:        out.State.String(),
		Outcome:      string(out.Status),
		ArtifactPath: out.ArtifactPath,
		Warnings:     len(out.Warnings),
		StartedAt:    started,
		Duration:     a.now().Sub(started),
	}
	if runErr != nil {
		run.FailureKind = nutrition.KindOf(runErr).String()
	}
	if err := a.recorder.Record(ctx, run); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
	}
}
