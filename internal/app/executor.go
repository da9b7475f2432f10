package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jsamuelsen/portfolio/internal/platform/logging"
)

// Operations that change visitor state run in five steps:
//
//  1. VALIDATE  check inputs before anything changes
//  2. PERFORM   do the work (record a submission)
//  3. VERIFY    confirm the work is really there
//  4. ARCHIVE   commit the session state change
//  5. RESPOND   shape the result for the caller
//
// Session state is only touched in ARCHIVE, so a failed write never leaves the
// form looking submitted.

// ExecutionStep names one step of an operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause so domain errors stay visible to errors.Is.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Executor runs operations step by step, logging and tracing each one.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor creates an executor. A nil tracer disables spans.
func NewExecutor(logger *slog.Logger, tracer trace.Tracer) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	return &Executor{logger: logger, tracer: tracer}
}

// Operation defines the functions for each step. Any step may be nil.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs op against input. The returned error is an *ExecutionError
// naming the failed step.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (result O, err error) {
	ctx, span := exec.tracer.Start(ctx, op.Name)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := exec.logger
	if scoped, ok := logging.Lookup(ctx); ok {
		logger = scoped
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	run := func(step ExecutionStep, message string, fn func() error) error {
		span.AddEvent(string(step))

		stepErr := fn()
		if stepErr == nil {
			return nil
		}

		span.SetAttributes(attribute.String("operation.failed_step", string(step)))

		if step == StepValidate {
			logger.WarnContext(ctx, "operation rejected", slog.String("step", string(step)), slog.Any("error", stepErr))
		} else {
			logger.ErrorContext(ctx, "operation failed", slog.String("step", string(step)), slog.Any("error", stepErr))
		}

		return stepError(step, message, stepErr)
	}

	var (
		performed P
		verified  V
	)

	if op.Validate != nil {
		if err = run(StepValidate, "input validation failed", func() error {
			return op.Validate(ctx, input)
		}); err != nil {
			return result, err
		}
	}

	if op.Perform != nil {
		if err = run(StepPerform, "operation failed", func() (stepErr error) {
			performed, stepErr = op.Perform(ctx, input)
			return stepErr
		}); err != nil {
			return result, err
		}
	}

	if op.Verify != nil {
		if err = run(StepVerify, "verification failed", func() (stepErr error) {
			verified, stepErr = op.Verify(ctx, input, performed)
			return stepErr
		}); err != nil {
			return result, err
		}
	}

	if op.Archive != nil {
		if err = run(StepArchive, "state change failed", func() error {
			return op.Archive(ctx, input, verified)
		}); err != nil {
			return result, err
		}
	}

	if op.Respond != nil {
		if err = run(StepRespond, "response failed", func() (stepErr error) {
			result, stepErr = op.Respond(ctx, input, verified)
			return stepErr
		}); err != nil {
			var zero O
			return zero, err
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// GetExecutionStep extracts the failed step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
