package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/metrics"
	"github.com/jsamuelsen/portfolio/internal/ports"
)

// ContactServiceConfig contains the contact service dependencies.
type ContactServiceConfig struct {
	Recorders       []ports.SubmissionRecorder
	Limiter         ports.SubmissionLimiter
	Metrics         ports.ContactMetrics
	Executor        *Executor
	SubmittedWindow time.Duration
	Logger          *slog.Logger

	// Now overrides the clock in tests.
	Now func() time.Time
}

// ContactService records contact form submissions and drives the form's
// submitted window.
type ContactService struct {
	recorders []ports.SubmissionRecorder
	limiter   ports.SubmissionLimiter
	metrics   ports.ContactMetrics
	exec      *Executor
	window    time.Duration
	logger    *slog.Logger
	now       func() time.Time
	validate  *validator.Validate
}

// ContactInput is one submit attempt.
type ContactInput struct {
	Session    *Session
	Form       domain.ContactForm
	RemoteAddr string
}

// NewContactService creates a contact service. It panics without a recorder.
func NewContactService(cfg ContactServiceConfig) *ContactService {
	if len(cfg.Recorders) == 0 {
		panic("app: contact service needs at least one recorder")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Executor == nil {
		cfg.Executor = NewExecutor(cfg.Logger, nil)
	}

	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &ContactService{
		recorders: cfg.Recorders,
		limiter:   cfg.Limiter,
		metrics:   cfg.Metrics,
		exec:      cfg.Executor,
		window:    cfg.SubmittedWindow,
		logger:    cfg.Logger,
		now:       cfg.Now,
		validate:  newFormValidator(),
	}
}

// Submit checks the client's allowance, validates the form, records it, and
// on success clears the session's fields and opens the submitted window. A
// form that fails at any step, including a rate limit, is kept as a draft.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (domain.ContactState, error) {
	op := Operation[ContactInput, *domain.Submission, *domain.Submission, domain.ContactState]{
		Name:     "contact.submit",
		Validate: s.validateInput,
		Perform:  s.record,
		Verify:   s.verify,
		Archive: func(_ context.Context, in ContactInput, _ *domain.Submission) error {
			in.Session.markSubmitted(s.window)
			return nil
		},
		Respond: func(_ context.Context, in ContactInput, _ *domain.Submission) (domain.ContactState, error) {
			return in.Session.Contact(), nil
		},
	}

	state, err := Execute(ctx, s.exec, op, in)
	if err != nil {
		switch {
		case domain.IsRateLimited(err):
			s.metrics.RecordContactSubmission(metrics.OutcomeRateLimited)
		case domain.IsValidation(err):
			s.metrics.RecordContactSubmission(metrics.OutcomeInvalid)
		default:
			s.metrics.RecordContactSubmission(metrics.OutcomeFailed)
		}

		if in.Session != nil {
			in.Session.SaveDraft(in.Form)
		}

		return domain.ContactState{}, err
	}

	s.metrics.RecordContactSubmission(metrics.OutcomeAccepted)

	return state, nil
}

func (s *ContactService) validateInput(_ context.Context, in ContactInput) error {
	if in.Session == nil {
		return domain.NewValidationError("session", "is required")
	}

	if s.limiter != nil {
		if ok, retryAfter := s.limiter.Allow(in.RemoteAddr); !ok {
			return domain.NewRateLimitedError(retryAfter)
		}
	}

	err := s.validate.Struct(in.Form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}

	return domain.NewFieldErrors(fields)
}

func (s *ContactService) record(ctx context.Context, in ContactInput) (*domain.Submission, error) {
	sub := &domain.Submission{
		ID:         uuid.NewString(),
		SessionID:  in.Session.ID(),
		RemoteAddr: in.RemoteAddr,
		Form:       trimForm(in.Form),
		ReceivedAt: s.now().UTC(),
	}

	for _, r := range s.recorders {
		if err := r.Record(ctx, sub); err != nil {
			if domain.IsUnavailable(err) {
				return nil, err
			}
			return nil, domain.NewUnavailableError(r.Name(), err.Error())
		}
	}

	return sub, nil
}

func (s *ContactService) verify(ctx context.Context, _ ContactInput, sub *domain.Submission) (*domain.Submission, error) {
	if sub == nil || sub.ID == "" {
		return nil, domain.NewUnavailableError("contact", "submission has no id")
	}

	for _, r := range s.recorders {
		lookup, ok := r.(ports.SubmissionLookup)
		if !ok {
			continue
		}

		found, err := lookup.Exists(ctx, sub.ID)
		if err != nil {
			return nil, domain.NewUnavailableError(r.Name(), err.Error())
		}

		if !found {
			return nil, domain.NewUnavailableError(r.Name(), fmt.Sprintf("submission %s missing after write", sub.ID))
		}
	}

	return sub, nil
}

func trimForm(f domain.ContactForm) domain.ContactForm {
	return domain.ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// newFormValidator reports fields by their json names.
func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
