package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tracker/internal/core"
	"tracker/internal/log"
	"tracker/internal/store"
)

// Submission is one contribution as entered on the form.
type Submission struct {
	Name   string                `validate:"notblank"`
	Type   core.ContributionType `validate:"contribution_type"`
	Amount float64               `validate:"gt=0"`
	Notes  string
}

// EventPublisher announces stored contributions to other services.
type EventPublisher interface {
	PublishContributionRecorded(ctx context.Context, r core.Record) error
}

// Submitter validates submissions and appends them to the store.
type Submitter struct {
	store    store.Appender
	events   EventPublisher
	now      func() time.Time
	validate *validator.Validate
	logger   *log.StructuredLogger
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithClock sets the clock used to timestamp records.
func WithClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) { s.now = now }
}

// WithEvents publishes an event after every successful append.
func WithEvents(p EventPublisher) SubmitterOption {
	return func(s *Submitter) { s.events = p }
}

// WithSubmitLogger sets the logger.
func WithSubmitLogger(l *log.Logger) SubmitterOption {
	return func(s *Submitter) { s.logger = log.NewStructuredLogger(l) }
}

func NewSubmitter(app store.Appender, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		store:    app,
		now:      time.Now,
		validate: newValidator(),
		logger:   log.NewStructuredLogger(log.New(log.DefaultConfig()).WithComponent(log.ComponentContribution)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates sub and, when valid, appends exactly one record stamped
// with the current time. Invalid input returns a *core.ValidationError and
// never touches the store; store failures return a *core.StorageError.
// There is no retry and no deduplication.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (core.Record, error) {
	if err := s.check(sub); err != nil {
		return core.Record{}, err
	}

	rec := core.Record{
		Timestamp: s.now(),
		Name:      sub.Name,
		Type:      sub.Type,
		Amount:    sub.Amount,
		Notes:     sub.Notes,
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}

	if err := s.store.Append(ctx, rec); err != nil {
		var se *core.StorageError
		if !errors.As(err, &se) {
			err = core.NewStorageError("append", err)
		}
		s.logger.LogError(ctx, "Failed to append contribution", err, log.ComponentContribution, log.OpAppend,
			log.NewFields().WithErrorType(log.ErrorTypeStorage))
		return core.Record{}, err
	}

	s.logger.LogContributionRecorded(ctx, rec.Type.String(), rec.Amount, rec.Notes != "")
	s.publish(ctx, rec)
	return rec, nil
}

// publish is best effort: the record is already stored.
func (s *Submitter) publish(ctx context.Context, rec core.Record) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishContributionRecorded(ctx, rec); err != nil {
		s.logger.LogError(ctx, "Failed to publish contribution event", err, log.ComponentAMQP, log.OpPublish, nil)
	}
}

// check maps struct validation failures to domain validation errors.
func (s *Submitter) check(sub Submission) error {
	err := s.validate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return core.NewValidationError("", err)
	}
	switch verrs[0].Field() {
	case "Name":
		return core.NewValidationError(core.ColumnName, core.ErrMissingName)
	case "Amount":
		return core.NewValidationError(core.ColumnAmount, core.ErrInvalidAmount)
	case "Type":
		return core.NewValidationError(core.ColumnType, core.ErrUnknownType)
	default:
		return core.NewValidationError(verrs[0].Field(), err)
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.Kind() == reflect.String && strings.TrimSpace(f.String()) != ""
	})
	_ = v.RegisterValidation("contribution_type", func(fl validator.FieldLevel) bool {
		return core.ContributionType(fl.Field().String()).IsValid()
	})
	return v
}
