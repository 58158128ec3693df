// Package services – QuestionService
//
// QuestionService is the application layer between the HTTP handlers and the
// in-memory question repository. It forwards each operation to the repository
// and adds tracing, debug logging and store metrics around it. Errors from
// the repository (domain.ErrQuestionNotFound) are returned unchanged so
// handlers can map them to HTTP results in one place.
//
// Observability: every public method opens an OpenTelemetry span carrying the
// question id where one applies.
package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

const tracerName = "services/QuestionService"

// QuestionRepo is the storage contract required by QuestionService.
// Implementations must be safe for concurrent use.
type QuestionRepo interface {
	// Snapshot returns all questions plus the repository revision.
	Snapshot() ([]domain.Question, uint64)
	// Len returns the number of stored questions.
	Len() int
	// Insert upserts q by id.
	Insert(q domain.Question)
	// Update replaces an existing question or returns domain.ErrQuestionNotFound.
	Update(id domain.QuestionID, q domain.Question) error
	// Delete removes a question or returns domain.ErrQuestionNotFound.
	Delete(id domain.QuestionID) error
}

// QuestionService provides list, add, update and delete over a QuestionRepo.
type QuestionService struct {
	Repo QuestionRepo
}

// NewQuestionService constructs a QuestionService and publishes the initial
// store size.
func NewQuestionService(r QuestionRepo) *QuestionService {
	questionsStored.Set(float64(r.Len()))
	return &QuestionService{Repo: r}
}

// List returns every question (sorted by id) and the revision it was read at.
func (s *QuestionService) List(ctx context.Context) ([]domain.Question, uint64, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "List")
	defer span.End()

	items, rev := s.Repo.Snapshot()
	span.SetAttributes(
		attribute.Int("questions.count", len(items)),
		attribute.Int64("questions.revision", int64(rev)),
	)
	return items, rev, nil
}

// Add upserts q. Adding an existing id replaces that record.
func (s *QuestionService) Add(ctx context.Context, q domain.Question) error {
	ctx, span := s.start(ctx, "Add", q.ID)
	defer span.End()

	if q.ID.IsZero() {
		return s.finish(ctx, span, opAdd, q.ID, domain.ErrEmptyQuestionID)
	}
	s.Repo.Insert(q)
	return s.finish(ctx, span, opAdd, q.ID, nil)
}

// Update replaces the question stored under id with q. The stored record
// always carries id, whatever q.ID holds.
func (s *QuestionService) Update(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	q.ID = id
	return s.finish(ctx, span, opUpdate, id, s.Repo.Update(id, q))
}

// Delete removes the question stored under id.
func (s *QuestionService) Delete(ctx context.Context, id domain.QuestionID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	return s.finish(ctx, span, opDelete, id, s.Repo.Delete(id))
}

func (s *QuestionService) start(ctx context.Context, name string, id domain.QuestionID) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithAttributes(attribute.String("question.id", id.String())),
	)
}

// finish records the outcome of a mutation on the span, the metrics and the
// request-scoped logger, and returns err.
func (s *QuestionService) finish(ctx context.Context, span trace.Span, op string, id domain.QuestionID, err error) error {
	lg := zerolog.Ctx(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observeMutation(op, resultError)
		lg.Debug().Str("op", op).Str("question_id", id.String()).Err(err).Msg("question mutation rejected")
		return err
	}
	observeMutation(op, resultOK)
	questionsStored.Set(float64(s.Repo.Len()))
	lg.Debug().Str("op", op).Str("question_id", id.String()).Msg("question mutation applied")
	return nil
}
