// Question HTTP handlers.
//
// This file exposes REST endpoints for question resources:
//   - GET    /questions        (list, optional start/end pagination, ETag support)
//   - POST   /questions        (create or replace by id)
//   - PUT    /questions/{id}   (replace an existing question)
//   - DELETE /questions/{id}   (remove a question)
//
// Handlers are transport-thin: they decode input, resolve pagination, call
// the QuestionService and hand every failure to RespondError.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/pagination"
)

// QuestionService defines question operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use.
type QuestionService interface {
	// List returns all questions in a stable order plus the store revision.
	List(ctx context.Context) ([]domain.Question, uint64, error)
	// Add upserts a question by id.
	Add(ctx context.Context, q domain.Question) error
	// Update replaces an existing question; domain.ErrQuestionNotFound on miss.
	Update(ctx context.Context, id domain.QuestionID, q domain.Question) error
	// Delete removes a question; domain.ErrQuestionNotFound on miss.
	Delete(ctx context.Context, id domain.QuestionID) error
}

// Handlers groups the question endpoints.
type Handlers struct {
	svc QuestionService
	// etagSalt distinguishes ETags across process restarts, since the store
	// revision starts from zero each time.
	etagSalt string
}

// New constructs a Handlers instance bound to svc.
func New(svc QuestionService) *Handlers {
	return &Handlers{svc: svc, etagSalt: uuid.NewString()[:8]}
}

//
// DTOs
//

// CreateQuestionRequest is the JSON payload for creating a question.
// Title and Content must be present but may be empty strings; a missing or
// null field fails binding.
type CreateQuestionRequest struct {
	ID      string   `json:"id" binding:"required" example:"1"`
	Title   *string  `json:"title" binding:"required" example:"How do pages work?"`
	Content *string  `json:"content" binding:"required" example:"Pass start and end."`
	Tags    []string `json:"tags" example:"faq,pagination"`
}

// UpdateQuestionRequest is the JSON payload for replacing a question. ID may
// be omitted; when present it must equal the path id.
type UpdateQuestionRequest struct {
	ID      string   `json:"id" example:"1"`
	Title   *string  `json:"title" binding:"required" example:"How do pages work?"`
	Content *string  `json:"content" binding:"required" example:"Pass start and end."`
	Tags    []string `json:"tags" example:"faq"`
}

//
// Handlers
//

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions
// @Description Returns all questions sorted by id when the query is empty. Otherwise start and end are both required and the half-open range [start, end) is returned, with end clamped to the number of questions. Supports weak ETag via If-None-Match.
// @Tags        Questions
// @Produce     json
//
// @Param       start          query   int     false "First index (inclusive)"    minimum(0)
// @Param       end            query   int     false "Last index (exclusive)"     minimum(0)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Question
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     416  {object} handlers.ErrorResponse "Invalid pagination parameters"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	items, rev, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	window := "all"
	rng, requested, err := pagination.Resolve(pagination.FromQuery(c.Request.URL.Query()))
	if err != nil {
		RespondError(c, err)
		return
	}
	if requested {
		if rng, err = pagination.Clamp(rng, len(items)); err != nil {
			RespondError(c, err)
			return
		}
		items = pagination.Page(items, rng)
		window = fmt.Sprintf("%d-%d", rng.Start, rng.End)
	}

	etag := fmt.Sprintf(`W/"questions:%s:%d:%s"`, h.etagSalt, rev, window)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	ok(c, http.StatusOK, items)
}

// AddQuestion godoc
// @ID          addQuestion
// @Summary     Create a question
// @Description Stores the question under its id. An existing question with the same id is replaced.
// @Tags        Questions
// @Accept      json
// @Produce     plain
//
// @Param       body  body  handlers.CreateQuestionRequest  true  "Question"
//
// @Success     201  {string} string "Question added"
// @Failure     422  {object} handlers.ErrorResponse "Malformed body"
// @Router      /questions [post]
func (h *Handlers) AddQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, &BodyError{Err: err})
		return
	}
	id, err := domain.NewQuestionID(req.ID)
	if err != nil {
		RespondError(c, &BodyError{Err: err})
		return
	}

	q := domain.Question{ID: id, Title: *req.Title, Content: *req.Content, Tags: req.Tags}
	if err := h.svc.Add(c.Request.Context(), q); err != nil {
		RespondError(c, err)
		return
	}
	ack(c, http.StatusCreated, "Question added")
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Replace a question
// @Description Replaces the whole question stored under id. Never creates.
// @Tags        Questions
// @Accept      json
// @Produce     plain
//
// @Param       id    path  string  true  "Question ID"
// @Param       body  body  handlers.UpdateQuestionRequest  true  "Replacement question"
//
// @Success     200  {string} string "Question updated"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     422  {object} handlers.ErrorResponse "Malformed body"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	id, err := domain.NewQuestionID(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, &BodyError{Err: err})
		return
	}
	if req.ID != "" && req.ID != id.String() {
		RespondError(c, &BodyError{Err: fmt.Errorf("body id %q does not match path id %q", req.ID, id.String())})
		return
	}

	q := domain.Question{ID: id, Title: *req.Title, Content: *req.Content, Tags: req.Tags}
	if err := h.svc.Update(c.Request.Context(), id, q); err != nil {
		RespondError(c, err)
		return
	}
	ack(c, http.StatusOK, "Question updated")
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question
// @Tags        Questions
// @Produce     plain
//
// @Param       id  path  string  true  "Question ID"
//
// @Success     200  {string} string "Question deleted"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	id, err := domain.NewQuestionID(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	ack(c, http.StatusOK, "Question deleted")
}
