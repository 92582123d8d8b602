package handler

import (
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/model"
	"dataroom/internal/service"
)

type submitQuestionRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	AskedBy  string   `json:"asked_by"`
}

type versionRequest struct {
	Version int64 `json:"version"`
}

type answerRequest struct {
	Answer           string   `json:"answer"`
	RelatedDocuments []string `json:"related_documents"`
	AnsweredBy       string   `json:"answered_by"`
	Version          int64    `json:"version"`
}

type citationRequest struct {
	DocumentID      string  `json:"document_id"`
	DocumentName    string  `json:"document_name"`
	Excerpt         string  `json:"excerpt"`
	SimilarityScore float64 `json:"similarity_score"`
}

type citationsRequest struct {
	Citations []citationRequest `json:"citations"`
}

// ListQuestions godoc
// @Summary List questions
// @Tags questions
// @Produce json
// @Param status query string false "pending, needs_documents or answered"
// @Param asked_by query string false "asker name"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.QuestionListResult
// @Failure 400 {object} errorPayload
// @Router /questions [get]
func ListQuestions(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.List(c.UserContext(), service.QuestionQuery{
			Limit:   limit,
			Offset:  offset,
			Status:  model.QuestionStatus(c.Query("status")),
			AskedBy: c.Query("asked_by"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// SubmitQuestion godoc
// @Summary Submit a question
// @Tags questions
// @Accept json
// @Produce json
// @Param body body submitQuestionRequest true "question"
// @Success 201 {object} model.Question
// @Failure 400 {object} errorPayload
// @Router /questions [post]
func SubmitQuestion(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req submitQuestionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		q, err := svc.Submit(c.UserContext(), service.SubmitRequest{
			Title:    req.Title,
			Content:  req.Content,
			Priority: model.Priority(req.Priority),
			Tags:     req.Tags,
			AskedBy:  userName(c, req.AskedBy),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(q)
	}
}

// QuestionQueue godoc
// @Summary Responder queue
// @Description Open questions by priority then newest first, with urgency labels.
// @Tags questions
// @Produce json
// @Success 200 {array} service.QueueItem
// @Router /questions/queue [get]
func QuestionQueue(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Queue(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path string true "question id"
// @Success 200 {object} model.Question
// @Failure 404 {object} errorPayload
// @Router /questions/{id} [get]
func GetQuestion(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		q, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(q)
	}
}

// QuestionSuggestions godoc
// @Summary Documents that may answer a question
// @Tags questions
// @Produce json
// @Param id path string true "question id"
// @Success 200 {array} matching.DocumentMatch
// @Failure 404 {object} errorPayload
// @Router /questions/{id}/suggestions [get]
func QuestionSuggestions(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		matches, err := svc.Suggestions(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": matches})
	}
}

// MarkNeedsDocuments godoc
// @Summary Mark a question as needing documents
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "question id"
// @Param body body versionRequest false "expected version, 0 or absent skips the check"
// @Success 200 {object} model.Question
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /questions/{id}/needs-documents [post]
func MarkNeedsDocuments(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req versionRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}
		q, err := svc.MarkNeedsDocuments(c.UserContext(), id, req.Version)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(q)
	}
}

// AnswerQuestion godoc
// @Summary Answer a question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "question id"
// @Param body body answerRequest true "answer"
// @Success 200 {object} model.Question
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /questions/{id}/answer [post]
func AnswerQuestion(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req answerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		q, err := svc.Answer(c.UserContext(), service.AnswerRequest{
			QuestionID:       id,
			Answer:           req.Answer,
			RelatedDocuments: req.RelatedDocuments,
			AnsweredBy:       userName(c, req.AnsweredBy),
			ExpectedVersion:  req.Version,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(q)
	}
}

// PutCitations godoc
// @Summary Store source citations for a question
// @Description Replaces the citations an external AI service reported for the question.
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "question id"
// @Param body body citationsRequest true "citations"
// @Success 200 {array} model.SourceCitation
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /questions/{id}/citations [put]
func PutCitations(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req citationsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		in := make([]service.CitationInput, len(req.Citations))
		for i, cr := range req.Citations {
			in[i] = service.CitationInput{
				DocumentID:      cr.DocumentID,
				DocumentName:    cr.DocumentName,
				Excerpt:         cr.Excerpt,
				SimilarityScore: cr.SimilarityScore,
			}
		}
		cs, err := svc.SaveCitations(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": cs})
	}
}

// GetCitations godoc
// @Summary List source citations for a question
// @Tags questions
// @Produce json
// @Param id path string true "question id"
// @Success 200 {array} model.SourceCitation
// @Failure 404 {object} errorPayload
// @Router /questions/{id}/citations [get]
func GetCitations(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		cs, err := svc.Citations(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": cs})
	}
}

// Dashboard godoc
// @Summary Question backlog summary
// @Tags questions
// @Produce json
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func Dashboard(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Dashboard(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(d)
	}
}
