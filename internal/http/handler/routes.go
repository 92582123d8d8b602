package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/service"
)

// RegisterRoutes attaches the data room HTTP routes to app.
// db may be nil when the in-memory store is configured.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, qSvc service.QuestionService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(docSvc))
	docs.Post("/", UploadDocument(docSvc))
	docs.Get("/:id", GetDocument(docSvc))
	docs.Delete("/:id", DeleteDocument(docSvc))
	docs.Get("/:id/download", DownloadDocument(docSvc))
	docs.Get("/:id/content", DocumentContent(docSvc))
	docs.Put("/:id/tags", UpdateDocumentTags(docSvc))
	docs.Get("/:id/questions", DocumentQuestions(docSvc))

	questions := app.Group("/questions")
	questions.Get("/", ListQuestions(qSvc))
	questions.Post("/", SubmitQuestion(qSvc))
	// registered before /:id so "queue" is not taken for an id
	questions.Get("/queue", QuestionQueue(qSvc))
	questions.Get("/:id", GetQuestion(qSvc))
	questions.Get("/:id/suggestions", QuestionSuggestions(qSvc))
	questions.Post("/:id/needs-documents", MarkNeedsDocuments(qSvc))
	questions.Post("/:id/answer", AnswerQuestion(qSvc))
	questions.Put("/:id/citations", PutCitations(qSvc))
	questions.Get("/:id/citations", GetCitations(qSvc))

	app.Get("/dashboard", Dashboard(qSvc))
}
