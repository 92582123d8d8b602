package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dataroom/internal/http/middleware"
	"dataroom/internal/matching"
	"dataroom/internal/service"
)

type updateTagsRequest struct {
	Tags []string `json:"tags"`
}

// ListDocuments godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Param tag query []string false "match documents carrying any of these tags"
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} errorPayload
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}

		res, err := svc.List(c.UserContext(), service.DocumentQuery{
			Limit:  limit,
			Offset: offset,
			Tags:   tagParams(c),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument godoc
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document content"
// @Param tags formData string false "comma separated tags"
// @Param uploaded_by formData string false "uploader name, defaults to X-User-Name"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Router /documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), service.UploadInput{
			Reader:      f,
			FileName:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Tags:        matching.SplitTagList(c.FormValue("tags")),
			UploadedBy:  userName(c, c.FormValue("uploaded_by")),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument godoc
// @Summary Presign a download URL
// @Description Returns the URL as JSON, or redirects to it when redirect=true.
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Param redirect query bool false "redirect to the URL"
// @Success 200 {object} service.DownloadLink
// @Success 307
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		link, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if c.QueryBool("redirect") {
			return c.Redirect(link.URL, fiber.StatusTemporaryRedirect)
		}
		return c.JSON(link)
	}
}

// DocumentContent godoc
// @Summary Stream a document's content
// @Tags documents
// @Produce octet-stream
// @Param id path string true "document id"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/content [get]
func DocumentContent(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		content, err := svc.Content(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Attachment(content.Document.Name)
		if content.Document.ContentType != "" {
			c.Set(fiber.HeaderContentType, content.Document.ContentType)
		}
		// fasthttp closes the body once it has been written
		return c.SendStream(content.Body, int(content.Size))
	}
}

// UpdateDocumentTags godoc
// @Summary Replace a document's tags
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "document id"
// @Param body body updateTagsRequest true "new tags"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/tags [put]
func UpdateDocumentTags(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req updateTagsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		doc, err := svc.UpdateTags(c.UserContext(), id, req.Tags)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Param id path string true "document id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentQuestions godoc
// @Summary Questions a document may help answer
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {array} matching.QuestionMatch
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/questions [get]
func DocumentQuestions(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		matches, err := svc.RelatedQuestions(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": matches})
	}
}

func idParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", newBadRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

func pageParams(c *fiber.Ctx) (int, int, error) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, newBadRequest("INVALID_LIMIT", "invalid limit")
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, newBadRequest("INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

// tagParams accepts both repeated tag parameters and comma separated lists.
func tagParams(c *fiber.Ctx) []string {
	var tags []string
	for _, v := range c.Context().QueryArgs().PeekMulti("tag") {
		tags = append(tags, matching.SplitTagList(string(v))...)
	}
	return tags
}

// userName prefers an explicit name from the request body over the X-User-Name header.
func userName(c *fiber.Ctx, explicit string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	return strings.TrimSpace(c.Get(middleware.UserHeader))
}
