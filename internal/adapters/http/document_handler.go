package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// DocumentHandler handles document archive requests
type DocumentHandler struct {
	documentService *services.DocumentService
	logger          *logger.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// ListFolders returns the folder tree
func (h *DocumentHandler) ListFolders(c echo.Context) error {
	folders, err := h.documentService.ListFolders(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list folders", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, folders)
}

// SaveFolder upserts a folder node
func (h *DocumentHandler) SaveFolder(c echo.Context) error {
	var folder entities.Folder
	if err := c.Bind(&folder); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	saved, err := h.documentService.SaveFolder(c.Request().Context(), folder)
	if err != nil {
		h.logger.Error("Failed to save folder", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteFolder removes a folder node
func (h *DocumentHandler) DeleteFolder(c echo.Context) error {
	if err := h.documentService.DeleteFolder(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Folder deleted successfully"})
}

// ListDocuments returns every document
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	docs, err := h.documentService.ListDocuments(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list documents", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

// GetDocument returns one document by id
func (h *DocumentHandler) GetDocument(c echo.Context) error {
	doc, err := h.documentService.GetDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// CheckName reports the document already holding a name inside a folder
func (h *DocumentHandler) CheckName(c echo.Context) error {
	conflict, err := h.documentService.CheckNameConflict(
		c.Request().Context(),
		c.QueryParam("folderId"),
		c.QueryParam("name"),
		c.QueryParam("excludeId"),
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conflict": conflict})
}

// SaveDocument upserts a document, honoring the conflict resolution choice
func (h *DocumentHandler) SaveDocument(c echo.Context) error {
	var req ports.SaveDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doc, err := h.documentService.SaveDocument(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// DeleteDocument removes a document
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	if err := h.documentService.DeleteDocument(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Document deleted successfully"})
}

// TemplateResponse carries one named template's content
type TemplateResponse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// GetTemplate returns the stored or built-in template by name
func (h *DocumentHandler) GetTemplate(c echo.Context) error {
	name := c.Param("name")
	content, err := h.documentService.Template(c.Request().Context(), name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, TemplateResponse{Name: name, Content: content})
}

// PutTemplate stores template content under a name
func (h *DocumentHandler) PutTemplate(c echo.Context) error {
	var req TemplateResponse
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	name := c.Param("name")
	if err := h.documentService.SetTemplate(c.Request().Context(), name, req.Content); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Template updated successfully"})
}
