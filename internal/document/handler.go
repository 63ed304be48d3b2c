package document

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an application document
// @Tags documents
// @Accept multipart/form-data
// @Security BearerAuth
// @Router /documents [post]
func (h *Handler) Upload(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	documentType := c.PostForm("document_type")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	doc, err := h.service.Upload(ac.UserID, documentType, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadType), errors.Is(err, ErrBadFileType),
			errors.Is(err, ErrTooLarge), errors.Is(err, ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload document"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// Mine godoc
// @Summary List the caller's documents
// @Tags documents
// @Security BearerAuth
// @Router /documents [get]
func (h *Handler) Mine(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	docs, err := h.service.ListMine(ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Delete godoc
// @Summary Delete one of the caller's documents
// @Tags documents
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	if err := h.service.Delete(ac.UserID, uint(id)); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
