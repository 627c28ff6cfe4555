package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/chessnok/itmohack4days/backend/middleware"
	"github.com/chessnok/itmohack4days/backend/model"
	"github.com/chessnok/itmohack4days/backend/pkg/logger"
	"github.com/chessnok/itmohack4days/backend/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Text files larger than this are stored but not fed to the extractor
const maxInlineContentBytes = 1 << 20

type DocumentHandler struct {
	minioService *service.MinioService
	store        *service.DocumentStore
}

func NewDocumentHandler(minioSvc *service.MinioService) *DocumentHandler {
	return &DocumentHandler{
		minioService: minioSvc,
		store:        service.GetDocumentStore(),
	}
}

// Upload handles document file upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := contentTypeForExt(ext)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOCX and TXT files are allowed"})
		return
	}

	// Plain-text uploads double as extraction input: the pipeline prefers
	// document text over the file name
	var content string
	if ext == ".txt" && header.Size <= maxInlineContentBytes {
		data, err := io.ReadAll(io.LimitReader(file, maxInlineContentBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		content = string(data)
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
	}

	documentID := uuid.New().String()
	objectName := fmt.Sprintf("%s/%s/%s", tenant, documentID, header.Filename)

	if err := h.minioService.UploadDocument(c.Request.Context(), objectName, file, header.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file: " + err.Error()})
		return
	}

	fileURL, err := h.minioService.GetPresignedURL(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
		return
	}

	doc := &model.UploadedDocument{
		ID:         documentID,
		Name:       header.Filename,
		Content:    content,
		Tenant:     tenant,
		ObjectName: objectName,
		FileURL:    fileURL,
		UploadedAt: time.Now(),
	}
	h.store.Save(doc)

	logger.Info(c.Request.Context(), "document uploaded",
		"document_id", documentID,
		"filename", header.Filename,
		"size", header.Size,
	)

	c.JSON(http.StatusOK, gin.H{
		"id":       documentID,
		"name":     header.Filename,
		"file_url": fileURL,
	})
}

func contentTypeForExt(ext string) (string, bool) {
	switch ext {
	case ".pdf":
		return "application/pdf", true
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true
	case ".txt":
		return "text/plain", true
	default:
		return "", false
	}
}

// List returns all documents for the current tenant
func (h *DocumentHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	docs := h.store.GetByTenant(tenant)

	// Content is omitted from the list view
	result := make([]gin.H, len(docs))
	for i, doc := range docs {
		result[i] = gin.H{
			"id":          doc.ID,
			"name":        doc.Name,
			"file_url":    doc.FileURL,
			"uploaded_at": doc.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Delete removes a document and its stored file
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	doc := h.store.Get(id)
	if doc == nil || doc.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if h.minioService != nil && doc.ObjectName != "" {
		if err := h.minioService.DeleteDocument(c.Request.Context(), doc.ObjectName); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete stored file",
				"document_id", id,
				"error", err,
			)
		}
	}
	h.store.Delete(id)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
