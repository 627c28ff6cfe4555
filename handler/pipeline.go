package handler

import (
	"errors"
	"net/http"

	"github.com/chessnok/itmohack4days/backend/middleware"
	"github.com/chessnok/itmohack4days/backend/pipeline"
	"github.com/chessnok/itmohack4days/backend/service"
	"github.com/gin-gonic/gin"
)

type PipelineHandler struct {
	runner *pipeline.Runner
	store  *service.DocumentStore
}

func NewPipelineHandler(runner *pipeline.Runner) *PipelineHandler {
	return &PipelineHandler{
		runner: runner,
		store:  service.GetDocumentStore(),
	}
}

// Run executes the due-diligence pipeline over the tenant's uploaded
// documents and stores the result
func (h *PipelineHandler) Run(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	docs := h.store.GetByTenant(tenant)
	if len(docs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents uploaded"})
		return
	}

	result, err := h.runner.Run(c.Request.Context(), tenant, docs)
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "A pipeline run is already in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Pipeline run failed: " + err.Error()})
		return
	}

	h.store.SaveResult(tenant, result)

	c.JSON(http.StatusOK, result)
}

// Result returns the tenant's latest pipeline result
func (h *PipelineHandler) Result(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	result := h.store.Result(tenant)
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pipeline result yet"})
		return
	}

	c.JSON(http.StatusOK, result)
}
