package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsheet-service/internal/service"
	"jobsheet-service/internal/viewmodel"
)

type partInputRequest struct {
	Quantity    interface{} `json:"quantity"`
	Description string      `json:"description" binding:"required"`
	Price       interface{} `json:"price"`
}

func (r partInputRequest) input() service.PartInput {
	return service.PartInput{
		Quantity:    r.Quantity,
		Description: r.Description,
		Price:       r.Price,
	}
}

func (h *Handler) listDocuments(c *gin.Context) {
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	view, err := h.documentService.List(c.Request.Context(), id, viewmodel.ParseScope(c.Query("scope")))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(view))
}

func (h *Handler) createDocument(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		URL         string `json:"url" binding:"required"`
		ContentType string `json:"contentType"`
		Size        int64  `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	document, err := h.documentService.Create(c.Request.Context(), principal, id, service.DocumentInput{
		Name:        req.Name,
		URL:         req.URL,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(document))
}

func (h *Handler) deleteDocument(c *gin.Context) {
	id, ok := idParam(c, "document")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

func (h *Handler) listParts(c *gin.Context) {
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	view, err := h.partService.List(c.Request.Context(), id, service.PartListInput{
		Scope: viewmodel.ParseScope(c.Query("scope")),
		Sort:  sortQuery(c),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(view))
}

func (h *Handler) createPart(c *gin.Context) {
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	var req partInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	part, err := h.partService.Create(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(part))
}

func (h *Handler) updatePart(c *gin.Context) {
	id, ok := idParam(c, "part")
	if !ok {
		return
	}

	var req partInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	part, err := h.partService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(part))
}

func (h *Handler) deletePart(c *gin.Context) {
	id, ok := idParam(c, "part")
	if !ok {
		return
	}

	if err := h.partService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}
