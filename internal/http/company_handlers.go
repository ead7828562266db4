package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/service"
)

type companyRequest struct {
	CompanyName      string          `json:"companyName" binding:"required"`
	CompanyAddress   string          `json:"companyAddress"`
	CompanyTelephone string          `json:"companyTelephone"`
	Contacts         []model.Contact `json:"contacts"`
}

func (r companyRequest) input() service.CompanyInput {
	return service.CompanyInput{
		CompanyName:      r.CompanyName,
		CompanyAddress:   r.CompanyAddress,
		CompanyTelephone: r.CompanyTelephone,
		Contacts:         r.Contacts,
	}
}

func (h *Handler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(companies))
}

func (h *Handler) resolveCompany(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("name is required"))
		return
	}

	result, err := h.companyService.Resolve(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) getCompany(c *gin.Context) {
	id, ok := idParam(c, "company")
	if !ok {
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(company))
}

func (h *Handler) createCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(company))
}

func (h *Handler) updateCompany(c *gin.Context) {
	id, ok := idParam(c, "company")
	if !ok {
		return
	}

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(company))
}

func (h *Handler) upsertContact(c *gin.Context) {
	id, ok := idParam(c, "company")
	if !ok {
		return
	}

	var req model.Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	company, err := h.companyService.UpsertContact(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(company))
}
