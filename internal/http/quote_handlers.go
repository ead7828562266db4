package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/service"
)

type quoteItemRequest struct {
	Description string      `json:"description"`
	Quantity    interface{} `json:"quantity"`
	Price       interface{} `json:"price"`
}

type quoteRequest struct {
	CompanyName      string             `json:"companyName" binding:"required"`
	CompanyAddress   string             `json:"companyAddress"`
	CompanyTelephone string             `json:"companyTelephone"`
	Contact          model.Contact      `json:"contact"`
	Items            []quoteItemRequest `json:"items"`
	DocumentType     model.DocumentType `json:"documentType"`
	Notes            string             `json:"notes"`
	Status           model.QuoteStatus  `json:"status"`
}

func (r quoteRequest) input() service.QuoteInput {
	items := make([]service.QuoteItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.QuoteItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return service.QuoteInput{
		CompanyName:      r.CompanyName,
		CompanyAddress:   r.CompanyAddress,
		CompanyTelephone: r.CompanyTelephone,
		Contact:          r.Contact,
		Items:            items,
		DocumentType:     r.DocumentType,
		Notes:            r.Notes,
		Status:           r.Status,
	}
}

func (h *Handler) listQuotes(c *gin.Context) {
	quotes, err := h.quoteService.List(c.Request.Context(), sortQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(quotes))
}

func (h *Handler) createQuote(c *gin.Context) {
	var req struct {
		quoteRequest
		CreateCompanyProfile *bool `json:"createCompanyProfile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), service.CreateQuoteInput{
		QuoteInput:           req.input(),
		CreateCompanyProfile: req.CreateCompanyProfile,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(quote))
}

func (h *Handler) nextQuoteNumber(c *gin.Context) {
	number, err := h.quoteService.PeekNextQuoteNumber(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"quoteNumber": number}))
}

func (h *Handler) getQuote(c *gin.Context) {
	id, ok := idParam(c, "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(quote))
}

func (h *Handler) updateQuote(c *gin.Context) {
	id, ok := idParam(c, "quote")
	if !ok {
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(quote))
}
