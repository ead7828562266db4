package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobsheet-service/internal/lifecycle"
	"jobsheet-service/internal/model"
	"jobsheet-service/internal/service"
)

type partRequest struct {
	Quantity    interface{} `json:"quantity"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
}

type jobSheetRequest struct {
	Date                string          `json:"date"`
	OrderType           model.OrderType `json:"orderType"`
	OrderValue          string          `json:"orderValue"`
	CompanyName         string          `json:"companyName" binding:"required"`
	CompanyAddress      string          `json:"companyAddress"`
	CompanyTelephone    string          `json:"companyTelephone"`
	Contact             model.Contact   `json:"contact"`
	FaultComplaint      string          `json:"faultComplaint"`
	WorkCarriedOut      string          `json:"workCarriedOut"`
	Tasks               []model.Task    `json:"tasks"`
	Outstanding         string          `json:"outstanding"`
	ArrivalTime         string          `json:"arrivalTime"`
	DepartureTime       string          `json:"departureTime"`
	TechnicianName      string          `json:"technicianName"`
	TechnicianSignature *string         `json:"technicianSignature"`
	CustomerSignature   *string         `json:"customerSignature"`
	CustomerName        string          `json:"customerName"`
	InvoiceNumber       *string         `json:"invoiceNumber"`
	Parts               []partRequest   `json:"parts"`
}

func (r jobSheetRequest) input() service.JobSheetInput {
	parts := make([]service.PartInput, 0, len(r.Parts))
	for _, p := range r.Parts {
		parts = append(parts, service.PartInput{
			Quantity:    p.Quantity,
			Description: p.Description,
			Price:       p.Price,
		})
	}
	return service.JobSheetInput{
		Date:                r.Date,
		OrderType:           r.OrderType,
		OrderValue:          r.OrderValue,
		CompanyName:         r.CompanyName,
		CompanyAddress:      r.CompanyAddress,
		CompanyTelephone:    r.CompanyTelephone,
		Contact:             r.Contact,
		FaultComplaint:      r.FaultComplaint,
		WorkCarriedOut:      r.WorkCarriedOut,
		Tasks:               r.Tasks,
		Outstanding:         r.Outstanding,
		ArrivalTime:         r.ArrivalTime,
		DepartureTime:       r.DepartureTime,
		TechnicianName:      r.TechnicianName,
		TechnicianSignature: r.TechnicianSignature,
		CustomerSignature:   r.CustomerSignature,
		CustomerName:        r.CustomerName,
		InvoiceNumber:       r.InvoiceNumber,
		Parts:               parts,
	}
}

func (h *Handler) listJobSheets(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	groups, err := h.jobSheetService.List(c.Request.Context(), principal, service.ListJobSheetsInput{
		Search: c.Query("search"),
		Sort:   sortQuery(c),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(groups))
}

func (h *Handler) createJobSheet(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req struct {
		jobSheetRequest
		CreateCompanyProfile *bool `json:"createCompanyProfile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sheet, err := h.jobSheetService.Create(c.Request.Context(), principal, service.CreateJobSheetInput{
		JobSheetInput:        req.input(),
		CreateCompanyProfile: req.CreateCompanyProfile,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(sheet))
}

func (h *Handler) nextJobNumber(c *gin.Context) {
	number, err := h.jobSheetService.PeekNextJobNumber(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"jobNumber": number}))
}

func (h *Handler) getJobSheet(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	sheet, err := h.jobSheetService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sheet))
}

func (h *Handler) updateJobSheet(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	var req jobSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sheet, err := h.jobSheetService.Update(c.Request.Context(), principal, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sheet))
}

func (h *Handler) deleteJobSheet(c *gin.Context) {
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	if err := h.jobSheetService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

func (h *Handler) addSheet(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	var req struct {
		Date           string `json:"date"`
		TechnicianName string `json:"technicianName"`
	}
	// The body is optional; chunked bodies report no length.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
	}

	sheet, err := h.jobSheetService.AddSheet(c.Request.Context(), principal, id, service.AddSheetInput{
		Date:           req.Date,
		TechnicianName: req.TechnicianName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(sheet))
}

// updateJobStatus answers 202 when an invoice number has to be entered
// before the job can be invoiced.
func (h *Handler) updateJobStatus(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	var req struct {
		Status        model.JobStatus `json:"status" binding:"required"`
		InvoiceNumber *string         `json:"invoiceNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.jobSheetService.UpdateStatus(c.Request.Context(), principal, id, service.UpdateStatusInput{
		Status:        req.Status,
		InvoiceNumber: req.InvoiceNumber,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if result.Decision == lifecycle.DecisionInvoiceNumberRequired {
		status = http.StatusAccepted
	}
	c.JSON(status, successResponse(result))
}

func (h *Handler) cancelJob(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	result, err := h.jobSheetService.Cancel(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) navigateJobSheet(c *gin.Context) {
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	direction, err := strconv.Atoi(strings.TrimSpace(c.Query("direction")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("direction must be -1 or 1"))
		return
	}

	target, err := h.jobSheetService.Navigate(c.Request.Context(), id, direction)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"sheetId": target}))
}

func (h *Handler) statusOptions(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "job sheet")
	if !ok {
		return
	}

	options, err := h.jobSheetService.StatusOptions(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(options))
}
