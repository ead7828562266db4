package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jobsheet-service/internal/http/middleware"
	"jobsheet-service/internal/model"
	"jobsheet-service/internal/service"
	"jobsheet-service/internal/viewmodel"
)

type Handler struct {
	jobSheetService *service.JobSheetService
	documentService *service.DocumentService
	partService     *service.PartService
	companyService  *service.CompanyService
	quoteService    *service.QuoteService
	userService     *service.UserService
	log             zerolog.Logger
}

func NewHandler(
	jobSheetService *service.JobSheetService,
	documentService *service.DocumentService,
	partService *service.PartService,
	companyService *service.CompanyService,
	quoteService *service.QuoteService,
	userService *service.UserService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		jobSheetService: jobSheetService,
		documentService: documentService,
		partService:     partService,
		companyService:  companyService,
		quoteService:    quoteService,
		userService:     userService,
		log:             log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/me", h.getMe)
	protected.PUT("/me", h.updateMe)

	sheets := protected.Group("/job-sheets")
	{
		sheets.GET("", h.listJobSheets)
		sheets.POST("", h.createJobSheet)
		sheets.GET("/next-number", h.nextJobNumber)
		sheets.GET("/:id", h.getJobSheet)
		sheets.PUT("/:id", h.updateJobSheet)
		sheets.DELETE("/:id", h.deleteJobSheet)
		sheets.POST("/:id/sheets", h.addSheet)
		sheets.PUT("/:id/status", h.updateJobStatus)
		sheets.PUT("/:id/cancel", h.cancelJob)
		sheets.GET("/:id/navigate", h.navigateJobSheet)
		sheets.GET("/:id/status-options", h.statusOptions)
		// Attachments
		sheets.GET("/:id/documents", h.listDocuments)
		sheets.POST("/:id/documents", h.createDocument)
		sheets.GET("/:id/parts", h.listParts)
		sheets.POST("/:id/parts", h.createPart)
	}

	protected.DELETE("/documents/:id", h.deleteDocument)
	protected.PUT("/parts/:id", h.updatePart)
	protected.DELETE("/parts/:id", h.deletePart)

	companies := protected.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.POST("", h.createCompany)
		companies.GET("/resolve", h.resolveCompany)
		companies.GET("/:id", h.getCompany)
		companies.PUT("/:id", h.updateCompany)
		companies.PUT("/:id/contacts", h.upsertContact)
	}

	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.listQuotes)
		quotes.POST("", h.createQuote)
		quotes.GET("/next-number", h.nextQuoteNumber)
		quotes.GET("/:id", h.getQuote)
		quotes.PUT("/:id", h.updateQuote)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyChoiceRequired):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"code":  "company_choice_required",
		})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

// principalOrAbort writes a 401 when the auth middleware did not run.
func principalOrAbort(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
	}
	return principal, ok
}

func idParam(c *gin.Context, what string) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid "+what+" id"))
		return "", false
	}
	return id, true
}

func sortQuery(c *gin.Context) viewmodel.SortState {
	return viewmodel.SortState{
		Field:     strings.TrimSpace(c.Query("sort")),
		Direction: viewmodel.ParseDirection(c.Query("direction")),
	}
}
