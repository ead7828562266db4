package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsheet-service/internal/service"
)

func (h *Handler) getMe(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(profile))
}

func (h *Handler) updateMe(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	profile, err := h.userService.UpdateMe(c.Request.Context(), principal, service.UpdateProfileInput{
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(profile))
}
