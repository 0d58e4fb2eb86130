package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
	"github.com/lzamboni86/godrive-mobile-api/pkg/response"
)

// LessonHandler manages agenda and adjustment endpoints.
type LessonHandler struct {
	service *service.LessonService
}

// NewLessonHandler constructs handler.
func NewLessonHandler(svc *service.LessonService) *LessonHandler {
	return &LessonHandler{service: svc}
}

// Past godoc
// @Summary List past lessons
// @Tags Lessons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lessons/past [get]
func (h *LessonHandler) Past(c *gin.Context) {
	lessons, err := h.service.Past(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons)
}

// Upcoming godoc
// @Summary List upcoming lessons
// @Tags Lessons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lessons/upcoming [get]
func (h *LessonHandler) Upcoming(c *gin.Context) {
	lessons, err := h.service.Upcoming(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons)
}

// Adjust godoc
// @Summary Propose a new slot for a confirmed lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param payload body dto.AdjustLessonRequest true "Adjustment payload"
// @Success 200 {object} response.Envelope
// @Router /lessons/{id}/adjust [post]
func (h *LessonHandler) Adjust(c *gin.Context) {
	var req dto.AdjustLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	lesson, err := h.service.Adjust(c.Request.Context(), tokenFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}
