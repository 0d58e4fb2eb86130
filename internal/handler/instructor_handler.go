package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	"github.com/lzamboni86/godrive-mobile-api/pkg/response"
)

// InstructorHandler manages the marketplace listing endpoints.
type InstructorHandler struct {
	service *service.InstructorService
}

// NewInstructorHandler constructs handler.
func NewInstructorHandler(svc *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{service: svc}
}

// List godoc
// @Summary List approved instructors
// @Tags Instructors
// @Produce json
// @Param state query string false "Filter by state"
// @Param city query string false "Filter by city"
// @Param neighborhoodTeach query string false "Filter by teaching neighborhood"
// @Param gender query string false "Filter by gender"
// @Param transmission query string false "Filter by vehicle transmission"
// @Param engineType query string false "Filter by vehicle engine type"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	var filter models.InstructorFilter
	filter.State = c.Query("state")
	filter.City = c.Query("city")
	filter.NeighborhoodTeach = c.Query("neighborhoodTeach")
	filter.Gender = c.Query("gender")
	filter.Transmission = c.Query("transmission")
	filter.EngineType = c.Query("engineType")

	instructors, err := h.service.List(c.Request.Context(), tokenFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// Get godoc
// @Summary Fetch one instructor
// @Tags Instructors
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	instructor, err := h.service.Get(c.Request.Context(), tokenFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}
