package api

import (
	"net/http"

	reqdto "space-booking/internal/handler/dto/request"
	resdto "space-booking/internal/handler/dto/response"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpaceHandler struct {
	cmds commands.SpaceCommands
	q    queries.SpaceQueries
}

func NewSpaceHandler(cmds commands.SpaceCommands, q queries.SpaceQueries) *SpaceHandler {
	return &SpaceHandler{cmds: cmds, q: q}
}

// @Summary Create space
// @Description Register a bookable space
// @Tags spaces
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSpaceRequest true "Create space request"
// @Success 201 {object} resdto.SpaceResponse
// @Failure 400 {object} httperr.Response
// @Router /api/spaces [post]
func (h *SpaceHandler) Create(c *gin.Context) {
	var req reqdto.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	sp, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/spaces/"+sp.ID().String())
	c.JSON(http.StatusCreated, resdto.FromSpaceView(queries.NewSpaceView(sp)))
}

// @Summary List spaces
// @Description List every space in creation order
// @Tags spaces
// @Produce json
// @Success 200 {array} resdto.SpaceResponse
// @Failure 500 {object} httperr.Response
// @Router /api/spaces [get]
func (h *SpaceHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceViews(views))
}

// @Summary Get space
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} resdto.SpaceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/spaces/{id} [get]
func (h *SpaceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid space id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

// @Summary Available spaces
// @Description Spaces with no active reservation overlapping [startTime, endTime]. Touching boundaries count as overlap.
// @Tags spaces
// @Produce json
// @Param startTime query string true "RFC 3339 start"
// @Param endTime query string true "RFC 3339 end"
// @Success 200 {array} resdto.SpaceResponse
// @Failure 400 {object} httperr.Response
// @Router /api/spaces/available [get]
func (h *SpaceHandler) Available(c *gin.Context) {
	var query reqdto.AvailableSpacesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.Available(c.Request.Context(), query.StartTime, query.EndTime)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceViews(views))
}

// @Summary List space reservations
// @Description Every reservation ever made on the space, cancelled ones included
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/spaces/{id}/reservations [get]
func (h *SpaceHandler) ListReservations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid space id", nil)
		return
	}
	views, err := h.q.ListReservations(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}
