package stream

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/pkg/responses"
)

// StreamController serves the public transmissions pages.
type StreamController struct {
	repo StreamRepository
}

func NewStreamController(repo StreamRepository) *StreamController {
	return &StreamController{repo: repo}
}

// GetStreams godoc
// @Summary List transmissions, live first then newest
// @Tags Streams
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} responses.PaginatedResponse
// @Router /streams [get]
func (sc *StreamController) GetStreams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}

	streams, total, err := sc.repo.GetAll(page, limit)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", streams, total, page, limit)
}

// GetStreamByID godoc
// @Summary Transmission detail
// @Tags Streams
// @Produce json
// @Param stream_id path int true "Stream ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /streams/{stream_id} [get]
func (sc *StreamController) GetStreamByID(c *gin.Context) {
	streamID, err := strconv.ParseUint(c.Param("stream_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de transmisión inválido")
		return
	}

	s, err := sc.repo.GetByID(uint(streamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if s == nil {
		responses.NotFound(c, "La transmisión")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", s)
}
