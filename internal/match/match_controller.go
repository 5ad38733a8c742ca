package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/stream"
	"github.com/jfarias-dev/ligauni/pkg/responses"
)

// MatchController serves the public match pages.
type MatchController struct {
	repo     MatchRepository
	streams  stream.StreamRepository
	statuses StatusProvider
}

func NewMatchController(repo MatchRepository, streams stream.StreamRepository, statuses StatusProvider) *MatchController {
	return &MatchController{repo: repo, streams: streams, statuses: statuses}
}

type matchView struct {
	Match
	Status Status `json:"status"`
}

// eventView is an event together with its participating players.
type eventView struct {
	Event
	Players []EventPlayer `json:"players"`
}

func (mc *MatchController) withStatus(m Match, now time.Time) matchView {
	return matchView{Match: m, Status: mc.statuses.StatusOf(&m, now)}
}

// GetMatches godoc
// @Summary List matches, newest first
// @Tags Matches
// @Produce json
// @Param competition_id query int false "Filter by competition"
// @Param status query string false "Filter by derived status" Enums(scheduled, live, in_review, finished)
// @Success 200 {object} responses.SuccessResponse
// @Router /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	competitionID, _ := strconv.ParseUint(c.DefaultQuery("competition_id", "0"), 10, 32)
	statusFilter := Status(c.Query("status"))

	matches, err := mc.repo.GetAll(uint(competitionID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}

	now := time.Now()
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		view := mc.withStatus(m, now)
		if statusFilter != "" && view.Status != statusFilter {
			continue
		}
		views = append(views, view)
	}
	responses.SendSuccess(c, http.StatusOK, "", views)
}

// GetMatchByID godoc
// @Summary Match detail with lineups, events and attendance
// @Tags Matches
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /matches/{match_id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("match_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de partido inválido")
		return
	}

	m, err := mc.repo.GetDetailed(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if m == nil {
		responses.NotFound(c, "El partido")
		return
	}

	lineups, err := mc.repo.GetLineups(m.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	events, err := mc.repo.GetEvents(m.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	eventViews := make([]eventView, 0, len(events))
	for _, e := range events {
		players, err := mc.repo.GetEventPlayers(e.ID)
		if err != nil {
			responses.InternalServerError(c, "")
			return
		}
		eventViews = append(eventViews, eventView{Event: e, Players: players})
	}
	attendance, err := mc.repo.GetAttendance(m.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	broadcast, err := mc.streams.GetByMatchID(m.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"match":      mc.withStatus(*m, time.Now()),
		"lineups":    lineups,
		"events":     eventViews,
		"attendance": attendance,
		"stream":     broadcast,
	})
}
