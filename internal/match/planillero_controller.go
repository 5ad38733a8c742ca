package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/team"
	"github.com/jfarias-dev/ligauni/pkg/responses"
	"github.com/jfarias-dev/ligauni/pkg/validator"
)

// PlanilleroController handles the scorekeeper workflow: attendance,
// in-game events, closing a match and validating its result.
type PlanilleroController struct {
	repo     MatchRepository
	teams    team.TeamRepository
	statuses StatusProvider
}

func NewPlanilleroController(repo MatchRepository, teams team.TeamRepository, statuses StatusProvider) *PlanilleroController {
	return &PlanilleroController{repo: repo, teams: teams, statuses: statuses}
}

type RecordAttendanceRequest struct {
	PlayerID     uint `json:"player_id" binding:"required"`
	JerseyNumber int  `json:"jersey_number" binding:"required,min=1,max=99"`
}

type RecordEventRequest struct {
	TeamID         uint   `json:"team_id" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=goal yellow_card red_card substitution"`
	Minute         int    `json:"minute" binding:"min=0,max=130"`
	MainPlayerID   uint   `json:"main_player_id" binding:"required"`
	AssistPlayerID uint   `json:"assist_player_id"`
	SubInPlayerID  uint   `json:"sub_in_player_id"`
	SubOutPlayerID uint   `json:"sub_out_player_id"`
}

type CloseMatchRequest struct {
	LocalScore   *int `json:"local_score" binding:"required,min=0"`
	VisitorScore *int `json:"visitor_score" binding:"required,min=0"`
}

// loadMatch resolves the :match_id param and checks the scorekeeper is
// attached to one of the two teams. Admins may act on any match.
func (pc *PlanilleroController) loadMatch(c *gin.Context, actor identity.Actor) *Match {
	matchID, err := strconv.ParseUint(c.Param("match_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de partido inválido")
		return nil
	}

	m, err := pc.repo.GetByID(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "")
		return nil
	}
	if m == nil {
		responses.NotFound(c, "El partido")
		return nil
	}

	if !actor.Admin {
		player, err := pc.teams.GetPlayerByProfileID(actor.ProfileID)
		if err != nil {
			responses.InternalServerError(c, "")
			return nil
		}
		if player == nil || (player.TeamID != m.LocalTeamID && player.TeamID != m.VisitorTeamID) {
			responses.Forbidden(c, "Solo puedes gestionar partidos de tu equipo")
			return nil
		}
	}
	return m
}

// GetMyMatches godoc
// @Summary Matches of the scorekeeper's team, grouped by status
// @Tags Planillero
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /planillero/matches [get]
func (pc *PlanilleroController) GetMyMatches(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	player, err := pc.teams.GetPlayerByProfileID(actor.ProfileID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if player == nil {
		responses.NotFound(c, "Tu inscripción como jugador")
		return
	}

	matches, err := pc.repo.GetByTeamID(player.TeamID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}

	grouped := GroupForScorekeeper(matches, pc.statuses, time.Now())
	responses.SendSuccess(c, http.StatusOK, "", grouped)
}

// GetAttendance godoc
// @Summary Attendance sheet of a match
// @Tags Planillero
// @Produce json
// @Security BearerAuth
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /planillero/matches/{match_id}/attendance [get]
func (pc *PlanilleroController) GetAttendance(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	m := pc.loadMatch(c, actor)
	if m == nil {
		return
	}

	rows, err := pc.repo.GetAttendance(m.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", rows)
}

// RecordAttendance godoc
// @Summary Add a player to the match's attendance sheet
// @Tags Planillero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param match_id path int true "Match ID"
// @Param attendance body RecordAttendanceRequest true "Attendance line"
// @Success 201 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /planillero/matches/{match_id}/attendance [post]
func (pc *PlanilleroController) RecordAttendance(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	m := pc.loadMatch(c, actor)
	if m == nil {
		return
	}

	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	player, err := pc.teams.GetPlayerByID(req.PlayerID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if player == nil {
		responses.NotFound(c, "El jugador")
		return
	}
	if player.TeamID != m.LocalTeamID && player.TeamID != m.VisitorTeamID {
		responses.SendError(c, http.StatusConflict, "El jugador no pertenece a los equipos de este partido")
		return
	}

	attending, err := pc.repo.PlayerAttending(m.ID, player.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if attending {
		responses.SendError(c, http.StatusConflict, "El jugador ya está registrado en la planilla")
		return
	}

	taken, err := pc.repo.JerseyTaken(m.ID, req.JerseyNumber)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if taken {
		responses.SendError(c, http.StatusConflict, "El dorsal ya está ocupado en este partido")
		return
	}

	line := MatchAttendance{
		MatchID:      m.ID,
		PlayerID:     player.ID,
		TeamID:       player.TeamID,
		JerseyNumber: req.JerseyNumber,
	}
	if err := pc.repo.CreateAttendance(&line); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Asistencia registrada", line)
}

// RecordEvent godoc
// @Summary Record an in-game event with its participating players
// @Tags Planillero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param match_id path int true "Match ID"
// @Param event body RecordEventRequest true "Event"
// @Success 201 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /planillero/matches/{match_id}/events [post]
func (pc *PlanilleroController) RecordEvent(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	m := pc.loadMatch(c, actor)
	if m == nil {
		return
	}

	if pc.statuses.StatusOf(m, time.Now()) != StatusLive {
		responses.SendError(c, http.StatusConflict, "Solo se pueden registrar eventos en partidos en vivo")
		return
	}

	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	if req.TeamID != m.LocalTeamID && req.TeamID != m.VisitorTeamID {
		responses.SendError(c, http.StatusConflict, "El equipo no participa en este partido")
		return
	}

	links := []EventPlayer{{PlayerID: req.MainPlayerID, Role: RoleMain}}
	if req.AssistPlayerID != 0 {
		links = append(links, EventPlayer{PlayerID: req.AssistPlayerID, Role: RoleAssist})
	}
	if EventType(req.Type) == EventSubstitution {
		if req.SubInPlayerID == 0 || req.SubOutPlayerID == 0 {
			responses.BadRequest(c, "Una sustitución requiere el jugador que entra y el que sale")
			return
		}
		links = append(links,
			EventPlayer{PlayerID: req.SubInPlayerID, Role: RoleSubstitutedIn},
			EventPlayer{PlayerID: req.SubOutPlayerID, Role: RoleSubstitutedOut},
		)
	}

	for i := range links {
		player, err := pc.teams.GetPlayerByID(links[i].PlayerID)
		if err != nil {
			responses.InternalServerError(c, "")
			return
		}
		if player == nil {
			responses.NotFound(c, "El jugador")
			return
		}
		if player.TeamID != req.TeamID {
			responses.SendError(c, http.StatusConflict, "El jugador no pertenece al equipo del evento")
			return
		}
	}

	event := Event{
		MatchID: m.ID,
		TeamID:  req.TeamID,
		Type:    EventType(req.Type),
		Minute:  req.Minute,
	}
	if err := pc.repo.CreateEvent(&event); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	for i := range links {
		links[i].EventID = event.ID
		if err := pc.repo.CreateEventPlayer(&links[i]); err != nil {
			responses.InternalServerError(c, "")
			return
		}
	}

	if event.Type == EventGoal {
		if req.TeamID == m.LocalTeamID {
			m.LocalScore++
		} else {
			m.VisitorScore++
		}
		if err := pc.repo.UpdateMatch(m); err != nil {
			responses.InternalServerError(c, "")
			return
		}
	}

	responses.SendSuccess(c, http.StatusCreated, "Evento registrado", gin.H{
		"event":   event,
		"players": links,
	})
}

// StartMatch godoc
// @Summary Mark a scheduled match as started
// @Tags Planillero
// @Produce json
// @Security BearerAuth
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /planillero/matches/{match_id}/start [post]
func (pc *PlanilleroController) StartMatch(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	m := pc.loadMatch(c, actor)
	if m == nil {
		return
	}

	if pc.statuses.StatusOf(m, time.Now()) != StatusScheduled {
		responses.SendError(c, http.StatusConflict, "El partido ya fue iniciado")
		return
	}

	now := time.Now()
	m.StartedAt = &now
	if err := pc.repo.UpdateMatch(m); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Partido iniciado", pc.viewOf(m, now))
}

// CloseMatch godoc
// @Summary Close a live match with its final score
// @Tags Planillero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param match_id path int true "Match ID"
// @Param result body CloseMatchRequest true "Final score"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /planillero/matches/{match_id}/close [post]
func (pc *PlanilleroController) CloseMatch(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	m := pc.loadMatch(c, actor)
	if m == nil {
		return
	}

	if pc.statuses.StatusOf(m, time.Now()) != StatusLive {
		responses.SendError(c, http.StatusConflict, "Solo se puede cerrar un partido en vivo")
		return
	}

	var req CloseMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	now := time.Now()
	m.LocalScore = *req.LocalScore
	m.VisitorScore = *req.VisitorScore
	m.FinishedAt = &now
	if err := pc.repo.UpdateMatch(m); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Partido cerrado, pendiente de validación", pc.viewOf(m, now))
}

// ValidateMatch godoc
// @Summary Validate a closed match's result
// @Tags Planillero
// @Produce json
// @Security BearerAuth
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /planillero/matches/{match_id}/validate [post]
func (pc *PlanilleroController) ValidateMatch(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	m := pc.loadMatch(c, actor)
	if m == nil {
		return
	}

	now := time.Now()
	if pc.statuses.StatusOf(m, now) != StatusInReview {
		responses.SendError(c, http.StatusConflict, "Solo se puede validar un partido en revisión")
		return
	}

	m.Validated = true
	if err := pc.repo.UpdateMatch(m); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Resultado validado", pc.viewOf(m, now))
}

func (pc *PlanilleroController) viewOf(m *Match, now time.Time) matchView {
	return matchView{Match: *m, Status: pc.statuses.StatusOf(m, now)}
}
