package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/pkg/responses"
	"github.com/jfarias-dev/ligauni/pkg/validator"
)

// TeamController handles the public team pages, the captain workflow and
// the join-request participation flow.
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// isCaptain reports whether the actor captains the team. Admins manage any
// team through the back-office; the captain surface also admits them.
func isCaptain(actor identity.Actor, t *Team) bool {
	if actor.Admin {
		return true
	}
	return t.CaptainID != nil && actor.ProfileID != 0 && *t.CaptainID == actor.ProfileID
}

// --- DTOs ---

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Major       *string `json:"major" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Logo        *string `json:"logo" binding:"omitempty,max=300"`
}

type AddPlayerRequest struct {
	FirstName    string `json:"first_name" binding:"required,min=2,max=60"`
	LastName     string `json:"last_name" binding:"required,min=2,max=60"`
	Position     string `json:"position" binding:"required,oneof=GK DEF MID FWD"`
	JerseyNumber *int   `json:"jersey_number" binding:"omitempty,gte=1,lte=99"`
	ProfileID    *uint  `json:"profile_id"`
}

type CreateJoinRequest struct {
	TeamID   uint   `json:"team_id" binding:"required"`
	Position string `json:"position" binding:"omitempty,oneof=GK DEF MID FWD"`
	Major    string `json:"major" binding:"omitempty,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

type ResolveJoinRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// --- Public handlers ---

// GetTeams godoc
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param major query string false "Filter by department"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Router /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit, c.Query("major"))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// GetTeamByID godoc
// @Summary Get a team with its roster
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de equipo inválido")
		return
	}

	team, err := tc.repo.GetTeamWithRoster(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// --- Captain handlers ---

// UpdateTeam godoc
// @Summary Update the team page (captain only)
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	actor := identity.FromContext(c)
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de equipo inválido")
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}
	if !isCaptain(actor, team) {
		responses.Forbidden(c, "Solo el capitán puede editar la página del equipo")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Major != nil {
		team.Major = *req.Major
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Logo != nil {
		team.Logo = *req.Logo
	}

	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "No se pudo actualizar el equipo")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Equipo actualizado correctamente: "+team.Name, team)
}

// AddPlayer godoc
// @Summary Add a player to the roster (captain only)
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player body AddPlayerRequest true "Player data"
// @Success 201 {object} responses.SuccessResponse{data=Player}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players [post]
func (tc *TeamController) AddPlayer(c *gin.Context) {
	actor := identity.FromContext(c)
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de equipo inválido")
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}
	if !isCaptain(actor, team) {
		responses.Forbidden(c, "Solo el capitán puede gestionar la plantilla")
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	player := Player{
		TeamID:       team.ID,
		ProfileID:    req.ProfileID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	}
	if err := tc.repo.CreatePlayer(&player); err != nil {
		responses.InternalServerError(c, "No se pudo registrar al jugador")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Jugador registrado correctamente: "+player.LastName, player)
}

// RemovePlayer godoc
// @Summary Remove a player from the roster (captain only)
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id} [delete]
func (tc *TeamController) RemovePlayer(c *gin.Context) {
	actor := identity.FromContext(c)
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de equipo inválido")
		return
	}
	playerID, err := strconv.ParseUint(c.Param("player_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de jugador inválido")
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}
	if !isCaptain(actor, team) {
		responses.Forbidden(c, "Solo el capitán puede gestionar la plantilla")
		return
	}

	player, err := tc.repo.GetPlayerByID(uint(playerID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if player == nil || player.TeamID != team.ID {
		responses.NotFound(c, "El jugador")
		return
	}

	hasHistory, err := tc.repo.PlayerHasHistory(player.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if hasHistory {
		responses.SendError(c, http.StatusConflict, "No se puede eliminar: el jugador tiene eventos o asistencias registradas")
		return
	}

	if err := tc.repo.DeletePlayer(player.ID); err != nil {
		responses.InternalServerError(c, "No se pudo eliminar al jugador")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Jugador eliminado: "+player.LastName, nil)
}

// --- Join request handlers ---

// CreateJoinRequest godoc
// @Summary Request to join a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body CreateJoinRequest true "Join request data"
// @Success 201 {object} responses.SuccessResponse{data=JoinTeamRequest}
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /join-requests [post]
func (tc *TeamController) CreateJoinRequest(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil || actor.ProfileID == 0 {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	team, err := tc.repo.GetTeamByID(req.TeamID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}

	// One active request per profile across all teams.
	pending, err := tc.repo.GetPendingRequestByProfileID(actor.ProfileID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if pending != nil {
		responses.SendError(c, http.StatusConflict, "Ya tienes una solicitud de ingreso pendiente")
		return
	}

	request := JoinTeamRequest{
		ProfileID: actor.ProfileID,
		TeamID:    team.ID,
		Status:    StatusPending,
		Position:  req.Position,
		Major:     req.Major,
		Phone:     req.Phone,
	}
	if err := tc.repo.CreateJoinRequest(&request); err != nil {
		responses.InternalServerError(c, "No se pudo registrar la solicitud")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Solicitud de ingreso enviada a "+team.Name, request)
}

// GetJoinRequests godoc
// @Summary List a team's join requests (captain only)
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} responses.SuccessResponse{data=[]JoinTeamRequest}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [get]
func (tc *TeamController) GetJoinRequests(c *gin.Context) {
	actor := identity.FromContext(c)
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de equipo inválido")
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}
	if !isCaptain(actor, team) {
		responses.Forbidden(c, "Solo el capitán puede revisar las solicitudes")
		return
	}

	requests, err := tc.repo.GetJoinRequestsByTeamID(team.ID, c.Query("status"))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", requests)
}

// ResolveJoinRequest godoc
// @Summary Approve or reject a join request (captain only)
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param request_id path int true "Join request ID"
// @Param resolution body ResolveJoinRequest true "approved or rejected"
// @Success 200 {object} responses.SuccessResponse{data=JoinTeamRequest}
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests/{request_id} [put]
func (tc *TeamController) ResolveJoinRequest(c *gin.Context) {
	actor := identity.FromContext(c)
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de equipo inválido")
		return
	}
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de solicitud inválido")
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "El equipo")
		return
	}
	if !isCaptain(actor, team) {
		responses.Forbidden(c, "Solo el capitán puede resolver las solicitudes")
		return
	}

	var req ResolveJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	request, err := tc.repo.GetJoinRequestByID(uint(requestID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if request == nil || request.TeamID != team.ID {
		responses.NotFound(c, "La solicitud")
		return
	}
	if request.Status != StatusPending {
		responses.SendError(c, http.StatusConflict, "La solicitud ya fue resuelta")
		return
	}

	request.Status = req.Status
	if err := tc.repo.UpdateJoinRequest(request); err != nil {
		responses.InternalServerError(c, "No se pudo actualizar la solicitud")
		return
	}

	// Approval puts the requester on the roster.
	if request.Status == StatusApproved {
		profileID := request.ProfileID
		player := Player{
			TeamID:    team.ID,
			ProfileID: &profileID,
			FirstName: firstNameFor(request),
			LastName:  lastNameFor(request),
			Position:  request.Position,
		}
		if player.Position == "" {
			player.Position = "MID"
		}
		if err := tc.repo.CreatePlayer(&player); err != nil {
			responses.InternalServerError(c, "La solicitud se aprobó pero no se pudo crear al jugador")
			return
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Solicitud actualizada correctamente", request)
}

func firstNameFor(request *JoinTeamRequest) string {
	if request.Profile != nil && request.Profile.FirstName != "" {
		return request.Profile.FirstName
	}
	return "Jugador"
}

func lastNameFor(request *JoinTeamRequest) string {
	if request.Profile != nil && request.Profile.LastName != "" {
		return request.Profile.LastName
	}
	if request.Profile != nil {
		return request.Profile.Username
	}
	return "Sin nombre"
}
