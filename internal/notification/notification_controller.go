package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/profile"
	"github.com/jfarias-dev/ligauni/pkg/responses"
	"github.com/jfarias-dev/ligauni/pkg/validator"
)

// NotificationController handles the signed-in user's own pages:
// profile summary, notification list and preference settings.
type NotificationController struct {
	repo     NotificationRepository
	profiles profile.ProfileRepository
}

func NewNotificationController(repo NotificationRepository, profiles profile.ProfileRepository) *NotificationController {
	return &NotificationController{repo: repo, profiles: profiles}
}

type UpsertPreferenceRequest struct {
	Type            string `json:"type" binding:"required,oneof=notification privacy display"`
	Channel         string `json:"channel" binding:"required,min=2,max=50"`
	LeadTimeMinutes *int   `json:"lead_time_minutes" binding:"omitempty,min=0"`
	IsEnabled       *bool  `json:"is_enabled"`
}

// GetMe godoc
// @Summary Profile of the signed-in user
// @Tags Me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /me [get]
func (nc *NotificationController) GetMe(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	p, err := nc.profiles.GetByID(actor.ProfileID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if p == nil {
		responses.NotFound(c, "Tu perfil")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"profile": p,
		"roles":   actor.Roles,
	})
}

// GetMyNotifications godoc
// @Summary Notifications of the signed-in user, newest first
// @Tags Me
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} responses.PaginatedResponse
// @Router /me/notifications [get]
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := nc.repo.GetByProfileID(actor.ProfileID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", rows, total, page, limit)
}

// GetMyPreferences godoc
// @Summary Preference settings of the signed-in user
// @Tags Me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /me/preferences [get]
func (nc *NotificationController) GetMyPreferences(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	prefs, err := nc.repo.GetPreferencesByProfileID(actor.ProfileID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", prefs)
}

// UpsertMyPreference godoc
// @Summary Create or update a preference setting
// @Description One setting per (type, channel); submitting the same pair updates it in place.
// @Tags Me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preference body UpsertPreferenceRequest true "Preference"
// @Success 200 {object} responses.SuccessResponse
// @Success 201 {object} responses.SuccessResponse
// @Router /me/preferences [put]
func (nc *NotificationController) UpsertMyPreference(c *gin.Context) {
	actor, err := identity.RequireFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpsertPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	existing, err := nc.repo.GetPreference(actor.ProfileID, req.Type, req.Channel)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}

	if existing == nil {
		pref := Preference{
			ProfileID: actor.ProfileID,
			Type:      req.Type,
			Channel:   req.Channel,
			IsEnabled: true,
		}
		if req.LeadTimeMinutes != nil {
			pref.LeadTimeMinutes = *req.LeadTimeMinutes
		}
		if req.IsEnabled != nil {
			pref.IsEnabled = *req.IsEnabled
		}
		if err := nc.repo.CreatePreference(&pref); err != nil {
			responses.InternalServerError(c, "")
			return
		}
		responses.SendSuccess(c, http.StatusCreated, "Preferencia creada", pref)
		return
	}

	if req.LeadTimeMinutes != nil {
		existing.LeadTimeMinutes = *req.LeadTimeMinutes
	}
	if req.IsEnabled != nil {
		existing.IsEnabled = *req.IsEnabled
	}
	if err := nc.repo.UpdatePreference(existing); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Preferencia actualizada", existing)
}
