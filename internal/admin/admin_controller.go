package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/pkg/responses"
)

// AdminController exposes the generic object manager: four operations per
// entity type, all funneled through the dispatcher.
type AdminController struct {
	dispatcher *Dispatcher
}

func NewAdminController(dispatcher *Dispatcher) *AdminController {
	return &AdminController{dispatcher: dispatcher}
}

// formMap flattens the submission into the key/value map the engine
// validates and the result echoes back.
func formMap(c *gin.Context) map[string]string {
	form := map[string]string{}
	if err := c.Request.ParseForm(); err != nil {
		return form
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	return form
}

func parseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// ListEntities godoc
// @Summary List the manageable entity types
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/entities [get]
func (ac *AdminController) ListEntities(c *gin.Context) {
	actor := identity.FromContext(c)
	if !actor.Admin {
		responses.Forbidden(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", ac.dispatcher.Registry().Names())
}

// List godoc
// @Summary List rows of an entity with human-readable labels
// @Tags Admin
// @Produce json
// @Param entity path string true "Entity type"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/{entity} [get]
func (ac *AdminController) List(c *gin.Context) {
	actor := identity.FromContext(c)
	if !actor.Admin {
		responses.Forbidden(c, "")
		return
	}

	rows, err := ac.dispatcher.List(c.Request.Context(), c.Param("entity"))
	if err != nil {
		responses.BadRequest(c, "Tipo de entidad desconocido")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", rows)
}

// Create godoc
// @Summary Create a row of an entity
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param entity path string true "Entity type"
// @Success 201 {object} responses.ActionResult
// @Failure 401 {object} responses.ActionResult
// @Security ApiKeyAuth
// @Router /admin/{entity} [post]
func (ac *AdminController) Create(c *gin.Context) {
	actor := identity.FromContext(c)
	result, status := ac.dispatcher.Create(c.Request.Context(), actor, c.Param("entity"), formMap(c))
	c.JSON(status, result)
}

// Update godoc
// @Summary Update a row of an entity
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param entity path string true "Entity type"
// @Param id path int true "Row id"
// @Success 200 {object} responses.ActionResult
// @Failure 404 {object} responses.ActionResult
// @Security ApiKeyAuth
// @Router /admin/{entity}/{id} [put]
func (ac *AdminController) Update(c *gin.Context) {
	actor := identity.FromContext(c)
	result, status := ac.dispatcher.Update(c.Request.Context(), actor, c.Param("entity"), parseID(c), formMap(c))
	c.JSON(status, result)
}

// Delete godoc
// @Summary Delete a row of an entity
// @Tags Admin
// @Produce json
// @Param entity path string true "Entity type"
// @Param id path int true "Row id"
// @Success 200 {object} responses.ActionResult
// @Failure 409 {object} responses.ActionResult
// @Security ApiKeyAuth
// @Router /admin/{entity}/{id} [delete]
func (ac *AdminController) Delete(c *gin.Context) {
	actor := identity.FromContext(c)
	form := formMap(c)
	form["id"] = c.Param("id")
	result, status := ac.dispatcher.Delete(c.Request.Context(), actor, c.Param("entity"), parseID(c), form)
	c.JSON(status, result)
}
